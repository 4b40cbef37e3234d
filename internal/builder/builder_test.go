package builder

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/leffw/torch-cli/internal/config"
	"github.com/leffw/torch-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Root = t.TempDir()
	return cfg
}

func TestLightning(t *testing.T) {
	cfg := testConfig(t)
	ports := model.Ports{Listen: 9735, Control: 10009, Web: 8080}

	def := Lightning(cfg, "alice", ports)

	assert.Equal(t, "alice", def.Name)
	assert.Equal(t, model.KindLightningPeer, def.Kind)
	assert.Equal(t, "lightninglabs/lnd:v0.12.0-beta", def.Image)
	assert.Equal(t, "torch.alice", def.ContainerName)
	assert.Equal(t, []string{"9735:9735", "10009:10009", "8080:8080"}, def.Ports)
	assert.Equal(t, []string{filepath.Join(cfg.Root, "data", "alice") + ":/root/.lnd"}, def.Volumes)
	assert.Equal(t, []string{"bitcoin"}, def.DependsOn)
	assert.Equal(t, "always", def.Restart)

	assert.Equal(t, []string{
		"--alias=alice",
		"--lnddir=/root/.lnd",
		"--listen=0.0.0.0:9735",
		"--rpclisten=0.0.0.0:10009",
		"--restlisten=0.0.0.0:8080",
		"--externalip=torch.alice:9735",
		"--bitcoin.node=bitcoind",
		"--bitcoin.active",
		"--bitcoin.regtest",
		"--bitcoind.rpchost=torch.bitcoin:18443",
		"--bitcoind.rpcuser=root",
		"--bitcoind.rpcpass=root",
		"--bitcoind.zmqpubrawblock=tcp://torch.bitcoin:28332",
		"--bitcoind.zmqpubrawtx=tcp://torch.bitcoin:28333",
	}, def.Command)

	got, err := def.AssignedPorts()
	require.NoError(t, err)
	assert.Equal(t, ports, got)
	assert.Equal(t, cfg.NodeDataPath("alice"), def.StoragePath())
}

func TestLightningFollowsNetworkName(t *testing.T) {
	cfg := testConfig(t)
	cfg.Network = "lab"
	cfg.Backend.Name = "btc"

	def := Lightning(cfg, "bob", model.Ports{Listen: 1, Control: 2, Web: 3})

	assert.Equal(t, "lab.bob", def.ContainerName)
	assert.Contains(t, def.Command, "--externalip=lab.bob:1")
	assert.Contains(t, def.Command, "--bitcoind.rpchost=lab.btc:18443")
	assert.Equal(t, []string{"btc"}, def.DependsOn)
}

func TestBackend(t *testing.T) {
	cfg := testConfig(t)

	def := Backend(cfg)

	assert.Equal(t, "bitcoin", def.Name)
	assert.Equal(t, model.KindBackend, def.Kind)
	assert.Equal(t, "torch.bitcoin", def.ContainerName)
	assert.Equal(t, []string{"18443:18443", "28332:28332", "28333:28333"}, def.Ports)
	assert.Empty(t, def.DependsOn)
	assert.Equal(t, cfg.NodeDataPath("bitcoin"), def.StoragePath())
}

func TestBitcoinConf(t *testing.T) {
	out, err := BitcoinConf(config.Default().Backend)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# torch backend node\nregtest=1\n"))
	assert.Contains(t, out, "rpcuser=root\n")
	assert.Contains(t, out, "rpcpassword=root\n")
	assert.Contains(t, out, "rpcport=18443\n")
	assert.Contains(t, out, "zmqpubrawblock=tcp://0.0.0.0:28332\n")
	assert.Contains(t, out, "zmqpubrawtx=tcp://0.0.0.0:28333\n")
}

func TestTLSCertPath(t *testing.T) {
	assert.Equal(t, "/root/.lnd/tls.cert", TLSCertPath("/root/.lnd"))
}
