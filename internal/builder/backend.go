package builder

import (
	"bytes"
	"strconv"
	"text/template"

	"github.com/leffw/torch-cli/internal/config"
	"github.com/leffw/torch-cli/internal/model"
)

// Backend builds the bitcoind definition that seeds a new fleet. Its RPC
// and ZMQ settings live in bitcoin.conf (see BitcoinConf) so bitcoin-cli
// inside the container picks up the same credentials.
func Backend(cfg *config.Config) *model.NodeDefinition {
	b := cfg.Backend

	var bindings []string
	for _, p := range []int{b.RPCPort, b.ZMQBlockPort, b.ZMQTxPort} {
		bindings = append(bindings, model.PortMapping{HostPort: p, ContainerPort: p}.String())
	}

	return &model.NodeDefinition{
		Name:          b.Name,
		Kind:          model.KindBackend,
		Image:         b.Image,
		ContainerName: cfg.ContainerName(b.Name),
		Command:       []string{"-datadir=" + b.DataDir, "-printtoconsole"},
		Ports:         bindings,
		Volumes:       []string{cfg.NodeDataPath(b.Name) + ":" + b.DataDir},
		Restart:       model.RestartAlways,
	}
}

const bitcoinConfTemplate = `# torch backend node
regtest=1
server=1
txindex=1
fallbackfee=0.0002

[regtest]
rpcuser={{ .RPCUser }}
rpcpassword={{ .RPCPass }}
rpcbind=0.0.0.0
rpcallowip=0.0.0.0/0
rpcport={{ .RPCPort }}
zmqpubrawblock=tcp://0.0.0.0:{{ .ZMQBlockPort }}
zmqpubrawtx=tcp://0.0.0.0:{{ .ZMQTxPort }}
`

var bitcoinConf = template.Must(template.New("bitcoin.conf").Parse(bitcoinConfTemplate))

// BitcoinConf renders the backend's bitcoin.conf.
func BitcoinConf(b config.BackendConfig) (string, error) {
	var buf bytes.Buffer
	if err := bitcoinConf.Execute(&buf, b); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BackendRPCAddress is the backend's RPC endpoint on the internal network.
func BackendRPCAddress(cfg *config.Config) string {
	return cfg.ContainerName(cfg.Backend.Name) + ":" + strconv.Itoa(cfg.Backend.RPCPort)
}
