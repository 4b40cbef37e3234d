// Package builder assembles compose service definitions for fleet members.
package builder

import (
	"fmt"
	"path"

	"github.com/leffw/torch-cli/internal/config"
	"github.com/leffw/torch-cli/internal/model"
)

// Lightning builds the definition of an lnd peer bound to ports. Host and
// container ports are mapped 1:1 and the node always waits for the backend.
func Lightning(cfg *config.Config, name string, ports model.Ports) *model.NodeDefinition {
	backendHost := cfg.ContainerName(cfg.Backend.Name)
	lnddir := cfg.Lightning.Dir

	command := []string{
		"--alias=" + name,
		"--lnddir=" + lnddir,
		fmt.Sprintf("--listen=0.0.0.0:%d", ports.Listen),

		fmt.Sprintf("--rpclisten=0.0.0.0:%d", ports.Control),
		fmt.Sprintf("--restlisten=0.0.0.0:%d", ports.Web),
		fmt.Sprintf("--externalip=%s:%d", cfg.ContainerName(name), ports.Listen),

		"--bitcoin.node=bitcoind",
		"--bitcoin.active",
		"--bitcoin.regtest",

		"--bitcoind.rpchost=" + BackendRPCAddress(cfg),
		"--bitcoind.rpcuser=" + cfg.Backend.RPCUser,
		"--bitcoind.rpcpass=" + cfg.Backend.RPCPass,

		fmt.Sprintf("--bitcoind.zmqpubrawblock=tcp://%s:%d", backendHost, cfg.Backend.ZMQBlockPort),
		fmt.Sprintf("--bitcoind.zmqpubrawtx=tcp://%s:%d", backendHost, cfg.Backend.ZMQTxPort),
	}

	var bindings []string
	for _, m := range ports.Mappings() {
		bindings = append(bindings, m.String())
	}

	return &model.NodeDefinition{
		Name:          name,
		Kind:          model.KindLightningPeer,
		Image:         cfg.Lightning.Image,
		ContainerName: cfg.ContainerName(name),
		Command:       command,
		Ports:         bindings,
		Volumes:       []string{cfg.NodeDataPath(name) + ":" + lnddir},
		DependsOn:     []string{cfg.Backend.Name},
		Restart:       model.RestartAlways,
	}
}

// TLSCertPath is where lnd keeps its certificate inside its container.
func TLSCertPath(lnddir string) string {
	return path.Join(lnddir, "tls.cert")
}
