package router

import (
	"fmt"
	"strings"

	"github.com/leffw/torch-cli/internal/builder"
)

// Dialect turns a raw node command into the full command line of that
// node's native CLI.
type Dialect interface {
	Command(raw string) string
}

// BackendDialect speaks bitcoin-cli against regtest.
type BackendDialect struct {
	DataDir string
}

func (d BackendDialect) Command(raw string) string {
	return join("bitcoin-cli -regtest -datadir="+d.DataDir, raw)
}

// PeerDialect speaks lncli against the node's own control RPC, reached on
// loopback inside the node's container.
type PeerDialect struct {
	ControlPort int
	LndDir      string
}

func (d PeerDialect) Command(raw string) string {
	base := fmt.Sprintf("lncli --network regtest --rpcserver=127.0.0.1:%d --lnddir=%s --tlscertpath=%s",
		d.ControlPort, d.LndDir, builder.TLSCertPath(d.LndDir))
	return join(base, raw)
}

func join(base, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return base
	}
	return base + " " + raw
}
