// Package router routes raw commands to fleet nodes.
//
// A command is wrapped in the dialect of the target node (bitcoin-cli for
// the backend, lncli for lightning peers) and handed to an Executor, either
// attached to the operator's terminal or with its output captured and
// parsed as JSON.
//
// Captured mode requires the command to print exactly one JSON document on
// stdout. Commands with plain-text output must be run interactively.
package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/leffw/torch-cli/internal/config"
	"github.com/leffw/torch-cli/internal/model"
	"github.com/leffw/torch-cli/internal/registry"
)

var (
	ErrNodeNotFound      = errors.New("node not found")
	ErrMalformedResponse = errors.New("malformed response")
)

// Mode selects how an invocation is executed.
type Mode int

const (
	Interactive Mode = iota
	Captured
)

func (m Mode) String() string {
	if m == Captured {
		return "captured"
	}
	return "interactive"
}

// Invocation is a command line to run inside a node's container.
type Invocation struct {
	Node      string
	Container string
	Command   string
}

func (i Invocation) String() string {
	return i.Container + " " + i.Command
}

// Executor runs invocations inside node containers.
type Executor interface {
	// Attach runs the invocation wired to the operator's terminal.
	Attach(ctx context.Context, inv Invocation) error
	// Capture runs the invocation and returns its standard output.
	Capture(ctx context.Context, inv Invocation) ([]byte, error)
}

// Lookup resolves node names to definitions.
type Lookup interface {
	Get(name string) (*model.NodeDefinition, error)
}

// Result is the outcome of a dispatch. Value is set only in Captured mode.
type Result struct {
	Invocation Invocation
	Value      any
}

// Object returns the captured value as a JSON object.
func (r *Result) Object() (map[string]any, error) {
	obj, ok := r.Value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s returned %T, want object", ErrMalformedResponse, r.Invocation.Node, r.Value)
	}
	return obj, nil
}

type Router struct {
	Nodes  Lookup
	Exec   Executor
	Config *config.Config
}

func New(nodes Lookup, exec Executor, cfg *config.Config) *Router {
	return &Router{Nodes: nodes, Exec: exec, Config: cfg}
}

// DialectFor selects the command dialect of a node.
func (r *Router) DialectFor(def *model.NodeDefinition) (Dialect, error) {
	if def.Kind == model.KindBackend {
		return BackendDialect{DataDir: r.Config.Backend.DataDir}, nil
	}
	port, err := def.ControlPort()
	if err != nil {
		return nil, err
	}
	return PeerDialect{ControlPort: port, LndDir: r.Config.Lightning.Dir}, nil
}

// Invocation builds the fully qualified invocation of raw on node name.
func (r *Router) Invocation(name, raw string) (Invocation, error) {
	def, err := r.Nodes.Get(name)
	if err != nil {
		return Invocation{}, &registry.NodeError{Node: name, Op: "dispatch", Err: fmt.Errorf("%w: %w", ErrNodeNotFound, err)}
	}
	dialect, err := r.DialectFor(def)
	if err != nil {
		return Invocation{}, &registry.NodeError{Node: name, Op: "dispatch", Err: err}
	}

	container := def.ContainerName
	if container == "" {
		container = r.Config.ContainerName(name)
	}
	return Invocation{Node: name, Container: container, Command: dialect.Command(raw)}, nil
}

// Dispatch runs raw on node name.
func (r *Router) Dispatch(ctx context.Context, name, raw string, mode Mode) (*Result, error) {
	inv, err := r.Invocation(name, raw)
	if err != nil {
		return nil, err
	}

	log.Debug("dispatch", "node", name, "mode", mode, "invocation", inv.Command)

	result := &Result{Invocation: inv}
	if mode == Interactive {
		return result, r.Exec.Attach(ctx, inv)
	}

	out, err := r.Exec.Capture(ctx, inv)
	if err != nil {
		return nil, err
	}
	value, err := decodeSingleJSON(out)
	if err != nil {
		return nil, &registry.NodeError{Node: name, Op: "dispatch", Err: err}
	}
	result.Value = value
	return result, nil
}

func decodeSingleJSON(out []byte) (any, error) {
	if !utf8.Valid(out) {
		return nil, fmt.Errorf("%w: output is not UTF-8", ErrMalformedResponse)
	}

	dec := json.NewDecoder(bytes.NewReader(out))
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after JSON document", ErrMalformedResponse)
	}
	return value, nil
}
