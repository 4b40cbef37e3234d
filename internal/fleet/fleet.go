// Package fleet implements the torch commands on top of the registry,
// the port allocator and the docker collaborators. Every call loads the
// fleet document fresh and writes it back whole; nothing is cached.
package fleet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/leffw/torch-cli/internal/allocator"
	"github.com/leffw/torch-cli/internal/builder"
	"github.com/leffw/torch-cli/internal/config"
	"github.com/leffw/torch-cli/internal/docker"
	"github.com/leffw/torch-cli/internal/model"
	"github.com/leffw/torch-cli/internal/registry"
	"github.com/leffw/torch-cli/internal/router"
	"github.com/leffw/torch-cli/internal/topology"
	"github.com/leffw/torch-cli/internal/util"
)

var ErrInvalidName = errors.New("invalid node name")

// Orchestrator reconciles running containers with the fleet document.
type Orchestrator interface {
	Apply(ctx context.Context) error
	StopAll(ctx context.Context) error
	RestartAll(ctx context.Context) error
}

// LogSink streams a container's output to the operator.
type LogSink interface {
	Logs(ctx context.Context, container string, follow bool) error
}

type Manager struct {
	Config       *config.Config
	Store        registry.Store
	Ports        *allocator.Allocator
	Orchestrator Orchestrator
	Executor     router.Executor
	LogSink      LogSink
}

// New wires a manager to the docker CLI.
func New(cfg *config.Config) (*Manager, error) {
	ports, err := allocator.New(cfg.StatePath(), cfg.Ports.Seed)
	if err != nil {
		return nil, err
	}
	client := docker.New(cfg.Docker, cfg.ComposePath())
	return &Manager{
		Config:       cfg,
		Store:        registry.FileStore{Path: cfg.ComposePath()},
		Ports:        ports,
		Orchestrator: client,
		Executor:     client,
		LogSink:      client,
	}, nil
}

func (m *Manager) open() (*registry.Registry, error) {
	return registry.Open(m.Store, m.Config.Backend.Name)
}

// Create adds a lightning node, persists the fleet and applies it.
func (m *Manager) Create(ctx context.Context, name string) (*model.NodeDefinition, error) {
	if err := util.ValidateNodeName(name); err != nil {
		return nil, &registry.NodeError{Node: name, Op: "create", Err: fmt.Errorf("%w: %v", ErrInvalidName, err)}
	}

	reg, err := m.open()
	if err != nil {
		return nil, err
	}
	if _, err := reg.Get(name); err == nil {
		return nil, &registry.NodeError{Node: name, Op: "create", Err: registry.ErrAlreadyExists}
	}

	ports, err := m.Ports.Next(reg.InUsePorts())
	if err != nil {
		return nil, &registry.NodeError{Node: name, Op: "create", Err: err}
	}

	def := builder.Lightning(m.Config, name, ports)
	if err := reg.Insert(def); err != nil {
		return nil, err
	}
	if err := reg.Persist(); err != nil {
		return nil, err
	}

	if err := m.Ports.Commit(ports); err != nil {
		return nil, m.rollback(reg, name, err)
	}
	if err := m.prepareStorage(name); err != nil {
		return nil, m.rollback(reg, name, err)
	}
	log.Debug("node created", "name", name, "ports", ports.Slice())

	if err := m.Orchestrator.Apply(ctx); err != nil {
		return def, err
	}
	return def, nil
}

// rollback takes a half-created node back out of the fleet document.
func (m *Manager) rollback(reg *registry.Registry, name string, cause error) error {
	if _, err := reg.Remove(name); err != nil {
		return errors.Join(cause, err)
	}
	if err := reg.Persist(); err != nil {
		return errors.Join(cause, fmt.Errorf("rolling back %s: %w", name, err))
	}
	return cause
}

// prepareStorage gives a new node an empty storage directory. Anything left
// at the path belonged to a node that is no longer in the fleet.
func (m *Manager) prepareStorage(name string) error {
	dir := m.Config.NodeDataPath(name)
	if _, err := os.Stat(dir); err == nil {
		log.Warn("clearing stale node storage", "name", name, "dir", dir)
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("clearing node storage: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating node storage: %w", err)
	}
	return nil
}

// RemoveResult reports what Remove did beyond the registry change.
type RemoveResult struct {
	Node *model.NodeDefinition
	// StorageErr is set when the node's storage directory could not be
	// deleted. The registry entry is gone regardless.
	StorageErr error
}

// Remove deletes a lightning node from the fleet, stops its container and
// deletes its storage directory. Once the entry is persisted the storage is
// deleted even if apply fails; the result is returned alongside the apply
// error.
func (m *Manager) Remove(ctx context.Context, name string) (*RemoveResult, error) {
	reg, err := m.open()
	if err != nil {
		return nil, err
	}

	def, err := reg.Remove(name)
	if err != nil {
		return nil, err
	}
	if err := reg.Persist(); err != nil {
		return nil, err
	}
	applyErr := m.Orchestrator.Apply(ctx)

	result := &RemoveResult{Node: def}
	if err := os.RemoveAll(m.Config.NodeDataPath(name)); err != nil {
		log.Debug("storage removal failed", "name", name, "err", err)
		result.StorageErr = err
	}
	return result, applyErr
}

// Definition returns a node's full definition.
func (m *Manager) Definition(name string) (*model.NodeDefinition, error) {
	reg, err := m.open()
	if err != nil {
		return nil, err
	}
	return reg.Get(name)
}

// ListNodes returns node names in creation order, backend first.
func (m *Manager) ListNodes() ([]string, error) {
	reg, err := m.open()
	if err != nil {
		return nil, err
	}
	return reg.List(), nil
}

// Start brings every fleet container up.
func (m *Manager) Start(ctx context.Context) error {
	if _, err := m.open(); err != nil {
		return err
	}
	return m.Orchestrator.Apply(ctx)
}

func (m *Manager) Stop(ctx context.Context) error {
	if _, err := m.open(); err != nil {
		return err
	}
	return m.Orchestrator.StopAll(ctx)
}

func (m *Manager) Restart(ctx context.Context) error {
	if _, err := m.open(); err != nil {
		return err
	}
	return m.Orchestrator.RestartAll(ctx)
}

// Logs streams the output of one node.
func (m *Manager) Logs(ctx context.Context, name string, follow bool) error {
	reg, err := m.open()
	if err != nil {
		return err
	}
	def, err := reg.Get(name)
	if err != nil {
		return err
	}
	return m.LogSink.Logs(ctx, def.ContainerName, follow)
}

// Router returns a command router over the current fleet document.
func (m *Manager) Router() (*router.Router, error) {
	reg, err := m.open()
	if err != nil {
		return nil, err
	}
	return router.New(reg, m.Executor, m.Config), nil
}

// Topology returns the topology operator over the current fleet document.
func (m *Manager) Topology() (*topology.Operator, error) {
	r, err := m.Router()
	if err != nil {
		return nil, err
	}
	return topology.New(r, m.Config.Backend.Name), nil
}

// Exec runs a raw command on a node, attached to the terminal.
func (m *Manager) Exec(ctx context.Context, name string, args []string) error {
	r, err := m.Router()
	if err != nil {
		return err
	}
	_, err = r.Dispatch(ctx, name, strings.Join(args, " "), router.Interactive)
	return err
}
