// Package allocator hands out host port triples for new lightning nodes.
//
// The last issued triple is kept in a small JSON document,
// {"ports": [listen, control, web]}. Every allocation advances all three
// counters, so each node's ports are strictly greater than those of every
// node created before it.
package allocator

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/leffw/torch-cli/internal/model"
	"github.com/leffw/torch-cli/internal/registry"
	"github.com/tidwall/jsonc"
)

// ErrPortExhausted is returned when a counter would pass the last TCP port.
var ErrPortExhausted = errors.New("port range exhausted")

type state struct {
	Ports []int `json:"ports"`
}

// Allocator reads and advances the persisted port counters.
type Allocator struct {
	Path string
	Seed model.Ports
}

// New creates an allocator backed by the state document at path. seed is
// the triple treated as last issued when the document does not exist yet.
func New(path string, seed []int) (*Allocator, error) {
	p, err := model.PortsFromSlice(seed)
	if err != nil {
		return nil, fmt.Errorf("seed ports: %w", err)
	}
	return &Allocator{Path: path, Seed: p}, nil
}

// Last returns the most recently issued triple, or the seed if nothing has
// been issued. A present but unreadable document is an error.
func (a *Allocator) Last() (model.Ports, error) {
	data, err := os.ReadFile(a.Path)
	if errors.Is(err, os.ErrNotExist) {
		return a.Seed, nil
	}
	if err != nil {
		return model.Ports{}, fmt.Errorf("reading port state: %w", err)
	}

	var s state
	if err := json.Unmarshal(jsonc.ToJSON(data), &s); err != nil {
		return model.Ports{}, fmt.Errorf("parsing port state %s: %w", a.Path, err)
	}
	p, err := model.PortsFromSlice(s.Ports)
	if err != nil {
		return model.Ports{}, fmt.Errorf("port state %s: %w", a.Path, err)
	}
	return p, nil
}

// Next computes the triple the next node should receive without recording
// it. Each counter moves up by one; if any resulting port is already bound
// in the fleet the whole triple keeps moving until none is.
func (a *Allocator) Next(inUse map[int]bool) (model.Ports, error) {
	last, err := a.Last()
	if err != nil {
		return model.Ports{}, err
	}

	for next := last.Next(); ; next = next.Next() {
		if exhausted(next) {
			return model.Ports{}, ErrPortExhausted
		}
		if !collides(next, inUse) {
			return next, nil
		}
	}
}

// Commit records p as the last issued triple.
func (a *Allocator) Commit(p model.Ports) error {
	data, err := json.Marshal(state{Ports: p.Slice()})
	if err != nil {
		return fmt.Errorf("marshaling port state: %w", err)
	}
	return registry.WriteFileAtomic(a.Path, append(data, '\n'), 0644)
}

func exhausted(p model.Ports) bool {
	for _, v := range p.Slice() {
		if v > model.MaxPort {
			return true
		}
	}
	return false
}

func collides(p model.Ports, inUse map[int]bool) bool {
	seen := make(map[int]bool, 3)
	for _, v := range p.Slice() {
		if inUse[v] || seen[v] {
			return true
		}
		seen[v] = true
	}
	return false
}
