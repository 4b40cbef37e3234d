package registry

import (
	"fmt"

	"github.com/leffw/torch-cli/internal/model"
)

// Registry is the loaded fleet plus the rules for changing it. It holds no
// state between invocations: Open reads the document fresh and Persist
// writes it back whole.
type Registry struct {
	store   Store
	backend string
	fleet   *model.Fleet
}

// Open loads the fleet from store. backend is the reserved name of the
// chain node, which must be present.
func Open(store Store, backend string) (*Registry, error) {
	fleet, err := store.Load()
	if err != nil {
		return nil, err
	}
	if _, ok := fleet.Get(backend); !ok {
		return nil, fmt.Errorf("fleet document has no %s node", backend)
	}

	r := &Registry{store: store, backend: backend, fleet: fleet}
	for _, def := range fleet.Definitions() {
		def.Kind = r.KindOf(def.Name)
	}
	return r, nil
}

// Backend is the reserved backend node name.
func (r *Registry) Backend() string {
	return r.backend
}

// KindOf classifies a node name.
func (r *Registry) KindOf(name string) model.Kind {
	if name == r.backend {
		return model.KindBackend
	}
	return model.KindLightningPeer
}

func (r *Registry) Get(name string) (*model.NodeDefinition, error) {
	def, ok := r.fleet.Get(name)
	if !ok {
		return nil, &NodeError{Node: name, Op: "get", Err: ErrNotFound}
	}
	return def, nil
}

// List returns node names in insertion order.
func (r *Registry) List() []string {
	return r.fleet.Names()
}

func (r *Registry) Insert(def *model.NodeDefinition) error {
	def.Kind = r.KindOf(def.Name)
	if !r.fleet.Add(def) {
		return &NodeError{Node: def.Name, Op: "insert", Err: ErrAlreadyExists}
	}
	return nil
}

// Remove deletes an entry and returns it. The backend node cannot be removed.
func (r *Registry) Remove(name string) (*model.NodeDefinition, error) {
	def, ok := r.fleet.Get(name)
	if !ok {
		return nil, &NodeError{Node: name, Op: "remove", Err: ErrNotFound}
	}
	if def.Kind == model.KindBackend {
		return nil, &NodeError{Node: name, Op: "remove", Err: ErrProtected}
	}
	r.fleet.Delete(name)
	return def, nil
}

// InUsePorts is every host port bound by a fleet member.
func (r *Registry) InUsePorts() map[int]bool {
	used := make(map[int]bool)
	for _, def := range r.fleet.Definitions() {
		for _, pm := range def.PortMappings() {
			if pm.HostPort > 0 {
				used[pm.HostPort] = true
			}
		}
	}
	return used
}

// Fleet exposes the loaded document for the orchestrator.
func (r *Registry) Fleet() *model.Fleet {
	return r.fleet
}

func (r *Registry) Persist() error {
	return r.store.Persist(r.fleet)
}
