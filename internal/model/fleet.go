package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Fleet is the compose document: node definitions keyed by name, kept in
// insertion order.
type Fleet struct {
	Project  string
	names    []string
	services map[string]*NodeDefinition
}

// NewFleet creates an empty fleet for a compose project.
func NewFleet(project string) *Fleet {
	return &Fleet{
		Project:  project,
		services: make(map[string]*NodeDefinition),
	}
}

// Names returns the node names in insertion order.
func (f *Fleet) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

func (f *Fleet) Len() int {
	return len(f.names)
}

func (f *Fleet) Get(name string) (*NodeDefinition, bool) {
	def, ok := f.services[name]
	return def, ok
}

// Add appends a definition. It returns false if the name is taken.
func (f *Fleet) Add(def *NodeDefinition) bool {
	if f.services == nil {
		f.services = make(map[string]*NodeDefinition)
	}
	if _, exists := f.services[def.Name]; exists {
		return false
	}
	f.names = append(f.names, def.Name)
	f.services[def.Name] = def
	return true
}

// Delete removes a definition. It returns false if the name is absent.
func (f *Fleet) Delete(name string) bool {
	if _, exists := f.services[name]; !exists {
		return false
	}
	delete(f.services, name)
	for i, n := range f.names {
		if n == name {
			f.names = append(f.names[:i], f.names[i+1:]...)
			break
		}
	}
	return true
}

// Definitions returns every definition in insertion order.
func (f *Fleet) Definitions() []*NodeDefinition {
	out := make([]*NodeDefinition, 0, len(f.names))
	for _, n := range f.names {
		out = append(out, f.services[n])
	}
	return out
}

func (f *Fleet) MarshalYAML() (interface{}, error) {
	services := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range f.names {
		var def yaml.Node
		if err := def.Encode(f.services[name]); err != nil {
			return nil, fmt.Errorf("encoding service %s: %w", name, err)
		}
		services.Content = append(services.Content, strNode(name), &def)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	if f.Project != "" {
		root.Content = append(root.Content, strNode("name"), strNode(f.Project))
	}
	root.Content = append(root.Content, strNode("services"), services)
	return root, nil
}

func (f *Fleet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.DocumentNode && len(value.Content) > 0 {
		value = value.Content[0]
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fleet document must be a mapping", value.Line)
	}

	*f = Fleet{services: make(map[string]*NodeDefinition)}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "name":
			if err := val.Decode(&f.Project); err != nil {
				return err
			}
		case "services":
			if val.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: services must be a mapping", val.Line)
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				name := val.Content[j].Value
				def := &NodeDefinition{}
				if err := val.Content[j+1].Decode(def); err != nil {
					return fmt.Errorf("service %s: %w", name, err)
				}
				def.Name = name
				if !f.Add(def) {
					return fmt.Errorf("line %d: duplicate service %s", val.Content[j].Line, name)
				}
			}
		}
	}
	return nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
