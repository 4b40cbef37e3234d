package model

import (
	"fmt"
	"strings"
)

// Kind classifies a fleet member. It is derived from the node name and
// never persisted.
type Kind int

const (
	KindLightningPeer Kind = iota
	KindBackend
)

func (k Kind) String() string {
	if k == KindBackend {
		return "backend"
	}
	return "lightning"
}

// RestartAlways is applied to every fleet member.
const RestartAlways = "always"

// NodeDefinition is one compose service of the fleet document.
type NodeDefinition struct {
	Name          string   `yaml:"-" json:"-"`
	Kind          Kind     `yaml:"-" json:"-"`
	Image         string   `yaml:"image" json:"image"`
	ContainerName string   `yaml:"container_name" json:"container_name"`
	Command       []string `yaml:"command,omitempty" json:"command,omitempty"`
	Ports         []string `yaml:"ports,omitempty" json:"ports,omitempty"`
	Volumes       []string `yaml:"volumes,omitempty" json:"volumes,omitempty"`
	DependsOn     []string `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`
	Restart       string   `yaml:"restart,omitempty" json:"restart,omitempty"`
}

// PortMappings parses the compose port bindings, skipping any that are
// not numeric.
func (d *NodeDefinition) PortMappings() []PortMapping {
	out := make([]PortMapping, 0, len(d.Ports))
	for _, p := range d.Ports {
		pm, err := ParsePortMapping(p)
		if err != nil {
			continue
		}
		out = append(out, pm)
	}
	return out
}

// AssignedPorts returns the lightning port triple from the first three
// bindings.
func (d *NodeDefinition) AssignedPorts() (Ports, error) {
	pm := d.PortMappings()
	if len(pm) < 3 {
		return Ports{}, fmt.Errorf("node %s has %d port bindings, want 3", d.Name, len(pm))
	}
	return PortsFromSlice([]int{pm[0].HostPort, pm[1].HostPort, pm[2].HostPort})
}

// ControlPort is the host side of the second binding, where the node's
// control RPC listens.
func (d *NodeDefinition) ControlPort() (int, error) {
	pm := d.PortMappings()
	if len(pm) < 2 || pm[1].HostPort == 0 {
		return 0, fmt.Errorf("node %s has no control port binding", d.Name)
	}
	return pm[1].HostPort, nil
}

// StoragePath is the host side of the first volume.
func (d *NodeDefinition) StoragePath() string {
	if len(d.Volumes) == 0 {
		return ""
	}
	return strings.SplitN(d.Volumes[0], ":", 2)[0]
}
