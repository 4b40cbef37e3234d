package model

import (
	"fmt"
	"strconv"
	"strings"
)

// PortMapping is one published port of a fleet service. torch only
// publishes tcp on every interface, so a binding is just the two numbers.
type PortMapping struct {
	HostPort      int
	ContainerPort int
}

// String renders the binding as "host:container".
func (p PortMapping) String() string {
	return fmt.Sprintf("%d:%d", p.HostPort, p.ContainerPort)
}

// ParsePortMapping reads a binding from the fleet document. A bare port
// binds the same number on both sides. Hand-edited bindings may carry an
// address prefix or a protocol suffix; only the numbers are kept.
func ParsePortMapping(raw string) (PortMapping, error) {
	s, _, _ := strings.Cut(raw, "/")
	parts := strings.Split(s, ":")
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}

	host, err := strconv.Atoi(parts[0])
	if err != nil {
		return PortMapping{}, fmt.Errorf("port binding %q: %w", raw, err)
	}
	container := host
	if len(parts) == 2 {
		if container, err = strconv.Atoi(parts[1]); err != nil {
			return PortMapping{}, fmt.Errorf("port binding %q: %w", raw, err)
		}
	}
	return PortMapping{HostPort: host, ContainerPort: container}, nil
}

// Ports is the triple of host ports assigned to a lightning node.
type Ports struct {
	Listen  int `json:"listen"`
	Control int `json:"control"`
	Web     int `json:"web"`
}

// PortsFromSlice builds a triple from its [listen, control, web] form.
func PortsFromSlice(s []int) (Ports, error) {
	if len(s) != 3 {
		return Ports{}, fmt.Errorf("port triple needs 3 values, got %d", len(s))
	}
	p := Ports{Listen: s[0], Control: s[1], Web: s[2]}
	for _, v := range s {
		if v <= 0 || v > MaxPort {
			return Ports{}, fmt.Errorf("port %d out of range", v)
		}
	}
	return p, nil
}

// MaxPort is the highest valid TCP port.
const MaxPort = 65535

// Slice returns the triple as [listen, control, web].
func (p Ports) Slice() []int {
	return []int{p.Listen, p.Control, p.Web}
}

// Next advances every component by one.
func (p Ports) Next() Ports {
	return Ports{Listen: p.Listen + 1, Control: p.Control + 1, Web: p.Web + 1}
}

// After reports whether p is strictly greater than q in every component.
func (p Ports) After(q Ports) bool {
	return p.Listen > q.Listen && p.Control > q.Control && p.Web > q.Web
}

// Mappings returns the 1:1 host/container bindings for the triple.
func (p Ports) Mappings() []PortMapping {
	out := make([]PortMapping, 0, 3)
	for _, v := range p.Slice() {
		out = append(out, PortMapping{HostPort: v, ContainerPort: v})
	}
	return out
}
