package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePortMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected PortMapping
	}{
		{"8080", PortMapping{HostPort: 8080, ContainerPort: 8080}},
		{"10009:10009", PortMapping{HostPort: 10009, ContainerPort: 10009}},
		{"127.0.0.1:8080:80", PortMapping{HostPort: 8080, ContainerPort: 80}},
		{"8080:80/tcp", PortMapping{HostPort: 8080, ContainerPort: 80}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePortMapping(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParsePortMappingRejectsNames(t *testing.T) {
	for _, input := range []string{"", "rpc", "9735:rpc", "${PORT}:9735"} {
		_, err := ParsePortMapping(input)
		assert.Error(t, err, input)
	}
}

func TestPortMappingString(t *testing.T) {
	pm := PortMapping{HostPort: 9735, ContainerPort: 9735}
	assert.Equal(t, "9735:9735", pm.String())

	back, err := ParsePortMapping(pm.String())
	require.NoError(t, err)
	assert.Equal(t, pm, back)
}

func TestPortMappingsSkipUnparsable(t *testing.T) {
	def := &NodeDefinition{Name: "odd", Ports: []string{"9735:9735", "rpc", "8080"}}
	assert.Equal(t, []PortMapping{
		{HostPort: 9735, ContainerPort: 9735},
		{HostPort: 8080, ContainerPort: 8080},
	}, def.PortMappings())
}

func TestPortsFromSlice(t *testing.T) {
	p, err := PortsFromSlice([]int{9735, 10009, 8080})
	require.NoError(t, err)
	assert.Equal(t, Ports{Listen: 9735, Control: 10009, Web: 8080}, p)
	assert.Equal(t, []int{9735, 10009, 8080}, p.Slice())

	_, err = PortsFromSlice([]int{1, 2})
	assert.Error(t, err)

	_, err = PortsFromSlice([]int{0, 2, 3})
	assert.Error(t, err)

	_, err = PortsFromSlice([]int{1, 2, 70000})
	assert.Error(t, err)
}

func TestPortsNextAfter(t *testing.T) {
	p := Ports{Listen: 9735, Control: 10009, Web: 8080}
	next := p.Next()

	assert.Equal(t, Ports{Listen: 9736, Control: 10010, Web: 8081}, next)
	assert.True(t, next.After(p))
	assert.False(t, p.After(next))
	assert.False(t, p.After(p))
	assert.False(t, Ports{Listen: 9736, Control: 10009, Web: 8081}.After(p))
}

func TestPortsMappings(t *testing.T) {
	got := Ports{Listen: 9735, Control: 10009, Web: 8080}.Mappings()
	require.Len(t, got, 3)
	assert.Equal(t, "9735:9735", got[0].String())
	assert.Equal(t, "10009:10009", got[1].String())
	assert.Equal(t, "8080:8080", got[2].String())
}
