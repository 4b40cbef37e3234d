package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNodeName(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"alice", true},
		{"bob-2", true},
		{"carol_lnd", true},
		{"", false},
		{"-alice", false},
		{"ali ce", false},
		{"alice.bob", false},
		{"../etc", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateNodeName(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, ".torch"), ExpandPath("~/.torch"))
	assert.Equal(t, "/srv/torch", ExpandPath("/srv/torch"))
	assert.Equal(t, "~other/x", ExpandPath("~other/x"))
}
