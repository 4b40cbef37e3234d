package wizard

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// mockDetector implements Detector for testing.
type mockDetector struct {
	binaries map[string]bool
	files    map[string]bool
}

func (m *mockDetector) LookPath(name string) (string, error) {
	if m.binaries[name] {
		return "/usr/bin/" + name, nil
	}
	return "", &os.PathError{Op: "lookpath", Path: name, Err: os.ErrNotExist}
}

type fakeFileInfo struct {
	name string
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() os.FileMode  { return 0644 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() interface{}   { return nil }

func (m *mockDetector) Stat(path string) (os.FileInfo, error) {
	if m.files[path] {
		return fakeFileInfo{name: path}, nil
	}
	return nil, os.ErrNotExist
}

func TestDetectDocker(t *testing.T) {
	d := &mockDetector{
		binaries: map[string]bool{"docker": true},
		files:    map[string]bool{"/usr/libexec/docker/cli-plugins/docker-compose": true},
	}
	result := Detect(d, "/srv/torch", "docker-compose.yaml")
	assert.True(t, result.DockerAvailable)
	assert.True(t, result.ComposePlugin)
	assert.Empty(t, result.ExistingFleet)
}

func TestDetectExistingFleet(t *testing.T) {
	d := &mockDetector{
		files: map[string]bool{"/srv/torch/docker-compose.yaml": true},
	}
	result := Detect(d, "/srv/torch", "docker-compose.yaml")
	assert.Equal(t, "/srv/torch/docker-compose.yaml", result.ExistingFleet)
}

func TestDetectNothing(t *testing.T) {
	d := &mockDetector{}
	result := Detect(d, "/srv/torch", "docker-compose.yaml")
	assert.False(t, result.DockerAvailable)
	assert.False(t, result.ComposePlugin)
	assert.Empty(t, result.ExistingFleet)
}
