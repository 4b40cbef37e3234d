package wizard

import (
	"os"
	"os/exec"
	"path/filepath"
)

// DetectionResult holds what was auto-detected on the system.
type DetectionResult struct {
	DockerAvailable bool
	ComposePlugin   bool   // docker compose v2 plugin present
	ExistingFleet   string // fleet document path if one exists
}

// Detector abstracts filesystem and path lookups for testing.
type Detector interface {
	LookPath(name string) (string, error)
	Stat(path string) (os.FileInfo, error)
}

// OSDetector uses the real OS for detection.
type OSDetector struct{}

func (OSDetector) LookPath(name string) (string, error)  { return exec.LookPath(name) }
func (OSDetector) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }

// composePluginPaths are where docker installs the compose v2 plugin.
var composePluginPaths = []string{
	"/usr/libexec/docker/cli-plugins/docker-compose",
	"/usr/lib/docker/cli-plugins/docker-compose",
	"/usr/local/lib/docker/cli-plugins/docker-compose",
}

// Detect checks for docker and an existing fleet under root.
func Detect(d Detector, root, composeFile string) DetectionResult {
	if d == nil {
		d = OSDetector{}
	}

	result := DetectionResult{}

	if _, err := d.LookPath("docker"); err == nil {
		result.DockerAvailable = true
	}

	candidates := composePluginPaths
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append([]string{filepath.Join(home, ".docker", "cli-plugins", "docker-compose")}, candidates...)
	}
	for _, p := range candidates {
		if _, err := d.Stat(p); err == nil {
			result.ComposePlugin = true
			break
		}
	}

	fleet := filepath.Join(root, composeFile)
	if _, err := d.Stat(fleet); err == nil {
		result.ExistingFleet = fleet
	}

	return result
}
