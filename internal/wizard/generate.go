package wizard

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/leffw/torch-cli/internal/config"
)

// WizardAnswers holds all user responses from the wizard.
type WizardAnswers struct {
	Root    string
	Network string

	BackendName    string
	BackendImage   string
	LightningImage string

	// First port triple handed out, as typed by the user.
	ListenPort  string
	ControlPort string
	WebPort     string

	LogLevel string
}

const configTemplate = `# torch configuration

root: {{ .Root }}
network: {{ .Network }}
log_level: {{ .LogLevel }}

backend:
  name: {{ .BackendName }}
  image: {{ .BackendImage }}

lightning:
  image: {{ .LightningImage }}

ports:
  # last issued triple before the first node: listen, control, web
  seed: [{{ index .Seed 0 }}, {{ index .Seed 1 }}, {{ index .Seed 2 }}]
`

// SeedPorts converts the first triple the user asked for into the seed,
// which is one below it in every component.
func SeedPorts(answers WizardAnswers) ([]int, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"listen", answers.ListenPort},
		{"control", answers.ControlPort},
		{"web", answers.WebPort},
	}

	seed := make([]int, 0, 3)
	for _, f := range fields {
		if err := ValidatePort(f.value); err != nil {
			return nil, fmt.Errorf("%s port: %w", f.name, err)
		}
		v, _ := strconv.Atoi(strings.TrimSpace(f.value))
		seed = append(seed, v-1)
	}
	return seed, nil
}

// ValidatePort accepts a port number above 1.
func ValidatePort(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	if v < 2 || v > 65535 {
		return fmt.Errorf("%d is outside 2-65535", v)
	}
	return nil
}

// GenerateConfig renders torch.yml from wizard answers.
func GenerateConfig(answers WizardAnswers) (string, error) {
	// Set defaults
	if answers.Root == "" {
		answers.Root = "~/.torch"
	}
	if answers.Network == "" {
		answers.Network = "torch"
	}
	if answers.LogLevel == "" {
		answers.LogLevel = "info"
	}
	defaults := config.Default()
	if answers.BackendName == "" {
		answers.BackendName = defaults.Backend.Name
	}
	if answers.BackendImage == "" {
		answers.BackendImage = defaults.Backend.Image
	}
	if answers.LightningImage == "" {
		answers.LightningImage = defaults.Lightning.Image
	}
	if answers.ListenPort == "" {
		answers.ListenPort = "9735"
	}
	if answers.ControlPort == "" {
		answers.ControlPort = "10009"
	}
	if answers.WebPort == "" {
		answers.WebPort = "8080"
	}

	seed, err := SeedPorts(answers)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		WizardAnswers
		Seed []int
	}{answers, seed}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
