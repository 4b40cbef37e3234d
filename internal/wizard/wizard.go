package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/leffw/torch-cli/internal/config"
	"github.com/leffw/torch-cli/internal/util"
)

// Run executes the interactive wizard and returns the user's answers,
// pre-filled from cfg.
func Run(detection DetectionResult, cfg *config.Config) (*WizardAnswers, error) {
	answers := &WizardAnswers{
		Root:           cfg.Root,
		Network:        cfg.Network,
		BackendName:    cfg.Backend.Name,
		BackendImage:   cfg.Backend.Image,
		LightningImage: cfg.Lightning.Image,
		LogLevel:       cfg.LogLevel,
	}
	if len(cfg.Ports.Seed) == 3 {
		answers.ListenPort = strconv.Itoa(cfg.Ports.Seed[0] + 1)
		answers.ControlPort = strconv.Itoa(cfg.Ports.Seed[1] + 1)
		answers.WebPort = strconv.Itoa(cfg.Ports.Seed[2] + 1)
	}

	// Build detection summary
	var hints []string
	if detection.DockerAvailable {
		hints = append(hints, "docker found")
	} else {
		hints = append(hints, "docker NOT found in PATH")
	}
	if detection.DockerAvailable && !detection.ComposePlugin {
		hints = append(hints, "docker compose plugin not found")
	}
	if detection.ExistingFleet != "" {
		hints = append(hints, fmt.Sprintf("existing fleet: %s (left untouched)", detection.ExistingFleet))
	}

	desc := "Where torch keeps the fleet document and node data."
	if len(hints) > 0 {
		desc += "\n\nDetected:\n  " + strings.Join(hints, "\n  ")
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Fleet root").
				Description(desc).
				Value(&answers.Root),
			huh.NewInput().
				Title("Network name").
				Description("Containers are named <network>.<node>").
				Validate(util.ValidateNodeName).
				Value(&answers.Network),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Backend node name").
				Validate(util.ValidateNodeName).
				Value(&answers.BackendName),
			huh.NewInput().
				Title("bitcoind image").
				Value(&answers.BackendImage),
			huh.NewInput().
				Title("lnd image").
				Value(&answers.LightningImage),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("First listen port").
				Description("Peer-to-peer port of the first lightning node").
				Validate(ValidatePort).
				Value(&answers.ListenPort),
			huh.NewInput().
				Title("First control port").
				Description("gRPC port used by lncli").
				Validate(ValidatePort).
				Value(&answers.ControlPort),
			huh.NewInput().
				Title("First web port").
				Description("REST port").
				Validate(ValidatePort).
				Value(&answers.WebPort),
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("Info", "info"),
					huh.NewOption("Debug: print every docker invocation", "debug"),
					huh.NewOption("Warn", "warn"),
				).
				Value(&answers.LogLevel),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	return answers, nil
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}
