package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leffw/torch-cli/internal/config"
	"github.com/leffw/torch-cli/internal/fleet"
	"github.com/leffw/torch-cli/internal/registry"
	"github.com/leffw/torch-cli/internal/ui"
	"github.com/leffw/torch-cli/internal/wizard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var initDefaults bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the fleet root with a bitcoind backend",
	Long: `Write torch.yml through an interactive wizard, then lay out the fleet
root: the fleet document with the backend node, its bitcoin.conf and the
data directory. An existing fleet document is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initDefaults, "defaults", false, "skip the wizard and use the current configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !initDefaults {
		cfg, err = runWizard(cfg)
		if err != nil {
			return err
		}
	}

	m, err := fleet.New(cfg)
	if err != nil {
		return err
	}
	created, err := m.Init()
	if err != nil {
		return fmt.Errorf("initializing fleet: %w", err)
	}
	if !created {
		ui.Warn(fmt.Sprintf("%s already exists, keeping it", cfg.ComposePath()))
	} else {
		ui.Success(fmt.Sprintf("Created %s", cfg.ComposePath()))
	}

	fmt.Println()
	fmt.Printf("Next step: %s\n", ui.Bold("torch start"))
	fmt.Printf("           %s\n", ui.Hint("then 'torch create alice' to add a lightning node"))
	return nil
}

// runWizard asks for the configuration, writes torch.yml and returns the
// configuration as reloaded from it.
func runWizard(cfg *config.Config) (*config.Config, error) {
	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		configPath = filepath.Join(defaultConfigDir(), "torch.yml")
	}

	if _, err := os.Stat(configPath); err == nil {
		ok, err := wizard.Confirm(fmt.Sprintf("%s already exists", configPath), "Overwrite it?")
		if err != nil {
			return nil, err
		}
		if !ok {
			return cfg, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	fmt.Println(ui.Bold("Scanning environment..."))
	detection := wizard.Detect(nil, cfg.Root, cfg.ComposeFile)
	if !detection.DockerAvailable {
		ui.Warn("docker not found in PATH; torch needs it to run nodes")
	}

	answers, err := wizard.Run(detection, cfg)
	if err != nil {
		return nil, fmt.Errorf("wizard: %w", err)
	}

	content, err := wizard.GenerateConfig(*answers)
	if err != nil {
		return nil, fmt.Errorf("generating config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	if err := registry.WriteFileAtomic(configPath, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	ui.Success(fmt.Sprintf("Created %s", configPath))

	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", configPath, err)
	}
	return loadConfig()
}
