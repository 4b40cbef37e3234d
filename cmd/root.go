package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/leffw/torch-cli/internal/config"
	"github.com/leffw/torch-cli/internal/fleet"
	"github.com/leffw/torch-cli/internal/ui"
	"github.com/leffw/torch-cli/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "torch",
	Short: "Bitcoin & Lightning container manager for regtest development",
	Long: `torch manages a local fleet of lnd nodes backed by a single bitcoind
running on regtest. Nodes are docker compose services kept in one fleet
document under the fleet root (default ~/.torch).

Start with 'torch init', then 'torch create alice'.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		title, hint := describe(err)
		fmt.Fprint(os.Stderr, ui.FormatError(title, err.Error(), hint))
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./torch.yml or ~/.torch/torch.yml)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "fleet root directory (default: ~/.torch)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every docker invocation")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("torch")
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(defaultConfigDir())
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".torch")
}

// loadConfig reads the effective configuration and sets up logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	applyFlagOverrides(cfg)
	if err := ui.SetupLogger(cfg.LogLevel, verbose); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if rootDir != "" {
		cfg.Root = util.ExpandPath(rootDir)
	}
}

func loadManager() (*fleet.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return fleet.New(cfg)
}
