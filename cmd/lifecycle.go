package cmd

import (
	"github.com/leffw/torch-cli/internal/ui"
	"github.com/spf13/cobra"
)

var logsFollow bool

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start all containers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadManager()
		if err != nil {
			return err
		}
		if err := m.Start(cmd.Context()); err != nil {
			return err
		}
		ui.Success("Fleet started.")
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop all containers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadManager()
		if err != nil {
			return err
		}
		if err := m.Stop(cmd.Context()); err != nil {
			return err
		}
		ui.Success("Fleet stopped.")
		return nil
	},
}

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart containers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadManager()
		if err != nil {
			return err
		}
		return m.Restart(cmd.Context())
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs NAME",
	Short: "View logs from a container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadManager()
		if err != nil {
			return err
		}
		return m.Logs(cmd.Context(), args[0], logsFollow)
	},
}

func init() {
	rootCmd.AddCommand(startCmd, stopCmd, restartCmd, logsCmd)
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "keep streaming new output")
}
