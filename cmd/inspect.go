package cmd

import (
	"github.com/leffw/torch-cli/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config NAME",
	Short: "Show a node's container definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadManager()
		if err != nil {
			return err
		}
		def, err := m.Definition(args[0])
		if err != nil {
			return err
		}
		return ui.PrintJSON(cmd.OutOrStdout(), def)
	},
}

var listnodesCmd = &cobra.Command{
	Use:   "listnodes",
	Short: "List names of all nodes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadManager()
		if err != nil {
			return err
		}
		names, err := m.ListNodes()
		if err != nil {
			return err
		}
		return ui.PrintJSON(cmd.OutOrStdout(), map[string][]string{"nodes": names})
	},
}

func init() {
	rootCmd.AddCommand(configCmd, listnodesCmd)
}
