package cmd

import (
	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec NAME COMMAND...",
	Short: "Execute a command in a node",
	Long: `Run a bitcoin-cli (backend) or lncli (lightning node) command inside the
node's container, attached to this terminal. Flags after NAME are passed
through to the node CLI.

  torch exec bitcoin getblockchaininfo
  torch exec alice newaddress p2wkh`,
	DisableFlagParsing: true,
	RunE:               runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		return cmd.Help()
	}
	// flag parsing is off, so arity is checked here
	if err := cobra.MinimumNArgs(2)(cmd, args); err != nil {
		return err
	}

	m, err := loadManager()
	if err != nil {
		return err
	}
	return m.Exec(cmd.Context(), args[0], args[1:])
}
