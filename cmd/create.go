package cmd

import (
	"fmt"
	"os"

	"github.com/leffw/torch-cli/internal/ui"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new lnd node",
	Long: `Add an lnd node to the fleet with the next free port triple
(listen, control, web), persist the fleet document and bring it up.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	m, err := loadManager()
	if err != nil {
		return err
	}

	def, err := m.Create(cmd.Context(), args[0])
	if def != nil {
		if perr := ui.PrintJSON(cmd.OutOrStdout(), def); perr != nil {
			return perr
		}
	}
	if err != nil {
		return err
	}

	ports, _ := def.AssignedPorts()
	fmt.Fprintln(os.Stderr, ui.Hint(fmt.Sprintf("listen %d, control %d, web %d", ports.Listen, ports.Control, ports.Web)))
	return nil
}
