package cmd

import (
	"fmt"
	"os"

	"github.com/leffw/torch-cli/internal/ui"
	"github.com/leffw/torch-cli/internal/wizard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var removeYes bool

var removeCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a node and delete its data",
	Long: `Remove an lnd node from the fleet, stop its container and delete its
data directory. The backend node cannot be removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "do not ask for confirmation")
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	m, err := loadManager()
	if err != nil {
		return err
	}

	if _, err := m.Definition(name); err != nil {
		return err
	}

	if !removeYes && name != m.Config.Backend.Name && term.IsTerminal(int(os.Stdin.Fd())) {
		ok, err := wizard.Confirm(
			fmt.Sprintf("Remove node %s?", name),
			fmt.Sprintf("This deletes %s", m.Config.NodeDataPath(name)),
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	res, err := m.Remove(cmd.Context(), name)
	if res != nil && res.StorageErr != nil {
		ui.Warn(fmt.Sprintf("could not delete %s: %v", m.Config.NodeDataPath(name), res.StorageErr))
	}
	if err != nil {
		return err
	}

	ui.Success(fmt.Sprintf("Node %s removed.", name))
	return nil
}
