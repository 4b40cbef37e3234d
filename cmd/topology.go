package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:     "mine NBLOCK",
	Aliases: []string{"mining"},
	Short:   "Generate new blocks",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("block count %q is not a number", args[0])
		}
		m, err := loadManager()
		if err != nil {
			return err
		}
		op, err := m.Topology()
		if err != nil {
			return err
		}
		return op.Mine(cmd.Context(), n)
	},
}

var faucetCmd = &cobra.Command{
	Use:   "faucet ADDRESS SATS",
	Short: "Send bitcoin to an address",
	Long:  `Send SATS satoshis from the backend wallet to ADDRESS.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseSats(args[1])
		if err != nil {
			return err
		}
		m, err := loadManager()
		if err != nil {
			return err
		}
		op, err := m.Topology()
		if err != nil {
			return err
		}
		return op.Faucet(cmd.Context(), args[0], amount)
	},
}

var connectCmd = &cobra.Command{
	Use:   "connect FROM TO",
	Short: "Connect two lightning nodes as peers",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadManager()
		if err != nil {
			return err
		}
		op, err := m.Topology()
		if err != nil {
			return err
		}
		return op.Connect(cmd.Context(), args[0], args[1])
	},
}

var openchannelCmd = &cobra.Command{
	Use:   "openchannel FROM TO SATS",
	Short: "Open a channel between two lightning nodes",
	Long: `Open a channel of SATS satoshis from FROM to TO, then mine 3 blocks so
the funding transaction confirms. FROM and TO must already be connected.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseSats(args[2])
		if err != nil {
			return err
		}
		m, err := loadManager()
		if err != nil {
			return err
		}
		op, err := m.Topology()
		if err != nil {
			return err
		}
		return op.OpenChannel(cmd.Context(), args[0], args[1], amount)
	},
}

func init() {
	rootCmd.AddCommand(mineCmd, faucetCmd, connectCmd, openchannelCmd)
}

func parseSats(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not a whole number of satoshis", s)
	}
	return v, nil
}
