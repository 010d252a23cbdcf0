package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MOYARU/mas/internal/app/reportctx"
	"github.com/MOYARU/mas/internal/app/ui"
	msges "github.com/MOYARU/mas/internal/messages"
)

var compareCmd = &cobra.Command{
	Use:   "compare <hash1> <hash2>",
	Short: "Validate that two scan results can be compared",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := reportctx.ValidateCompare(args[0], args[1]); err != nil {
			fmt.Printf("%s%s%s\n", ui.Color(ui.ColorRed), msges.GetUIMessage("CompareRejected", err), ui.Color(ui.ColorReset))
			return err
		}
		fmt.Printf("%s%s%s\n", ui.Color(ui.ColorGreen), msges.GetUIMessage("CompareValidated", args[0], args[1]), ui.Color(ui.ColorReset))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
