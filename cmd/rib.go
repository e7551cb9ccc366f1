package cmd

import (
	"github.com/spf13/cobra"
)

var ribCmd = &cobra.Command{
	Use:   "rib",
	Short: "Generate wing ribs",
	Long: `Generate ribs inside the wing body.

Subcommands:
  onplane  - One rib offset from a spanwise reference face
  multi    - Evenly spaced ribs between the root and the tip

The wing is lofted from --preset or the explicit planform flags.`,
}

func init() {
	rootCmd.AddCommand(ribCmd)
	addWingFlags(ribCmd)
}
