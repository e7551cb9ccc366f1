package cmd

import (
	"fmt"

	"github.com/alexiusacademia/wingstruct/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of wingstruct",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wingstruct %s\n", version.String())
		fmt.Println("Wing Internal Structure Generator")
		fmt.Println("Ribs, spars and stringers cut from a lofted wing body")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
