package cmd

import (
	"github.com/alexiusacademia/wingstruct/internal/definition"
	"github.com/spf13/cobra"
)

var (
	sparStation float64
	sparFlip    bool
)

var sparPlaneCmd = &cobra.Command{
	Use:   "plane",
	Short: "Generate a spar from a reference face",
	Long: `Generate a spar of --width starting at a chordwise reference face.
The face runs through --station of the root and tip chords; the spar
extends aft of it, or forward with --flip.

Examples:
  wingstruct spar plane -p j22-orao --station 0.6
  wingstruct spar plane -p j22-orao --station 0.6 --flip -s ibeam --wall 0.002`,
	Run: runSparPlane,
}

func init() {
	sparCmd.AddCommand(sparPlaneCmd)

	sparPlaneCmd.Flags().Float64Var(&sparStation, "station", 0.25, "Reference face position as a fraction of chord")
	sparPlaneCmd.Flags().BoolVar(&sparFlip, "flip", false, "Build the spar on the other side of the reference face")
}

func runSparPlane(cmd *cobra.Command, args []string) {
	s := sparFromFlags()
	s.Station = sparStation
	s.Flip = sparFlip

	def := &definition.Definition{
		Name: "spar by plane",
		Wing: planformFromFlags(),
		Mode: definition.ModeSparPlane,
		Spar: s,
	}
	if err := generate(def); err != nil {
		printError(err)
		return
	}
}
