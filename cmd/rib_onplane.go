package cmd

import (
	"github.com/alexiusacademia/wingstruct/internal/definition"
	"github.com/alexiusacademia/wingstruct/internal/limits"
	"github.com/spf13/cobra"
)

var (
	onPlaneWidth   float64
	onPlaneOffset  float64
	onPlaneStation float64
	onPlaneFlip    bool
)

var ribOnPlaneCmd = &cobra.Command{
	Use:   "onplane",
	Short: "Generate one rib offset from a reference face",
	Long: `Generate a single rib of the given width. The rib starts --offset
away from a spanwise reference face placed at --station (fraction of the
half span) and extends away from it; --flip reverses the direction.

Examples:
  # 25 mm rib at mid span of a P-51 wing
  wingstruct rib onplane --preset p51-mustang --width 0.025

  # Rib 100 mm inboard of the 80% station
  wingstruct rib onplane -p p51-mustang --station 0.8 --offset 0.1 --flip`,
	Run: runRibOnPlane,
}

func init() {
	ribCmd.AddCommand(ribOnPlaneCmd)

	ribOnPlaneCmd.Flags().Float64VarP(&onPlaneWidth, "width", "w", limits.LengthDefault, "Rib width (m)")
	ribOnPlaneCmd.Flags().Float64Var(&onPlaneOffset, "offset", limits.OffsetDefault, "Offset from the reference face (m)")
	ribOnPlaneCmd.Flags().Float64Var(&onPlaneStation, "station", 0.5, "Reference face position as a fraction of span")
	ribOnPlaneCmd.Flags().BoolVar(&onPlaneFlip, "flip", false, "Build the rib on the other side of the reference face")
}

func runRibOnPlane(cmd *cobra.Command, args []string) {
	def := &definition.Definition{
		Name: "rib on plane",
		Wing: planformFromFlags(),
		Mode: definition.ModeRibOnPlane,
		Rib: &definition.RibDef{
			Width:   onPlaneWidth,
			Offset:  onPlaneOffset,
			Station: onPlaneStation,
			Flip:    onPlaneFlip,
		},
	}
	if err := generate(def); err != nil {
		printError(err)
		return
	}
}
