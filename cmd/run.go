package cmd

import (
	"github.com/alexiusacademia/wingstruct/internal/definition"
	"github.com/spf13/cobra"
)

var runFile string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a structure from a YAML definition",
	Long: `Generate the structure described by a YAML definition file. The file
names the wing planform (or a preset), the mode and the parameters of
that mode.

Modes: rib-onplane, rib-multi, spar-position, spar-plane, stringer

Example definition:
  name: Main spar
  wing:
    preset: p51-mustang
  mode: spar-position
  spar:
    width: 0.03
    base_pos: 0.25
    tip_pos: 0.25
    section: ibeam
    wall: 0.003

Examples:
  wingstruct run -f examples/main-spar.yaml
  wingstruct run -f examples/ribs.yaml --diagram -o out/ribs.png`,
	Run: runDefinition,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "Path to definition YAML file [required]")
	runCmd.MarkFlagRequired("file")

	// Diagram options
	runCmd.Flags().BoolVar(&showDiagram, "diagram", false, "Show ASCII planform diagram")
	runCmd.Flags().StringVarP(&exportFile, "output", "o", "", "Export planform diagram to file (png, svg, pdf)")
}

func runDefinition(cmd *cobra.Command, args []string) {
	def, err := definition.LoadFromFile(runFile)
	if err != nil {
		printError(err)
		return
	}
	if err := generate(def); err != nil {
		printError(err)
		return
	}
}
