package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/wingstruct/internal/definition"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var presetsYAML string

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List aircraft wing presets",
	Long: `List the built-in wing planforms usable with --preset or the
"preset" key of a definition file.

With --yaml, print a starter definition for the named preset.

Examples:
  wingstruct presets
  wingstruct presets --yaml j22-orao > j22.yaml`,
	Run: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.Flags().StringVar(&presetsYAML, "yaml", "", "Print a starter definition for this preset")
}

func runPresets(cmd *cobra.Command, args []string) {
	if presetsYAML != "" {
		if _, ok := definition.LookupPreset(presetsYAML); !ok {
			printError(fmt.Errorf("unknown preset %q", presetsYAML))
			return
		}
		def := definition.Definition{
			Name: presetsYAML + " ribs",
			Wing: definition.Planform{Preset: presetsYAML},
			Mode: definition.ModeRibMulti,
		}
		if err := def.Complete(); err != nil {
			printError(err)
			return
		}
		out, err := yaml.Marshal(&def)
		if err != nil {
			printError(err)
			return
		}
		fmt.Print(string(out))
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     WING PRESETS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Key\tAircraft\tHalf span (m)\tRoot (m)\tTip (m)\tSweep (°)\n")
	fmt.Fprintf(w, "  ───\t────────\t─────────────\t────────\t───────\t─────────\n")
	for _, name := range definition.PresetNames() {
		p, _ := definition.LookupPreset(name)
		fmt.Fprintf(w, "  %s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\n", name, p.Aircraft, p.Span, p.RootChord, p.TipChord, p.SweepDeg)
	}
	w.Flush()
	fmt.Println()
}
