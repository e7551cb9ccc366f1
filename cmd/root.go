package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/wingstruct/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "wingstruct",
	Short: "Wing Internal Structure Generator",
	Long: `wingstruct - Wing Internal Structure Generator

A CLI tool that builds the internal structure of an aircraft wing
from four picked corner points and a spanwise reference face.

This tool generates:
  - Ribs on a reference plane or evenly spaced along the span
  - Spars from chordwise positions or a reference plane
    (solid, I-beam or box section)
  - Stringers between two points (solid rod or tube)

The wing is lofted from a planform (explicit or preset) and the
structure is cut from an isolated copy of the wing body.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   wingstruct v%-44s║\n", version.Version)
		fmt.Println("  ║   Wing Internal Structure Generator                       ║")
		fmt.Printf("  ║   %s ©  %-39s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Single rib offset from a reference plane")
		fmt.Println("    • Evenly spaced ribs along the span")
		fmt.Println("    • Solid, I-beam and box spars")
		fmt.Println("    • Solid and tubular stringers")
		fmt.Println("    • YAML feature definitions and aircraft presets")
		fmt.Println()
		fmt.Println("  Use 'wingstruct --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every kernel step")
}
