package cmd

import (
	"github.com/quantfold/keydriver/core"
	"github.com/quantfold/keydriver/internal/contract"
	"github.com/spf13/cobra"
)

// methodsCmd displays the formal definitions of all importance methods.
var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "Display definitions and caveats for all importance methods",
	Long: `Show the formal definitions and statistical basis of the importance methods.

Provides complete transparency into how drivers are ranked, including:
- What each method measures
- Its statistical basis
- Known caveats and limits

No data loading is performed - this is purely informational.

Use this to:
- Understand why the methods can disagree
- Explain the methodology to your team
- Document reporting conventions

Examples:
  # Show method definitions
  keydriver methods

  # Machine-readable definitions
  keydriver methods --output json`,
	PreRunE: lightSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMethods(cfg); err != nil {
			contract.LogFatal("Cannot display methods", err)
		}
	},
}
