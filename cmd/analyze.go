package cmd

import (
	"github.com/quantfold/keydriver/core"
	"github.com/quantfold/keydriver/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd runs the full importance decomposition on a data file.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <data-file>",
	Short: "Decompose driver importance for an outcome column",
	Long: `Run the full importance decomposition on an observation file.

Given a CSV or parquet file, a numeric outcome column and up to 15 driver
columns, keydriver fits a weighted least squares model and reports four
importance readings per driver:

- Shapley: the driver's fair share of the model R², averaged over every
  possible ordering of drivers (exact enumeration)
- Relative weight: Johnson's orthogonal approximation of the same quantity
- Beta weight: the absolute standardized regression coefficient
- Correlation: the bivariate Pearson correlation (numeric drivers only)

Categorical drivers are dummy-coded automatically and reported as a single
consolidated row. Rows with missing values in any used column are dropped.

Examples:
  # Basic run
  keydriver analyze survey.csv --outcome satisfaction --drivers price,quality,support

  # Weighted observations and a parquet input
  keydriver analyze waves.parquet --outcome nps --drivers speed,ease,trust --weight resp_weight

  # Persist runs for trend tracking
  keydriver analyze survey.csv -y satisfaction -x price,quality --store-backend sqlite`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run driver analysis", err)
		}
	},
}
