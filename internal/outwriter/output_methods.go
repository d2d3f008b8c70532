package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/quantfold/keydriver/internal/contract"
	"github.com/quantfold/keydriver/schema"
)

// getDisplayNameForMethod returns the display name with emoji for a given method.
func getDisplayNameForMethod(method schema.Method) string {
	switch method {
	case schema.ShapleyMethod:
		return "🎯 SHAPLEY"
	case schema.RelativeWeightMethod:
		return "⚖️  RELATIVE WEIGHT"
	case schema.BetaWeightMethod:
		return "📐 BETA WEIGHT"
	case schema.CorrelationMethod:
		return "🔗 CORRELATION"
	default:
		return strings.ToUpper(string(method))
	}
}

// PrintMethodDefinitions displays the formal definitions of all importance
// methods. This is a static display that does not require any data loading.
func PrintMethodDefinitions(cfg *contract.Config) error {
	renderModel := buildMethodsRenderModel()

	switch cfg.Output {
	case schema.JSONOut:
		return printMethodsJSON(renderModel, cfg)
	case schema.CSVOut:
		return printMethodsCSV(renderModel, cfg)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printMethodsText(w, renderModel)
		}, "Wrote text")
	}
}

// printMethodsText displays method definitions in human-readable text format.
func printMethodsText(w io.Writer, renderModel *schema.MethodsRenderModel) error {
	if _, err := fmt.Fprintf(w, "🎯 %s\n", renderModel.Title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", strings.Repeat("=", len(renderModel.Title)+3)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\n%s\n\n", renderModel.Description); err != nil {
		return err
	}

	for _, method := range renderModel.Methods {
		displayName := getDisplayNameForMethod(method.Name)
		if _, err := fmt.Fprintf(w, "%s: %s\n", displayName, method.Purpose); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Basis: %s\n", method.Basis); err != nil {
			return err
		}
		for _, note := range method.Notes {
			if _, err := fmt.Fprintf(w, "   Note: %s\n", note); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
	}

	return nil
}

// printMethodsJSON displays method definitions in JSON format.
func printMethodsJSON(renderModel *schema.MethodsRenderModel, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, renderModel)
	}, "Wrote JSON")
}

// printMethodsCSV displays method definitions in CSV format.
func printMethodsCSV(renderModel *schema.MethodsRenderModel, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, []string{"method", "purpose", "basis", "notes"}, func(writer *csv.Writer) error {
			for _, method := range renderModel.Methods {
				row := []string{
					string(method.Name),
					method.Purpose,
					method.Basis,
					strings.Join(method.Notes, "|"),
				}
				if err := writer.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// buildMethodsRenderModel constructs the complete render model with all method definitions.
func buildMethodsRenderModel() *schema.MethodsRenderModel {
	return &schema.MethodsRenderModel{
		Title:       "Driver Importance Methods",
		Description: "All methods decompose how much each driver contributes to explaining the outcome",
		Methods: []schema.MethodDefinition{
			{
				Name:    schema.ShapleyMethod,
				Purpose: "Fair allocation of explained variance across correlated drivers",
				Basis:   "Average marginal R² gain over every driver subset ordering",
				Notes: []string{
					"Exact enumeration, limited to 15 drivers (32768 reduced fits)",
					"Shares sum to 100% and to the full model R²",
				},
			},
			{
				Name:    schema.RelativeWeightMethod,
				Purpose: "Fast approximation of Shapley shares via orthogonal transformation",
				Basis:   "Johnson (2000) eigendecomposition of the predictor correlation matrix",
				Notes: []string{
					"Requires a well-conditioned correlation matrix",
				},
			},
			{
				Name:    schema.BetaWeightMethod,
				Purpose: "Classical standardized regression coefficients",
				Basis:   "Absolute standardized betas from the full weighted least squares fit",
				Notes: []string{
					"Unstable when drivers are highly correlated",
				},
			},
			{
				Name:    schema.CorrelationMethod,
				Purpose: "Bivariate association ignoring the other drivers",
				Basis:   "Weighted Pearson correlation between each numeric driver and the outcome",
				Notes: []string{
					"Not defined for categorical drivers",
				},
			},
		},
	}
}
