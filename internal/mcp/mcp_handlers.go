package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/quantfold/keydriver/core"
	"github.com/quantfold/keydriver/internal/contract"
	"github.com/quantfold/keydriver/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleRunDriverAnalysis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	input := &contract.ConfigRawInput{
		DataFileStr:    request.GetString("data_file", ""),
		Outcome:        request.GetString("outcome", ""),
		Drivers:        request.GetString("drivers", ""),
		Weight:         request.GetString("weight", ""),
		Format:         request.GetString("format", "auto"),
		Labels:         cfg.Labels,
		Workers:        cfg.Workers,
		Precision:      cfg.Precision,
		Output:         string(schema.JSONOut),
		StoreBackend:   string(cfg.StoreBackend),
		StoreDBConnect: cfg.StoreDBConnect,
	}
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid analysis parameters: %v", err)), nil
	}

	table, _, err := core.GetImportanceResults(cfg, h.mgr)
	if err != nil {
		// Structured refusals travel as JSON so callers can reason about the
		// failure instead of parsing prose.
		if refusals := schema.AllRefusals(err); len(refusals) > 0 {
			payload, _ := json.MarshalIndent(map[string]any{"refusals": refusals}, "", "  ")
			return mcp.NewToolResultError(string(payload)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(table, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetMethodDefinitions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	definitions := []schema.MethodDefinition{
		{
			Name:    schema.ShapleyMethod,
			Purpose: "Fair allocation of explained variance across correlated drivers",
			Basis:   "Average marginal R² gain over every driver subset ordering",
			Notes: []string{
				"Exact enumeration, limited to 15 drivers",
				"Shares sum to 100% and to the full model R²",
			},
		},
		{
			Name:    schema.RelativeWeightMethod,
			Purpose: "Fast approximation of Shapley shares via orthogonal transformation",
			Basis:   "Johnson (2000) eigendecomposition of the predictor correlation matrix",
		},
		{
			Name:    schema.BetaWeightMethod,
			Purpose: "Classical standardized regression coefficients",
			Basis:   "Absolute standardized betas from the full weighted least squares fit",
		},
		{
			Name:    schema.CorrelationMethod,
			Purpose: "Bivariate association ignoring the other drivers",
			Basis:   "Weighted Pearson correlation between each numeric driver and the outcome",
			Notes:   []string{"Not defined for categorical drivers"},
		},
	}

	jsonData, _ := json.MarshalIndent(definitions, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStoreStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := h.mgr.GetRunStore()
	if store == nil {
		return mcp.NewToolResultError("run store is not initialized"), nil
	}

	status, err := store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get store status: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
