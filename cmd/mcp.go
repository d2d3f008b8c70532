package cmd

import (
	"fmt"

	"github.com/quantfold/keydriver/internal/iocache"
	"github.com/quantfold/keydriver/internal/mcp"
	"github.com/quantfold/keydriver/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Keydriver MCP server",
	Long:  `Launch an MCP server that allows AI agents to run driver importance analyses via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// The server needs presentation defaults and a store, but no dataset:
		// each tool call supplies its own data file and columns. Keep stdout
		// clean since stdio carries the protocol.
		if err := lightSetup(); err != nil {
			return err
		}
		backend := schema.DatabaseBackend(viper.GetString("store-backend"))
		if backend == "" {
			backend = schema.NoneBackend
		}
		connStr := viper.GetString("store-db-connect")
		if err := iocache.InitStores(backend, connStr); err != nil {
			return fmt.Errorf("failed to initialize persistence: %w", err)
		}
		storeManager = iocache.Manager
		cfg.StoreBackend = backend
		cfg.StoreDBConnect = connStr
		cfg.Workers = viper.GetInt("workers")
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
