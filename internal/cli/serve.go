package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaronsb/think-strategies/internal/config"
	"github.com/aaronsb/think-strategies/internal/server"
)

var configPath string

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		RunE:  runServe,
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Routing table override (JSON file)")
	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	table := config.Default()
	if configPath != "" {
		t, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load routing table: %w", err)
		}
		table = t
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer store.Close()

	srv := server.New(table, store, logger, Version)
	return srv.Run(cmd.Context())
}
