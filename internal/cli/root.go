// Package cli implements the think-strategies CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aaronsb/think-strategies/internal/storage"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	dbPath  string
	verbose bool
	logger  *zap.Logger
)

// RootCmd is the top-level command. Running it without a subcommand
// starts the MCP server, which is how MCP clients invoke the binary.
var RootCmd = &cobra.Command{
	Use:   "think-strategies",
	Short: "Structured thinking MCP server with multiple reasoning strategies",
	Long: "An MCP server that routes structured thinking sessions through " +
		"strategy-specific stage flows (linear, ReAct, tree-of-thoughts and more), " +
		"with durable SQLite-backed session history.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "storage", "s", "", "Session database path (default: $THINK_STRATEGIES_DB or ~/.think-strategies/sessions.db)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// initLogger builds the zap logger. All log output goes to stderr:
// stdout belongs to the MCP stdio transport.
func initLogger() error {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l
	return nil
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("THINK_STRATEGIES_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".think-strategies", "sessions.db")
}

func openStore() (*storage.SQLiteStore, error) {
	return storage.NewSQLiteStore(getDBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
