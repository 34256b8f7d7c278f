package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/praxis/internal/config"
	"github.com/abhisek/praxis/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "praxis",
	Short: "Business assessment for allied health practices",
	Long:  "Praxis scores an allied health practice across eight business categories and turns the weakest areas into an action plan.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PRAXIS_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides PRAXIS_CONFIG env var)")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the config file named by --config, then PRAXIS_CONFIG,
// then the default path, with PRAXIS_* overrides applied.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Resolve(path, os.Getenv)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (PRAXIS_DB or dbPath), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// catalogDir is the configured catalog directory, or "catalog" beside the
// database. Without an installed bundle the built-in catalog is used.
func catalogDir(cmd *cobra.Command, cfg config.Config) (string, error) {
	if cfg.CatalogDir != "" {
		return cfg.CatalogDir, nil
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return "", fmt.Errorf("resolve database path: %w", err)
	}
	return filepath.Join(filepath.Dir(dbPath), "catalog"), nil
}
