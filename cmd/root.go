package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/dalign/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "dalign",
	Short: "dalign: clean and align messy tabular data",
	Long: `dalign cleans tabular data files (CSV, TSV, JSON, XLSX, SQLite). It merges
near-duplicate category labels, repairs missing values, builds composite keys,
normalizes dates and summarizes columns, optionally journaling every step in a project.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.dalign/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		warnf("failed to load config: %v", err)
		return
	}
	cfg = c
}

// settings returns the loaded configuration, loading it on first use.
func settings() *cfgpkg.Global {
	if cfg == nil {
		loadConfig()
	}
	if cfg == nil {
		return &cfgpkg.Global{SimilarityThreshold: 0.4, OutlierDeviation: 2, MADThreshold: 3.5, JSONOrient: "records"}
	}
	return cfg
}

// statusf prints a ✓ line to the command output, or to stderr when the
// command output carries a result table.
func statusf(cmd *cobra.Command, tableOnStdout bool, format string, args ...any) {
	w := cmd.OutOrStdout()
	if tableOnStdout {
		w = cmd.ErrOrStderr()
	}
	fmt.Fprintf(w, "✓ "+format+"\n", args...)
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "⚠ Warning: "+format+"\n", args...)
}

func debugf(format string, args ...any) {
	if debug {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}
