package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/dalign/internal/config"
	"github.com/KaramelBytes/dalign/internal/table"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set dalign configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "similarity_threshold: %.3f\n", c.SimilarityThreshold)
		fmt.Fprintf(out, "outlier_deviation: %.3f\n", c.OutlierDeviation)
		fmt.Fprintf(out, "mad_threshold: %.3f\n", c.MADThreshold)
		fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		fmt.Fprintf(out, "json_orient: %s\n", c.JSONOrient)
		fmt.Fprintf(out, "extra_stopwords: %s\n", strings.Join(c.ExtraStopwords, ","))
		fmt.Fprintf(out, "projects_dir: %s\n", c.ProjectsDir)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "similarity_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 || f > 1 {
				return fmt.Errorf("invalid similarity_threshold: %v (use a number in [0,1])", val)
			}
			cfg.SimilarityThreshold = f
		case "outlier_deviation":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid outlier_deviation: %v (use a positive number)", val)
			}
			cfg.OutlierDeviation = f
		case "mad_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid mad_threshold: %v (use a positive number)", val)
			}
			cfg.MADThreshold = f
		case "delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			cfg.Delimiter = val
		case "json_orient":
			if !table.ValidOrient(val) {
				return fmt.Errorf("invalid json_orient: %s (use records|columns|index|split|values)", val)
			}
			cfg.JSONOrient = val
		case "extra_stopwords":
			var words []string
			for _, w := range strings.Split(val, ",") {
				if w = strings.TrimSpace(w); w != "" {
					words = append(words, w)
				}
			}
			cfg.ExtraStopwords = words
		case "projects_dir":
			cfg.ProjectsDir = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
