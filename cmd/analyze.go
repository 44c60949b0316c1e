package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/dalign/internal/analysis"
	"github.com/KaramelBytes/dalign/internal/project"
	"github.com/KaramelBytes/dalign/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaIn         inputFlags
	anaProject    string
	anaOutputPath string
	anaSampleRows int
	anaMaxRows    int
	anaCorr       bool
	anaDecimal    string
	anaThousands  string
	anaOutliers   bool
	anaOutlierThr float64
	anaQuiet      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <files...>",
	Short: "Profile tables: column kinds, statistics, outliers and correlations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}

		opt := analysis.DefaultOptions()
		if cmd.Flags().Changed("sample-rows") {
			opt.SampleRows = anaSampleRows
		}
		if anaMaxRows > 0 {
			opt.MaxRows = anaMaxRows
		}
		switch strings.ToLower(strings.TrimSpace(anaDecimal)) {
		case ",", "comma":
			opt.DecimalSeparator = ','
		case ".", "dot":
			opt.DecimalSeparator = '.'
		case "":
		default:
			return fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", anaDecimal)
		}
		switch strings.ToLower(strings.TrimSpace(anaThousands)) {
		case ",":
			opt.ThousandsSeparator = ','
		case ".":
			opt.ThousandsSeparator = '.'
		case "space", " ":
			opt.ThousandsSeparator = ' '
		case "":
		default:
			return fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", anaThousands)
		}
		opt.Correlations = anaCorr
		opt.Outliers = anaOutliers
		opt.OutlierThreshold = settings().MADThreshold
		if cmd.Flags().Changed("outlier-threshold") && anaOutlierThr > 0 {
			opt.OutlierThreshold = anaOutlierThr
		}
		if anaOutputPath != "" && len(files) > 1 {
			return fmt.Errorf("--output takes a single input file, got %d", len(files))
		}

		for i, path := range files {
			if len(files) > 1 && !anaQuiet {
				fmt.Printf("[%d/%d] Processing %s...\n", i+1, len(files), filepath.Base(path))
			}
			t, err := anaIn.load(path)
			if err != nil {
				return err
			}
			md := analysis.Profile(t, opt).Markdown()

			written := false
			if anaOutputPath != "" {
				if err := utils.SafeWriteFile(anaOutputPath, []byte(md)); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Printf("✓ Wrote analysis to %s\n", anaOutputPath)
				written = true
			}
			if anaProject != "" {
				j, err := openJournal(cmd, anaProject, path, t)
				if err != nil {
					return err
				}
				outFile, err := summaryPath(j.p, path)
				if err != nil {
					return err
				}
				if err := utils.SafeWriteFile(outFile, []byte(md)); err != nil {
					return fmt.Errorf("write project summary: %w", err)
				}
				if err := j.record(project.Step{Command: "analyze", Output: outFile}); err != nil {
					return err
				}
				if !anaQuiet {
					fmt.Printf("✓ Added analysis to project '%s' as %s\n", j.p.Name, filepath.Base(outFile))
				}
				written = true
			}
			if !written && !anaQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), md)
			}
		}
		return nil
	},
}

// expandInputs resolves glob patterns, keeping literal paths that exist.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

// summaryPath picks profiles/<name>.summary.md inside the project, adding a
// numeric suffix instead of overwriting an existing summary.
func summaryPath(p *project.Project, input string) (string, error) {
	outDir := filepath.Join(p.RootDir(), "profiles")
	if err := utils.EnsureDir(outDir); err != nil {
		return "", err
	}
	base := filepath.Base(input)
	safe := strings.TrimSuffix(base, filepath.Ext(base))
	outFile := filepath.Join(outDir, safe+".summary.md")
	if _, err := os.Stat(outFile); err != nil {
		return outFile, nil
	}
	for idx := 2; ; idx++ {
		cand := filepath.Join(outDir, fmt.Sprintf("%s__%d.summary.md", safe, idx))
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			if !anaQuiet {
				fmt.Printf("⚠ Detected existing summary, writing to %s to avoid overwrite.\n", filepath.Base(cand))
			}
			return cand, nil
		}
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaIn.register(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaProject, "project", "p", "", "project name to attach the summary to")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the analysis (Markdown)")
	analyzeCmd.Flags().StringVar(&anaDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	analyzeCmd.Flags().StringVar(&anaThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 5, "number of sample rows to include (0 disables samples)")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 100000, "maximum rows to process (0 = unlimited)")
	analyzeCmd.Flags().BoolVar(&anaCorr, "correlations", false, "compute Pearson correlations among numeric columns")
	analyzeCmd.Flags().BoolVar(&anaOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	analyzeCmd.Flags().Float64Var(&anaOutlierThr, "outlier-threshold", analysis.DefaultMADThreshold, "robust |z| threshold for outliers (default from config)")
	analyzeCmd.Flags().BoolVar(&anaQuiet, "quiet", false, "suppress progress and non-essential output")
}
