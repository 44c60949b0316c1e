package cmd

import (
	"fmt"
	"math"
	"strconv"

	"github.com/KaramelBytes/dalign/internal/analysis"
	"github.com/KaramelBytes/dalign/internal/table"
	"github.com/spf13/cobra"
)

var (
	describeIn     inputFlags
	describeOutput string
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Show count, mean, std, quartiles and range of every numeric column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := describeIn.load(args[0])
		if err != nil {
			return err
		}
		sums := analysis.Describe(t)
		if len(sums) == 0 {
			warnf("no numeric columns in %s", t.Name)
			return nil
		}
		header := []string{"stat"}
		for _, s := range sums {
			header = append(header, s.Column)
		}
		out := table.New(header)
		stats := []struct {
			name string
			get  func(analysis.NumericSummary) float64
		}{
			{"count", func(s analysis.NumericSummary) float64 { return float64(s.Count) }},
			{"mean", func(s analysis.NumericSummary) float64 { return s.Mean }},
			{"std", func(s analysis.NumericSummary) float64 { return s.Std }},
			{"min", func(s analysis.NumericSummary) float64 { return s.Min }},
			{"25%", func(s analysis.NumericSummary) float64 { return s.Q25 }},
			{"50%", func(s analysis.NumericSummary) float64 { return s.Median }},
			{"75%", func(s analysis.NumericSummary) float64 { return s.Q75 }},
			{"max", func(s analysis.NumericSummary) float64 { return s.Max }},
			{"range", func(s analysis.NumericSummary) float64 { return s.Range }},
		}
		for _, st := range stats {
			row := []string{st.name}
			for _, s := range sums {
				row = append(row, formatStat(st.get(s)))
			}
			out.AppendRow(row)
		}
		return describeIn.emit(cmd, out, describeOutput)
	},
}

var (
	outliersIn        inputFlags
	outliersColumn    string
	outliersDeviation float64
	outliersOutput    string
)

var outliersCmd = &cobra.Command{
	Use:   "outliers <file>",
	Short: "List rows lying more than N standard deviations from a column's mean",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if outliersColumn == "" {
			return fmt.Errorf("--column is required")
		}
		t, err := outliersIn.load(args[0])
		if err != nil {
			return err
		}
		dev := settings().OutlierDeviation
		if cmd.Flags().Changed("deviation") {
			dev = outliersDeviation
		}
		rep, err := analysis.Outliers(t, outliersColumn, dev)
		if err != nil {
			return err
		}
		w := cmd.ErrOrStderr()
		fmt.Fprintf(w, "Column name: %s\n\tMax: %s\n\tMin: %s\n\tRange: %s\n\tMean: %s\n\n",
			rep.Column, formatStat(rep.Max), formatStat(rep.Min), formatStat(rep.Range), formatStat(rep.Mean))
		fmt.Fprintf(w, "Number of Outliers: %d (|x - mean| > %s x %s)\n", len(rep.Rows), formatStat(rep.Deviation), formatStat(rep.Std))
		out := table.New([]string{"index", "value"})
		for _, r := range rep.Rows {
			out.AppendRow([]string{strconv.Itoa(r.Index), formatStat(r.Value)})
		}
		return outliersIn.emit(cmd, out, outliersOutput)
	},
}

func formatStat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeIn.register(describeCmd)
	describeCmd.Flags().StringVarP(&describeOutput, "output", "o", "", "write the statistics to a table file instead of stdout")

	rootCmd.AddCommand(outliersCmd)
	outliersIn.register(outliersCmd)
	outliersCmd.Flags().StringVarP(&outliersColumn, "column", "c", "", "numeric column to inspect")
	outliersCmd.Flags().Float64Var(&outliersDeviation, "deviation", analysis.DefaultDeviation, "number of standard deviations (default from config)")
	outliersCmd.Flags().StringVarP(&outliersOutput, "output", "o", "", "write the outlier rows to a table file instead of stdout")
}
