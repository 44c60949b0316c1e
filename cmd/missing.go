package cmd

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/dalign/internal/missing"
	"github.com/KaramelBytes/dalign/internal/project"
	"github.com/KaramelBytes/dalign/internal/table"
	"github.com/spf13/cobra"
)

var (
	missingIn     inputFlags
	missingOutput string
)

var missingCmd = &cobra.Command{
	Use:   "missing <file>",
	Short: "Report missing cells per column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := missingIn.load(args[0])
		if err != nil {
			return err
		}
		rep := missing.Report(t)
		out := table.New([]string{"column", "missing", "ratio"})
		for _, m := range rep {
			out.AppendRow([]string{m.Column, strconv.Itoa(m.Count), strconv.FormatFloat(m.Ratio, 'f', 4, 64)})
		}
		if len(rep) == 0 && missingOutput == "" {
			fmt.Printf("✓ No missing cells in %s (%d rows)\n", t.Name, t.Len())
			return nil
		}
		return missingIn.emit(cmd, out, missingOutput)
	},
}

var (
	fillIn      inputFlags
	fillMethod  string
	fillOutput  string
	fillProject string
)

var fillCmd = &cobra.Command{
	Use:   "fill <file>",
	Short: "Drop rows with missing cells or fill them forward/backward",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		method, err := missing.ParseFillMethod(fillMethod)
		if err != nil {
			return err
		}
		t, err := fillIn.load(path)
		if err != nil {
			return err
		}
		j, err := openJournal(cmd, fillProject, path, t)
		if err != nil {
			return err
		}
		out, err := missing.Handle(t, method)
		if err != nil {
			return err
		}
		if method == missing.Drop && out.Len() < t.Len() {
			debugf("dropped %d of %d rows", t.Len()-out.Len(), t.Len())
		}
		if err := fillIn.emit(cmd, out, fillOutput); err != nil {
			return err
		}
		return j.record(project.Step{
			Command: "fill",
			Params:  map[string]string{"method": method.String()},
			Output:  fillOutput,
		})
	},
}

var (
	imputeIn      inputFlags
	imputeColumn  string
	imputeMethod  string
	imputeRolling bool
	imputeOutput  string
	imputeProject string
)

var imputeCmd = &cobra.Command{
	Use:   "impute <file>",
	Short: "Fill a column's missing cells with its mean, median or mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if imputeColumn == "" {
			return fmt.Errorf("--column is required")
		}
		method, err := missing.ParseImputeMethod(imputeMethod)
		if err != nil {
			return err
		}
		t, err := imputeIn.load(path)
		if err != nil {
			return err
		}
		j, err := openJournal(cmd, imputeProject, path, t)
		if err != nil {
			return err
		}
		var vals []string
		if imputeRolling {
			vals, err = missing.RollingImpute(t, imputeColumn, method)
		} else {
			vals, err = missing.Impute(t, imputeColumn, method)
		}
		if err != nil {
			return err
		}
		if err := t.SetColumn(imputeColumn, vals); err != nil {
			return err
		}
		if err := imputeIn.emit(cmd, t, imputeOutput); err != nil {
			return err
		}
		return j.record(project.Step{
			Command: "impute",
			Column:  imputeColumn,
			Params:  map[string]string{"method": method.String(), "rolling": strconv.FormatBool(imputeRolling)},
			Output:  imputeOutput,
		})
	},
}

func init() {
	rootCmd.AddCommand(missingCmd)
	missingIn.register(missingCmd)
	missingCmd.Flags().StringVarP(&missingOutput, "output", "o", "", "write the report to a table file instead of stdout")

	rootCmd.AddCommand(fillCmd)
	fillIn.register(fillCmd)
	fillCmd.Flags().StringVarP(&fillMethod, "method", "m", "drop", "drop | forward | backward")
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "", "output file (.csv|.tsv|.json|.db); prints CSV when omitted")
	fillCmd.Flags().StringVarP(&fillProject, "project", "p", "", "project name to record this step in")

	rootCmd.AddCommand(imputeCmd)
	imputeIn.register(imputeCmd)
	imputeCmd.Flags().StringVarP(&imputeColumn, "column", "c", "", "column to impute")
	imputeCmd.Flags().StringVarP(&imputeMethod, "method", "m", "mean", "mean | median | mode")
	imputeCmd.Flags().BoolVar(&imputeRolling, "rolling", false, "use only the values above each missing cell")
	imputeCmd.Flags().StringVarP(&imputeOutput, "output", "o", "", "output file (.csv|.tsv|.json|.db); prints CSV when omitted")
	imputeCmd.Flags().StringVarP(&imputeProject, "project", "p", "", "project name to record this step in")
}
