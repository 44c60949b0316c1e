package cmd

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/dalign/internal/category"
	"github.com/KaramelBytes/dalign/internal/table"
	"github.com/spf13/cobra"
)

var (
	countsIn     inputFlags
	countsColumn string
	countsOrder  string
	countsStart  int
	countsEnd    int
	countsDesc   bool
	countsOutput string
)

var countsCmd = &cobra.Command{
	Use:   "counts <file>",
	Short: "Show value counts of a categorical column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if countsColumn == "" {
			return fmt.Errorf("--column is required")
		}
		order, err := category.ParseOrder(countsOrder)
		if err != nil {
			return err
		}
		t, err := countsIn.load(args[0])
		if err != nil {
			return err
		}
		counts, err := category.ValueCounts(t, countsColumn, order, !countsDesc, countsStart, countsEnd)
		if err != nil {
			return err
		}
		out := table.New([]string{"value", "count"})
		for _, c := range counts {
			out.AppendRow([]string{c.Value, strconv.Itoa(c.Count)})
		}
		return countsIn.emit(cmd, out, countsOutput)
	},
}

var (
	typesIn     inputFlags
	typesOutput string
)

var typesCmd = &cobra.Command{
	Use:   "types <file>",
	Short: "Count the distinct categories of every non-numeric column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := typesIn.load(args[0])
		if err != nil {
			return err
		}
		out := table.New([]string{"column_name", "number_of_category_type"})
		for _, tc := range category.TypeCounts(t) {
			out.AppendRow([]string{tc.Column, strconv.Itoa(tc.Types)})
		}
		return typesIn.emit(cmd, out, typesOutput)
	},
}

func init() {
	rootCmd.AddCommand(countsCmd)
	countsIn.register(countsCmd)
	countsCmd.Flags().StringVarP(&countsColumn, "column", "c", "", "categorical column to count")
	countsCmd.Flags().StringVar(&countsOrder, "order", "frequency", "frequency | alphabetic")
	countsCmd.Flags().IntVar(&countsStart, "start", 0, "first position of the sorted counts to show")
	countsCmd.Flags().IntVar(&countsEnd, "end", 10, "position after the last one to show (0 = all)")
	countsCmd.Flags().BoolVar(&countsDesc, "desc", false, "sort in descending order")
	countsCmd.Flags().StringVarP(&countsOutput, "output", "o", "", "write the counts to a table file instead of stdout")

	rootCmd.AddCommand(typesCmd)
	typesIn.register(typesCmd)
	typesCmd.Flags().StringVarP(&typesOutput, "output", "o", "", "write the report to a table file instead of stdout")
}
