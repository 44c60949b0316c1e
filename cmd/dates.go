package cmd

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/dalign/internal/dates"
	"github.com/KaramelBytes/dalign/internal/project"
	"github.com/KaramelBytes/dalign/internal/table"
	"github.com/spf13/cobra"
)

var (
	datesIn        inputFlags
	datesColumn    string
	datesUnit      string
	datesAlong     string
	datesStart     string
	datesEnd       string
	datesNormalize bool
	datesOutput    string
	datesProject   string
)

var datesCmd = &cobra.Command{
	Use:   "dates <file>",
	Short: "Normalize a date column or show its distribution by calendar unit",
	Long: `Without --normalize, prints how many rows fall on each value of --unit
(year, month, day, hour, minute, day_of_week, day_of_year). With --along, rows
between --start and --end are grouped by unit and the numeric --along column is
averaged per group. With --normalize, the column is rewritten as yyyy-mm-dd.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if datesColumn == "" {
			return fmt.Errorf("--column is required")
		}
		t, err := datesIn.load(path)
		if err != nil {
			return err
		}
		if datesNormalize {
			j, err := openJournal(cmd, datesProject, path, t)
			if err != nil {
				return err
			}
			bad, err := dates.Normalize(t, datesColumn)
			if err != nil {
				return err
			}
			if bad > 0 {
				warnf("%d values in '%s' are not dates and were cleared", bad, datesColumn)
			}
			if err := datesIn.emit(cmd, t, datesOutput); err != nil {
				return err
			}
			return j.record(project.Step{Command: "dates", Column: datesColumn, Params: map[string]string{"normalize": "true"}, Output: datesOutput})
		}

		unit, err := dates.ParseUnit(datesUnit)
		if err != nil {
			return err
		}
		var out *table.Table
		if datesAlong != "" {
			if datesStart == "" || datesEnd == "" {
				return fmt.Errorf("--start and --end are required with --along")
			}
			buckets, err := dates.AggregateAlong(t, datesAlong, datesColumn, datesStart, datesEnd, unit)
			if err != nil {
				return err
			}
			out = table.New([]string{unit.String(), "count", "mean_" + datesAlong})
			for _, b := range buckets {
				out.AppendRow([]string{strconv.Itoa(b.Key), strconv.Itoa(b.Count), formatStat(b.Mean)})
			}
		} else {
			buckets, err := dates.Distribution(t, datesColumn, unit)
			if err != nil {
				return err
			}
			out = table.New([]string{unit.String(), "count"})
			for _, b := range buckets {
				out.AppendRow([]string{strconv.Itoa(b.Key), strconv.Itoa(b.Count)})
			}
		}
		return datesIn.emit(cmd, out, datesOutput)
	},
}

func init() {
	rootCmd.AddCommand(datesCmd)
	datesIn.register(datesCmd)
	datesCmd.Flags().StringVarP(&datesColumn, "column", "c", "", "date or timestamp column")
	datesCmd.Flags().StringVar(&datesUnit, "unit", "day", "year | month | day | hour | minute | day_of_week | day_of_year")
	datesCmd.Flags().StringVar(&datesAlong, "along", "", "numeric column to average per unit")
	datesCmd.Flags().StringVar(&datesStart, "start", "", "first date included with --along")
	datesCmd.Flags().StringVar(&datesEnd, "end", "", "last date included with --along")
	datesCmd.Flags().BoolVar(&datesNormalize, "normalize", false, "rewrite the column as yyyy-mm-dd")
	datesCmd.Flags().StringVarP(&datesOutput, "output", "o", "", "output file (.csv|.tsv|.json|.db); prints CSV when omitted")
	datesCmd.Flags().StringVarP(&datesProject, "project", "p", "", "project name to record --normalize in")
}
