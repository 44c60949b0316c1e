package cmd

import (
	"fmt"

	"github.com/KaramelBytes/dalign/internal/category"
	"github.com/KaramelBytes/dalign/internal/project"
	"github.com/spf13/cobra"
)

var (
	keyIn      inputFlags
	keyColumns []string
	keyName    string
	keySep     string
	keyOutput  string
	keyProject string
)

var keyCmd = &cobra.Command{
	Use:   "key <file>",
	Short: "Add a composite key column built from two columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if len(keyColumns) != 2 {
			return fmt.Errorf("--columns takes exactly two column names, got %d", len(keyColumns))
		}
		t, err := keyIn.load(path)
		if err != nil {
			return err
		}
		if t.Has(keyName) {
			warnf("column '%s' exists and will be overwritten", keyName)
		}
		j, err := openJournal(cmd, keyProject, path, t)
		if err != nil {
			return err
		}
		if _, err := category.CompositeKey(t, keyColumns[0], keyColumns[1], keyName, keySep); err != nil {
			return err
		}
		if err := keyIn.emit(cmd, t, keyOutput); err != nil {
			return err
		}
		return j.record(project.Step{
			Command: "key",
			Column:  keyName,
			Params:  map[string]string{"columns": keyColumns[0] + "," + keyColumns[1], "sep": keySep},
			Output:  keyOutput,
		})
	},
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyIn.register(keyCmd)
	keyCmd.Flags().StringSliceVar(&keyColumns, "columns", nil, "the two columns to join, e.g. --columns state,city")
	keyCmd.Flags().StringVar(&keyName, "name", "key", "name of the key column")
	keyCmd.Flags().StringVar(&keySep, "sep", category.DefaultKeySeparator, "separator placed between the two parts")
	keyCmd.Flags().StringVarP(&keyOutput, "output", "o", "", "output file (.csv|.tsv|.json|.db); prints CSV when omitted")
	keyCmd.Flags().StringVarP(&keyProject, "project", "p", "", "project name to record this step in")
}
