package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addIn          inputFlags
	addProjectName string
	addDesc        string
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Register a dataset with a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		if addProjectName == "" {
			return fmt.Errorf("--project is required")
		}
		p, err := loadProjectByName(addProjectName)
		if err != nil {
			return err
		}
		opt, err := addIn.options()
		if err != nil {
			return err
		}
		d, err := p.AddDataset(file, addDesc, opt)
		if err != nil {
			return err
		}
		if err := p.Save(); err != nil {
			return err
		}
		fmt.Printf("✓ Dataset added: %s (%d rows, %d columns)\n", d.Name, d.Rows, len(d.Columns))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addIn.register(addCmd)
	addCmd.Flags().StringVarP(&addProjectName, "project", "p", "", "project name")
	addCmd.Flags().StringVar(&addDesc, "desc", "", "dataset description")
}
