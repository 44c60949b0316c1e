package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logProjName string

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the datasets and cleaning steps recorded in a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		if logProjName == "" {
			return fmt.Errorf("--project is required")
		}
		p, err := loadProjectByName(logProjName)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), p.Log())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVarP(&logProjName, "project", "p", "", "project name")
}
