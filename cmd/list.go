package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
)

var (
	listProjects bool
	listDatasets bool
	listProjName string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects or the datasets in a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listProjects == listDatasets { // either both true or both false
			return fmt.Errorf("specify exactly one of --projects or --datasets")
		}
		out := cmd.OutOrStdout()
		if listProjects {
			return listAllProjects(cmd)
		}
		if listProjName == "" {
			return fmt.Errorf("--project is required when using --datasets")
		}
		p, err := loadProjectByName(listProjName)
		if err != nil {
			return err
		}
		if len(p.Datasets) == 0 {
			fmt.Fprintln(out, "(no datasets)")
			return nil
		}
		ids := make([]string, 0, len(p.Datasets))
		for id := range p.Datasets {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return p.Datasets[ids[i]].Name < p.Datasets[ids[j]].Name })
		for _, id := range ids {
			d := p.Datasets[id]
			fmt.Fprintf(out, "- %s: %s (%d rows) %s\n", d.ID, d.Name, d.Rows, d.Description)
		}
		return nil
	},
}

func listAllProjects(cmd *cobra.Command) error {
	root, err := defaultProjectsDir()
	if err != nil {
		return err
	}
	dirs, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	found := false
	for _, e := range dirs {
		if !e.IsDir() {
			continue
		}
		pj := filepath.Join(root, e.Name(), "project.json")
		if _, err := os.Stat(pj); err == nil {
			fmt.Fprintf(out, "- %s\n", e.Name())
			found = true
		}
	}
	if !found {
		fmt.Fprintln(out, "(no projects)")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listProjects, "projects", false, "list projects")
	listCmd.Flags().BoolVar(&listDatasets, "datasets", false, "list datasets in a project")
	listCmd.Flags().StringVarP(&listProjName, "project", "p", "", "project name for --datasets")
}
