package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/KaramelBytes/dalign/internal/category"
	"github.com/KaramelBytes/dalign/internal/project"
	"github.com/spf13/cobra"
)

var (
	mergeIn        inputFlags
	mergeColumn    string
	mergeThreshold float64
	mergeResolve   bool
	mergeStopwords []string
	mergeOutput    string
	mergeMapPath   string
	mergeProject   string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <file>",
	Short: "Normalize a categorical column and merge near-duplicate labels",
	Long: `Cleans every value of the column (punctuation, case, English stop words),
then compares each distinct value with its alphabetical neighbour by bag-of-words
cosine similarity. Neighbours at or above the threshold merge into the shorter
spelling.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if mergeColumn == "" {
			return fmt.Errorf("--column is required")
		}
		t, err := mergeIn.load(path)
		if err != nil {
			return err
		}
		j, err := openJournal(cmd, mergeProject, path, t)
		if err != nil {
			return err
		}

		c := settings()
		opt := category.DefaultOptions()
		opt.Threshold = c.SimilarityThreshold
		if cmd.Flags().Changed("threshold") {
			opt.Threshold = mergeThreshold
		}
		opt.ResolveChains = mergeResolve
		opt.ExtraStopWords = append(append([]string{}, c.ExtraStopwords...), mergeStopwords...)

		res, err := category.MergeSimilar(t, mergeColumn, opt)
		if err != nil {
			return err
		}
		if debug {
			from := make([]string, 0, len(res.Replacements))
			for k := range res.Replacements {
				from = append(from, k)
			}
			sort.Strings(from)
			for _, k := range from {
				debugf("%q -> %q", k, res.Replacements[k])
			}
		}
		if mergeMapPath != "" {
			if err := writeReplacementMap(mergeMapPath, res.Replacements); err != nil {
				return err
			}
			statusf(cmd, mergeOutput == "", "Wrote replacement map to %s", mergeMapPath)
		}
		if err := mergeIn.emit(cmd, t, mergeOutput); err != nil {
			return err
		}
		if mergeOutput != "" {
			statusf(cmd, false, "Merged %d of %d categories in column '%s'", len(res.Replacements), len(res.Categories), mergeColumn)
		}
		return j.record(project.Step{
			Command: "merge",
			Column:  mergeColumn,
			Params: map[string]string{
				"threshold":      strconv.FormatFloat(opt.Threshold, 'f', -1, 64),
				"resolve_chains": strconv.FormatBool(opt.ResolveChains),
			},
			Replacements: res.Replacements,
			Output:       mergeOutput,
		})
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeIn.register(mergeCmd)
	mergeCmd.Flags().StringVarP(&mergeColumn, "column", "c", "", "categorical column to merge")
	mergeCmd.Flags().Float64VarP(&mergeThreshold, "threshold", "t", category.DefaultThreshold, "cosine similarity in [0,1] at or above which neighbours merge (default from config)")
	mergeCmd.Flags().BoolVar(&mergeResolve, "resolve-chains", false, "follow replacement chains to their final target instead of moving one hop")
	mergeCmd.Flags().StringSliceVar(&mergeStopwords, "stopwords", nil, "extra stop words to drop while cleaning (repeatable)")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "output file (.csv|.tsv|.json|.db); prints CSV when omitted")
	mergeCmd.Flags().StringVar(&mergeMapPath, "map", "", "write the replacement map to this .yaml/.json file")
	mergeCmd.Flags().StringVarP(&mergeProject, "project", "p", "", "project name to record this step in")
}
