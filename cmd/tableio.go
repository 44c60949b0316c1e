package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/dalign/internal/project"
	"github.com/KaramelBytes/dalign/internal/table"
	"github.com/KaramelBytes/dalign/internal/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// inputFlags are the format options shared by every command that reads a table.
type inputFlags struct {
	delimiter   string
	orient      string
	sheetName   string
	sheetIndex  int
	sqliteTable string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab' (default from config, else by extension)")
	cmd.Flags().StringVar(&f.orient, "orient", "", "JSON layout: records|columns|index|split|values (default from config)")
	cmd.Flags().StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to read")
	cmd.Flags().IntVar(&f.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	cmd.Flags().StringVar(&f.sqliteTable, "sqlite-table", "", "SQLite: table to read and write (default: first table / \"data\")")
}

func (f *inputFlags) options() (table.ReadOptions, error) {
	c := settings()
	d := f.delimiter
	if d == "" {
		d = c.Delimiter
	}
	delim, err := parseDelimiter(d)
	if err != nil {
		return table.ReadOptions{}, err
	}
	orient := f.orient
	if orient == "" {
		orient = c.JSONOrient
	}
	return table.ReadOptions{
		Delimiter:   delim,
		Orient:      orient,
		SheetName:   f.sheetName,
		SheetIndex:  f.sheetIndex,
		SQLiteTable: f.sqliteTable,
	}, nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab", `\t`:
		return '\t', nil
	case ";":
		return ';', nil
	case "|":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

// load reads the input file described by path and the format flags.
func (f *inputFlags) load(path string) (*table.Table, error) {
	opt, err := f.options()
	if err != nil {
		return nil, err
	}
	t, err := table.ReadFile(path, opt)
	if err != nil {
		return nil, err
	}
	debugf("read %s: %d rows, %d columns", t.Name, t.Len(), len(t.Columns()))
	return t, nil
}

// emit writes t to out, choosing the format by extension, or prints it as
// CSV to the command's output when out is empty.
func (f *inputFlags) emit(cmd *cobra.Command, t *table.Table, out string) error {
	if out == "" {
		return table.Print(cmd.OutOrStdout(), t)
	}
	opt, err := f.options()
	if err != nil {
		return err
	}
	if err := table.WriteFile(out, t, table.WriteOptions{Delimiter: opt.Delimiter, SQLiteTable: f.sqliteTable}); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	statusf(cmd, false, "Wrote %d rows to %s", t.Len(), out)
	return nil
}

// journal records cleaning steps for one dataset in a project.
type journal struct {
	cmd     *cobra.Command
	p       *project.Project
	dataset string
}

// openJournal loads the named project and registers input with it. It
// returns nil when no project is requested.
func openJournal(cmd *cobra.Command, name, input string, t *table.Table) (*journal, error) {
	if name == "" {
		return nil, nil
	}
	dir, err := resolveProjectDirByName(name)
	if err != nil {
		return nil, err
	}
	p, err := project.LoadProject(dir)
	if err != nil {
		return nil, err
	}
	d := p.TrackDataset(input, t)
	return &journal{cmd: cmd, p: p, dataset: d.ID}, nil
}

func (j *journal) record(s project.Step) error {
	if j == nil {
		return nil
	}
	s.Dataset = j.dataset
	j.p.RecordStep(s)
	if err := j.p.Save(); err != nil {
		return err
	}
	statusf(j.cmd, s.Output == "", "Recorded %s in project '%s'", s.Command, j.p.Name)
	return nil
}

// writeReplacementMap saves a merge map as YAML (.yaml/.yml) or JSON.
func writeReplacementMap(path string, m map[string]string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(m)
	default:
		data, err = utils.PrettyJSON(m)
	}
	if err != nil {
		return fmt.Errorf("encode map: %w", err)
	}
	return utils.SafeWriteFile(path, data)
}
