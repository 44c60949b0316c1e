// Package project keeps a journal of the datasets a user cleans and the
// steps applied to them.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/dalign/internal/table"
	"github.com/KaramelBytes/dalign/internal/utils"
	"github.com/google/uuid"
)

const (
	projectFileName = "project.json"
)

// Project represents a dalign project persisted on disk.
type Project struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Datasets    map[string]*Dataset `json:"datasets"`
	Steps       []*Step             `json:"steps"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`

	// Not serialized: on-disk location of the project.json
	rootDir string `json:"-"`
}

// NewProject constructs an in-memory project. Call Save() to persist.
func NewProject(name, description, rootDir string) *Project {
	return &Project{
		Name:        name,
		Description: description,
		Datasets:    make(map[string]*Dataset),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		rootDir:     rootDir,
	}
}

// LoadProject loads a project.json from the provided directory.
func LoadProject(dir string) (*Project, error) {
	path := filepath.Join(dir, projectFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("project not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if p.Datasets == nil {
		p.Datasets = make(map[string]*Dataset)
	}
	p.rootDir = dir
	return &p, nil
}

// RootDir returns the on-disk project directory path.
func (p *Project) RootDir() string { return p.rootDir }

// Save writes project.json using atomic write.
func (p *Project) Save() error {
	if p.rootDir == "" {
		return errors.New("project root directory not set")
	}
	if err := utils.EnsureDir(p.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	p.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(p)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(p.rootDir, projectFileName), data)
}

// AddDataset reads a table file and registers it with the project.
func (p *Project) AddDataset(path, description string, opt table.ReadOptions) (*Dataset, error) {
	t, err := table.ReadFile(path, opt)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	d := p.TrackDataset(path, t)
	if description != "" {
		d.Description = description
	}
	return d, nil
}

// TrackDataset returns the dataset registered for path, registering it from
// the already loaded t when absent. Row and column details are refreshed.
func (p *Project) TrackDataset(path string, t *table.Table) *Dataset {
	abs := absPath(path)
	if d := p.DatasetByPath(abs); d != nil {
		d.Rows = t.Len()
		d.Columns = t.Columns()
		return d
	}
	d := &Dataset{
		ID:      uuid.NewString(),
		Path:    abs,
		Name:    filepath.Base(path),
		Rows:    t.Len(),
		Columns: t.Columns(),
		AddedAt: time.Now(),
	}
	if p.Datasets == nil {
		p.Datasets = make(map[string]*Dataset)
	}
	p.Datasets[d.ID] = d
	p.UpdatedAt = time.Now()
	return d
}

// DatasetByPath finds a registered dataset by file path.
func (p *Project) DatasetByPath(path string) *Dataset {
	abs := absPath(path)
	for _, d := range p.Datasets {
		if d.Path == abs {
			return d
		}
	}
	return nil
}

// RecordStep appends s to the journal, assigning its ID and timestamp.
func (p *Project) RecordStep(s Step) *Step {
	s.ID = uuid.NewString()
	s.AppliedAt = time.Now()
	p.Steps = append(p.Steps, &s)
	p.UpdatedAt = s.AppliedAt
	return &s
}

// Log renders the datasets and the ordered cleaning steps as plain text.
func (p *Project) Log() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Project: %s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", p.Description)
	}
	sb.WriteString("\n[DATASETS]\n")
	if len(p.Datasets) == 0 {
		sb.WriteString("(none)\n")
	}
	// deterministic order
	ids := make([]string, 0, len(p.Datasets))
	for id := range p.Datasets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := p.Datasets[ids[i]], p.Datasets[ids[j]]
		if a.Name == b.Name {
			return a.ID < b.ID
		}
		return a.Name < b.Name
	})
	for _, id := range ids {
		d := p.Datasets[id]
		fmt.Fprintf(&sb, "- %s (%d rows, %d columns) %s", d.Name, d.Rows, len(d.Columns), d.Path)
		if d.Description != "" {
			fmt.Fprintf(&sb, " — %s", d.Description)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n[STEPS]\n")
	if len(p.Steps) == 0 {
		sb.WriteString("(none)\n")
	}
	for i, s := range p.Steps {
		name := s.Dataset
		if d, ok := p.Datasets[s.Dataset]; ok {
			name = d.Name
		}
		fmt.Fprintf(&sb, "%d. %s %s on %s", i+1, s.AppliedAt.Format(time.RFC3339), s.Command, name)
		if s.Column != "" {
			fmt.Fprintf(&sb, " [%s]", s.Column)
		}
		if len(s.Params) > 0 {
			keys := make([]string, 0, len(s.Params))
			for k := range s.Params {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			parts := make([]string, len(keys))
			for i, k := range keys {
				parts[i] = k + "=" + s.Params[k]
			}
			fmt.Fprintf(&sb, " (%s)", strings.Join(parts, ", "))
		}
		if s.Output != "" {
			fmt.Fprintf(&sb, " -> %s", s.Output)
		}
		sb.WriteString("\n")
		if len(s.Replacements) > 0 {
			from := make([]string, 0, len(s.Replacements))
			for k := range s.Replacements {
				from = append(from, k)
			}
			sort.Strings(from)
			for _, k := range from {
				fmt.Fprintf(&sb, "   %q => %q\n", k, s.Replacements[k])
			}
		}
	}
	return sb.String()
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
