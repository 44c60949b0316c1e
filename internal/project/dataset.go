package project

import "time"

// Dataset is a table file registered with a project.
type Dataset struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Rows        int       `json:"rows"`
	Columns     []string  `json:"columns"`
	AddedAt     time.Time `json:"added_at"`
}

// Step is one cleaning operation applied to a dataset.
type Step struct {
	ID      string `json:"id"`
	Command string `json:"command"`
	// Dataset is the ID of the dataset the step read.
	Dataset      string            `json:"dataset"`
	Column       string            `json:"column,omitempty"`
	Params       map[string]string `json:"params,omitempty"`
	Replacements map[string]string `json:"replacements,omitempty"`
	Output       string            `json:"output,omitempty"`
	AppliedAt    time.Time         `json:"applied_at"`
}
