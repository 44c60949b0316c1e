package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.SimilarityThreshold != 0.4 || c.OutlierDeviation != 2 || c.MADThreshold != 3.5 {
		t.Fatalf("defaults = %#v", c)
	}
	if c.JSONOrient != "records" {
		t.Fatalf("json_orient = %q", c.JSONOrient)
	}
	if want := filepath.Join(home, ".dalign", "projects"); c.ProjectsDir != want {
		t.Fatalf("projects_dir = %q, want %q", c.ProjectsDir, want)
	}
}

func TestSaveLoadRoundTripAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c := &Global{SimilarityThreshold: 0.6, OutlierDeviation: 3, MADThreshold: 4, Delimiter: ";", JSONOrient: "split", ExtraStopwords: []string{"inc", "ltd"}, ProjectsDir: "/tmp/p"}
	if err := Save(c, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.SimilarityThreshold != 0.6 || got.Delimiter != ";" || got.JSONOrient != "split" || len(got.ExtraStopwords) != 2 {
		t.Fatalf("loaded = %#v", got)
	}

	t.Setenv("DALIGN_SIMILARITY_THRESHOLD", "0.75")
	got, err = Load(path)
	if err != nil {
		t.Fatalf("load with env: %v", err)
	}
	if got.SimilarityThreshold != 0.75 {
		t.Fatalf("env override = %v", got.SimilarityThreshold)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("similarity_threshold: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}
