package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAnalyze_AttachAndSuppressSamples(t *testing.T) {
	home := isolate(t)

	// Two CSV files with the same basename in different directories
	d1 := filepath.Join(home, "d1")
	d2 := filepath.Join(home, "d2")
	for _, d := range []string{d1, d2} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
		writeFile(t, filepath.Join(d, "metrics.csv"), "col1,col2\nA,1\nB,2\nC,3\n")
	}

	runCmd(t, "init", "batchp", "-d", "batch project")
	runCmd(t, "analyze", filepath.Join(home, "d*", "metrics.csv"), "-p", "batchp", "--sample-rows", "0", "--quiet")

	projDir, err := resolveProjectDirByName("batchp")
	if err != nil {
		t.Fatalf("resolve project: %v", err)
	}
	dir := filepath.Join(projDir, "profiles")
	for _, name := range []string{"metrics.summary.md", "metrics__2.summary.md"} {
		body, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("missing summary %s: %v", name, err)
		}
		if strings.Contains(string(body), "[HEAD AND SAMPLE ROWS]") {
			t.Fatalf("expected no sample rows in %s", name)
		}
		if !strings.Contains(string(body), "[SCHEMA]") {
			t.Fatalf("summary %s has no schema section", name)
		}
	}

	log := runCmd(t, "log", "-p", "batchp")
	if strings.Count(log, "analyze on metrics.csv") != 2 {
		t.Fatalf("expected two analyze steps:\n%s", log)
	}
}

func TestAnalyze_PrintsMarkdown(t *testing.T) {
	home := isolate(t)
	in := writeFile(t, filepath.Join(home, "m.csv"), "x,y\n1,2\n2,4\n3,6\n")
	out := runCmd(t, "analyze", in, "--correlations")
	for _, want := range []string{"[DATASET SUMMARY]", "[CORRELATIONS]", "x", "y"} {
		if !strings.Contains(out, want) {
			t.Fatalf("analysis missing %q:\n%s", want, out)
		}
	}
	if _, err := tryCmd(t, "analyze", filepath.Join(home, "nothing-*.csv")); err == nil {
		t.Fatalf("expected error when no files match")
	}
}
