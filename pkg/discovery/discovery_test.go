package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDir(t *testing.T, root, name string, files ...string) {
	t.Helper()

	dir := filepath.Join(root, name)
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		if err := os.WriteFile(filepath.Join(dir, file), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindTemplates(t *testing.T) {
	root := t.TempDir()

	writeDir(t, root, "beta-agent", "pipeline.yaml")
	writeDir(t, root, "alpha-agent", "metadata.json")
	writeDir(t, root, "not-a-template", "README.md")
	writeDir(t, root, ".hidden-agent", "metadata.json")
	if err := os.WriteFile(filepath.Join(root, "stray-file"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	templates, err := FindTemplates(root)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{
		filepath.Join(root, "alpha-agent"),
		filepath.Join(root, "beta-agent"),
	}
	if len(templates) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, templates)
	}
	for i := range expected {
		if templates[i] != expected[i] {
			t.Errorf("expected %s at position %d, got %s", expected[i], i, templates[i])
		}
	}
}

func TestFindTemplatesMissingRoot(t *testing.T) {
	templates, err := FindTemplates(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatal(err)
	}
	if len(templates) != 0 {
		t.Errorf("expected no templates, got %v", templates)
	}
}
