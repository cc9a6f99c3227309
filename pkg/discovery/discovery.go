// Package discovery locates template directories under a templates root.
package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/opnlabs/tmplint/pkg/models"
)

// FindTemplates returns every direct, non-hidden subdirectory of root that
// contains at least one of the two descriptor files, in name order. A missing
// root yields no templates rather than an error.
func FindTemplates(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var templates []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if hasDescriptor(dir) {
			templates = append(templates, dir)
		}
	}
	return templates, nil
}

func hasDescriptor(dir string) bool {
	for _, name := range []string{models.MetadataFile, models.PipelineFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
