package validation

import (
	"github.com/opnlabs/tmplint/pkg/models"
	"github.com/opnlabs/tmplint/pkg/report"
)

// CheckCrossFile confirms agreement between the two parsed descriptors. The
// check is skipped entirely when either document is absent. Only the positive
// case is reported; a name/directory mismatch was already flagged as a
// warning by the metadata validator.
func CheckCrossFile(dir string, result *report.Result, metadata, pipeline map[string]any) {
	if metadata == nil || pipeline == nil {
		return
	}

	if name, _ := metadata["name"].(string); name == models.ExpectedName(dir) {
		result.AddPass("Cross-file: metadata.json 'name' matches directory name")
	}
}
