package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/opnlabs/tmplint/pkg/models"
	"github.com/opnlabs/tmplint/pkg/report"
)

// ValidateMetadata checks the metadata.json descriptor of a template
// directory. It returns the parsed mapping for the cross-file check, or nil
// when the file is absent or could not be parsed into a mapping. Every field
// check is independent; a failure on one field never suppresses the others.
func ValidateMetadata(dir string, result *report.Result) map[string]any {
	path := filepath.Join(dir, models.MetadataFile)

	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			result.AddError("metadata.json: File not found (required)")
		} else {
			result.AddError(fmt.Sprintf("metadata.json: Cannot read file - %v", err))
		}
		return nil
	}

	var doc any
	if err := json.Unmarshal(contents, &doc); err != nil {
		result.AddError(fmt.Sprintf("metadata.json: Invalid JSON syntax - %v", err))
		return nil
	}
	result.AddPass("metadata.json: Valid JSON syntax")

	// A non-object root still gets the required-field errors below, it just
	// cannot satisfy any of them.
	metadata, isMapping := models.AsMapping(doc)

	for _, field := range []string{"name", "description", "version"} {
		if _, present := metadata[field]; !present {
			result.AddError(fmt.Sprintf("metadata.json: Missing required field '%s'", field))
		}
	}

	if v, present := metadata["name"]; present {
		checkName(dir, models.Stringify(v), result)
	}

	if v, present := metadata["description"]; present {
		checkDescription(models.Stringify(v), result)
	}

	if v, present := metadata["version"]; present {
		checkVersion(models.Stringify(v), result)
	}

	if !isMapping {
		return nil
	}
	return metadata
}

func checkName(dir, name string, result *report.Result) {
	if err := validate.Var(name, "tmplname"); err != nil {
		msg := fmt.Sprintf("metadata.json: 'name' must be lowercase alphanumeric with spaces only. Got: '%s'", name)
		if suggestion := suggestName(name); suggestion != "" {
			msg += fmt.Sprintf(". Suggestion: '%s'", suggestion)
		}
		result.AddError(msg)
	} else {
		result.AddPass("metadata.json: 'name' follows naming conventions")
	}

	// Soft invariant, checked regardless of the character-class outcome.
	if expected := models.ExpectedName(dir); name != expected {
		result.AddWarning(fmt.Sprintf(
			"metadata.json: 'name' should match directory name. Expected: '%s', Got: '%s'", expected, name))
	}
}

func checkDescription(desc string, result *report.Result) {
	desc = strings.TrimRight(desc, " \t\r\n")
	if strings.HasSuffix(desc, ".") || strings.HasSuffix(desc, "!") || strings.HasSuffix(desc, "?") {
		result.AddPass("metadata.json: 'description' has proper punctuation")
	} else {
		result.AddWarning("metadata.json: 'description' should end with punctuation")
	}
}

func checkVersion(version string, result *report.Result) {
	if err := validate.Var(version, "semverstrict"); err != nil {
		result.AddError(fmt.Sprintf(
			"metadata.json: 'version' must follow semver (MAJOR.MINOR.PATCH). Got: '%s'", version))
	} else {
		result.AddPass("metadata.json: 'version' follows semver format")
	}
}

// suggestName maps a rejected name onto the closest conforming spelling, or
// returns "" when no useful suggestion can be derived.
func suggestName(name string) string {
	s := strings.ReplaceAll(slug.Make(name), "-", " ")
	if s == "" || s == name {
		return ""
	}
	return s
}
