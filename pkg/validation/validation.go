// Package validation implements the rule checks for template bundles:
// metadata.json, pipeline.yaml, the optional wiki.MD and the cross-file
// consistency check.
package validation

import (
	"path/filepath"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/opnlabs/tmplint/pkg/report"
)

var (
	namePattern   = regexp.MustCompile(`^[a-z0-9 ]+$`)
	semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

var validate *validator.Validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// The hard invariants on metadata fields are registered as named
	// validations. Registration failing means no template can be checked
	// at all, so abort before any run starts.
	if err := validate.RegisterValidation("tmplname", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("semverstrict", func(fl validator.FieldLevel) bool {
		return semverPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// ValidateTemplate runs all validators against one template directory and
// collects the outcome into a fresh result. Each file is checked
// independently, so a broken descriptor never suppresses checks on its
// siblings.
func ValidateTemplate(dir string) *report.Result {
	result := report.NewResult(filepath.Base(dir))

	metadata := ValidateMetadata(dir, result)
	pipeline := ValidatePipeline(dir, result)
	ValidateWiki(dir, result, metadata)
	CheckCrossFile(dir, result, metadata, pipeline)

	return result
}
