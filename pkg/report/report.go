// Package report implements the per-template validation result and the
// aggregate summary for a whole run.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Result collects the outcome of one template's validation run. Messages are
// kept in call order within each severity so reports read in rule order.
type Result struct {
	TemplateName string
	Passes       []string
	Warnings     []string
	Errors       []string
}

func NewResult(templateName string) *Result {
	return &Result{TemplateName: templateName}
}

func (r *Result) AddPass(msg string) {
	r.Passes = append(r.Passes, msg)
}

func (r *Result) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// IsValid reports whether the template passed, i.e. no errors were recorded.
// Warnings never affect validity.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// PrintReport writes the human-readable report for this template: passes,
// then warnings, then errors, then a summary line and the verdict.
func (r *Result) PrintReport(w io.Writer) {
	fmt.Fprintf(w, "\n## Template: %s\n", r.TemplateName)
	fmt.Fprintln(w, strings.Repeat("-", 50))

	for _, msg := range r.Passes {
		fmt.Fprintf(w, "  ✅ %s\n", msg)
	}
	for _, msg := range r.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", msg)
	}
	for _, msg := range r.Errors {
		fmt.Fprintf(w, "  ❌ %s\n", msg)
	}

	fmt.Fprintf(w, "\n  Summary: %d errors, %d warnings\n", len(r.Errors), len(r.Warnings))
	if r.IsValid() {
		fmt.Fprintln(w, "  Status: PASSED")
	} else {
		fmt.Fprintln(w, "  Status: FAILED")
	}
}

// Summary aggregates the results of a run in the order templates were
// validated.
type Summary struct {
	results []*Result
}

func (s *Summary) Add(r *Result) {
	s.results = append(s.results, r)
}

func (s *Summary) Validated() int {
	return len(s.results)
}

func (s *Summary) Passed() int {
	return s.Validated() - len(s.FailedNames())
}

// FailedNames returns the names of invalid templates in validation order.
func (s *Summary) FailedNames() []string {
	var failed []string
	for _, r := range s.results {
		if !r.IsValid() {
			failed = append(failed, r.TemplateName)
		}
	}
	return failed
}

func (s *Summary) TotalErrors() int {
	total := 0
	for _, r := range s.results {
		total += len(r.Errors)
	}
	return total
}

func (s *Summary) TotalWarnings() int {
	total := 0
	for _, r := range s.results {
		total += len(r.Warnings)
	}
	return total
}

// AllValid reports whether every validated template passed. A run with zero
// templates is valid.
func (s *Summary) AllValid() bool {
	return len(s.FailedNames()) == 0
}

// Print writes the aggregate summary block with counts, the failed template
// list and the final verdict.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 60))
	fmt.Fprintln(w, "VALIDATION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	failed := s.FailedNames()
	fmt.Fprintf(w, "\nTemplates validated: %d\n", s.Validated())
	fmt.Fprintf(w, "  Passed: %d\n", s.Passed())
	fmt.Fprintf(w, "  Failed: %d\n", len(failed))
	fmt.Fprintf(w, "\nTotal errors: %d\n", s.TotalErrors())
	fmt.Fprintf(w, "Total warnings: %d\n", s.TotalWarnings())

	if len(failed) > 0 {
		fmt.Fprintln(w, "\nFailed templates:")
		for _, name := range failed {
			fmt.Fprintf(w, "  - %s\n", name)
		}
		fmt.Fprintln(w)
		color.New(color.FgRed).Fprintln(w, "❌ Validation FAILED")
		return
	}

	fmt.Fprintln(w)
	color.New(color.FgGreen).Fprintln(w, "✅ All templates passed validation")
}
