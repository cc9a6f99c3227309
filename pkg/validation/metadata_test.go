package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opnlabs/tmplint/pkg/report"
)

// writeTemplate creates a template directory with the given files under a
// fresh temp dir and returns its path.
func writeTemplate(t *testing.T, name string, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), name)
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for file, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func containsMessage(msgs []string, substr string) bool {
	for _, msg := range msgs {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func TestValidMetadata(t *testing.T) {
	dir := writeTemplate(t, "my-agent", map[string]string{
		"metadata.json": `{"name": "my agent", "description": "Does things.", "version": "1.0.0"}`,
	})
	result := report.NewResult("my-agent")

	metadata := ValidateMetadata(dir, result)

	if metadata == nil {
		t.Fatal("expected parsed metadata")
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
	for _, want := range []string{
		"'name' follows naming conventions",
		"'description' has proper punctuation",
		"'version' follows semver format",
	} {
		if !containsMessage(result.Passes, want) {
			t.Errorf("missing pass %q, got %v", want, result.Passes)
		}
	}
}

func TestMissingMetadataFile(t *testing.T) {
	dir := writeTemplate(t, "my-agent", nil)
	result := report.NewResult("my-agent")

	metadata := ValidateMetadata(dir, result)

	if metadata != nil {
		t.Error("expected no parsed metadata")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "File not found (required)") {
		t.Errorf("expected exactly one file-not-found error, got %v", result.Errors)
	}
}

func TestInvalidJSONSyntax(t *testing.T) {
	dir := writeTemplate(t, "my-agent", map[string]string{
		"metadata.json": `{"name": "my agent",`,
	})
	result := report.NewResult("my-agent")

	metadata := ValidateMetadata(dir, result)

	if metadata != nil {
		t.Error("expected no parsed metadata after a syntax error")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Invalid JSON syntax") {
		t.Errorf("expected exactly one syntax error, got %v", result.Errors)
	}
}

func TestMissingRequiredFields(t *testing.T) {
	dir := writeTemplate(t, "my-agent", map[string]string{
		"metadata.json": `{}`,
	})
	result := report.NewResult("my-agent")

	ValidateMetadata(dir, result)

	if len(result.Errors) != 3 {
		t.Fatalf("expected one error per missing field, got %v", result.Errors)
	}
	for _, field := range []string{"'name'", "'description'", "'version'"} {
		if !containsMessage(result.Errors, "Missing required field "+field) {
			t.Errorf("missing error for field %s: %v", field, result.Errors)
		}
	}
}

func TestNameCharacterClass(t *testing.T) {
	tests := []struct {
		Name     string
		Value    string
		WantErr  bool
		Suggests string
	}{
		{Name: "valid lowercase", Value: "my agent", WantErr: false},
		{Name: "uppercase rejected", Value: "My Agent", WantErr: true, Suggests: "my agent"},
		{Name: "punctuation rejected", Value: "my-agent!", WantErr: true, Suggests: "my agent"},
		{Name: "digits accepted", Value: "agent 2", WantErr: false},
	}

	for _, tc := range tests {
		dir := writeTemplate(t, "my-agent", map[string]string{
			"metadata.json": `{"name": "` + tc.Value + `", "description": "Does things.", "version": "1.0.0"}`,
		})
		result := report.NewResult("my-agent")

		ValidateMetadata(dir, result)

		hasErr := containsMessage(result.Errors, "must be lowercase alphanumeric with spaces only")
		if hasErr != tc.WantErr {
			t.Errorf("%s: expected error=%v, errors: %v", tc.Name, tc.WantErr, result.Errors)
		}
		if tc.Suggests != "" && !containsMessage(result.Errors, "Suggestion: '"+tc.Suggests+"'") {
			t.Errorf("%s: expected suggestion %q, errors: %v", tc.Name, tc.Suggests, result.Errors)
		}
	}
}

func TestNameDirectoryMismatchIsWarning(t *testing.T) {
	dir := writeTemplate(t, "my-agent", map[string]string{
		"metadata.json": `{"name": "other agent", "description": "Does things.", "version": "1.0.0"}`,
	})
	result := report.NewResult("my-agent")

	ValidateMetadata(dir, result)

	if len(result.Errors) != 0 {
		t.Errorf("mismatch must not be an error, got %v", result.Errors)
	}
	if !containsMessage(result.Warnings, "Expected: 'my agent', Got: 'other agent'") {
		t.Errorf("expected directory mismatch warning, got %v", result.Warnings)
	}
}

func TestDescriptionPunctuation(t *testing.T) {
	tests := []struct {
		Name     string
		Desc     string
		WantWarn bool
	}{
		{Name: "period", Desc: "Does things.", WantWarn: false},
		{Name: "bang", Desc: "Does things!", WantWarn: false},
		{Name: "question", Desc: "Does things?", WantWarn: false},
		{Name: "trailing whitespace trimmed", Desc: "Does things.  ", WantWarn: false},
		{Name: "no punctuation", Desc: "Does things", WantWarn: true},
	}

	for _, tc := range tests {
		dir := writeTemplate(t, "my-agent", map[string]string{
			"metadata.json": `{"name": "my agent", "description": "` + tc.Desc + `", "version": "1.0.0"}`,
		})
		result := report.NewResult("my-agent")

		ValidateMetadata(dir, result)

		hasWarn := containsMessage(result.Warnings, "should end with punctuation")
		if hasWarn != tc.WantWarn {
			t.Errorf("%s: expected warning=%v, warnings: %v", tc.Name, tc.WantWarn, result.Warnings)
		}
	}
}

func TestVersionSemver(t *testing.T) {
	tests := []struct {
		Name    string
		Version string
		WantErr bool
	}{
		{Name: "plain semver", Version: "1.0.0", WantErr: false},
		{Name: "multi digit", Version: "10.22.333", WantErr: false},
		{Name: "two components", Version: "1.0", WantErr: true},
		{Name: "prerelease rejected", Version: "1.0.0-beta", WantErr: true},
		{Name: "v prefix rejected", Version: "v1.0.0", WantErr: true},
	}

	for _, tc := range tests {
		dir := writeTemplate(t, "my-agent", map[string]string{
			"metadata.json": `{"name": "my agent", "description": "Does things.", "version": "` + tc.Version + `"}`,
		})
		result := report.NewResult("my-agent")

		ValidateMetadata(dir, result)

		hasErr := containsMessage(result.Errors, "must follow semver")
		if hasErr != tc.WantErr {
			t.Errorf("%s: expected error=%v, errors: %v", tc.Name, tc.WantErr, result.Errors)
		}
	}
}

func TestFieldChecksAreIndependent(t *testing.T) {
	// A bad name must not suppress the version and description checks.
	dir := writeTemplate(t, "my-agent", map[string]string{
		"metadata.json": `{"name": "BAD NAME", "description": "no punctuation", "version": "not-semver"}`,
	})
	result := report.NewResult("my-agent")

	ValidateMetadata(dir, result)

	if !containsMessage(result.Errors, "must be lowercase alphanumeric") {
		t.Errorf("missing name error: %v", result.Errors)
	}
	if !containsMessage(result.Errors, "must follow semver") {
		t.Errorf("missing version error: %v", result.Errors)
	}
	if !containsMessage(result.Warnings, "should end with punctuation") {
		t.Errorf("missing description warning: %v", result.Warnings)
	}
}
