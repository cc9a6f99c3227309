package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/opnlabs/tmplint/pkg/models"
	"github.com/opnlabs/tmplint/pkg/report"
)

var titlePattern = regexp.MustCompile(`(?m)^#\s+.+`)

// requiredSections are the level-2 headings every wiki page should carry.
var requiredSections = []string{"overview", "key capabilities", "inputs"}

var sectionPatterns = make(map[string]*regexp.Regexp, len(requiredSections))

func init() {
	for _, section := range requiredSections {
		sectionPatterns[section] = regexp.MustCompile(`(?mi)^##\s+` + regexp.QuoteMeta(section))
	}
}

// ValidateWiki checks the optional wiki.MD page of a template directory. Its
// absence is only a warning and never affects validity. The parsed metadata
// mapping is accepted for future cross-checks against the page content.
func ValidateWiki(dir string, result *report.Result, metadata map[string]any) {
	_ = metadata

	path := filepath.Join(dir, models.WikiFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		result.AddWarning("wiki.MD: File not found (optional but recommended)")
		return
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		result.AddError(fmt.Sprintf("wiki.MD: Cannot read file - %v", err))
		return
	}
	result.AddPass("wiki.MD: File exists and is readable")

	content := string(contents)

	if titlePattern.MatchString(content) {
		result.AddPass("wiki.MD: Title present")
	} else {
		result.AddError("wiki.MD: Missing title (# heading)")
	}

	for _, section := range requiredSections {
		if sectionPatterns[section].MatchString(content) {
			result.AddPass(fmt.Sprintf("wiki.MD: '%s' section present", section))
		} else {
			result.AddWarning(fmt.Sprintf("wiki.MD: Missing '%s' section (recommended)", section))
		}
	}

	checkCodeFences(content, result)
}

// checkCodeFences walks fence lines tracking open/close state; only opening
// fences carry a language tag, so closing fences are never counted as
// untagged blocks.
func checkCodeFences(content string, result *report.Result) {
	untagged := 0
	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, " \t")
		if !strings.HasPrefix(line, "```") {
			continue
		}
		if inBlock {
			inBlock = false
			continue
		}
		inBlock = true
		if strings.TrimPrefix(line, "```") == "" {
			untagged++
		}
	}

	if untagged > 0 {
		result.AddWarning(fmt.Sprintf("wiki.MD: %d code block(s) missing language specifier", untagged))
	} else {
		result.AddPass("wiki.MD: All code blocks have language specifiers")
	}
}
