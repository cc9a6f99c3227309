package tmplint

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/opnlabs/tmplint/pkg/discovery"
	"github.com/opnlabs/tmplint/pkg/report"
	"github.com/opnlabs/tmplint/pkg/validation"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tmplint [template-dir ...]",
	Short: "Tmplint validates agent template bundles",
	Long: `Tmplint checks template directories ( metadata.json, pipeline.yaml and an
optional wiki.MD ) against the template authoring rules and reports errors,
warnings and passed checks per template. Without arguments it validates every
template found under the templates directory next to the binary.`,

	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(run(args, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) int {
	templates := args
	if len(templates) == 0 {
		root, err := templatesRoot()
		if err != nil {
			log.Fatal("could not locate the templates directory", "err", err)
		}
		templates, err = discovery.FindTemplates(root)
		if err != nil {
			log.Fatal("could not scan the templates directory", "err", err)
		}
	}

	if len(templates) == 0 {
		fmt.Fprintln(out, "No templates found to validate.")
		return 0
	}

	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "Agent Template Validation")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "\nValidating %d template(s)...\n", len(templates))

	var summary report.Summary
	for _, dir := range templates {
		if _, err := os.Stat(dir); err != nil {
			log.Warn("template path does not exist, skipping", "path", dir)
			continue
		}

		result := validation.ValidateTemplate(dir)
		summary.Add(result)
		result.PrintReport(out)
	}

	summary.Print(out)

	if summary.AllValid() {
		return 0
	}
	return 1
}

// templatesRoot is the discovery root used when no explicit template paths
// are given: the templates directory next to the binary.
func templatesRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), "templates"), nil
}
