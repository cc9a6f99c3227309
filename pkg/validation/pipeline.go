package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/opnlabs/tmplint/pkg/models"
	"github.com/opnlabs/tmplint/pkg/report"
	"gopkg.in/yaml.v3"
)

// ValidatePipeline checks the pipeline.yaml descriptor of a template
// directory. It returns the parsed document for the cross-file check even
// when structural errors were recorded; only an unreadable, unparseable or
// non-mapping document returns nil.
func ValidatePipeline(dir string, result *report.Result) map[string]any {
	path := filepath.Join(dir, models.PipelineFile)

	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			result.AddError("pipeline.yaml: File not found (required)")
		} else {
			result.AddError(fmt.Sprintf("pipeline.yaml: Cannot read file - %v", err))
		}
		return nil
	}

	var doc any
	if err := yaml.Unmarshal(contents, &doc); err != nil {
		result.AddError(fmt.Sprintf("pipeline.yaml: Invalid YAML syntax - %v", err))
		return nil
	}
	result.AddPass("pipeline.yaml: Valid YAML syntax")

	pipeline, isMapping := models.AsMapping(doc)
	if !isMapping {
		result.AddError("pipeline.yaml: Root must be a mapping/object")
		return nil
	}

	if v, present := pipeline["version"]; !present {
		result.AddError("pipeline.yaml: Missing 'version' field at top level")
	} else if n, isInt := v.(int); !isInt || n != 1 {
		result.AddWarning(fmt.Sprintf("pipeline.yaml: Expected 'version: 1', got '%s'", models.Stringify(v)))
	} else {
		result.AddPass("pipeline.yaml: 'version: 1' present")
	}

	sectionValue, present := pipeline["pipeline"]
	if !present {
		result.AddError("pipeline.yaml: Missing 'pipeline' section")
		return pipeline
	}
	section, isMapping := models.AsMapping(sectionValue)
	if !isMapping {
		result.AddError("pipeline.yaml: 'pipeline' section must be a mapping")
		return pipeline
	}

	checkStages(section, result)
	checkInputs(section, result)

	return pipeline
}

func checkStages(section map[string]any, result *report.Result) {
	stagesValue, present := section["stages"]
	if !present {
		result.AddError("pipeline.yaml: Missing 'stages' in pipeline")
		return
	}
	stages, isList := models.AsList(stagesValue)
	if !isList {
		result.AddError("pipeline.yaml: 'stages' must be a list")
		return
	}

	stageNames := make([]string, 0, len(stages))
	for i, stageValue := range stages {
		stage, isMapping := models.AsMapping(stageValue)
		if !isMapping {
			result.AddError(fmt.Sprintf("pipeline.yaml: Stage %d must be a mapping", i))
			continue
		}

		label := entryLabel(stage, i)
		if nameValue, present := stage["name"]; !present {
			result.AddError(fmt.Sprintf("pipeline.yaml: Stage %d missing 'name' field", i))
		} else {
			stageNames = append(stageNames, models.Stringify(nameValue))
		}

		if platformValue, present := stage["platform"]; present {
			platform, _ := models.AsMapping(platformValue)
			if _, present := platform["os"]; !present {
				result.AddWarning(fmt.Sprintf("pipeline.yaml: Stage '%s' platform missing 'os'", label))
			}
			if _, present := platform["arch"]; !present {
				result.AddWarning(fmt.Sprintf("pipeline.yaml: Stage '%s' platform missing 'arch'", label))
			}
		}

		if stepsValue, present := stage["steps"]; present {
			checkSteps(stepsValue, label, result)
		}
	}

	if duplicates := duplicateNames(stageNames); len(duplicates) > 0 {
		result.AddError(fmt.Sprintf("pipeline.yaml: Duplicate stage names: %s", formatNameSet(duplicates)))
	} else {
		result.AddPass("pipeline.yaml: All stage names are unique")
	}
}

func checkSteps(stepsValue any, stageLabel string, result *report.Result) {
	steps, isList := models.AsList(stepsValue)
	if !isList {
		result.AddError(fmt.Sprintf("pipeline.yaml: 'steps' in stage '%s' must be a list", stageLabel))
		return
	}

	stepNames := make([]string, 0, len(steps))
	for j, stepValue := range steps {
		step, isMapping := models.AsMapping(stepValue)
		if !isMapping {
			continue
		}

		if nameValue, present := step["name"]; !present {
			result.AddWarning(fmt.Sprintf("pipeline.yaml: Step %d in stage '%s' missing 'name'", j, stageLabel))
		} else {
			stepNames = append(stepNames, models.Stringify(nameValue))
		}

		if image := containerImage(step); strings.HasSuffix(image, ":latest") {
			result.AddWarning(fmt.Sprintf(
				"pipeline.yaml: Step '%s' uses ':latest' tag. Consider using explicit version tags.",
				entryLabel(step, j)))
		}
	}

	if duplicates := duplicateNames(stepNames); len(duplicates) > 0 {
		result.AddError(fmt.Sprintf(
			"pipeline.yaml: Duplicate step names in stage '%s': %s", stageLabel, formatNameSet(duplicates)))
	}
}

func checkInputs(section map[string]any, result *report.Result) {
	inputsValue, present := section["inputs"]
	if !present {
		result.AddWarning("pipeline.yaml: No 'inputs' section defined")
		return
	}
	inputs, isMapping := models.AsMapping(inputsValue)
	if !isMapping {
		return
	}
	result.AddPass(fmt.Sprintf("pipeline.yaml: %d inputs defined", len(inputs)))

	// Generic mappings are unordered; iterate sorted so reruns render
	// byte-identical reports.
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def, isMapping := models.AsMapping(inputs[name])
		if !isMapping {
			result.AddWarning(fmt.Sprintf("pipeline.yaml: Input '%s' should be a mapping", name))
			continue
		}

		if typeValue, present := def["type"]; !present {
			result.AddWarning(fmt.Sprintf("pipeline.yaml: Input '%s' missing 'type' field", name))
		} else if t := models.Stringify(typeValue); !models.ValidInputType(t) {
			result.AddWarning(fmt.Sprintf(
				"pipeline.yaml: Input '%s' has unknown type '%s'. Expected: string, secret, or connector", name, t))
		}

		if _, present := def["description"]; !present {
			result.AddWarning(fmt.Sprintf("pipeline.yaml: Input '%s' missing description (recommended)", name))
		}
	}
}

// entryLabel names a stage or step in messages, falling back to its list
// index when it has no name.
func entryLabel(entry map[string]any, index int) string {
	if nameValue, present := entry["name"]; present {
		return models.Stringify(nameValue)
	}
	return strconv.Itoa(index)
}

func containerImage(step map[string]any) string {
	run, ok := models.AsMapping(step["run"])
	if !ok {
		return ""
	}
	container, ok := models.AsMapping(run["container"])
	if !ok {
		return ""
	}
	image, _ := container["image"].(string)
	return image
}

// duplicateNames returns the sorted set of names appearing more than once.
func duplicateNames(names []string) []string {
	counts := make(map[string]int, len(names))
	for _, name := range names {
		counts[name]++
	}

	var duplicates []string
	for name, count := range counts {
		if count > 1 {
			duplicates = append(duplicates, name)
		}
	}
	sort.Strings(duplicates)
	return duplicates
}

func formatNameSet(names []string) string {
	return "[" + strings.Join(names, ", ") + "]"
}
