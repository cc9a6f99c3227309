// Package models defines the template bundle layout and the generic document
// shapes shared by the validators. Descriptors are parsed into loose
// mapping/list/scalar values first so that a missing field is a checkable
// condition rather than a decoding failure.
package models

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// File names that make up a template bundle. MetadataFile and PipelineFile
// are required, WikiFile is optional.
const (
	MetadataFile = "metadata.json"
	PipelineFile = "pipeline.yaml"
	WikiFile     = "wiki.MD"
)

// InputTypes lists the accepted values for a pipeline input's 'type' field.
var InputTypes = []string{"string", "secret", "connector"}

func ValidInputType(t string) bool {
	for _, v := range InputTypes {
		if t == v {
			return true
		}
	}
	return false
}

// AsMapping returns v as a generic mapping if it is one.
func AsMapping(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsList returns v as a generic ordered list if it is one.
func AsList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// Stringify renders a scalar document value for use in report messages and
// name comparisons. Floats keep a trailing .0 when integral so a document
// value like 1.0 echoes back as written.
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	}
	return fmt.Sprintf("%v", v)
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !math.IsInf(f, 0) && !math.IsNaN(f) && !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// ExpectedName derives the metadata name a template directory implies:
// the directory base name with hyphens replaced by spaces.
func ExpectedName(dir string) string {
	return strings.ReplaceAll(filepath.Base(dir), "-", " ")
}
