// Tmplint validates agent template bundles against the template authoring rules.
//
// A template is a directory bundling a metadata.json descriptor, a pipeline.yaml
// definition and an optional wiki.MD page.
package main

import (
	"github.com/opnlabs/tmplint/cmd/tmplint"
)

func main() {
	tmplint.Execute()
}
