// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"
	"os"
	"path"

	"github.com/automa-saga/automa"
	"github.com/cardano-ops/cnodectl/internal/core"
	"gopkg.in/yaml.v3"
)

// PrintWorkflowReport prints the workflow execution report in YAML format and
// saves a copy at reportPath for later inspection.
var PrintWorkflowReport = func(report *automa.Report, reportPath string) {
	b, err := yaml.Marshal(report)
	if err != nil {
		fmt.Printf("Failed to marshal report: %v\n", err)
		return
	}
	fmt.Printf("Workflow Execution Report:\n%s\n", b)

	if reportPath == "" {
		return
	}

	if err = os.MkdirAll(path.Dir(reportPath), core.DefaultFilePerm); err != nil {
		fmt.Printf("Failed to create report directory: %v\n", err)
		return
	}

	if err = os.WriteFile(reportPath, b, 0o644); err != nil {
		fmt.Printf("Failed to save report to %s: %v\n", reportPath, err)
	}
}
