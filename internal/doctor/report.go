// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"context"

	"github.com/automa-saga/automa"
)

// CheckReportErr extracts the root cause from a workflow report and terminates
// the process through CheckErr. Step errors take precedence over the workflow
// level error because they carry the original failure.
func CheckReportErr(ctx context.Context, report *automa.Report) {
	if report == nil {
		return
	}

	rootCause := report.Error
	for _, stepReport := range report.StepReports {
		if stepReport.HasError() {
			rootCause = stepReport.Error
			break
		}
	}

	if rootCause == nil {
		return
	}

	CheckErr(ctx, rootCause)
}
