// SPDX-License-Identifier: Apache-2.0

package common

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/automa-saga/automa"
	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/internal/doctor"
	"github.com/cardano-ops/cnodectl/internal/workflows"
	"github.com/cardano-ops/cnodectl/internal/workflows/steps"
	"github.com/cardano-ops/cnodectl/pkg/logx"
	"github.com/spf13/cobra"
)

// RunWorkflow executes a workflow and handles error
func RunWorkflow(ctx context.Context, b automa.Builder) {
	wb, err := b.Build()
	if err != nil {
		doctor.CheckErr(ctx, err)
	}

	report := wb.Execute(ctx)
	CheckWorkflowReport(ctx, report)
}

// RunLockedWorkflow executes a workflow under the cross-process operation
// lock. Mutating commands go through this so concurrent invocations cannot
// interleave playbook runs.
func RunLockedWorkflow(ctx context.Context, b automa.Builder) {
	lock, err := workflows.AcquireOperationLock(ctx)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}
	defer workflows.ReleaseOperationLock(lock)

	RunWorkflow(ctx, b)
}

// CheckWorkflowReport saves the execution report, then diagnoses and
// terminates on any failure. Saving happens first so a failed run still
// leaves a report behind.
func CheckWorkflowReport(ctx context.Context, report *automa.Report) {
	timestamp := time.Now().Format("20060102_150405")
	reportPath := path.Join(core.Paths().LogsDir, fmt.Sprintf("run_report_%s.yaml", timestamp))
	steps.PrintWorkflowReport(report, reportPath)
	logx.As().Info().Str("report_path", reportPath).Msg("Workflow report is saved")

	if report.Error != nil || report.IsFailed() {
		doctor.CheckReportErr(ctx, report)
	}
}

// DefaultRunE is a default RunE function that shows help message and provides a placeholder to add common behaviour.
// We always add a run function to commands to ensure cobra marks it as Runnable and allows our commands to invoke
// PersistentPreRunE functions of the root command.
func DefaultRunE(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}
