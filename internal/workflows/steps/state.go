// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"time"

	"github.com/automa-saga/automa"
	"github.com/cardano-ops/cnodectl/internal/state"
	"github.com/cardano-ops/cnodectl/internal/workflows/notify"
)

// RecordInstallationStep persists the installation record after a successful
// playbook run so later invocations can report the effective port.
func RecordInstallationStep(mgr *state.Manager, port int) automa.Builder {
	var recordedByThisStep bool

	return automa.NewStepBuilder().WithId("record-installation-state").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			rec := state.Installation{
				CardanoPort:      port,
				LastInstallation: time.Now().UTC(),
			}
			if err := mgr.Record(rec); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			recordedByThisStep = true
			return automa.SuccessReport(stp)
		}).
		WithRollback(func(ctx context.Context, stp automa.Step) *automa.Report {
			if !recordedByThisStep {
				return automa.StepSkippedReport(stp.Id())
			}
			if err := mgr.Remove(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Recording installation state")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to record installation state")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Installation state recorded")
		})
}

// RemoveInstallationStateStep removes the persisted installation record. A
// missing record is not an error.
func RemoveInstallationStateStep(mgr *state.Manager) automa.Builder {
	return automa.NewStepBuilder().WithId("remove-installation-state").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			exists, err := mgr.Exists()
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			if !exists {
				return automa.StepSkippedReport(stp.Id())
			}

			if err = mgr.Remove(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Removing installation state")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to remove installation state")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Installation state removed")
		})
}
