// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/cardano-ops/cnodectl/internal/setup"
	"github.com/cardano-ops/cnodectl/internal/workflows/notify"
)

// AppendShellPathStep appends the pipx PATH export to the user's shell rc
// file. The line is tagged so it can be stripped on removal, and appending is
// idempotent.
func AppendShellPathStep(rc *setup.RcFileManager) automa.Builder {
	return automa.NewStepBuilder().WithId("append-shell-path").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := rc.AppendManagedLine(setup.PipxPathLine); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithRollback(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := rc.StripManagedLines(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Updating shell PATH in %s", rc.Path())
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to update shell PATH")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Shell PATH updated")
		})
}

// StripShellPathStep removes all managed lines from the user's shell rc file.
// A missing rc file is not an error.
func StripShellPathStep(rc *setup.RcFileManager) automa.Builder {
	return automa.NewStepBuilder().WithId("strip-shell-path").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := rc.StripManagedLines(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Removing managed lines from %s", rc.Path())
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to clean up shell rc file")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Shell rc file cleaned up")
		})
}
