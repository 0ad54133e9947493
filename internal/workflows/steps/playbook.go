// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/cardano-ops/cnodectl/internal/ansible"
	"github.com/cardano-ops/cnodectl/internal/nio"
	"github.com/cardano-ops/cnodectl/internal/workflows/notify"
	"github.com/joomcode/errorx"
)

// RunInstallPlaybookStep executes the install playbook with the patched
// parameter file produced by PrepareParametersStep. Playbook output is
// streamed to the user's terminal as it is produced.
func RunInstallPlaybookStep(gw *ansible.Gateway, streams nio.StdStreams, paramsPath *string) automa.Builder {
	return automa.NewStepBuilder().WithId("run-install-playbook").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if *paramsPath == "" {
				return automa.FailureReport(stp,
					automa.WithError(errorx.IllegalState.New("no patched parameter file is available")))
			}

			if err := gw.RunPlaybook(ctx, streams, gw.InstallPlaybookPath(), *paramsPath); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Running install playbook")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Install playbook failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Install playbook completed")
		})
}

// RunUninstallPlaybookStep executes the uninstall playbook with the static
// uninstall parameter file.
func RunUninstallPlaybookStep(gw *ansible.Gateway, streams nio.StdStreams) automa.Builder {
	return automa.NewStepBuilder().WithId("run-uninstall-playbook").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := gw.RunPlaybook(ctx, streams, gw.UninstallPlaybookPath(), gw.UninstallParametersPath()); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Running uninstall playbook")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Uninstall playbook failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Uninstall playbook completed")
		})
}
