// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"fmt"

	"github.com/automa-saga/automa"
	"github.com/cardano-ops/cnodectl/internal/exc"
	"github.com/cardano-ops/cnodectl/internal/workflows/notify"
	"github.com/joomcode/errorx"
)

// InstallPipxApplicationStep installs a Python application into an isolated
// pipx environment. pipx treats an already installed application as a no-op,
// so the step is naturally idempotent.
func InstallPipxApplicationStep(runner exc.Runner, app string) automa.Builder {
	var installedByThisStep bool
	stepId := fmt.Sprintf("pipx-install-%s", app)

	return automa.NewStepBuilder().WithId(stepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			res, err := runner.Run(ctx, "pipx", "install", "--include-deps", app)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			if res.ExitCode != 0 {
				return automa.FailureReport(stp,
					automa.WithError(errorx.ExternalError.New(
						"pipx install %s exited with code %d: %s", app, res.ExitCode, res.Stderr)))
			}

			installedByThisStep = true
			return automa.SuccessReport(stp)
		}).
		WithRollback(func(ctx context.Context, stp automa.Step) *automa.Report {
			if !installedByThisStep {
				return automa.StepSkippedReport(stp.Id())
			}

			res, err := runner.Run(ctx, "pipx", "uninstall", app)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			if res.ExitCode != 0 {
				return automa.FailureReport(stp,
					automa.WithError(errorx.ExternalError.New(
						"pipx uninstall %s exited with code %d: %s", app, res.ExitCode, res.Stderr)))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Installing %q via pipx", app)
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to install %q via pipx", app)
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "%q is installed via pipx", app)
		})
}

// InstallGalaxyCollectionStep installs an Ansible Galaxy collection. Galaxy
// skips collections that are already present at a satisfying version.
func InstallGalaxyCollectionStep(runner exc.Runner, collection string) automa.Builder {
	stepId := fmt.Sprintf("galaxy-install-%s", collection)

	return automa.NewStepBuilder().WithId(stepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			res, err := runner.Run(ctx, "ansible-galaxy", "collection", "install", collection)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			if res.ExitCode != 0 {
				return automa.FailureReport(stp,
					automa.WithError(errorx.ExternalError.New(
						"ansible-galaxy collection install %s exited with code %d: %s",
						collection, res.ExitCode, res.Stderr)))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Installing Galaxy collection %q", collection)
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to install Galaxy collection %q", collection)
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Galaxy collection %q is installed", collection)
		})
}
