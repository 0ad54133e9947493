// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/cardano-ops/cnodectl/internal/workflows/notify"
	"github.com/cardano-ops/cnodectl/pkg/logx"
	"github.com/cardano-ops/cnodectl/pkg/systemd"
)

// StopNodeServiceStep stops the node's systemd unit. The step is skipped when
// the unit is not active, including when it does not exist at all.
func StopNodeServiceStep(serviceName string) automa.Builder {
	return automa.NewStepBuilder().WithId("stop-node-service").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			activeState, err := systemd.UnitActiveState(ctx, serviceName)
			if err != nil {
				logx.As().Warn().Err(err).Str("service", serviceName).
					Msg("Could not query unit state, skipping stop")
				return automa.StepSkippedReport(stp.Id())
			}

			if activeState != "active" && activeState != "activating" {
				logx.As().Info().Str("service", serviceName).Str("state", activeState).
					Msg("Service is not running, skipping stop")
				return automa.StepSkippedReport(stp.Id())
			}

			if err = systemd.StopService(ctx, serviceName); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Stopping service %q", serviceName)
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to stop service %q", serviceName)
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Service %q stop step completed", serviceName)
		})
}

// DisableNodeServiceStep disables the node's systemd unit so it no longer
// starts at boot. Missing units are skipped.
func DisableNodeServiceStep(serviceName string) automa.Builder {
	return automa.NewStepBuilder().WithId("disable-node-service").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if _, err := systemd.UnitActiveState(ctx, serviceName); err != nil {
				logx.As().Warn().Err(err).Str("service", serviceName).
					Msg("Could not query unit state, skipping disable")
				return automa.StepSkippedReport(stp.Id())
			}

			if err := systemd.DisableService(ctx, serviceName); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if err := systemd.DaemonReload(ctx); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Disabling service %q", serviceName)
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to disable service %q", serviceName)
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Service %q disable step completed", serviceName)
		})
}
