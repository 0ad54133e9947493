// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/automa-saga/automa"
	"github.com/cardano-ops/cnodectl/internal/ansible"
	"github.com/cardano-ops/cnodectl/internal/doctor"
	"github.com/cardano-ops/cnodectl/internal/workflows/notify"
	"github.com/cardano-ops/cnodectl/pkg/logx"
	"github.com/joomcode/errorx"
)

// CheckPrivilegesStep validates that the current user has superuser privileges.
// Provisioning playbooks escalate through sudo, so failing early gives a much
// clearer message than a mid-playbook permission error.
func CheckPrivilegesStep() automa.Builder {
	return automa.NewStepBuilder().WithId("validate-privileges").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			current, err := user.Current()
			if err != nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.IllegalState.Wrap(err, "failed to get current user")))
			}

			if current.Uid != "0" {
				return automa.FailureReport(stp,
					automa.WithError(
						errorx.IllegalState.New("requires superuser privilege").
							WithProperty(doctor.ErrPropertyResolution,
								fmt.Sprintf("Run the command with 'sudo' or as root user: `sudo %s`",
									strings.Join(os.Args, " ")))))
			}

			logx.As().Info().Msg("Superuser privilege validated")
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Starting privilege validation")
			return ctx, nil

		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Privilege validation failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Privilege validation completed")
		})
}

// CheckAnsibleBinaryStep verifies that ansible-playbook is resolvable on PATH.
func CheckAnsibleBinaryStep(gw *ansible.Gateway) automa.Builder {
	return automa.NewStepBuilder().WithId("check-ansible-binary").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := gw.CheckBinary(ctx); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Checking for ansible-playbook on PATH")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "ansible-playbook is not available")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "ansible-playbook is available")
		})
}

// CheckAnsibleCollectionsStep verifies the required Galaxy collections are
// installed.
func CheckAnsibleCollectionsStep(gw *ansible.Gateway) automa.Builder {
	return automa.NewStepBuilder().WithId("check-ansible-collections").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := gw.CheckCollections(ctx); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Checking required Ansible collections")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Required Ansible collections are missing")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Required Ansible collections are present")
		})
}

// CheckAutomationFilesStep verifies the playbooks, parameter files and the
// inventory exist under the automation directory.
func CheckAutomationFilesStep(gw *ansible.Gateway) automa.Builder {
	return automa.NewStepBuilder().WithId("check-automation-files").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := gw.CheckFiles(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Checking automation files")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Automation files are missing or invalid")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Automation files are in place")
		})
}
