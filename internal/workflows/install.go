// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"github.com/automa-saga/automa"
	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/internal/workflows/steps"
)

// NewInstallWorkflow assembles the full install pipeline: privilege and
// ansible preflight, parameter preparation, the playbook run and finally
// state recording. Nothing is executed before all inputs validated upstream.
func NewInstallWorkflow(tb *Toolbox, inputs core.UserInputs[core.InstallInputs]) *automa.WorkflowBuilder {
	paramsPath := new(string)

	return automa.NewWorkflowBuilder().WithId("install-cardano-node").
		WithExecutionMode(inputs.Common.ExecutionOptions.ExecutionMode).
		Steps(
			steps.CheckPrivilegesStep(),
			steps.CheckAnsibleBinaryStep(tb.Gateway),
			steps.CheckAnsibleCollectionsStep(tb.Gateway),
			steps.CheckAutomationFilesStep(tb.Gateway),
			steps.PrepareParametersStep(tb.Fetcher, tb.Patcher, tb.Gateway,
				tb.Config.Node.VersionsURL, inputs.Custom, paramsPath),
			steps.RunInstallPlaybookStep(tb.Gateway, tb.Streams, paramsPath),
			steps.RecordInstallationStep(tb.State, inputs.Custom.Port),
		)
}

// NewUninstallWorkflow assembles the uninstall pipeline. It reuses the same
// preflight as install, then runs the uninstall playbook and drops the
// persisted installation record.
func NewUninstallWorkflow(tb *Toolbox, inputs core.UserInputs[core.UninstallInputs]) *automa.WorkflowBuilder {
	return automa.NewWorkflowBuilder().WithId("uninstall-cardano-node").
		WithExecutionMode(inputs.Common.ExecutionOptions.ExecutionMode).
		Steps(
			steps.CheckPrivilegesStep(),
			steps.CheckAnsibleBinaryStep(tb.Gateway),
			steps.CheckAnsibleCollectionsStep(tb.Gateway),
			steps.CheckAutomationFilesStep(tb.Gateway),
			steps.RunUninstallPlaybookStep(tb.Gateway, tb.Streams),
			steps.RemoveInstallationStateStep(tb.State),
		)
}
