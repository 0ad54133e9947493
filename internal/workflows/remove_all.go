// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"github.com/automa-saga/automa"
	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/internal/setup"
	"github.com/cardano-ops/cnodectl/internal/workflows/steps"
)

// NewRemoveAllWorkflow tears the whole installation down: the node service is
// stopped and disabled, the uninstall playbook runs, the automation directory
// and the persisted state are deleted and the shell rc file is cleaned up.
// It continues past individual failures so a half-broken host can still be
// cleaned as far as possible.
func NewRemoveAllWorkflow(tb *Toolbox, rc *setup.RcFileManager) *automa.WorkflowBuilder {
	return automa.NewWorkflowBuilder().WithId("remove-all").
		WithExecutionMode(automa.ContinueOnError).
		Steps(
			steps.CheckPrivilegesStep(),
			steps.StopNodeServiceStep(tb.Config.Node.ServiceName),
			steps.DisableNodeServiceStep(tb.Config.Node.ServiceName),
			steps.RunUninstallPlaybookStep(tb.Gateway, tb.Streams),
			steps.RemoveDirectoryStep(tb.FileManager, core.Paths().InstallDir),
			steps.StripShellPathStep(rc),
			steps.RemoveInstallationStateStep(tb.State),
		)
}
