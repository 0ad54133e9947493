// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"github.com/automa-saga/automa"
	"github.com/cardano-ops/cnodectl/internal/setup"
	"github.com/cardano-ops/cnodectl/internal/workflows/steps"
	"github.com/cardano-ops/cnodectl/pkg/software"
)

// NewSetupDepsWorkflow installs everything the install pipeline needs on a
// fresh Ubuntu host: system packages, Ansible via pipx, the Galaxy
// collections the playbooks import, and the PATH entry pipx requires.
func NewSetupDepsWorkflow(tb *Toolbox, rc *setup.RcFileManager) *automa.WorkflowBuilder {
	wb := automa.NewWorkflowBuilder().WithId("setup-dependencies")

	builders := []automa.Builder{
		steps.CheckPrivilegesStep(),
		steps.RefreshSystemPackageIndex(),
		steps.InstallSystemPackage("python3-pip", software.NewPython3Pip),
		steps.InstallSystemPackage("python3-venv", software.NewPython3Venv),
		steps.InstallSystemPackage("pipx", software.NewPipx),
		steps.InstallSystemPackage("curl", software.NewCurl),
		steps.InstallSystemPackage("net-tools", software.NewNetTools),
		steps.InstallPipxApplicationStep(tb.Runner, "ansible"),
		steps.AppendShellPathStep(rc),
	}
	for _, collection := range tb.Config.Ansible.Collections {
		builders = append(builders, steps.InstallGalaxyCollectionStep(tb.Runner, collection))
	}

	return wb.Steps(builders...)
}
