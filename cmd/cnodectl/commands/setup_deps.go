// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"

	"github.com/cardano-ops/cnodectl/cmd/cnodectl/commands/common"
	"github.com/cardano-ops/cnodectl/internal/nio"
	"github.com/cardano-ops/cnodectl/internal/setup"
	"github.com/cardano-ops/cnodectl/internal/workflows"
	"github.com/cardano-ops/cnodectl/pkg/logx"
)

var (
	flagSetupDepsStopOnError     bool
	flagSetupDepsContinueOnError bool
	flagSetupDepsRollbackOnError bool
)

var setupDepsCmd = &cobra.Command{
	Use:   "setup-deps",
	Short: "Install the toolchain dependencies",
	Long:  "Installs the system packages, the Ansible runtime via pipx and the required Galaxy collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		execMode, err := common.GetExecutionMode(flagSetupDepsContinueOnError, flagSetupDepsStopOnError,
			flagSetupDepsRollbackOnError)
		if err != nil {
			return errorx.Decorate(err, "failed to determine execution mode")
		}

		tb := workflows.NewToolbox(nio.NewOSStreams())
		rc, err := setup.NewRcFileManager(tb.FileManager, tb.Config.Setup.RcFile)
		if err != nil {
			return err
		}

		logx.As().Debug().Strs("collections", tb.Config.Ansible.Collections).
			Msg("Installing toolchain dependencies")

		wb := workflows.NewSetupDepsWorkflow(tb, rc).WithExecutionMode(execMode)
		common.RunLockedWorkflow(cmd.Context(), wb)

		logx.As().Info().Msg("Toolchain dependencies are installed")
		return nil
	},
}

func init() {
	common.FlagStopOnError.SetVar(setupDepsCmd, &flagSetupDepsStopOnError, false)
	common.FlagContinueOnError.SetVar(setupDepsCmd, &flagSetupDepsContinueOnError, false)
	common.FlagRollbackOnError.SetVar(setupDepsCmd, &flagSetupDepsRollbackOnError, false)
}
