// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"

	"github.com/cardano-ops/cnodectl/cmd/cnodectl/commands/common"
	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/internal/nio"
	"github.com/cardano-ops/cnodectl/internal/workflows"
	"github.com/cardano-ops/cnodectl/pkg/logx"
)

var (
	flagUninstallStopOnError     bool
	flagUninstallContinueOnError bool
	flagUninstallRollbackOnError bool
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall [target]",
	Short: "Uninstall the Cardano node",
	Long:  "Runs prerequisite checks and removes the node through the uninstall playbook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := core.TargetCardanoNode
		if len(args) > 0 {
			target = args[0]
		}

		execMode, err := common.GetExecutionMode(flagUninstallContinueOnError, flagUninstallStopOnError,
			flagUninstallRollbackOnError)
		if err != nil {
			return errorx.Decorate(err, "failed to determine execution mode")
		}

		inputs := core.UserInputs[core.UninstallInputs]{
			Common: core.CommonInputs{
				ExecutionOptions: core.WorkflowExecutionOptions{
					ExecutionMode: execMode,
					RollbackMode:  execMode,
				},
			},
			Custom: core.UninstallInputs{Target: target},
		}

		if err := inputs.Validate(); err != nil {
			return err
		}

		logx.As().Debug().Str("target", target).Msg("Uninstalling Cardano node")

		tb := workflows.NewToolbox(nio.NewOSStreams())
		common.RunLockedWorkflow(cmd.Context(), workflows.NewUninstallWorkflow(tb, inputs))

		logx.As().Info().Msg("Successfully uninstalled Cardano node")
		return nil
	},
}

func init() {
	common.FlagStopOnError.SetVar(uninstallCmd, &flagUninstallStopOnError, false)
	common.FlagContinueOnError.SetVar(uninstallCmd, &flagUninstallContinueOnError, false)
	common.FlagRollbackOnError.SetVar(uninstallCmd, &flagUninstallRollbackOnError, false)
}
