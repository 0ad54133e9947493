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
	flagInstallPort            int
	flagInstallNodeVersion     string
	flagInstallStopOnError     bool
	flagInstallContinueOnError bool
	flagInstallRollbackOnError bool
)

var installCmd = &cobra.Command{
	Use:   "install [target]",
	Short: "Install a Cardano node",
	Long:  "Runs prerequisite checks, patches the playbook parameters and installs the node through Ansible",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := core.TargetCardanoNode
		if len(args) > 0 {
			target = args[0]
		}

		port, err := common.FlagPort.Value(cmd, args)
		if err != nil {
			return err
		}

		execMode, err := common.GetExecutionMode(flagInstallContinueOnError, flagInstallStopOnError,
			flagInstallRollbackOnError)
		if err != nil {
			return errorx.Decorate(err, "failed to determine execution mode")
		}

		inputs := core.UserInputs[core.InstallInputs]{
			Common: core.CommonInputs{
				ExecutionOptions: core.WorkflowExecutionOptions{
					ExecutionMode: execMode,
					RollbackMode:  execMode,
				},
			},
			Custom: core.InstallInputs{
				Target:      target,
				Port:        port,
				NodeVersion: flagInstallNodeVersion,
			},
		}

		// All inputs are validated before any subprocess is spawned
		if err := inputs.Validate(); err != nil {
			return err
		}

		logx.As().Debug().
			Str("target", target).
			Int("port", port).
			Str("nodeVersion", flagInstallNodeVersion).
			Msg("Installing Cardano node")

		tb := workflows.NewToolbox(nio.NewOSStreams())
		common.RunLockedWorkflow(cmd.Context(), workflows.NewInstallWorkflow(tb, inputs))

		logx.As().Info().Int("port", port).Msg("Successfully installed Cardano node")
		return nil
	},
}

func init() {
	common.FlagPort.SetVar(installCmd, &flagInstallPort, false)
	common.FlagNodeVersion.SetVar(installCmd, &flagInstallNodeVersion, false)
	common.FlagStopOnError.SetVar(installCmd, &flagInstallStopOnError, false)
	common.FlagContinueOnError.SetVar(installCmd, &flagInstallContinueOnError, false)
	common.FlagRollbackOnError.SetVar(installCmd, &flagInstallRollbackOnError, false)
}
