// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/cardano-ops/cnodectl/cmd/cnodectl/commands/common"
	"github.com/cardano-ops/cnodectl/internal/nio"
	"github.com/cardano-ops/cnodectl/internal/setup"
	"github.com/cardano-ops/cnodectl/internal/workflows"
	"github.com/cardano-ops/cnodectl/pkg/logx"
)

// removeAllConfirmation is the exact string the user must type before any
// destructive action is taken.
const removeAllConfirmation = "remove-all"

var flagRemoveAllForce bool

// promptRemoveAllConfirmation asks the user to type the confirmation string.
// Declared as a variable so tests can supply the answer.
var promptRemoveAllConfirmation = func() (string, error) {
	var answer string
	err := huh.NewInput().
		Title("This will remove the node, its service and all automation files.").
		Description("Type \"" + removeAllConfirmation + "\" to confirm:").
		Value(&answer).
		Run()
	return answer, err
}

var removeAllCmd = &cobra.Command{
	Use:   "remove-all",
	Short: "Remove the node and all automation files",
	Long:  "Stops and disables the node service, runs the uninstall playbook and deletes the automation directory, state and shell rc entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagRemoveAllForce {
			answer, err := promptRemoveAllConfirmation()
			if err != nil {
				return err
			}

			// Anything other than the exact confirmation string is a no-op
			// and a clean exit.
			if answer != removeAllConfirmation {
				cmd.Println("Confirmation did not match, nothing was removed.")
				return nil
			}
		}

		tb := workflows.NewToolbox(nio.NewOSStreams())
		rc, err := setup.NewRcFileManager(tb.FileManager, tb.Config.Setup.RcFile)
		if err != nil {
			return err
		}

		logx.As().Debug().Msg("Removing node and automation files")

		common.RunLockedWorkflow(cmd.Context(), workflows.NewRemoveAllWorkflow(tb, rc))

		logx.As().Info().Msg("Node and automation files are removed")
		return nil
	},
}

func init() {
	common.FlagForce.SetVar(removeAllCmd, &flagRemoveAllForce, false)
}
