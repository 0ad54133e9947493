// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/cobra"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Show how to upgrade the node",
	Long:  "Prints upgrade guidance. No action is performed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Println("In-place upgrade is not automated.")
		cmd.Println("To move to a newer node version:")
		cmd.Println("  1. Check the running version:    cnodectl status")
		cmd.Println("  2. Re-run the installation:      sudo cnodectl install cardano-node --node-version <X.Y.Z>")
		cmd.Println("The install playbook replaces the binaries and restarts the service in place.")
		return nil
	},
}
