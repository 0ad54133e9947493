// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/cardano-ops/cnodectl/cmd/cnodectl/commands/common"
	"github.com/cardano-ops/cnodectl/internal/config"
	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/internal/setup"
	"github.com/cardano-ops/cnodectl/pkg/fsx"
	"github.com/cardano-ops/cnodectl/pkg/logx"
)

var flagSetupForce bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Download the automation files",
	Long:  "Downloads the playbook archive and extracts it into the automation directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		fileManager := fsx.NewManager()
		destDir := core.Paths().InstallDir

		if fileManager.IsDirectory(destDir) {
			if !flagSetupForce {
				overwrite := false
				err := huh.NewConfirm().
					Title("An automation directory already exists at " + destDir + ". Overwrite it?").
					Value(&overwrite).
					Run()
				if err != nil {
					return err
				}
				if !overwrite {
					cmd.Println("Setup aborted, existing installation left untouched.")
					return nil
				}
			}

			if err := fileManager.RemoveAll(destDir); err != nil {
				return err
			}
		}

		logx.As().Debug().Str("url", cfg.Setup.ArchiveURL).Str("destDir", destDir).
			Msg("Setting up automation files")

		if err := setup.NewInstaller(fileManager, cfg.Setup.ExcludeDirs...).Install(cmd.Context(), cfg.Setup.ArchiveURL, destDir); err != nil {
			return err
		}

		logx.As().Info().Str("destDir", destDir).Msg("Automation files are in place")
		return nil
	},
}

func init() {
	common.FlagForce.SetVar(setupCmd, &flagSetupForce, false)
}
