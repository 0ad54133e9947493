// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"

	"github.com/cardano-ops/cnodectl/cmd/cnodectl/commands/versioncmd"
	"github.com/cardano-ops/cnodectl/internal/config"
	"github.com/cardano-ops/cnodectl/internal/doctor"
	"github.com/cardano-ops/cnodectl/pkg/logx"
)

// examples:
// ./cnodectl install cardano-node --port 9000
// ./cnodectl status
// ./cnodectl setup-deps
// ./cnodectl remove-all

var (
	// Used for flags.
	flagConfig       string
	flagVersion      bool
	flagOutputFormat string

	rootCmd = &cobra.Command{
		Use:   "cnodectl",
		Short: "Provision and manage a Cardano node on Ubuntu hosts",
		Long:  "cnodectl - installs, removes and reports status of a Cardano node by driving Ansible playbooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagVersion {
				versioncmd.PrintVersion(cmd, flagOutputFormat)
				return nil
			}

			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path")

	// support '--version', '-v' to show version information
	rootCmd.PersistentFlags().BoolVarP(&flagVersion, "version", "v", false, "Show version")
	rootCmd.PersistentFlags().StringVarP(&flagOutputFormat, "output", "o", "yaml", "Output format (yaml|json)")

	// disable command sorting to keep the order of commands as added
	cobra.EnableCommandSorting = false

	// add subcommands
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(setupDepsCmd)
	rootCmd.AddCommand(removeAllCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(versioncmd.Get())
}

// Execute executes the root command.
func Execute(ctx context.Context) error {
	if ctx == nil {
		return errorx.IllegalArgument.New("context is required")
	}

	cobra.OnInitialize(func() {
		initConfig(ctx)
	})

	// execute the root command
	_, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to execute command")
	}

	return nil
}

func initConfig(ctx context.Context) {
	err := config.Initialize(flagConfig)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}

	logConfig := config.Get().Log
	err = logx.WithConfig(&logConfig, nil)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}
}
