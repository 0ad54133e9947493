// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/cobra"
	"github.com/zcalusic/sysinfo"

	"github.com/cardano-ops/cnodectl/internal/config"
	"github.com/cardano-ops/cnodectl/internal/exc"
	"github.com/cardano-ops/cnodectl/internal/node"
	"github.com/cardano-ops/cnodectl/internal/state"
	"github.com/cardano-ops/cnodectl/pkg/fsx"
	"github.com/cardano-ops/cnodectl/pkg/logx"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show node status",
	Long:  "Reports the configured port, whether the node process is running and whether the port is listening",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		// The configured port is read back from persisted state, falling back
		// to the configured default when no install has been recorded.
		rec, err := state.NewManager(fsx.NewManager()).Load(cfg.Node.Port)
		if err != nil {
			return err
		}

		runner := exc.NewRunner(*logx.As())
		st, err := node.NewProber(runner).Probe(cmd.Context(), rec.CardanoPort)
		if err != nil {
			return err
		}

		var si sysinfo.SysInfo
		si.GetSysInfo()

		cmd.Printf("Host:             %s (%s %s, %s)\n",
			si.Node.Hostname, si.OS.Name, si.OS.Version, si.OS.Architecture)
		cmd.Printf("Configured port:  %d\n", st.Port)
		if st.ProcessActive {
			cmd.Println("Node process:     running")
		} else {
			cmd.Println("Node process:     not running")
		}
		if st.PortListening {
			cmd.Println("Port state:       listening")
		} else {
			cmd.Println("Port state:       not listening")
		}
		if !rec.LastInstallation.IsZero() {
			cmd.Printf("Last install:     %s\n", rec.LastInstallation.Format("2006-01-02 15:04:05 MST"))
		}

		return nil
	},
}
