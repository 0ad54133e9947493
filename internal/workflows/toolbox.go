// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"github.com/cardano-ops/cnodectl/internal/ansible"
	"github.com/cardano-ops/cnodectl/internal/config"
	"github.com/cardano-ops/cnodectl/internal/deps"
	"github.com/cardano-ops/cnodectl/internal/exc"
	"github.com/cardano-ops/cnodectl/internal/nio"
	"github.com/cardano-ops/cnodectl/internal/params"
	"github.com/cardano-ops/cnodectl/internal/state"
	"github.com/cardano-ops/cnodectl/pkg/fsx"
	"github.com/cardano-ops/cnodectl/pkg/logx"
)

// Toolbox bundles the collaborators workflows are assembled from. A single
// instance is built per command invocation with the effective configuration.
type Toolbox struct {
	Config      config.Config
	FileManager fsx.Manager
	Runner      exc.Runner
	Streams     nio.StdStreams
	Gateway     *ansible.Gateway
	Fetcher     *deps.Fetcher
	Patcher     *params.Patcher
	State       *state.Manager
}

func NewToolbox(streams nio.StdStreams) *Toolbox {
	cfg := config.Get()
	fileManager := fsx.NewManager()
	runner := exc.NewRunner(*logx.As())

	return &Toolbox{
		Config:      cfg,
		FileManager: fileManager,
		Runner:      runner,
		Streams:     streams,
		Gateway:     ansible.NewGateway(runner, fileManager, cfg.Ansible),
		Fetcher:     deps.NewFetcher(),
		Patcher:     params.NewPatcher(fileManager),
		State:       state.NewManager(fileManager),
	}
}
