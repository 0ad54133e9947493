// SPDX-License-Identifier: Apache-2.0

package ansible

import (
	"context"
	"path"
	"strings"

	"github.com/joomcode/errorx"

	"github.com/cardano-ops/cnodectl/internal/config"
	"github.com/cardano-ops/cnodectl/internal/exc"
	"github.com/cardano-ops/cnodectl/internal/nio"
	"github.com/cardano-ops/cnodectl/pkg/exit"
	"github.com/cardano-ops/cnodectl/pkg/fsx"
)

const (
	playbookBinary = "ansible-playbook"
	galaxyBinary   = "ansible-galaxy"
)

var (
	ErrNamespace     = errorx.NewNamespace("ansible")
	PrerequisiteErr  = ErrNamespace.NewType("prerequisite_missing", errorx.NotFound())
	PlaybookRunError = ErrNamespace.NewType("playbook_run_failed")
)

// Gateway drives the external Ansible toolchain: prerequisite checks before a
// run and the playbook invocations themselves.
type Gateway struct {
	runner      exc.Runner
	fileManager fsx.Manager
	cfg         config.AnsibleConfig
}

func NewGateway(runner exc.Runner, fileManager fsx.Manager, cfg config.AnsibleConfig) *Gateway {
	return &Gateway{
		runner:      runner,
		fileManager: fileManager,
		cfg:         cfg,
	}
}

// InstallPlaybookPath returns the absolute path of the install playbook.
func (g *Gateway) InstallPlaybookPath() string {
	return path.Join(g.cfg.InstallDir, g.cfg.InstallPlaybook)
}

// UninstallPlaybookPath returns the absolute path of the uninstall playbook.
func (g *Gateway) UninstallPlaybookPath() string {
	return path.Join(g.cfg.InstallDir, g.cfg.UninstallPlaybook)
}

// InventoryPath returns the absolute path of the inventory file.
func (g *Gateway) InventoryPath() string {
	return path.Join(g.cfg.InstallDir, g.cfg.Inventory)
}

// ParameterTemplatePath returns the absolute path of the parameter template.
func (g *Gateway) ParameterTemplatePath() string {
	return path.Join(g.cfg.InstallDir, g.cfg.ParameterTemplate)
}

// UninstallParametersPath returns the absolute path of the fixed parameter
// file used by the uninstall playbook.
func (g *Gateway) UninstallParametersPath() string {
	return path.Join(g.cfg.InstallDir, g.cfg.UninstallParameters)
}

// CheckBinary verifies the ansible-playbook binary is on PATH.
func (g *Gateway) CheckBinary(_ context.Context) error {
	if _, err := g.runner.LookPath(playbookBinary); err != nil {
		return PrerequisiteErr.Wrap(err, "%s not found on PATH", playbookBinary)
	}
	return nil
}

// CheckCollections verifies the required Galaxy collections are installed.
func (g *Gateway) CheckCollections(ctx context.Context) error {
	res, err := g.runner.Run(ctx, galaxyBinary, "collection", "list")
	if err != nil {
		return PrerequisiteErr.Wrap(err, "failed to list ansible collections")
	}
	if res.ExitCode != 0 {
		return PrerequisiteErr.New("%s exited with code %d: %s", galaxyBinary, res.ExitCode, strings.TrimSpace(res.Stderr))
	}

	for _, collection := range g.cfg.Collections {
		if !strings.Contains(res.Stdout, collection) {
			return PrerequisiteErr.New("ansible collection %q is not installed", collection)
		}
	}

	return nil
}

// CheckFiles verifies the playbooks, parameter files and a non-empty
// inventory are present under the install dir.
func (g *Gateway) CheckFiles() error {
	for _, p := range []string{
		g.InstallPlaybookPath(),
		g.UninstallPlaybookPath(),
		g.ParameterTemplatePath(),
		g.UninstallParametersPath(),
	} {
		if !g.fileManager.IsRegularFile(p) {
			return PrerequisiteErr.New("automation file missing: %s", p)
		}
	}

	info, exists, err := g.fileManager.PathExists(g.InventoryPath())
	if err != nil {
		return PrerequisiteErr.Wrap(err, "failed to check inventory file: %s", g.InventoryPath())
	}
	if !exists {
		return PrerequisiteErr.New("inventory file missing: %s", g.InventoryPath())
	}
	if info.Size() == 0 {
		return PrerequisiteErr.New("inventory file is empty: %s", g.InventoryPath())
	}

	return nil
}

// Preflight runs all prerequisite checks in order.
func (g *Gateway) Preflight(ctx context.Context) error {
	if err := g.CheckBinary(ctx); err != nil {
		return err
	}
	if err := g.CheckCollections(ctx); err != nil {
		return err
	}
	return g.CheckFiles()
}

// RunPlaybook invokes a playbook against the inventory with the given
// parameter file, relaying output to streams as it is produced. A non-zero
// exit from ansible-playbook is returned as a CommandError so the child's
// exit code reaches the shell verbatim.
func (g *Gateway) RunPlaybook(ctx context.Context, streams nio.StdStreams, playbookPath, paramsPath string) error {
	args := []string{
		"-i", g.InventoryPath(),
		"--extra-vars", "@" + paramsPath,
		playbookPath,
	}

	res, err := g.runner.RunStreaming(ctx, streams, playbookBinary, args...)
	if err != nil {
		return PlaybookRunError.Wrap(err, "failed to start %s", playbookBinary)
	}

	if res.ExitCode != 0 {
		runErr := PlaybookRunError.New("%s exited with code %d: %s",
			playbookBinary, res.ExitCode, strings.TrimSpace(res.Stderr))
		return exit.NewCommandError(runErr, exit.Code(res.ExitCode))
	}

	return nil
}
