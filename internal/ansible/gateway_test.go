// SPDX-License-Identifier: Apache-2.0

package ansible

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardano-ops/cnodectl/internal/config"
	"github.com/cardano-ops/cnodectl/internal/exc"
	"github.com/cardano-ops/cnodectl/internal/nio"
	"github.com/cardano-ops/cnodectl/pkg/exit"
	"github.com/cardano-ops/cnodectl/pkg/fsx"
)

type fakeRunner struct {
	lookPathErr error
	result      *exc.Result
	runErr      error
	lastArgs    []string
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.lookPathErr != nil {
		return "", f.lookPathErr
	}
	return "/usr/bin/" + name, nil
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*exc.Result, error) {
	f.lastArgs = append([]string{name}, args...)
	if f.result == nil {
		return &exc.Result{}, f.runErr
	}
	return f.result, f.runErr
}

func (f *fakeRunner) RunStreaming(ctx context.Context, _ nio.StdStreams, name string, args ...string) (*exc.Result, error) {
	return f.Run(ctx, name, args...)
}

func (f *fakeRunner) RunInteractive(ctx context.Context, _ nio.StdStreams, name string, args ...string) (*exc.Result, error) {
	return f.Run(ctx, name, args...)
}

func testConfig(dir string) config.AnsibleConfig {
	return config.AnsibleConfig{
		InstallDir:          dir,
		InstallPlaybook:     "install-cardano-node.yml",
		UninstallPlaybook:   "uninstall-cardano-node.yml",
		Inventory:           "inventory.ini",
		ParameterTemplate:   "cardano-params.yml",
		UninstallParameters: "cardano-uninstall-params.yml",
		Collections:         []string{"community.general", "ansible.posix"},
	}
}

func seedAutomationTree(t *testing.T, dir string) {
	t.Helper()
	for _, name := range []string{
		"install-cardano-node.yml",
		"uninstall-cardano-node.yml",
		"cardano-params.yml",
		"cardano-uninstall-params.yml",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("---\n"), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inventory.ini"), []byte("[cardano]\nlocalhost\n"), 0644))
}

func TestCheckBinary(t *testing.T) {
	g := NewGateway(&fakeRunner{}, fsx.NewManager(), testConfig(t.TempDir()))
	require.NoError(t, g.CheckBinary(context.Background()))

	g = NewGateway(&fakeRunner{lookPathErr: errors.New("not found")}, fsx.NewManager(), testConfig(t.TempDir()))
	err := g.CheckBinary(context.Background())
	require.Error(t, err)
	assert.True(t, errorx.IsOfType(err, PrerequisiteErr))
}

func TestCheckCollections(t *testing.T) {
	r := &fakeRunner{result: &exc.Result{Stdout: "community.general 8.1.0\nansible.posix 1.5.4\n"}}
	g := NewGateway(r, fsx.NewManager(), testConfig(t.TempDir()))
	require.NoError(t, g.CheckCollections(context.Background()))
	assert.Equal(t, []string{"ansible-galaxy", "collection", "list"}, r.lastArgs)

	r = &fakeRunner{result: &exc.Result{Stdout: "community.general 8.1.0\n"}}
	g = NewGateway(r, fsx.NewManager(), testConfig(t.TempDir()))
	err := g.CheckCollections(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ansible.posix")
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	seedAutomationTree(t, dir)

	g := NewGateway(&fakeRunner{}, fsx.NewManager(), testConfig(dir))
	require.NoError(t, g.CheckFiles())
}

func TestCheckFilesMissingPlaybook(t *testing.T) {
	dir := t.TempDir()
	seedAutomationTree(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "install-cardano-node.yml")))

	g := NewGateway(&fakeRunner{}, fsx.NewManager(), testConfig(dir))
	err := g.CheckFiles()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "install-cardano-node.yml")
}

func TestCheckFilesEmptyInventory(t *testing.T) {
	dir := t.TempDir()
	seedAutomationTree(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inventory.ini"), nil, 0644))

	g := NewGateway(&fakeRunner{}, fsx.NewManager(), testConfig(dir))
	err := g.CheckFiles()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestRunPlaybookSuccess(t *testing.T) {
	dir := t.TempDir()
	r := &fakeRunner{result: &exc.Result{ExitCode: 0}}
	g := NewGateway(r, fsx.NewManager(), testConfig(dir))

	streams := nio.NewTestIOStreamsDiscard()
	err := g.RunPlaybook(context.Background(), streams, g.InstallPlaybookPath(), "/tmp/params.yml")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ansible-playbook",
		"-i", filepath.Join(dir, "inventory.ini"),
		"--extra-vars", "@/tmp/params.yml",
		filepath.Join(dir, "install-cardano-node.yml"),
	}, r.lastArgs)
}

func TestRunPlaybookPropagatesExitCode(t *testing.T) {
	r := &fakeRunner{result: &exc.Result{ExitCode: 4, Stderr: "unreachable host"}}
	g := NewGateway(r, fsx.NewManager(), testConfig(t.TempDir()))

	err := g.RunPlaybook(context.Background(), nio.NewTestIOStreamsDiscard(), g.InstallPlaybookPath(), "/tmp/params.yml")
	require.Error(t, err)
	assert.Equal(t, exit.Code(4), exit.CodeOf(err))
	assert.Contains(t, err.Error(), "unreachable host")
}

func TestRunPlaybookStartFailure(t *testing.T) {
	r := &fakeRunner{result: &exc.Result{ExitCode: 1}, runErr: errors.New("exec format error")}
	g := NewGateway(r, fsx.NewManager(), testConfig(t.TempDir()))

	err := g.RunPlaybook(context.Background(), nio.NewTestIOStreamsDiscard(), g.InstallPlaybookPath(), "/tmp/params.yml")
	require.Error(t, err)
	assert.True(t, errorx.IsOfType(err, PlaybookRunError))
	assert.Equal(t, exit.GeneralError, exit.CodeOf(err))
}
