// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"strings"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardano-ops/cnodectl/internal/exc"
	"github.com/cardano-ops/cnodectl/internal/nio"
)

// fakeRunner records invocations and serves canned results keyed by command
// name.
type fakeRunner struct {
	results map[string]*exc.Result
	calls   []string
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*exc.Result, error) {
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	if res, ok := f.results[name]; ok {
		return res, nil
	}
	return &exc.Result{}, nil
}

func (f *fakeRunner) RunStreaming(ctx context.Context, _ nio.StdStreams, name string, args ...string) (*exc.Result, error) {
	return f.Run(ctx, name, args...)
}

func (f *fakeRunner) RunInteractive(ctx context.Context, _ nio.StdStreams, name string, args ...string) (*exc.Result, error) {
	return f.Run(ctx, name, args...)
}

func TestInstallPipxApplicationStep(t *testing.T) {
	runner := &fakeRunner{results: map[string]*exc.Result{"pipx": {ExitCode: 0}}}

	workflow, err := automa.NewWorkflowBuilder().WithId("pipx-install-test").Steps(
		InstallPipxApplicationStep(runner, "ansible"),
	).Build()
	require.NoError(t, err)

	report := workflow.Execute(context.Background())

	require.NoError(t, report.Error)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "pipx install --include-deps ansible", runner.calls[0])
}

func TestInstallPipxApplicationStepFailure(t *testing.T) {
	runner := &fakeRunner{results: map[string]*exc.Result{
		"pipx": {ExitCode: 1, Stderr: "No Python interpreter found"},
	}}

	workflow, err := automa.NewWorkflowBuilder().WithId("pipx-install-failure-test").Steps(
		InstallPipxApplicationStep(runner, "ansible"),
	).Build()
	require.NoError(t, err)

	report := workflow.Execute(context.Background())
	require.True(t, report.IsFailed())
}

func TestInstallGalaxyCollectionStep(t *testing.T) {
	runner := &fakeRunner{results: map[string]*exc.Result{"ansible-galaxy": {ExitCode: 0}}}

	workflow, err := automa.NewWorkflowBuilder().WithId("galaxy-install-test").Steps(
		InstallGalaxyCollectionStep(runner, "community.general"),
	).Build()
	require.NoError(t, err)

	report := workflow.Execute(context.Background())

	require.NoError(t, report.Error)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "ansible-galaxy collection install community.general", runner.calls[0])
}
