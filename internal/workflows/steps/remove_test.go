// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/stretchr/testify/require"

	"github.com/cardano-ops/cnodectl/pkg/fsx"
)

func TestRemoveDirectoryStep(t *testing.T) {
	dir := path.Join(t.TempDir(), "automation")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(path.Join(dir, "install.yml"), []byte("---\n"), 0o644))

	workflow, err := automa.NewWorkflowBuilder().WithId("remove-dir-test").Steps(
		RemoveDirectoryStep(fsx.NewManager(), dir),
	).Build()
	require.NoError(t, err)

	report := workflow.Execute(context.Background())

	require.NoError(t, report.Error)
	_, err = os.Stat(dir)
	require.True(t, os.IsNotExist(err))
}

func TestRemoveDirectoryStepMissingDir(t *testing.T) {
	dir := path.Join(t.TempDir(), "does-not-exist")

	workflow, err := automa.NewWorkflowBuilder().WithId("remove-missing-dir-test").Steps(
		RemoveDirectoryStep(fsx.NewManager(), dir),
	).Build()
	require.NoError(t, err)

	report := workflow.Execute(context.Background())
	require.NoError(t, report.Error)
}

func TestRemoveDirectoryStepRejectsRelativePath(t *testing.T) {
	workflow, err := automa.NewWorkflowBuilder().WithId("remove-relative-dir-test").Steps(
		RemoveDirectoryStep(fsx.NewManager(), "relative/dir"),
	).Build()
	require.NoError(t, err)

	report := workflow.Execute(context.Background())
	require.True(t, report.IsFailed())
}
