// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/internal/state"
	"github.com/cardano-ops/cnodectl/pkg/fsx"
)

func TestRecordAndRemoveInstallationState(t *testing.T) {
	//
	// Given
	//

	core.SetBaseDir(t.TempDir())
	mgr := state.NewManager(fsx.NewManager())

	wb := automa.NewWorkflowBuilder().WithId("record-state-test").Steps(
		RecordInstallationStep(mgr, 9000),
	)
	workflow, err := wb.Build()
	require.NoError(t, err)

	//
	// When
	//

	report := workflow.Execute(context.Background())

	//
	// Then
	//

	require.NoError(t, report.Error)
	require.True(t, report.IsSuccess())

	exists, err := mgr.Exists()
	require.NoError(t, err)
	require.True(t, exists)

	rec, err := mgr.Load(core.DefaultCardanoPort)
	require.NoError(t, err)
	assert.Equal(t, 9000, rec.CardanoPort)
	assert.False(t, rec.LastInstallation.IsZero())

	// Removal drops the record and a second run is a no-op
	wb = automa.NewWorkflowBuilder().WithId("remove-state-test").Steps(
		RemoveInstallationStateStep(mgr),
	)
	workflow, err = wb.Build()
	require.NoError(t, err)

	report = workflow.Execute(context.Background())
	require.NoError(t, report.Error)

	exists, err = mgr.Exists()
	require.NoError(t, err)
	require.False(t, exists)

	// A second removal with no record present is a no-op
	workflow, err = automa.NewWorkflowBuilder().WithId("remove-state-again").Steps(
		RemoveInstallationStateStep(mgr),
	).Build()
	require.NoError(t, err)

	report = workflow.Execute(context.Background())
	require.NoError(t, report.Error)
}
