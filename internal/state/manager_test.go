// SPDX-License-Identifier: Apache-2.0

package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/pkg/fsx"
)

func TestRecordAndLoad(t *testing.T) {
	core.SetBaseDir(t.TempDir())
	m := NewManager(fsx.NewManager())

	exists, err := m.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	// no record yet: fall back to the given default port
	rec, err := m.Load(6002)
	require.NoError(t, err)
	assert.Equal(t, 6002, rec.CardanoPort)
	assert.True(t, rec.LastInstallation.IsZero())

	when := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, m.Record(Installation{CardanoPort: 9000, LastInstallation: when}))

	exists, err = m.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	rec, err = m.Load(6002)
	require.NoError(t, err)
	assert.Equal(t, 9000, rec.CardanoPort)
	assert.True(t, rec.LastInstallation.Equal(when))
}

func TestLoadCorruptRecord(t *testing.T) {
	core.SetBaseDir(t.TempDir())
	fm := fsx.NewManager()
	m := NewManager(fm)

	require.NoError(t, fm.CreateDirectory(core.Paths().StateDir, true))
	require.NoError(t, fm.WriteFile(m.statePath(), []byte("{not json")))

	_, err := m.Load(6002)
	require.Error(t, err)
}

func TestRemove(t *testing.T) {
	core.SetBaseDir(t.TempDir())
	m := NewManager(fsx.NewManager())

	require.NoError(t, m.Record(Installation{CardanoPort: 9000, LastInstallation: time.Now()}))
	require.NoError(t, m.Remove())

	exists, err := m.Exists()
	require.NoError(t, err)
	assert.False(t, exists)
}
