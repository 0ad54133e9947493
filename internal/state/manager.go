// SPDX-License-Identifier: Apache-2.0

package state

import (
	"encoding/json"
	"path"
	"time"

	"github.com/joomcode/errorx"

	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/pkg/fsx"
)

const (
	stateFileName = "state.json"

	// maxStateFileSize bounds reads of the state file.
	maxStateFileSize = 1 << 20
)

// Installation is the persisted record of the last successful install.
type Installation struct {
	CardanoPort      int       `json:"cardano_port"`
	LastInstallation time.Time `json:"last_installation"`
}

// Manager handles persistence of the installation record under the user's
// bookkeeping directory.
type Manager struct {
	fileManager fsx.Manager
}

// NewManager creates a new state manager
func NewManager(fileManager fsx.Manager) *Manager {
	return &Manager{
		fileManager: fileManager,
	}
}

func (m *Manager) statePath() string {
	return path.Join(core.Paths().StateDir, stateFileName)
}

// Exists checks if an installation record is present.
func (m *Manager) Exists() (bool, error) {
	_, exists, err := m.fileManager.PathExists(m.statePath())
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Record persists the installation record, creating the state directory when
// needed.
func (m *Manager) Record(rec Installation) error {
	if err := m.fileManager.CreateDirectory(core.Paths().StateDir, true); err != nil {
		return errorx.IllegalState.Wrap(err, "failed to create state directory")
	}

	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to encode installation record")
	}

	if err := m.fileManager.WriteFile(m.statePath(), payload); err != nil {
		return errorx.IllegalState.Wrap(err, "failed to write installation record")
	}

	return nil
}

// Load reads the installation record back. When no record exists, it returns
// a record holding the given default port so status can still report a
// configured port.
func (m *Manager) Load(defaultPort int) (Installation, error) {
	exists, err := m.Exists()
	if err != nil {
		return Installation{}, err
	}
	if !exists {
		return Installation{CardanoPort: defaultPort}, nil
	}

	payload, err := m.fileManager.ReadFile(m.statePath(), maxStateFileSize)
	if err != nil {
		return Installation{}, errorx.IllegalState.Wrap(err, "failed to read installation record")
	}

	var rec Installation
	if err := json.Unmarshal(payload, &rec); err != nil {
		return Installation{}, errorx.IllegalFormat.Wrap(err, "corrupt installation record: %s", m.statePath())
	}

	return rec, nil
}

// Remove deletes the installation record if present.
func (m *Manager) Remove() error {
	return m.fileManager.RemoveAll(m.statePath())
}
