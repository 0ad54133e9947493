package core

import (
	"os"
	"path"
	"sync"
)

// PathSet holds the filesystem locations the tool operates on. The state,
// logs and temp directories live under the invoking user's home so the tool
// never needs elevated privileges for its own bookkeeping.
type PathSet struct {
	// InstallDir is the automation files tree (playbooks, inventory,
	// parameter templates).
	InstallDir string

	// StateDir holds the persisted installation state.
	StateDir string

	// LogsDir holds execution logs and workflow reports.
	LogsDir string

	// TempDir holds per-run scratch files such as patched parameter files.
	TempDir string

	// DiagnosticsDir holds failure snapshots written by the doctor.
	DiagnosticsDir string

	// LockFile guards mutating operations against concurrent runs.
	LockFile string
}

var (
	pathsMu    sync.RWMutex
	installDir = "/opt/cnode-automation"
	baseDir    = defaultBaseDir()
)

func defaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to the working directory when HOME is unset, e.g. under
		// some init systems.
		home = "."
	}
	return path.Join(home, ".cnodectl")
}

// Paths returns the current path set.
func Paths() PathSet {
	pathsMu.RLock()
	defer pathsMu.RUnlock()

	return PathSet{
		InstallDir:     installDir,
		StateDir:       baseDir,
		LogsDir:        path.Join(baseDir, "logs"),
		TempDir:        path.Join(baseDir, "tmp"),
		DiagnosticsDir: path.Join(baseDir, "diagnostics"),
		LockFile:       path.Join(baseDir, "cnodectl.lock"),
	}
}

// SetInstallDir overrides the automation files location. Called by the
// configuration layer after loading the config file.
func SetInstallDir(dir string) {
	pathsMu.Lock()
	defer pathsMu.Unlock()
	installDir = dir
}

// SetBaseDir overrides the per-user bookkeeping directory. Intended for tests.
func SetBaseDir(dir string) {
	pathsMu.Lock()
	defer pathsMu.Unlock()
	baseDir = dir
}
