// SPDX-License-Identifier: Apache-2.0

package setup

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joomcode/errorx"

	"github.com/cardano-ops/cnodectl/pkg/fsx"
)

const (
	// rcMarker tags every line this tool appends so they can be stripped on
	// remove-all without touching the user's own entries.
	rcMarker = "# managed by cnodectl"

	// PipxPathLine puts pipx-installed binaries (ansible-playbook among them)
	// on PATH for interactive shells.
	PipxPathLine = `export PATH="$PATH:$HOME/.local/bin"`

	maxRcFileSize = 1 << 20
)

// RcFileManager appends and strips the tool's managed lines in a shell rc
// file.
type RcFileManager struct {
	fileManager fsx.Manager
	rcPath      string
}

// NewRcFileManager resolves rcFile against the user's home directory when it
// is a bare name such as ".bashrc".
func NewRcFileManager(fileManager fsx.Manager, rcFile string) (*RcFileManager, error) {
	rcPath := rcFile
	if !filepath.IsAbs(rcFile) {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errorx.IllegalState.Wrap(err, "failed to resolve home directory")
		}
		rcPath = filepath.Join(home, rcFile)
	}

	return &RcFileManager{fileManager: fileManager, rcPath: rcPath}, nil
}

func (r *RcFileManager) Path() string {
	return r.rcPath
}

// AppendManagedLine appends line (tagged with the managed marker) unless an
// identical managed line is already present. A missing rc file is created.
func (r *RcFileManager) AppendManagedLine(line string) error {
	managed := line + " " + rcMarker

	content := ""
	_, exists, err := r.fileManager.PathExists(r.rcPath)
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to check rc file: %s", r.rcPath)
	}
	if exists {
		payload, err := r.fileManager.ReadFile(r.rcPath, maxRcFileSize)
		if err != nil {
			return errorx.IllegalState.Wrap(err, "failed to read rc file: %s", r.rcPath)
		}
		content = string(payload)
	}

	for _, existing := range strings.Split(content, "\n") {
		if strings.TrimSpace(existing) == managed {
			return nil
		}
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += managed + "\n"

	if err := r.fileManager.WriteFile(r.rcPath, []byte(content)); err != nil {
		return errorx.IllegalState.Wrap(err, "failed to write rc file: %s", r.rcPath)
	}

	return nil
}

// StripManagedLines removes every line carrying the managed marker. A missing
// rc file is not an error.
func (r *RcFileManager) StripManagedLines() error {
	_, exists, err := r.fileManager.PathExists(r.rcPath)
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to check rc file: %s", r.rcPath)
	}
	if !exists {
		return nil
	}

	payload, err := r.fileManager.ReadFile(r.rcPath, maxRcFileSize)
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to read rc file: %s", r.rcPath)
	}

	lines := strings.Split(string(payload), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(line, rcMarker) {
			continue
		}
		kept = append(kept, line)
	}

	if err := r.fileManager.WriteFile(r.rcPath, []byte(strings.Join(kept, "\n"))); err != nil {
		return errorx.IllegalState.Wrap(err, "failed to write rc file: %s", r.rcPath)
	}

	return nil
}
