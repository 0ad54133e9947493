// SPDX-License-Identifier: Apache-2.0

package setup

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/pkg/fsx"
)

func buildArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestInstallExtractsArchive(t *testing.T) {
	core.SetBaseDir(t.TempDir())

	payload := buildArchive(t, map[string]string{
		"cnode-automation-main/install-cardano-node.yml": "---\n",
		"cnode-automation-main/inventory.ini":            "[cardano]\nlocalhost\n",
		"cnode-automation-main/roles/common/tasks.yml":   "---\n",
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	destDir := filepath.Join(t.TempDir(), "cnode-automation")
	s := NewInstallerWithClient(srv.Client(), fsx.NewManager())
	require.NoError(t, s.Install(context.Background(), srv.URL, destDir))

	// the top-level archive directory is flattened away
	assert.FileExists(t, filepath.Join(destDir, "install-cardano-node.yml"))
	assert.FileExists(t, filepath.Join(destDir, "inventory.ini"))
	assert.FileExists(t, filepath.Join(destDir, "roles", "common", "tasks.yml"))
}

func TestInstallSkipsExcludedDirs(t *testing.T) {
	core.SetBaseDir(t.TempDir())

	payload := buildArchive(t, map[string]string{
		"cnode-automation-main/install-cardano-node.yml": "---\n",
		"cnode-automation-main/src/Program.cs":           "// cli source\n",
		"cnode-automation-main/src/deep/Api.cs":          "// cli source\n",
		"cnode-automation-main/.github/workflows/ci.yml": "---\n",
		"cnode-automation-main/srcfiles.txt":             "not excluded\n",
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	destDir := filepath.Join(t.TempDir(), "cnode-automation")
	s := NewInstallerWithClient(srv.Client(), fsx.NewManager(), "src", ".github")
	require.NoError(t, s.Install(context.Background(), srv.URL, destDir))

	assert.FileExists(t, filepath.Join(destDir, "install-cardano-node.yml"))
	assert.NoDirExists(t, filepath.Join(destDir, "src"))
	assert.NoDirExists(t, filepath.Join(destDir, ".github"))
	// exclusion matches whole path segments, not name prefixes
	assert.FileExists(t, filepath.Join(destDir, "srcfiles.txt"))
}

func TestInstallCleansUpOnFailure(t *testing.T) {
	core.SetBaseDir(t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	destDir := filepath.Join(t.TempDir(), "cnode-automation")
	s := NewInstallerWithClient(srv.Client(), fsx.NewManager())
	require.Error(t, s.Install(context.Background(), srv.URL, destDir))

	_, err := os.Stat(destDir)
	assert.True(t, os.IsNotExist(err))
}

func TestInstallRejectsTraversal(t *testing.T) {
	core.SetBaseDir(t.TempDir())

	payload := buildArchive(t, map[string]string{
		"cnode-automation-main/../evil.yml": "---\n",
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	destDir := filepath.Join(t.TempDir(), "cnode-automation")
	s := NewInstallerWithClient(srv.Client(), fsx.NewManager())
	err := s.Install(context.Background(), srv.URL, destDir)
	require.Error(t, err)
}

func TestRcFileManagerAppendAndStrip(t *testing.T) {
	dir := t.TempDir()
	rcPath := filepath.Join(dir, ".bashrc")
	require.NoError(t, os.WriteFile(rcPath, []byte("alias ll='ls -l'\n"), 0644))

	r, err := NewRcFileManager(fsx.NewManager(), rcPath)
	require.NoError(t, err)

	require.NoError(t, r.AppendManagedLine(PipxPathLine))
	// appending again is a no-op
	require.NoError(t, r.AppendManagedLine(PipxPathLine))

	payload, err := os.ReadFile(rcPath)
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count(payload, []byte(PipxPathLine)))
	assert.Contains(t, string(payload), "alias ll='ls -l'")

	require.NoError(t, r.StripManagedLines())

	payload, err = os.ReadFile(rcPath)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), PipxPathLine)
	assert.Contains(t, string(payload), "alias ll='ls -l'")
}

func TestRcFileManagerCreatesMissingFile(t *testing.T) {
	rcPath := filepath.Join(t.TempDir(), ".bashrc")

	r, err := NewRcFileManager(fsx.NewManager(), rcPath)
	require.NoError(t, err)

	require.NoError(t, r.AppendManagedLine(PipxPathLine))
	assert.FileExists(t, rcPath)

	// stripping a file that only holds managed lines leaves it essentially empty
	require.NoError(t, r.StripManagedLines())
	payload, err := os.ReadFile(rcPath)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), PipxPathLine)
}
