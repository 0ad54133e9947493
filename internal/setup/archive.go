// SPDX-License-Identifier: Apache-2.0

package setup

import (
	"archive/zip"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joomcode/errorx"

	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/pkg/fsx"
)

var (
	ErrNamespace    = errorx.NewNamespace("setup")
	DownloadError   = ErrNamespace.NewType("download_error")
	ExtractionError = ErrNamespace.NewType("extraction_error")
	PathTraversal   = ErrNamespace.NewType("path_traversal")
)

// Installer downloads the automation files archive and extracts it into the
// install directory. A failed setup removes whatever it created so no partial
// tree is left behind.
type Installer struct {
	client      *http.Client
	fileManager fsx.Manager
	excludeDirs []string
}

// NewInstaller creates an Installer. Archive entries under any of excludeDirs
// are skipped during extraction; the automation repository carries the CLI
// source tree next to the playbooks and that tree has no business on the host.
func NewInstaller(fileManager fsx.Manager, excludeDirs ...string) *Installer {
	return &Installer{
		client: &http.Client{
			Timeout: 10 * time.Minute,
		},
		fileManager: fileManager,
		excludeDirs: excludeDirs,
	}
}

// NewInstallerWithClient creates an Installer using the given client.
// Intended for tests against httptest servers.
func NewInstallerWithClient(client *http.Client, fileManager fsx.Manager, excludeDirs ...string) *Installer {
	return &Installer{client: client, fileManager: fileManager, excludeDirs: excludeDirs}
}

// Install downloads the archive at url and extracts it into destDir. When the
// destination did not exist beforehand and any step fails, the partially
// created directory is removed.
func (s *Installer) Install(ctx context.Context, url, destDir string) (err error) {
	_, existed, checkErr := s.fileManager.PathExists(destDir)
	if checkErr != nil {
		return DownloadError.Wrap(checkErr, "failed to check install directory: %s", destDir)
	}

	defer func() {
		if err != nil && !existed {
			_ = s.fileManager.RemoveAll(destDir)
		}
	}()

	tmpDir, tmpErr := os.MkdirTemp(core.Paths().TempDir, "setup-*")
	if tmpErr != nil {
		// the temp root may not exist on first run
		if mkErr := s.fileManager.CreateDirectory(core.Paths().TempDir, true); mkErr != nil {
			return DownloadError.Wrap(mkErr, "failed to create temp directory")
		}
		tmpDir, tmpErr = os.MkdirTemp(core.Paths().TempDir, "setup-*")
		if tmpErr != nil {
			return DownloadError.Wrap(tmpErr, "failed to create temp directory")
		}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	archivePath := filepath.Join(tmpDir, "automation.zip")
	if err = s.download(ctx, url, archivePath); err != nil {
		return err
	}

	return s.extract(archivePath, destDir)
}

func (s *Installer) download(ctx context.Context, url, destination string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return DownloadError.Wrap(err, "invalid download request: %s", url)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return DownloadError.Wrap(err, "failed to download from URL %q", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DownloadError.New("failed to download from URL %q: status %d", url, resp.StatusCode)
	}

	out, err := os.Create(destination)
	if err != nil {
		return DownloadError.Wrap(err, "failed to create archive file: %s", destination)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return DownloadError.Wrap(err, "failed to write archive file: %s", destination)
	}

	return nil
}

// extract unpacks the zip archive into destDir, flattening the single
// top-level directory GitHub puts into branch archives.
func (s *Installer) extract(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return ExtractionError.Wrap(err, "failed to open archive: %s", archivePath)
	}
	defer reader.Close()

	prefix := commonTopLevelDir(reader.File)

	if err := s.fileManager.CreateDirectory(destDir, true); err != nil {
		return ExtractionError.Wrap(err, "failed to create install directory: %s", destDir)
	}

	for _, f := range reader.File {
		name := strings.TrimPrefix(f.Name, prefix)
		if name == "" || s.excluded(name) {
			continue
		}

		target := filepath.Join(destDir, name)
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return PathTraversal.New("entry %q attempts to escape extraction directory", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := s.fileManager.CreateDirectory(target, true); err != nil {
				return ExtractionError.Wrap(err, "failed to create directory: %s", target)
			}
			continue
		}

		if err := s.fileManager.CreateDirectory(filepath.Dir(target), true); err != nil {
			return ExtractionError.Wrap(err, "failed to create directory: %s", filepath.Dir(target))
		}

		if err := s.extractFile(f, target); err != nil {
			return err
		}
	}

	return nil
}

// excluded reports whether the flattened entry name falls under one of the
// excluded directories. Zip entry names always use forward slashes.
func (s *Installer) excluded(name string) bool {
	for _, dir := range s.excludeDirs {
		trimmed := strings.Trim(dir, "/")
		if trimmed == "" {
			continue
		}
		if name == trimmed || name == trimmed+"/" || strings.HasPrefix(name, trimmed+"/") {
			return true
		}
	}
	return false
}

func (s *Installer) extractFile(f *zip.File, target string) error {
	in, err := f.Open()
	if err != nil {
		return ExtractionError.Wrap(err, "failed to read archive entry: %s", f.Name)
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return ExtractionError.Wrap(err, "failed to create file: %s", target)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return ExtractionError.Wrap(err, "failed to extract file: %s", target)
	}

	return nil
}

// commonTopLevelDir returns the "repo-branch/" prefix shared by all entries,
// or "" when the archive has none.
func commonTopLevelDir(files []*zip.File) string {
	var prefix string
	for _, f := range files {
		idx := strings.Index(f.Name, "/")
		if idx < 0 {
			return ""
		}
		top := f.Name[:idx+1]
		if prefix == "" {
			prefix = top
		} else if prefix != top {
			return ""
		}
	}
	return prefix
}
