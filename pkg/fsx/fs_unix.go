//go:build !windows

// SPDX-License-Identifier: Apache-2.0

package fsx

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

const (
	// defaultFileMode is the default file mode used when creating files.
	defaultFileMode = 0644
	// defaultDirectoryMode is the default directory mode used when creating directories.
	defaultDirectoryMode = 0755
)

type unixManager struct{}

// NewManager returns the unix implementation of the Manager interface.
func NewManager() Manager {
	return &unixManager{}
}

func (m *unixManager) PathExists(path string) (os.FileInfo, bool, error) {
	pi, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return pi, true, nil
}

func (m *unixManager) IsRegularFile(path string) bool {
	pi, exists, err := m.PathExists(path)
	if err != nil || !exists {
		return false
	}

	return pi.Mode().IsRegular()
}

func (m *unixManager) IsDirectory(path string) bool {
	pi, exists, err := m.PathExists(path)
	if err != nil || !exists {
		return false
	}

	return pi.Mode().IsDir()
}

func (m *unixManager) CreateDirectory(path string, recursive bool) error {
	_, exists, err := m.PathExists(path)
	if err != nil {
		return FileSystemError.Wrap(err, "invalid path: %s", path)
	}

	if exists {
		if !m.IsDirectory(path) {
			return FileTypeError.New("path exists but is not a directory: %s", path)
		}
		return nil
	}

	parentDir := filepath.Dir(path)
	pfi, exists, err := m.PathExists(parentDir)
	if err != nil {
		return FileSystemError.Wrap(err, "parent directory is not a valid path: %s", parentDir)
	}

	if exists && !pfi.Mode().IsDir() && pfi.Mode()&os.ModeSymlink == 0 {
		return FileTypeError.New("parent path is not a directory: %s", parentDir)
	} else if !exists && !recursive {
		return FileNotFoundError.New("parent directory does not exist: %s", parentDir)
	}

	if recursive {
		err = os.MkdirAll(path, defaultDirectoryMode)
	} else {
		err = os.Mkdir(path, defaultDirectoryMode)
	}

	if err != nil {
		return FileSystemError.Wrap(err, "failed to create directory: %s", path)
	}

	return nil
}

func (m *unixManager) CopyFile(src string, dst string, overwrite bool) error {
	sfi, exists, err := m.PathExists(src)
	if err != nil || !exists {
		return FileNotFoundError.New("source file does not exist: %s", src)
	}

	if !sfi.Mode().IsRegular() {
		return FileTypeError.New("source path is not a regular file: %s", src)
	}

	dfi, exists, err := m.PathExists(dst)
	if err != nil {
		return FileSystemError.Wrap(err, "destination path is not a valid path: %s", dst)
	}

	var dstParent, dstFileName string

	if exists {
		if os.SameFile(sfi, dfi) {
			return nil
		}

		switch {
		case dfi.Mode().IsRegular() && !overwrite:
			return FileAlreadyExistsError.New("destination file already exists: %s", dst)
		case dfi.Mode().IsRegular():
			dstParent = filepath.Dir(dst)
			dstFileName = filepath.Base(dst)
		case dfi.Mode().IsDir():
			dstParent = dst
			dstFileName = filepath.Base(src)
		default:
			return FileAlreadyExistsError.New("destination path already exists: %s", dst)
		}
	} else {
		dstParent = filepath.Dir(dst)
		dstFileName = filepath.Base(dst)
	}

	dpfi, exists, err := m.PathExists(dstParent)
	if err != nil {
		return FileSystemError.Wrap(err, "destination parent path is not a valid path: %s", dstParent)
	} else if !exists {
		return FileNotFoundError.New("destination parent directory does not exist: %s", dstParent)
	} else if !dpfi.Mode().IsDir() {
		return FileTypeError.New("destination parent path is not a directory: %s", dstParent)
	}

	return copyFileContents(src, filepath.Join(dstParent, dstFileName))
}

func (m *unixManager) ReadFile(path string, maxFileSize int64) ([]byte, error) {
	fi, exists, err := m.PathExists(path)
	if err != nil {
		return nil, FileSystemError.Wrap(err, "invalid path: %s", path)
	}

	if !exists {
		return nil, FileNotFoundError.New("file does not exist: %s", path)
	}

	if !fi.Mode().IsRegular() {
		return nil, FileTypeError.New("path is not a regular file: %s", path)
	}

	if maxFileSize >= 0 && fi.Size() > maxFileSize {
		return nil, FileSystemError.New("file %s is too large to read: %d bytes (limit %d)", path, fi.Size(), maxFileSize)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, FileSystemError.Wrap(err, "failed to read file: %s", path)
	}

	return payload, nil
}

func (m *unixManager) WriteFile(path string, payload []byte) error {
	if err := os.WriteFile(path, payload, defaultFileMode); err != nil {
		return FileSystemError.Wrap(err, "failed to write file: %s", path)
	}

	return nil
}

func (m *unixManager) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return FileSystemError.Wrap(err, "failed to remove path: %s", path)
	}

	return nil
}

func copyFileContents(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return FileSystemError.Wrap(err, "failed to open source file: %s", src)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, defaultFileMode)
	if err != nil {
		return FileSystemError.Wrap(err, "failed to create destination file: %s", dst)
	}

	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return FileSystemError.Wrap(err, "failed to copy file contents from %s to %s", src, dst)
	}

	if err = out.Close(); err != nil {
		return FileSystemError.Wrap(err, "failed to finalize destination file: %s", dst)
	}

	return nil
}
