// SPDX-License-Identifier: Apache-2.0

package fsx

import (
	"os"
)

// Manager provides an operating system independent interface for managing files and directories.
type Manager interface {
	// PathExists determines if the source path exists. This method does not follow symlinks.
	PathExists(path string) (os.FileInfo, bool, error)
	// IsRegularFile returns true if the path is a regular file; otherwise, false is returned.
	IsRegularFile(path string) bool
	// IsDirectory returns true if the path is a directory; otherwise, false is returned.
	IsDirectory(path string) bool
	// CreateDirectory creates a directory at the path specified by the path argument.
	// If the path argument refers to an existing directory, then no action is taken and no error is returned.
	// If the path argument refers to an existing file, then an error is returned.
	// If the path argument refers to a non-existent parent path, then an error is returned unless
	// the recursive argument is true.
	CreateDirectory(path string, recursive bool) error
	// CopyFile copies a single file.
	// The src argument must reference an existing file. The dst argument may reference either a file or directory.
	//
	// If the dst argument refers to an existing directory, then the file will be copied into the directory with same
	// name as the original file.
	//
	// If the dst argument refers to an existing file, then the existing file will be replaced if the overwrite
	// argument is true; otherwise, an error will be returned.
	CopyFile(src string, dst string, overwrite bool) error
	// ReadFile reads whole file as long as its size is less than the maxFileSize argument.
	// This helper method ensures we avoid reading a very large file accidentally.
	// A negative maxFileSize will disable the file size check.
	ReadFile(path string, maxFileSize int64) ([]byte, error)
	// WriteFile writes payload to a file.
	// If a file exists at the path, it overwrites it with new contents.
	WriteFile(path string, payload []byte) error
	// RemoveAll removes the path and its contents.
	// It is a wrapper of os.RemoveAll. This interface exists to help us mock the functionality during tests.
	RemoveAll(path string) error
}
