// SPDX-License-Identifier: Apache-2.0

package fsx

import (
	"github.com/joomcode/errorx"
)

// Errors holds the error namespace for filesystem operations.
var (
	Errors = errorx.NewNamespace("fsx")

	// FileNotFoundError indicates that the path does not exist.
	FileNotFoundError = Errors.NewType("file_not_found", errorx.NotFound())
	// FileAlreadyExistsError indicates that the destination already exists and overwrite was not requested.
	FileAlreadyExistsError = Errors.NewType("file_already_exists", errorx.Duplicate())
	// FileTypeError indicates that the path exists but is not of the expected type.
	FileTypeError = Errors.NewType("file_type_mismatch")
	// FileSystemError indicates a generic filesystem failure.
	FileSystemError = Errors.NewType("file_system_error")
)
