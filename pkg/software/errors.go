// SPDX-License-Identifier: Apache-2.0

package software

import (
	"github.com/joomcode/errorx"
)

var (
	ErrorsNamespace     = errorx.NewNamespace("software")
	InstallationError   = ErrorsNamespace.NewType("installation_error")
	UninstallationError = ErrorsNamespace.NewType("uninstallation_error")
	PackageQueryError   = ErrorsNamespace.NewType("package_query_error")

	packageNameProperty = errorx.RegisterPrintableProperty("package_name")
)

const (
	installationErrorMsg   = "failed to install package '%s'"
	uninstallationErrorMsg = "failed to uninstall package '%s'"
	packageQueryErrorMsg   = "failed to query package '%s'"
)

func NewInstallationError(cause error, packageName string) *errorx.Error {
	err := InstallationError.New(installationErrorMsg, packageName).
		WithProperty(packageNameProperty, packageName)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

func NewUninstallationError(cause error, packageName string) *errorx.Error {
	err := UninstallationError.New(uninstallationErrorMsg, packageName).
		WithProperty(packageNameProperty, packageName)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

func NewPackageQueryError(cause error, packageName string) *errorx.Error {
	err := PackageQueryError.New(packageQueryErrorMsg, packageName).
		WithProperty(packageNameProperty, packageName)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}
