// SPDX-License-Identifier: Apache-2.0

package software

import (
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPackageInstallerWithInjectedManager(t *testing.T) {
	p, err := NewPackageInstaller(
		WithPackageName("pipx"),
		WithPackageManager(nil), // explicit nil still falls through to detection
	)
	// Detection may fail on hosts without a supported package manager.
	if err != nil {
		require.True(t, errorx.IsOfType(err, InstallationError))
		return
	}
	assert.Equal(t, "pipx", p.Name())
}

func TestErrors(t *testing.T) {
	err := NewInstallationError(assert.AnError, "pipx")
	assert.True(t, errorx.IsOfType(err, InstallationError))
	assert.Contains(t, err.Error(), "pipx")

	err = NewUninstallationError(nil, "curl")
	assert.True(t, errorx.IsOfType(err, UninstallationError))

	err = NewPackageQueryError(nil, "net-tools")
	assert.True(t, errorx.IsOfType(err, PackageQueryError))
	assert.Contains(t, err.Error(), "net-tools")
}
