// SPDX-License-Identifier: Apache-2.0

package software

import "github.com/bluet/syspkg/manager"

// NewPython3Pip installs the system pip for Python 3. Required before pipx can
// bootstrap user-level Python applications.
func NewPython3Pip() (*PackageInstaller, error) {
	return NewPackageInstaller(WithPackageName("python3-pip"), WithPackageOptions(manager.Options{AssumeYes: true}))
}

// NewPython3Venv installs the venv module used by pipx to isolate applications.
func NewPython3Venv() (*PackageInstaller, error) {
	return NewPackageInstaller(WithPackageName("python3-venv"), WithPackageOptions(manager.Options{AssumeYes: true}))
}

// NewPipx installs pipx, which hosts the Ansible toolchain in an isolated
// environment.
func NewPipx() (*PackageInstaller, error) {
	return NewPackageInstaller(WithPackageName("pipx"), WithPackageOptions(manager.Options{AssumeYes: true}))
}

// NewCurl installs curl, used for fetching provisioning archives.
func NewCurl() (*PackageInstaller, error) {
	return NewPackageInstaller(WithPackageName("curl"), WithPackageOptions(manager.Options{AssumeYes: true}))
}

// NewNetTools installs net-tools, which provides the netstat binary used for
// port listening probes.
func NewNetTools() (*PackageInstaller, error) {
	return NewPackageInstaller(WithPackageName("net-tools"), WithPackageOptions(manager.Options{AssumeYes: true}))
}
