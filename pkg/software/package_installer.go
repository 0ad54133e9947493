// SPDX-License-Identifier: Apache-2.0

package software

import (
	"sync"

	"github.com/bluet/syspkg"
	"github.com/bluet/syspkg/manager"
)

var (
	pkgManager syspkg.PackageManager
	once       sync.Once
)

// GetPackageManager returns the system package manager, detecting the best
// available backend on first use.
func GetPackageManager() (syspkg.PackageManager, error) {
	var initErr error
	once.Do(func() {
		includeOptions := syspkg.IncludeOptions{AllAvailable: true}
		sysPackageManager, err := syspkg.New(includeOptions)
		if err != nil {
			initErr = NewInstallationError(err, "package-manager")
			return
		}

		// Empty string returns the first available package manager
		pm, err := sysPackageManager.GetPackageManager("")
		if err != nil {
			initErr = NewInstallationError(err, "package-manager")
			return
		}

		pkgManager = pm
	})

	return pkgManager, initErr
}

// RefreshPackageIndex refreshes the system package index.
// This is equivalent to running `apt update` on Debian-based systems.
func RefreshPackageIndex() error {
	pm, err := GetPackageManager()
	if err != nil {
		return err
	}

	return pm.Refresh(&manager.Options{DryRun: false, Interactive: false, AssumeYes: true})
}

type option func(*PackageInstaller)

// PackageInstaller manages a single system package through the standard
// system package manager.
type PackageInstaller struct {
	pkgName    string
	pkgOptions manager.Options
	pkgManager syspkg.PackageManager
}

func (p *PackageInstaller) Name() string {
	return p.pkgName
}

func (p *PackageInstaller) Install() (*syspkg.PackageInfo, error) {
	_, err := p.pkgManager.Install([]string{p.pkgName}, &p.pkgOptions)
	if err != nil {
		return nil, NewInstallationError(err, p.pkgName)
	}

	return p.Info()
}

func (p *PackageInstaller) Uninstall() (*syspkg.PackageInfo, error) {
	_, err := p.pkgManager.Delete([]string{p.pkgName}, &p.pkgOptions)
	if err != nil {
		return nil, NewUninstallationError(err, p.pkgName)
	}

	return p.Info()
}

func (p *PackageInstaller) IsInstalled() bool {
	info, err := p.Info()
	if err != nil {
		return false
	}

	return info.Status == manager.PackageStatusInstalled
}

func (p *PackageInstaller) Info() (*syspkg.PackageInfo, error) {
	// Use Find instead of ListInstalled to get reliable results even when only
	// the config of a package remains on the system.
	resp, err := p.pkgManager.Find([]string{p.pkgName}, &p.pkgOptions)
	if err != nil {
		return nil, NewPackageQueryError(err, p.pkgName)
	}

	for _, pkg := range resp {
		if pkg.Name == p.pkgName {
			return &pkg, nil
		}
	}

	return nil, NewPackageQueryError(nil, p.pkgName)
}

func WithPackageName(name string) func(*PackageInstaller) {
	return func(pb *PackageInstaller) {
		pb.pkgName = name
	}
}

func WithPackageOptions(opts manager.Options) func(*PackageInstaller) {
	return func(pb *PackageInstaller) {
		pb.pkgOptions = opts
	}
}

func WithPackageManager(pm syspkg.PackageManager) func(*PackageInstaller) {
	return func(pb *PackageInstaller) {
		pb.pkgManager = pm
	}
}

func NewPackageInstaller(opts ...option) (*PackageInstaller, error) {
	p := &PackageInstaller{}

	for _, opt := range opts {
		opt(p)
	}

	if p.pkgManager == nil {
		pm, err := GetPackageManager()
		if err != nil {
			return nil, err
		}
		p.pkgManager = pm
	}

	return p, nil
}
