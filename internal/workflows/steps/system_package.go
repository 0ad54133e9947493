// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"fmt"

	"github.com/automa-saga/automa"
	"github.com/bluet/syspkg"
	"github.com/cardano-ops/cnodectl/internal/workflows/notify"
	"github.com/cardano-ops/cnodectl/pkg/logx"
	"github.com/cardano-ops/cnodectl/pkg/software"
	"github.com/joomcode/errorx"
)

const refreshSystemPackageStepId = "refresh-system-package-index"

func validateInstaller(name string, installer func() (*software.PackageInstaller, error)) (*software.PackageInstaller, error) {
	if name == "" {
		return nil, errorx.IllegalArgument.New("package name cannot be empty")
	}

	if installer == nil {
		return nil, errorx.IllegalArgument.New("installer function cannot be nil")
	}

	pkg, err := installer()
	if err != nil {
		return nil, errorx.IllegalArgument.Wrap(err, "failed to get package from installer")
	}

	if pkg.Name() != name {
		return nil, errorx.IllegalArgument.New("installer returned package with unexpected name: got %q, want %q",
			pkg.Name(), name)
	}

	return pkg, nil
}

// RefreshSystemPackageIndex refreshes the system package index.
// Essentially this is equivalent to running `apt-get update` on Debian-based systems
func RefreshSystemPackageIndex() automa.Builder {
	return automa.NewStepBuilder().
		WithId(refreshSystemPackageStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			err := software.RefreshPackageIndex()
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp)
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepCompletion(ctx, stp, report, "Package index refreshed successfully")
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepFailure(ctx, stp, report, "Failed to refresh package index")
		})
}

// InstallSystemPackage installs a system package using the provided installer function.
// If the package is already installed, it will skip the installation.
func InstallSystemPackage(name string, installer func() (*software.PackageInstaller, error)) automa.Builder {
	var installedByThisStep bool
	stepId := fmt.Sprintf("install-%s", name)

	return automa.NewStepBuilder().
		WithId(stepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			pkg, err := validateInstaller(name, installer)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			var info *syspkg.PackageInfo
			if !pkg.IsInstalled() {
				logx.As().Debug().Msgf("Installing %s...", pkg.Name())

				info, err = pkg.Install()
				if err != nil {
					return automa.FailureReport(stp, automa.WithError(err))
				}

				logx.As().Info().
					Str("name", info.Name).
					Str("version", info.Version).
					Str("status", string(info.Status)).
					Msgf("Package %q is installed by this step successfully", pkg.Name())
				installedByThisStep = true
			} else {
				info, err = pkg.Info()
				if err != nil {
					return automa.FailureReport(stp,
						automa.WithError(errorx.IllegalState.Wrap(err, "failed to get package info")))
				}

				logx.As().Info().Msgf("Package %q is already installed, skipping installation", pkg.Name())
			}

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				"packageName":    info.Name,
				"packageVersion": info.Version,
				"packageStatus":  string(info.Status),
				"packageManager": info.PackageManager,
			}))
		}).
		WithRollback(func(ctx context.Context, stp automa.Step) *automa.Report {
			pkg, err := validateInstaller(name, installer)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if pkg.IsInstalled() && installedByThisStep {
				// Only uninstall if it was installed in this step
				logx.As().Debug().Msgf("Uninstalling %s...", pkg.Name())
				info, err := pkg.Uninstall()
				if err != nil {
					return automa.FailureReport(stp, automa.WithError(err))
				}

				logx.As().Info().
					Str("name", info.Name).
					Str("version", info.Version).
					Str("status", string(info.Status)).
					Msgf("Package %q is uninstalled successfully", pkg.Name())
			} else {
				logx.As().Info().Msgf("Package %q is not installed, skipping uninstallation", pkg.Name())
			}

			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Installing package %q", name)
			return ctx, nil

		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepCompletion(ctx, stp, report,
				"Package %q installation step completed successfully", name)
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepFailure(ctx, stp, report,
				"Package %q installation step failed", name)
		})
}
