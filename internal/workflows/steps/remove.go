// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"fmt"
	"path"

	"github.com/automa-saga/automa"
	"github.com/cardano-ops/cnodectl/internal/workflows/notify"
	"github.com/cardano-ops/cnodectl/pkg/fsx"
	"github.com/cardano-ops/cnodectl/pkg/logx"
	"github.com/cardano-ops/cnodectl/pkg/sanity"
	"github.com/joomcode/errorx"
)

// RemoveDirectoryStep deletes a directory tree. A missing directory is
// skipped. The path must be absolute and is sanity checked to guard against
// removing something it should not.
func RemoveDirectoryStep(fileManager fsx.Manager, dir string) automa.Builder {
	stepId := fmt.Sprintf("remove-directory-%s", path.Base(dir))

	return automa.NewStepBuilder().WithId(stepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			clean, err := sanity.SanitizePath(dir)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			if clean == "/" {
				return automa.FailureReport(stp,
					automa.WithError(errorx.IllegalArgument.New("refusing to remove filesystem root")))
			}

			_, exists, err := fileManager.PathExists(clean)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			if !exists {
				logx.As().Info().Str("dir", clean).Msg("Directory does not exist, skipping removal")
				return automa.StepSkippedReport(stp.Id())
			}

			if err = fileManager.RemoveAll(clean); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Removing directory %q", dir)
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to remove directory %q", dir)
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Directory %q removal step completed", dir)
		})
}
