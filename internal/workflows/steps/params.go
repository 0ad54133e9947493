// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/automa-saga/automa"
	"github.com/cardano-ops/cnodectl/internal/ansible"
	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/internal/deps"
	"github.com/cardano-ops/cnodectl/internal/params"
	"github.com/cardano-ops/cnodectl/internal/workflows/notify"
	"github.com/cardano-ops/cnodectl/pkg/logx"
)

// PrepareParametersStep fetches the pinned dependency versions, patches the
// parameter template with them and with the requested port, and writes the
// result into the run's temp directory. The patched file path is published
// through paramsPath so the playbook step can pick it up.
func PrepareParametersStep(fetcher *deps.Fetcher, patcher *params.Patcher, gw *ansible.Gateway,
	versionsURL string, inputs core.InstallInputs, paramsPath *string) automa.Builder {
	return automa.NewStepBuilder().WithId("prepare-parameters").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			versions, err := fetcher.Fetch(ctx, versionsURL)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			logx.As().Info().
				Str("cardano_node", versions.CardanoNode).
				Str("ghc", versions.Ghc).
				Str("cabal", versions.Cabal).
				Msg("Fetched dependency versions")

			if err = os.MkdirAll(core.Paths().TempDir, core.DefaultFilePerm); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			outPath := path.Join(core.Paths().TempDir,
				fmt.Sprintf("cardano-params-%s.yml", time.Now().Format("20060102_150405")))

			ps := params.PatchSet{
				Port:        inputs.Port,
				NodeVersion: inputs.NodeVersion,
				Versions:    versions,
			}
			if err = patcher.Patch(gw.ParameterTemplatePath(), outPath, ps); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			*paramsPath = outPath
			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				"paramsPath":  outPath,
				"cardanoPort": fmt.Sprintf("%d", inputs.Port),
			}))
		}).
		WithRollback(func(ctx context.Context, stp automa.Step) *automa.Report {
			if *paramsPath == "" {
				return automa.StepSkippedReport(stp.Id())
			}
			if err := os.Remove(*paramsPath); err != nil && !os.IsNotExist(err) {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Preparing playbook parameters")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to prepare playbook parameters")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Playbook parameters prepared")
		})
}
