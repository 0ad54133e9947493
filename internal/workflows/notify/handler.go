// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"context"

	"github.com/automa-saga/automa"

	"github.com/cardano-ops/cnodectl/pkg/logx"
)

// StartFunc receives step start events.
type StartFunc func(ctx context.Context, stp automa.Step, msg string, args ...interface{})

// OutcomeFunc receives step completion and failure events together with the
// step's report.
type OutcomeFunc func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{})

// Handler holds the callbacks the workflow steps invoke for their lifecycle
// events. A caller may route events to a channel, a webhook or another logger
// through SetDefault; unset callbacks keep the logging defaults.
type Handler struct {
	StepStart      StartFunc
	StepCompletion OutcomeFunc
	StepFailure    OutcomeFunc
}

var handler = newLogHandler()

// newLogHandler builds the default handler, which writes every event through
// the application logger.
func newLogHandler() *Handler {
	return &Handler{
		StepStart: func(ctx context.Context, stp automa.Step, msg string, args ...interface{}) {
			logx.As().Info().Str("step_id", stp.Id()).Msgf(msg, args...)
		},
		StepCompletion: func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{}) {
			logx.As().Info().
				Str("step_id", stp.Id()).
				Str("status", report.Status.String()).
				Msgf(msg, args...)
		},
		StepFailure: func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{}) {
			evt := logx.As().Error().Err(report.Error).
				Str("step_id", stp.Id()).
				Str("status", report.Status.String())

			if cause := rootCause(report); cause != nil {
				evt.Str("cause", cause.Error.Error()).Str("cause_step_id", cause.Id)
			}

			evt.Msgf(msg, args...)
		},
	}
}

// rootCause walks the nested step reports and returns the first one carrying
// an error, or nil when the report itself is the root cause.
func rootCause(report *automa.Report) *automa.Report {
	for _, stepReport := range report.StepReports {
		if stepReport.HasError() {
			return stepReport
		}
	}
	return nil
}

// SetDefault replaces the default callbacks. Nil fields leave the current
// callback in place.
func SetDefault(h *Handler) {
	if h == nil {
		return
	}
	if h.StepStart != nil {
		handler.StepStart = h.StepStart
	}
	if h.StepCompletion != nil {
		handler.StepCompletion = h.StepCompletion
	}
	if h.StepFailure != nil {
		handler.StepFailure = h.StepFailure
	}
}

// As returns the current notification handler.
func As() *Handler {
	return handler
}
