package outputs

import (
	"context"
	"fmt"
	"log/slog"

	"meetscribe/internal/logging"
	"meetscribe/internal/meeting"
)

// Engine drives the phase loop: plan, filter, execute, merge.
type Engine struct {
	renderers map[string]Renderer
	logger    *slog.Logger
}

// NewEngine builds an engine over a format-to-renderer table.
func NewEngine(renderers map[string]Renderer, logger *slog.Logger) *Engine {
	return &Engine{
		renderers: renderers,
		logger:    logging.WithComponent(logger, "outputs"),
	}
}

// Run executes the plan and returns the final report. The report is always
// populated, including when the run aborts: a serial stop-policy failure
// yields a *StopError alongside the report of everything that settled before
// the abort. Planning problems (empty plan, unknown format) return a nil
// report and a configuration error before any phase runs.
func (e *Engine) Run(ctx context.Context, specs []Spec, mode Mode, minutes *meeting.Minutes, meetingID string) (*Report, error) {
	phases, err := Plan(specs, mode)
	if err != nil {
		return nil, err
	}
	for _, spec := range specs {
		if _, ok := e.renderers[spec.Format]; !ok {
			return nil, fmt.Errorf("output plan: no renderer registered for format %q", spec.Format)
		}
	}

	agg := NewAggregator(len(specs))
	req := baseRequest{minutes: minutes, meetingID: meetingID}

	e.logger.Info("output execution started",
		logging.String(logging.FieldMeetingID, meetingID),
		logging.String("mode", string(mode)),
		logging.Int("outputs", len(specs)),
		logging.Int("phases", len(phases)),
	)

	for _, phase := range phases {
		runnable, skipped := Filter(phase, agg.SucceededFormats())
		agg.RecordSkips(skipped)
		for _, skip := range skipped {
			e.logger.Warn("output skipped",
				logging.String(logging.FieldFormat, skip.Format),
				logging.String("reason", skip.Reason),
				logging.Any("missing_dependencies", skip.MissingDependencies),
			)
		}
		e.logger.Debug("phase started",
			logging.Int(logging.FieldGroup, phase.Group),
			logging.Bool("serial", phase.Serial),
			logging.Int("runnable", len(runnable)),
		)

		if stop := runPhase(ctx, phase, runnable, e.renderers, req, agg, e.logger); stop != nil {
			report := agg.Snapshot()
			report.Aborted = true
			e.logger.Error("output execution aborted",
				logging.String(logging.FieldFormat, stop.Format),
				logging.Error(stop.Err),
			)
			return &report, stop
		}
	}

	report := agg.Snapshot()
	e.logger.Info("output execution completed",
		logging.Int("successful", len(report.Successful)),
		logging.Int("failed", len(report.Failed)),
		logging.Int("skipped", len(report.Skipped)),
		logging.Int("total", report.Total),
	)
	return &report, nil
}
