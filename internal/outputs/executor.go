package outputs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"meetscribe/internal/logging"
	"meetscribe/internal/meeting"
)

// Request carries everything a renderer needs for one output target.
type Request struct {
	Minutes   *meeting.Minutes
	MeetingID string
	Params    map[string]any
	Artifacts ArtifactSource
}

// Renderer is the external collaborator that produces an artifact (a file
// path or URL) from minutes. The engine treats every error uniformly and
// imposes no retry or timeout of its own.
type Renderer interface {
	Render(ctx context.Context, req Request) (string, error)
}

// runPhase executes the runnable specs of one phase and records every
// outcome on the aggregator. It returns a StopError when a serial spec with
// the stop policy fails; nil otherwise.
func runPhase(ctx context.Context, phase Phase, runnable []Spec, renderers map[string]Renderer, req baseRequest, agg *Aggregator, logger *slog.Logger) *StopError {
	if len(runnable) == 0 {
		return nil
	}
	if phase.Serial {
		return runSerial(ctx, runnable, renderers, req, agg, logger)
	}
	runParallel(ctx, runnable, renderers, req, agg, logger)
	return nil
}

type baseRequest struct {
	minutes   *meeting.Minutes
	meetingID string
}

func (b baseRequest) forSpec(spec Spec, artifacts ArtifactSource) Request {
	return Request{
		Minutes:   b.minutes,
		MeetingID: b.meetingID,
		Params:    spec.Params,
		Artifacts: artifacts,
	}
}

// runParallel dispatches one worker per runnable spec and waits for all of
// them. Workers are never cancelled by a sibling's failure; outcomes land on
// the aggregator in completion order.
func runParallel(ctx context.Context, runnable []Spec, renderers map[string]Renderer, req baseRequest, agg *Aggregator, logger *slog.Logger) {
	var wg sync.WaitGroup
	for _, spec := range runnable {
		wg.Add(1)
		go func(spec Spec) {
			defer wg.Done()
			renderOne(ctx, spec, renderers[spec.Format], req, agg, logger)
		}(spec)
	}
	wg.Wait()
}

// runSerial executes specs strictly in declared order. A failure under the
// stop policy aborts immediately: the remaining specs are never started and
// are recorded nowhere.
func runSerial(ctx context.Context, runnable []Spec, renderers map[string]Renderer, req baseRequest, agg *Aggregator, logger *slog.Logger) *StopError {
	for _, spec := range runnable {
		ok, err := renderOne(ctx, spec, renderers[spec.Format], req, agg, logger)
		if !ok && spec.OnError == PolicyStop {
			return &StopError{Format: spec.Format, Err: err}
		}
	}
	return nil
}

func renderOne(ctx context.Context, spec Spec, renderer Renderer, req baseRequest, agg *Aggregator, logger *slog.Logger) (bool, error) {
	start := time.Now()
	artifact, err := renderer.Render(ctx, req.forSpec(spec, agg))
	if err != nil {
		agg.RecordFailure(Failure{Format: spec.Format, Err: err, OnError: spec.OnError})
		logger.Warn("output render failed",
			logging.String(logging.FieldFormat, spec.Format),
			logging.Duration("elapsed", time.Since(start)),
			logging.Error(err),
		)
		return false, err
	}
	agg.RecordSuccess(Success{Format: spec.Format, Artifact: artifact})
	logger.Info("output rendered",
		logging.String(logging.FieldFormat, spec.Format),
		logging.String("artifact", artifact),
		logging.Duration("elapsed", time.Since(start)),
	)
	return true, nil
}
