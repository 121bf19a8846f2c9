package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"meetscribe/internal/config"
	"meetscribe/internal/convert"
	"meetscribe/internal/history"
	"meetscribe/internal/inputs"
	"meetscribe/internal/logging"
	"meetscribe/internal/meeting"
	"meetscribe/internal/notifications"
	"meetscribe/internal/outputs"
)

// State names the stage the runner is currently in.
type State string

const (
	StateIdle              State = "idle"
	StateRecording         State = "recording"
	StateConverting        State = "converting"
	StateGeneratingMinutes State = "generating_minutes"
	StateExecutingOutputs  State = "executing_outputs"
	StateDone              State = "done"
	StateAborted           State = "aborted"
)

// MinutesGenerator produces minutes from a transcript.
type MinutesGenerator interface {
	GenerateMinutes(ctx context.Context, transcript *meeting.Transcript) (*meeting.Minutes, error)
}

// RunRecorder persists completed runs. *history.Store satisfies it.
type RunRecorder interface {
	RecordRun(ctx context.Context, run history.Run, records []history.OutputRecord) error
}

// Deps bundles the stage collaborators the runner drives.
type Deps struct {
	Provider  inputs.Provider
	Converter convert.Engine
	Generator MinutesGenerator
	Engine    *outputs.Engine
	Notifier  notifications.Service
	Recorder  RunRecorder
	Logger    *slog.Logger
}

// Result carries everything a run produced.
type Result struct {
	RunID      string
	MeetingID  string
	AudioPath  string
	Transcript *meeting.Transcript
	Minutes    *meeting.Minutes
	Report     *outputs.Report
}

// Runner executes the full pipeline for one meeting.
type Runner struct {
	cfg    *config.Config
	deps   Deps
	logger *slog.Logger

	state State
}

// NewRunner validates the dependency set and builds a runner.
func NewRunner(cfg *config.Config, deps Deps) (*Runner, error) {
	if cfg == nil {
		return nil, Wrap(ErrConfiguration, "pipeline", "config required", nil)
	}
	if deps.Provider == nil || deps.Converter == nil || deps.Generator == nil || deps.Engine == nil {
		return nil, Wrap(ErrConfiguration, "pipeline", "missing stage collaborator", nil)
	}
	if deps.Notifier == nil {
		deps.Notifier = notifications.NewService("", 0)
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		deps:   deps,
		logger: logging.WithComponent(logger, "pipeline"),
		state:  StateIdle,
	}, nil
}

// State returns the runner's current stage.
func (r *Runner) State() State {
	return r.state
}

func (r *Runner) setState(state State) {
	r.state = state
	r.logger.Debug("state changed", logging.String(logging.FieldStage, string(state)))
}

// Run drives one meeting end to end. Stage failures abort before outputs;
// output failures are reflected in the report, with only a serial stop-policy
// abort surfacing as a run error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, Wrap(ErrConfiguration, "pipeline", "ensure directories", err)
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.WorkingDir, "meetscribe.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, Wrap(ErrStageFailure, "pipeline", "acquire run lock", err)
	}
	if !locked {
		return nil, Wrap(ErrLocked, "pipeline", r.cfg.Paths.WorkingDir, nil)
	}
	defer func() { _ = lock.Unlock() }()

	runID := uuid.NewString()
	started := time.Now().UTC()
	meetingID := r.meetingID(started)
	result := &Result{RunID: runID, MeetingID: meetingID}
	logger := r.logger.With(
		logging.String(logging.FieldRunID, runID),
		logging.String(logging.FieldMeetingID, meetingID),
	)

	logger.Info("run started", logging.String("input", r.cfg.Input.Type))
	if err := r.deps.Notifier.NotifyRunStarted(ctx, meetingID); err != nil {
		logger.Warn("notification failed", logging.Error(err))
	}

	fail := func(stage string, err error) (*Result, error) {
		r.setState(StateAborted)
		logger.Error("run aborted",
			logging.String(logging.FieldStage, stage),
			logging.Error(err),
		)
		if notifyErr := r.deps.Notifier.NotifyError(ctx, err, stage); notifyErr != nil {
			logger.Warn("notification failed", logging.Error(notifyErr))
		}
		r.record(ctx, logger, result, started, history.StatusFailed, err)
		return result, err
	}

	r.setState(StateRecording)
	audioPath, err := r.deps.Provider.Record(ctx, meetingID)
	if err != nil {
		return fail("input", Wrap(ErrStageFailure, "input", "record", err))
	}
	result.AudioPath = audioPath
	logger.Info("input staged", logging.String("audio", audioPath))

	r.setState(StateConverting)
	transcript, err := r.deps.Converter.Transcribe(ctx, audioPath, meetingID)
	if err != nil {
		return fail("convert", Wrap(ErrStageFailure, "convert", "transcribe", err))
	}
	result.Transcript = transcript
	logger.Info("transcript ready", logging.Int("segments", len(transcript.Segments)))
	if err := r.deps.Notifier.NotifyTranscriptReady(ctx, meetingID, len(transcript.Segments)); err != nil {
		logger.Warn("notification failed", logging.Error(err))
	}

	r.setState(StateGeneratingMinutes)
	minutes, err := r.deps.Generator.GenerateMinutes(ctx, transcript)
	if err != nil {
		return fail("llm", Wrap(ErrStageFailure, "llm", "generate minutes", err))
	}
	result.Minutes = minutes
	logger.Info("minutes generated",
		logging.Int("decisions", len(minutes.Decisions)),
		logging.Int("action_items", len(minutes.ActionItems)),
	)
	if err := r.deps.Notifier.NotifyMinutesReady(ctx, meetingID, minutes.Summary); err != nil {
		logger.Warn("notification failed", logging.Error(err))
	}

	specs, err := r.cfg.OutputSpecs()
	if err != nil {
		return fail("outputs", Wrap(ErrConfiguration, "outputs", "build specs", err))
	}
	mode, err := r.cfg.ExecutionMode()
	if err != nil {
		return fail("outputs", Wrap(ErrConfiguration, "outputs", "execution mode", err))
	}

	r.setState(StateExecutingOutputs)
	outputsStarted := time.Now()
	report, runErr := r.deps.Engine.Run(ctx, specs, mode, minutes, meetingID)
	result.Report = report
	if report == nil {
		return fail("outputs", Wrap(ErrConfiguration, "outputs", "plan", runErr))
	}

	if err := r.deps.Notifier.NotifyOutputsCompleted(ctx, meetingID,
		len(report.Successful), len(report.Failed), len(report.Skipped),
		time.Since(outputsStarted)); err != nil {
		logger.Warn("notification failed", logging.Error(err))
	}

	if r.cfg.Pipeline.CleanupAudio {
		r.cleanupAudio(logger, audioPath)
	}

	var stop *outputs.StopError
	if runErr != nil && errors.As(runErr, &stop) {
		r.setState(StateAborted)
		r.record(ctx, logger, result, started, history.StatusFailed, runErr)
		return result, Wrap(ErrStageFailure, "outputs", "execute", runErr)
	}

	status := history.StatusCompleted
	if len(report.Failed) > 0 || len(report.Skipped) > 0 {
		status = history.StatusPartial
	}
	r.record(ctx, logger, result, started, status, nil)

	r.setState(StateDone)
	logger.Info("run completed",
		logging.Int("successful", len(report.Successful)),
		logging.Int("failed", len(report.Failed)),
		logging.Int("skipped", len(report.Skipped)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

// meetingID derives the channel token from the configured source file name.
func (r *Runner) meetingID(start time.Time) string {
	source := r.cfg.Input.Type
	channel := ""
	switch source {
	case "file":
		channel = baseNameToken(r.cfg.Input.AudioPath)
	case "zip":
		channel = baseNameToken(r.cfg.Input.ZipPath)
	}
	return meeting.NewID(source, channel, start)
}

func baseNameToken(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (r *Runner) record(ctx context.Context, logger *slog.Logger, result *Result, started time.Time, status string, runErr error) {
	if r.deps.Recorder == nil {
		return
	}
	run := history.Run{
		ID:         result.RunID,
		MeetingID:  result.MeetingID,
		Status:     status,
		Converter:  r.cfg.Convert.Engine,
		LLMEngine:  r.cfg.LLM.Engine,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	var records []history.OutputRecord
	if report := result.Report; report != nil {
		run.Successful = len(report.Successful)
		run.Failed = len(report.Failed)
		run.Skipped = len(report.Skipped)
		run.Aborted = report.Aborted
		for _, success := range report.Successful {
			records = append(records, history.OutputRecord{
				RunID: run.ID, Format: success.Format,
				Status: history.OutputSuccess, Artifact: success.Artifact,
			})
		}
		for _, failure := range report.Failed {
			records = append(records, history.OutputRecord{
				RunID: run.ID, Format: failure.Format,
				Status: history.OutputFailed, Error: failure.Err.Error(),
			})
		}
		for _, skip := range report.Skipped {
			records = append(records, history.OutputRecord{
				RunID: run.ID, Format: skip.Format,
				Status: history.OutputSkipped, Reason: skip.Reason,
			})
		}
	}

	if err := r.deps.Recorder.RecordRun(ctx, run, records); err != nil {
		logger.Warn("record run history failed", logging.Error(err))
	}
}

// cleanupAudio removes staged audio once the output stage has settled,
// whether it completed or aborted. Only files inside the working directory
// are removed so source recordings are never touched.
func (r *Runner) cleanupAudio(logger *slog.Logger, audioPath string) {
	if audioPath == "" {
		return
	}
	rel, err := filepath.Rel(r.cfg.Paths.WorkingDir, audioPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	if err := os.Remove(audioPath); err != nil {
		logger.Warn("cleanup audio failed", logging.Error(err))
		return
	}
	logger.Debug("staged audio removed", logging.String("audio", audioPath))
}
