package pipeline

import (
	"fmt"
	"log/slog"

	"meetscribe/internal/config"
	"meetscribe/internal/convert"
	"meetscribe/internal/history"
	"meetscribe/internal/inputs"
	"meetscribe/internal/llm"
	"meetscribe/internal/notifications"
	"meetscribe/internal/outputs"
	"meetscribe/internal/render"
)

// Build assembles a runner with collaborators constructed from the config.
// The caller owns the returned store and must close it.
func Build(cfg *config.Config, logger *slog.Logger) (*Runner, *history.Store, error) {
	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, nil, err
	}
	converter, err := buildConverter(cfg)
	if err != nil {
		return nil, nil, err
	}

	generator, err := llm.NewGenerator(cfg.LLM.Engine, llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})
	if err != nil {
		return nil, nil, Wrap(ErrConfiguration, "llm", "build generator", err)
	}

	store, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		return nil, nil, Wrap(ErrConfiguration, "history", "open store", err)
	}

	engine := outputs.NewEngine(render.Registry(cfg.Paths.OutputDir, nil), logger)
	notifier := notifications.NewService(cfg.Notifications.NtfyTopic, cfg.Notifications.RequestTimeout)

	runner, err := NewRunner(cfg, Deps{
		Provider:  provider,
		Converter: converter,
		Generator: generator,
		Engine:    engine,
		Notifier:  notifier,
		Recorder:  store,
		Logger:    logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return runner, store, nil
}

func buildProvider(cfg *config.Config) (inputs.Provider, error) {
	switch cfg.Input.Type {
	case "file":
		return inputs.NewFile(cfg.Input.AudioPath, cfg.Paths.WorkingDir), nil
	case "zip":
		return inputs.NewZip(cfg.Input.ZipPath, cfg.Paths.WorkingDir), nil
	default:
		return nil, Wrap(ErrConfiguration, "input", fmt.Sprintf("unsupported type %q", cfg.Input.Type), nil)
	}
}

func buildConverter(cfg *config.Config) (convert.Engine, error) {
	switch cfg.Convert.Engine {
	case "passthrough":
		return convert.NewPassthrough(), nil
	case "whisperx":
		return convert.NewWhisperX(convert.WhisperXConfig{
			Binary:      cfg.Convert.WhisperX.Binary,
			Model:       cfg.Convert.WhisperX.Model,
			Language:    cfg.Convert.Language,
			Device:      cfg.Convert.WhisperX.Device,
			ComputeType: cfg.Convert.WhisperX.ComputeType,
		}), nil
	case "deepgram":
		return convert.NewDeepgram(convert.DeepgramConfig{
			APIKey:         cfg.Convert.Deepgram.APIKey,
			BaseURL:        cfg.Convert.Deepgram.BaseURL,
			Model:          cfg.Convert.Deepgram.Model,
			Language:       cfg.Convert.Language,
			Diarize:        cfg.Convert.Deepgram.Diarize,
			TimeoutSeconds: cfg.Convert.Deepgram.TimeoutSeconds,
		}), nil
	default:
		return nil, Wrap(ErrConfiguration, "convert", fmt.Sprintf("unsupported engine %q", cfg.Convert.Engine), nil)
	}
}
