package config

const (
	defaultWorkingDir       = "~/.local/share/meetscribe/work"
	defaultOutputDir        = "~/meetings"
	defaultLogDir           = "~/.local/share/meetscribe/logs"
	defaultInputType        = "file"
	defaultConvertEngine    = "whisperx"
	defaultConvertLanguage  = "en"
	defaultWhisperXModel    = "base"
	defaultDeepgramModel    = "nova-2"
	defaultDeepgramTimeout  = 120
	defaultLLMEngine        = "chatgpt"
	defaultLLMBaseURL       = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMTimeout       = 60
	defaultNotifyTimeout    = 10
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultOutputExecMode   = "auto"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkingDir: defaultWorkingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		Input: Input{
			Type: defaultInputType,
		},
		Convert: Convert{
			Engine:   defaultConvertEngine,
			Language: defaultConvertLanguage,
			WhisperX: WhisperX{
				Model: defaultWhisperXModel,
			},
			Deepgram: Deepgram{
				Model:          defaultDeepgramModel,
				TimeoutSeconds: defaultDeepgramTimeout,
			},
		},
		LLM: LLM{
			Engine:         defaultLLMEngine,
			BaseURL:        defaultLLMBaseURL,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Outputs: Outputs{
			ExecutionMode: defaultOutputExecMode,
			Targets: []OutputTarget{
				{Format: "markdown"},
				{Format: "json"},
			},
		},
		Pipeline: Pipeline{
			CleanupAudio: true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
