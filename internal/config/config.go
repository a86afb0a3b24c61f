package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		History
		Watch
		Global
	}

	HTTP struct {
		Port            int32
		Host            string
		MaxUploadSizeMB int64
	}
	History struct {
		Enabled bool
		Path    string
	}
	Watch struct {
		InputDir  string
		OutputDir string
		Schedule  string // Cron format: "*/10 * * * *" = every 10 minutes
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8098)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("max_upload_size_mb", 128)
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("history_enabled", false)
	v.SetDefault("history_path", DefaultHistoryPath)
	v.SetDefault("watch_input_dir", "")
	v.SetDefault("watch_output_dir", "")
	v.SetDefault("watch_schedule", DefaultWatchSchedule)

	return &Config{
		HTTP: HTTP{
			Port:            v.GetInt32("PORT"),
			Host:            v.GetString("HOST"),
			MaxUploadSizeMB: v.GetInt64("MAX_UPLOAD_SIZE_MB"),
		},
		History: History{
			Enabled: v.GetBool("HISTORY_ENABLED"),
			Path:    v.GetString("HISTORY_PATH"),
		},
		Watch: Watch{
			InputDir:  v.GetString("WATCH_INPUT_DIR"),
			OutputDir: v.GetString("WATCH_OUTPUT_DIR"),
			Schedule:  v.GetString("WATCH_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
