package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"revcast/internal/config"
)

// Init configures the global logger.
func Init(cfg *config.LogConfig) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	switch cfg.TimeFormat {
	case "Unix":
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	case "UnixMs":
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	default:
		zerolog.TimeFieldFormat = time.RFC3339
	}

	var output io.Writer = os.Stdout
	if cfg.Output == "file" && cfg.FilePath != "" {
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		output = file
	}

	// Console format for local development.
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Caller().Logger()

	return nil
}

// Get returns the global logger.
func Get() zerolog.Logger {
	return log.Logger
}
