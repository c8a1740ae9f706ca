package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stigoleg/jiggler/internal/config"
)

// setupLogging routes logs to stderr in console mode and to cfg.LogFile in
// TUI mode. The returned closer is nil when no file was opened.
func setupLogging(cfg *config.Config) (io.Closer, error) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.WarnLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if !cfg.TUI {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return nil, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", cfg.LogFile)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	if !cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return f, nil
}
