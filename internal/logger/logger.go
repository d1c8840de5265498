package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"storefront_poc/internal/config"

	"github.com/rs/zerolog"
)

// Logger is the process wide logger, silent until InitLogger runs
var Logger = zerolog.Nop()

var timeFormats = map[string]string{
	"unix":    zerolog.TimeFormatUnix,
	"iso8601": "2006-01-02T15:04:05.000Z07:00",
	"rfc3339": time.RFC3339,
}

// InitLogger configures Logger from cfg
func InitLogger(cfg config.LogConfig) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return fmt.Errorf("invalid log level '%s': %w", cfg.Level, err)
	}

	out, err := openOutput(cfg)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if format, ok := timeFormats[strings.ToLower(cfg.TimeFormat)]; ok {
		zerolog.TimeFieldFormat = format
	}

	Logger = zerolog.New(out).With().
		Timestamp().
		Str("service", "storefront").
		Logger()

	Logger.Info().
		Str("level", level.String()).
		Str("format", cfg.Format).
		Str("output", cfg.Output).
		Msg("Logger initialized successfully")
	return nil
}

func openOutput(cfg config.LogConfig) (io.Writer, error) {
	var out io.Writer = os.Stdout
	switch strings.ToLower(cfg.Output) {
	case "stderr":
		out = os.Stderr
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file '%s': %w", cfg.FilePath, err)
		}
		out = file
	}

	if strings.EqualFold(cfg.Format, "console") {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}, nil
	}
	return out, nil
}

type levelWriter zerolog.Level

func (w levelWriter) Write(p []byte) (int, error) {
	if msg := string(bytes.TrimSpace(p)); msg != "" {
		Logger.WithLevel(zerolog.Level(w)).Msg(msg)
	}
	return len(p), nil
}

// Writer returns an io.Writer logging every write as one message at level.
// Used to route third-party log output, like gin's, through Logger.
func Writer(level zerolog.Level) io.Writer {
	return levelWriter(level)
}

func Info() *zerolog.Event {
	return Logger.Info()
}

func Debug() *zerolog.Event {
	return Logger.Debug()
}

func Warn() *zerolog.Event {
	return Logger.Warn()
}

func Error() *zerolog.Event {
	return Logger.Error()
}
