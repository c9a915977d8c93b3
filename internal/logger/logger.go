package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func New(environment, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if strings.EqualFold(environment, "development") {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Str("service", "ecoreports").Logger()
}
