package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/config"
)

var globalLogger zerolog.Logger

// Logger returns the application logger. Valid after InitDefaultLogger.
func Logger() zerolog.Logger {
	return globalLogger
}

func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	zerolog.TimestampFieldName = "timestamp"

	// Command output goes to stdout; logs stay on stderr.
	globalLogger = zerolog.New(os.Stderr).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
}

func MustInitApplicationLogger() {
	cfg := config.Global()

	w := io.Writer(os.Stderr)
	switch cfg.Env {
	case config.EnvDev:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case config.EnvProd:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case config.EnvLocal:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)

		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stderr
		w = consoleWriter
	default:
		globalLogger.Error().
			Str("env", cfg.Env).
			Msg("unknown env")
		panic(fmt.Errorf("unknown env: %s", cfg.Env))
	}

	globalLogger = globalLogger.Output(w)
	globalLogger.Debug().Msg("initialized application logger")
}
