package util

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide structured logger.
var Logger = log.Logger

// InitLogger configures Logger for the given environment. Development gets a
// human readable console writer, everything else emits JSON lines.
func InitLogger(appEnv string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	switch appEnv {
	case "development", "":
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	case "test":
		level = zerolog.WarnLevel
	}

	Logger = zerolog.New(out).Level(level).With().Timestamp().Str("service", "doctor-portal").Logger()
	log.Logger = Logger
	return Logger
}
