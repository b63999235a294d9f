package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	appctx "github.com/ymatsuda/auth-service/internal/pkg/context"
)

var Logger zerolog.Logger

func Init() {
	InitWithWriter(os.Stdout)
}

func InitWithWriter(w io.Writer) {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	format := os.Getenv("LOG_FORMAT") // "json" or "console"
	if format == "" {
		format = "console"
	}

	if format == "json" {
		Logger = zerolog.New(w).With().Timestamp().Logger().Level(level)
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger().Level(level)
	}

	// set global
	zlog.Logger = Logger
}

// WithCtx returns the logger enriched with the request id, if present.
func WithCtx(ctx context.Context) *zerolog.Logger {
	if id := appctx.GetRequestID(ctx); id != "" {
		l := Logger.With().Str("request_id", id).Logger()
		return &l
	}
	return &Logger
}
