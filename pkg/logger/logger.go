package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var once sync.Once

var logger *zap.SugaredLogger

// Get initializes a zap.SugaredLogger instance if it has not been initialized
// already and returns the same instance for subsequent calls.
func Get() *zap.SugaredLogger {
	once.Do(func() {
		stdout := zapcore.AddSync(os.Stdout)

		logLevel := zap.NewAtomicLevelAt(levelFromEnv(os.Getenv("LOG_LEVEL")))

		core := zapcore.NewCore(newEncoder(os.Getenv("JSON_LOG") != "", isTerminal(os.Stdout.Fd())), stdout, logLevel)

		buildInfo, ok := debug.ReadBuildInfo()
		if ok {
			core = core.With(buildFields(buildInfo))
		}

		logger = zap.New(core).Sugar()
	})

	return logger
}

func levelFromEnv(v string) zapcore.Level {
	if v == "" {
		return zap.InfoLevel
	}

	level, err := zapcore.ParseLevel(v)
	if err != nil {
		log.Println(
			fmt.Errorf("invalid level, defaulting to INFO: %w", err),
		)
		return zap.InfoLevel
	}

	return level
}

func newEncoder(json, color bool) zapcore.Encoder {
	if json {
		productionCfg := zap.NewProductionEncoderConfig()
		productionCfg.TimeKey = "timestamp"
		productionCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(productionCfg)
	}

	developmentCfg := zap.NewDevelopmentEncoderConfig()
	developmentCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return zapcore.NewConsoleEncoder(developmentCfg)
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func buildFields(info *debug.BuildInfo) []zapcore.Field {
	fields := []zapcore.Field{zap.String("go_version", info.GoVersion)}
	for _, v := range info.Settings {
		if v.Key == "vcs.revision" && len(v.Value) >= 7 {
			fields = append(fields, zap.String("git_revision", v.Value[0:7]))
			break
		}
	}
	return fields
}

// FromCtx returns the Logger associated with the ctx. If no logger
// is associated, the default logger is returned.
// Any extra key value pairs are added to the returned logger.
func FromCtx(ctx context.Context, with ...any) *zap.SugaredLogger {
	l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger)
	if !ok {
		l = Get()
	}

	if len(with) == 0 {
		return l
	}
	return l.With(with...)
}

// WithCtx returns a copy of ctx with the Logger attached.
func WithCtx(ctx context.Context, l *zap.SugaredLogger) context.Context {
	if lp, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
		if lp == l {
			// Do not store same logger.
			return ctx
		}
	}

	return context.WithValue(ctx, ctxKey{}, l)
}
