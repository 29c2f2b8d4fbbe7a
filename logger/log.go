package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base  *zap.Logger
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger. ENV=production selects the JSON encoder,
// anything else the colored development console.
func Init() {
	once.Do(func() {
		var cfg zap.Config
		if os.Getenv("ENV") == "production" {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		l, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
		base = l
		sugar = l.Sugar()
	})
}

// L returns the underlying zap logger.
func L() *zap.Logger {
	Init()
	return base
}

// Sync flushes buffered entries. Call it before exit.
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}

// Info logs msg with alternating key/value pairs.
func Info(msg string, kv ...any) {
	Init()
	sugar.Infow(msg, kv...)
}

func Warn(msg string, kv ...any) {
	Init()
	sugar.Warnw(msg, kv...)
}

func Error(msg string, kv ...any) {
	Init()
	sugar.Errorw(msg, kv...)
}

func Debug(msg string, kv ...any) {
	Init()
	sugar.Debugw(msg, kv...)
}

func Fatal(msg string, kv ...any) {
	Init()
	sugar.Fatalw(msg, kv...)
}
