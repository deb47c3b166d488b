package log

import (
	"fmt"
	"os"

	"orgchart/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger 依設定建立 zap logger：warn 以下寫 stdout，warn 以上寫 stderr
func NewLogger(conf *config.Configuration) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if conf.Log.Level != "" {
		parsed, err := zapcore.ParseLevel(conf.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG__LEVEL %q: %w", conf.Log.Level, err)
		}
		level.SetLevel(parsed)
	}

	encoder, err := newEncoder(conf.Log.Format)
	if err != nil {
		return nil, err
	}

	stdoutLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return level.Enabled(l) && l < zapcore.WarnLevel
	})
	stderrLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return level.Enabled(l) && l >= zapcore.WarnLevel
	})
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), stdoutLevel),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), stderrLevel),
	)

	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	).With(zap.String("service", conf.App.Name))
	logger.Debug("zap logger ready", zap.Stringer("level", level.Level()), zap.String("format", conf.Log.Format))
	return logger, nil
}

func newEncoder(format string) (zapcore.Encoder, error) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.MessageKey = "message"
	encCfg.TimeKey = "ts"
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	switch format {
	case "", "json":
		return zapcore.NewJSONEncoder(encCfg), nil
	case "console":
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg), nil
	default:
		return nil, fmt.Errorf("invalid LOG__FORMAT %q: want json or console", format)
	}
}
