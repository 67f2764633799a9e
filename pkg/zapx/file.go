package zapx

import (
	"errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var ErrEmptyFilename = errors.New("zapx: empty log filename")

const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 7
	DefaultMaxAgeDays = 30
)

// NewFileLogger 写 json 行到 path，按大小轮转。返回的 close 负责 sync 并关闭文件。
func NewFileLogger(path string, level zapcore.Level) (*zap.Logger, func() error, error) {
	if path == "" {
		return nil, nil, ErrEmptyFilename
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
		Compress:   true,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(defaultJSONConfig()),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	logger := zap.New(core)
	closeFn := func() error {
		// 文件 sync 失败不影响关闭
		_ = logger.Sync()
		return w.Close()
	}
	return logger, closeFn, nil
}
