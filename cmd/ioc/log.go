package ioc

import (
	"sync"

	"github.com/xuhaidong1/idgen/config"
	"github.com/xuhaidong1/idgen/pkg/zapx"
	"go.uber.org/zap"
)

var (
	logger         *zap.Logger
	loggerInitOnce sync.Once
)

func InitLogger(cfg config.LogConfig) *zap.Logger {
	loggerInitOnce.Do(func() {
		l, err := zapx.NewLogger(zapx.ParseLevel(cfg.Level), cfg.Encoding).Build()
		if err != nil {
			panic(err)
		}
		logger = l.With(zap.String("pod", config.GetPodName()))
	})
	return logger
}
