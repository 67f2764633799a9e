package main

import (
	"context"
	"net/http"
	"time"

	"github.com/xuhaidong1/idgen/internal/cron"
	"go.uber.org/zap"
)

const shutdownTimeout = 3 * time.Second

type GracefulShutdown struct {
	Cancel         context.CancelFunc
	cronController *cron.CronController
	metricsServer  *http.Server
	closeSink      func() error
	logger         *zap.Logger
}

func NewGracefulShutdown(cancel context.CancelFunc, cronController *cron.CronController,
	metricsServer *http.Server, closeSink func() error, logger *zap.Logger,
) *GracefulShutdown {
	return &GracefulShutdown{
		Cancel:         cancel,
		cronController: cronController,
		metricsServer:  metricsServer,
		closeSink:      closeSink,
		logger:         logger,
	}
}

// Shutdown 先停调度并等正在跑的批次结束，再关指标服务和输出文件
func (s *GracefulShutdown) Shutdown() {
	s.Cancel()
	s.logger.Info("GracefulShutdown", zap.String("GracefulShutdown", "StopCron"))
	select {
	case <-s.cronController.Stop().Done():
	case <-time.After(shutdownTimeout):
		s.logger.Warn("GracefulShutdown", zap.String("GracefulShutdown", "cron job timeout"))
	}
	if s.metricsServer != nil {
		s.logger.Info("GracefulShutdown", zap.String("GracefulShutdown", "StopMetrics"))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			s.logger.Error("GracefulShutdown", zap.Error(err))
		}
	}
	if s.closeSink != nil {
		if err := s.closeSink(); err != nil {
			s.logger.Error("GracefulShutdown", zap.Error(err))
		}
	}
	_ = s.logger.Sync()
}
