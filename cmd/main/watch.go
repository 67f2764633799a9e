package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/xuhaidong1/idgen/cmd/ioc"
	"github.com/xuhaidong1/idgen/config"
	"github.com/xuhaidong1/idgen/internal/cron"
	"github.com/xuhaidong1/idgen/internal/metrics"
	"github.com/xuhaidong1/idgen/pkg/snowflake"
	"github.com/xuhaidong1/idgen/pkg/zapx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var (
		cronSpec    string
		out         string
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "按 cron 表达式周期性发号，直到收到 SIGINT/SIGTERM",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("cron") {
				cfg.Watch.Cron = cronSpec
			}
			if flags.Changed("out") {
				cfg.Watch.Out = out
			}
			if flags.Changed("metrics") {
				cfg.Metrics.Addr = metricsAddr
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runWatch(ctx, cancel, cfg, cmd)
		},
	}
	cmd.Flags().StringVar(&cronSpec, "cron", "", "cron 表达式，如 '@every 1s' 或 '*/5 * * * * *'")
	cmd.Flags().StringVar(&out, "out", "", "id 输出文件（按大小轮转），缺省输出到 stdout")
	cmd.Flags().StringVar(&metricsAddr, "metrics", "", "/metrics 监听地址，空串表示关闭")
	return cmd
}

func runWatch(ctx context.Context, cancel context.CancelFunc, cfg config.Config, cmd *cobra.Command) error {
	logger := ioc.InitLogger(cfg.Log)
	if err := cron.Validate(cfg.Watch.Cron); err != nil {
		return fmt.Errorf("invalid cron %q: %w", cfg.Watch.Cron, err)
	}

	//-----指标-----
	var (
		observer  snowflake.Observer
		collector *metrics.Collector
	)
	if cfg.Metrics.Addr != "" {
		collector = metrics.NewCollector(prometheus.Labels{
			"node":       strconv.FormatInt(cfg.Generator.NodeID, 10),
			"datacenter": strconv.FormatInt(cfg.Generator.DatacenterID, 10),
		})
		observer = collector
	}

	//-----发号器-----
	// 每次 watch 都新建，observer 跟着本次的 collector 走
	g, err := ioc.NewGenerator(cfg.Generator, logger, observer)
	if err != nil {
		return err
	}

	//-----输出-----
	var (
		sink      cron.Sink
		closeSink func() error
	)
	if cfg.Watch.Out != "" {
		fileLogger, closeFn, er := zapx.NewFileLogger(cfg.Watch.Out, zapcore.InfoLevel)
		if er != nil {
			return er
		}
		sink = func(id snowflake.ID) {
			p := id.Parts()
			fileLogger.Info("id", zap.Stringer("id", id), zap.Int64("timestamp", p.Timestamp),
				zap.Int64("datacenter", p.DatacenterID), zap.Int64("node", p.NodeID), zap.Int64("sequence", p.Sequence))
		}
		closeSink = closeFn
	} else {
		w := cmd.OutOrStdout()
		sink = func(id snowflake.ID) {
			fmt.Fprintln(w, id)
		}
	}

	//-----定时任务-----
	cronController := cron.NewCronController(g, sink, cfg.Watch.Batch, logger)
	if err = cronController.AddSchedule(cfg.Watch.Cron); err != nil {
		if closeSink != nil {
			_ = closeSink()
		}
		return fmt.Errorf("invalid cron %q: %w", cfg.Watch.Cron, err)
	}

	// 所有可能失败的步骤都走完之后才监听端口
	var metricsServer *http.Server
	if collector != nil {
		metricsServer = collector.Serve(cfg.Metrics.Addr, logger)
	}
	cronController.Start()

	gs := NewGracefulShutdown(cancel, cronController, metricsServer, closeSink, logger)
	<-ctx.Done()
	gs.Shutdown()
	return nil
}
