package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xuhaidong1/idgen/pkg/snowflake"
	"go.uber.org/zap"
)

var (
	defaultNameSpace = "xuhaidong"
	defaultSubsystem = "idgen"
)

// Collector 把生成器事件转成 prometheus 指标，实现 snowflake.Observer
type Collector struct {
	registry *prometheus.Registry

	generated     prometheus.Counter
	clockBackward prometheus.Counter
	exhausted     prometheus.Counter
	waited        prometheus.Histogram
	lastTimestamp prometheus.Gauge
}

var _ snowflake.Observer = (*Collector)(nil)

func NewCollector(constLabels prometheus.Labels) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   defaultNameSpace,
			Subsystem:   defaultSubsystem,
			Name:        "generated_total",
			Help:        "生成成功的 id 数",
			ConstLabels: constLabels,
		}),
		clockBackward: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   defaultNameSpace,
			Subsystem:   defaultSubsystem,
			Name:        "clock_backward_total",
			Help:        "时钟回拨导致的失败次数",
			ConstLabels: constLabels,
		}),
		exhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   defaultNameSpace,
			Subsystem:   defaultSubsystem,
			Name:        "sequence_exhausted_total",
			Help:        "单毫秒序列号耗尽次数",
			ConstLabels: constLabels,
		}),
		waited: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   defaultNameSpace,
			Subsystem:   defaultSubsystem,
			Name:        "sequence_wait_seconds",
			Help:        "序列号耗尽后等待下一毫秒的时长",
			ConstLabels: constLabels,
			Buckets:     []float64{.0001, .00025, .0005, .001, .002, .005},
		}),
		lastTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   defaultNameSpace,
			Subsystem:   defaultSubsystem,
			Name:        "last_id_unix_millis",
			Help:        "最近一个 id 携带的时间",
			ConstLabels: constLabels,
		}),
	}
	c.registry.MustRegister(c.generated, c.clockBackward, c.exhausted, c.waited, c.lastTimestamp,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) OnGenerate(id snowflake.ID) {
	c.generated.Inc()
	c.lastTimestamp.Set(float64(id.Time().UnixMilli()))
}

func (c *Collector) OnClockBackward(time.Duration) {
	c.clockBackward.Inc()
}

func (c *Collector) OnSequenceExhausted(waited time.Duration) {
	c.exhausted.Inc()
	c.waited.Observe(waited.Seconds())
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve 在 addr 上暴露 /metrics，返回的 server 由调用方负责 Shutdown
func (c *Collector) Serve(addr string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Metrics", zap.String("status", "start"), zap.String("addr", addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics", zap.Error(err))
		}
	}()
	return server
}
