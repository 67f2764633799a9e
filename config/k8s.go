//go:build k8s

package config

// 集群内 node/datacenter 必须由部署方通过 IDGEN_NODE_ID / IDGEN_DATACENTER_ID 下发
var StartConfig = Config{
	Generator: GeneratorConfig{Clock: ClockMonotonic},
	Log:       LogConfig{Level: "info", Encoding: "json"},
	Watch: WatchConfig{
		Cron:  "@every 10s",
		Out:   "/var/log/idgen/ids.log",
		Batch: 1,
	},
	Metrics: MetricsConfig{Addr: ":8087"},
}
