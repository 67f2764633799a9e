//go:build !k8s

package config

var StartConfig = Config{
	Generator: GeneratorConfig{
		NodeID:       5,
		DatacenterID: 5,
		Clock:        ClockWall,
	},
	Log: LogConfig{Level: "debug", Encoding: "console"},
	Watch: WatchConfig{
		Cron:  "@every 1s",
		Batch: 1,
	},
	Metrics: MetricsConfig{Addr: "localhost:8087"},
}
