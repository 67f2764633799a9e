package config

import (
	"fmt"
	"os"
	"strconv"
)

// FromEnv 用 IDGEN_* 环境变量覆盖 cfg。
// 数值解析失败直接报错，坐标写错时不能退回默认值，否则两个节点可能撞到同一组坐标上。
func FromEnv(cfg *Config) error {
	ints := []struct {
		key string
		dst *int64
	}{
		{key: "IDGEN_NODE_ID", dst: &cfg.Generator.NodeID},
		{key: "IDGEN_DATACENTER_ID", dst: &cfg.Generator.DatacenterID},
		{key: "IDGEN_INITIAL_SEQUENCE", dst: &cfg.Generator.InitialSequence},
	}
	for _, it := range ints {
		v := os.Getenv(it.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s %q: %w", it.key, v, ErrInvalid)
		}
		*it.dst = n
	}
	if v := os.Getenv("IDGEN_CLOCK"); v != "" {
		cfg.Generator.Clock = v
	}
	if v := os.Getenv("IDGEN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("IDGEN_LOG_ENCODING"); v != "" {
		cfg.Log.Encoding = v
	}
	if v := os.Getenv("IDGEN_WATCH_CRON"); v != "" {
		cfg.Watch.Cron = v
	}
	if v := os.Getenv("IDGEN_WATCH_OUT"); v != "" {
		cfg.Watch.Out = v
	}
	if v := os.Getenv("IDGEN_WATCH_BATCH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("IDGEN_WATCH_BATCH %q: %w", v, ErrInvalid)
		}
		cfg.Watch.Batch = n
	}
	if v := os.Getenv("IDGEN_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	return nil
}
