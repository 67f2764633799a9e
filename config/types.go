package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/xuhaidong1/idgen/pkg/snowflake"
	"go.uber.org/zap/zapcore"
)

var ErrInvalid = errors.New("config: invalid")

const (
	ClockWall      = "wall"
	ClockMonotonic = "monotonic"
)

type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Log       LogConfig       `yaml:"log"`
	Watch     WatchConfig     `yaml:"watch"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type GeneratorConfig struct {
	// 调用方负责保证 (DatacenterID, NodeID) 全局唯一
	NodeID          int64 `yaml:"node_id"`
	DatacenterID    int64 `yaml:"datacenter_id"`
	InitialSequence int64 `yaml:"initial_sequence"`
	// wall 或 monotonic
	Clock string `yaml:"clock"`
}

type LogConfig struct {
	// debug/info/warn/error
	Level string `yaml:"level"`
	// console 或 json
	Encoding string `yaml:"encoding"`
}

type WatchConfig struct {
	// robfig cron 表达式，支持秒级和 @every
	Cron string `yaml:"cron"`
	// 为空时输出到 stdout
	Out string `yaml:"out"`
	// 每次触发生成的 id 个数
	Batch int `yaml:"batch"`
}

type MetricsConfig struct {
	// 为空时不暴露 /metrics
	Addr string `yaml:"addr"`
}

func (c Config) Validate() error {
	g := c.Generator
	if g.NodeID < 0 || g.NodeID > snowflake.MaxNodeID {
		return fmt.Errorf("generator.node_id %d not in [0, %d]: %w", g.NodeID, snowflake.MaxNodeID, ErrInvalid)
	}
	if g.DatacenterID < 0 || g.DatacenterID > snowflake.MaxDatacenterID {
		return fmt.Errorf("generator.datacenter_id %d not in [0, %d]: %w", g.DatacenterID, snowflake.MaxDatacenterID, ErrInvalid)
	}
	if g.InitialSequence < 0 || g.InitialSequence > snowflake.MaxSequence {
		return fmt.Errorf("generator.initial_sequence %d not in [0, %d]: %w", g.InitialSequence, snowflake.MaxSequence, ErrInvalid)
	}
	switch g.Clock {
	case "", ClockWall, ClockMonotonic:
	default:
		return fmt.Errorf("generator.clock %q: %w", g.Clock, ErrInvalid)
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level %q: %w", c.Log.Level, ErrInvalid)
		}
	}
	switch c.Log.Encoding {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.encoding %q: %w", c.Log.Encoding, ErrInvalid)
	}
	if c.Watch.Batch < 0 {
		return fmt.Errorf("watch.batch %d: %w", c.Watch.Batch, ErrInvalid)
	}
	return nil
}

func GetPodName() string {
	podName, err := os.Hostname()
	if err != nil {
		panic(fmt.Sprintf("Error getting Pod name: %v", err))
	}
	return podName
}
