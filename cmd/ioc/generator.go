package ioc

import (
	"github.com/xuhaidong1/idgen/config"
	"github.com/xuhaidong1/idgen/pkg/snowflake"
	"go.uber.org/zap"
)

// NewGenerator 按配置构造发号器。不做单例：observer 随调用方变化，
// 同一进程里 (datacenter, node) 相同的两个实例会发出重复 id，由调用方保证只持有一个。
func NewGenerator(cfg config.GeneratorConfig, logger *zap.Logger, observer snowflake.Observer) (*snowflake.Generator, error) {
	var clock snowflake.Clock = snowflake.SystemClock{}
	if cfg.Clock == config.ClockMonotonic {
		clock = snowflake.NewMonotonicClock()
	}
	g, err := snowflake.New(cfg.NodeID, cfg.DatacenterID,
		snowflake.WithInitialSequence(cfg.InitialSequence),
		snowflake.WithClock(clock),
		snowflake.WithLogger(logger.Named("snowflake")),
		snowflake.WithObserver(observer),
	)
	if err != nil {
		return nil, err
	}
	logger.Info("Generator", zap.Int64("node", cfg.NodeID), zap.Int64("datacenter", cfg.DatacenterID),
		zap.String("clock", cfg.Clock))
	return g, nil
}
