package cron

import (
	"context"
	"errors"

	robfig "github.com/robfig/cron/v3"
	"github.com/xuhaidong1/idgen/pkg/snowflake"
	"go.uber.org/zap"
)

// Generator 消费方视角的发号器
type Generator interface {
	Generate() (snowflake.ID, error)
}

// Sink 接收定时生成的 id
type Sink func(id snowflake.ID)

// 兼容 5 段和 6 段（带秒）的表达式，以及 @every/@hourly 之类的描述符
var parser = robfig.NewParser(robfig.SecondOptional | robfig.Minute | robfig.Hour |
	robfig.Dom | robfig.Month | robfig.Dow | robfig.Descriptor)

// Validate 只检查表达式能否解析，不注册任务
func Validate(spec string) error {
	_, err := parser.Parse(spec)
	return err
}

type CronController struct {
	cron   *robfig.Cron
	gen    Generator
	sink   Sink
	batch  int
	logger *zap.Logger
}

func NewCronController(gen Generator, sink Sink, batch int, logger *zap.Logger) *CronController {
	if batch <= 0 {
		batch = 1
	}
	return &CronController{
		cron:   robfig.New(robfig.WithParser(parser), robfig.WithChain(robfig.SkipIfStillRunning(robfig.DiscardLogger))),
		gen:    gen,
		sink:   sink,
		batch:  batch,
		logger: logger,
	}
}

// AddSchedule 按 spec 周期性地生成一批 id
func (c *CronController) AddSchedule(spec string) error {
	_, err := c.cron.AddFunc(spec, c.Emit)
	if err != nil {
		c.logger.Error("CronController", zap.String("spec", spec), zap.Error(err))
		return err
	}
	c.logger.Info("CronController", zap.String("spec", spec), zap.Int("batch", c.batch))
	return nil
}

// Emit 生成一批 id 交给 sink，时钟回拨的那一批直接放弃，等下一次触发
func (c *CronController) Emit() {
	for i := 0; i < c.batch; i++ {
		id, err := c.gen.Generate()
		if err != nil {
			var back *snowflake.ClockMovedBackwardError
			if errors.As(err, &back) {
				c.logger.Warn("CronController", zap.Duration("regression", back.Regression()), zap.Error(err))
			} else {
				c.logger.Error("CronController", zap.Error(err))
			}
			return
		}
		c.sink(id)
	}
}

func (c *CronController) Start() {
	c.cron.Start()
	c.logger.Info("CronController", zap.String("status", "start"))
}

// Stop 停止调度，返回的 ctx 在正在执行的任务结束后 Done
func (c *CronController) Stop() context.Context {
	c.logger.Info("CronController", zap.String("status", "closed"))
	return c.cron.Stop()
}
