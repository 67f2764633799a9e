package snowflake

import (
	"time"

	"go.uber.org/zap"
)

type Option func(g *Generator)

// WithInitialSequence 初始序列号，取值 [0, MaxSequence]
func WithInitialSequence(seq int64) Option {
	return func(g *Generator) {
		g.sequence = seq
	}
}

func WithClock(c Clock) Option {
	return func(g *Generator) {
		if c != nil {
			g.clock = c
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(g *Generator) {
		if o != nil {
			g.observer = o
		}
	}
}

// WithSpinSleep 序列号耗尽时每次重新采样时钟之间的休眠，0 表示纯自旋
func WithSpinSleep(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.spinSleep = d
		}
	}
}

// Observer 生成过程中的事件回调，在生成器的锁内同步调用，实现里不要阻塞
type Observer interface {
	OnGenerate(id ID)
	OnClockBackward(regression time.Duration)
	OnSequenceExhausted(waited time.Duration)
}

type nopObserver struct{}

func (nopObserver) OnGenerate(ID) {}

func (nopObserver) OnClockBackward(time.Duration) {}

func (nopObserver) OnSequenceExhausted(time.Duration) {}
