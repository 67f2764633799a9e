package snowflake

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrInvalidConfig       = errors.New("snowflake: invalid generator config")
	ErrClockMovedBackward  = errors.New("snowflake: clock moved backwards")
	ErrTimestampOutOfRange = errors.New("snowflake: timestamp out of range")
	ErrInvalidID           = errors.New("snowflake: invalid id")
)

// ClockMovedBackwardError 时钟回拨，Last 是上一次发号用的毫秒，Now 是本次采样到的毫秒
type ClockMovedBackwardError struct {
	Last int64
	Now  int64
}

func (e *ClockMovedBackwardError) Error() string {
	return fmt.Sprintf("snowflake: clock moved backwards, refusing to generate id for %d milliseconds", e.Regression().Milliseconds())
}

func (e *ClockMovedBackwardError) Unwrap() error { return ErrClockMovedBackward }

// Regression 回拨的幅度
func (e *ClockMovedBackwardError) Regression() time.Duration {
	return time.Duration(e.Last-e.Now) * time.Millisecond
}

// Generator 单节点发号器。nodeID/datacenterID 构造后不变，
// lastTimestamp 和 sequence 每次 Generate 都在锁内整体读改写。
type Generator struct {
	nodeID       int64
	datacenterID int64

	mu            sync.Mutex
	lastTimestamp int64
	sequence      int64

	clock     Clock
	spinSleep time.Duration
	observer  Observer
	logger    *zap.Logger
}

func New(nodeID, datacenterID int64, opts ...Option) (*Generator, error) {
	if nodeID < 0 || nodeID > MaxNodeID {
		return nil, fmt.Errorf("node id %d must be in [0, %d]: %w", nodeID, MaxNodeID, ErrInvalidConfig)
	}
	if datacenterID < 0 || datacenterID > MaxDatacenterID {
		return nil, fmt.Errorf("datacenter id %d must be in [0, %d]: %w", datacenterID, MaxDatacenterID, ErrInvalidConfig)
	}
	g := &Generator{
		nodeID:        nodeID,
		datacenterID:  datacenterID,
		lastTimestamp: -1,
		clock:         SystemClock{},
		observer:      nopObserver{},
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	if g.sequence < 0 || g.sequence > MaxSequence {
		return nil, fmt.Errorf("initial sequence %d must be in [0, %d]: %w", g.sequence, MaxSequence, ErrInvalidConfig)
	}
	g.logger = g.logger.With(zap.Int64("node", nodeID), zap.Int64("datacenter", datacenterID))
	return g, nil
}

func (g *Generator) NodeID() int64 { return g.nodeID }

func (g *Generator) DatacenterID() int64 { return g.datacenterID }

// Generate 发下一个号。
// 时钟回拨直接报错且不修改内部状态；同一毫秒内序列号用完时自旋等到下一毫秒。
func (g *Generator) Generate() (ID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.NowMilli()
	if now < g.lastTimestamp {
		err := &ClockMovedBackwardError{Last: g.lastTimestamp, Now: now}
		g.logger.Warn("clock moved backwards", zap.Int64("last", g.lastTimestamp),
			zap.Int64("now", now), zap.Duration("regression", err.Regression()))
		g.observer.OnClockBackward(err.Regression())
		return 0, err
	}

	seq := g.sequence
	if now == g.lastTimestamp {
		seq = (seq + 1) & MaxSequence
		if seq == 0 {
			// 本毫秒 4096 个号用完
			start := time.Now()
			now = g.tilNextMillis(g.lastTimestamp)
			waited := time.Since(start)
			g.logger.Debug("sequence exhausted", zap.Int64("ms", g.lastTimestamp), zap.Duration("waited", waited))
			g.observer.OnSequenceExhausted(waited)
		}
	} else {
		seq = 0
	}

	delta := now - Epoch
	if delta < 0 || delta > MaxTimestamp {
		return 0, fmt.Errorf("now %d, epoch %d, max delta %d: %w", now, Epoch, MaxTimestamp, ErrTimestampOutOfRange)
	}

	g.sequence = seq
	g.lastTimestamp = now
	id := pack(delta, g.datacenterID, g.nodeID, seq)
	g.observer.OnGenerate(id)
	return id, nil
}

// tilNextMillis 反复采样时钟直到越过 last
func (g *Generator) tilNextMillis(last int64) int64 {
	now := g.clock.NowMilli()
	for now <= last {
		if g.spinSleep > 0 {
			time.Sleep(g.spinSleep)
		}
		now = g.clock.NowMilli()
	}
	return now
}
