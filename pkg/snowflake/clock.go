package snowflake

import "time"

//go:generate mockgen -destination=mocks/mock_clock.go -package=mocks github.com/xuhaidong1/idgen/pkg/snowflake Clock

// Clock 毫秒时钟，测试里可以替换成模拟时钟
type Clock interface {
	// NowMilli 当前 unix 毫秒数
	NowMilli() int64
}

// SystemClock 直接读墙上时间。NTP 往回拨时生成器会报 ErrClockMovedBackward。
type SystemClock struct{}

func (SystemClock) NowMilli() int64 { return time.Now().UnixMilli() }

// MonotonicClock 启动时对齐一次墙上时间，之后只按进程单调时钟累加，
// 因此不会感知到运行期间的时钟回拨，但也不会跟随 NTP 向前的修正。
type MonotonicClock struct {
	// 保留单调读数，不能调用 UTC()/Round(0)
	start      time.Time
	startMilli int64
}

func NewMonotonicClock() *MonotonicClock {
	now := time.Now()
	return &MonotonicClock{start: now, startMilli: now.UnixMilli()}
}

func (c *MonotonicClock) NowMilli() int64 {
	return c.startMilli + int64(time.Since(c.start)/time.Millisecond)
}
