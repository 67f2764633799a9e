// Package snowflake 提供单节点的 Snowflake 发号器。
//
// # ID 结构
//
//	 1 bit  - 符号位，恒为 0
//	41 bits - 相对 Epoch(1288834974657) 的毫秒数
//	 5 bits - 数据中心 ID (0-31)
//	 5 bits - 节点 ID (0-31)
//	12 bits - 毫秒内序列号（每个节点每毫秒最多 4096 个）
//
// 节点/数据中心 ID 由调用方分配，包内不做任何协调；不同坐标的生成器之间互不依赖。
//
// # 使用方式
//
//	g, err := snowflake.New(5, 5)
//	if err != nil {
//	    return err
//	}
//	id, err := g.Generate()
//	var back *snowflake.ClockMovedBackwardError
//	if errors.As(err, &back) {
//	    // 时钟回拨 back.Regression()，状态未改动，可稍后重试
//	}
//	parts, _ := snowflake.Decompose(id)
//
// # 时钟
//
// 默认使用墙上时钟 SystemClock，时钟回拨时 Generate 直接报错，不做修正。
// MonotonicClock 在启动时对齐一次墙上时间，之后按单调时钟推进。
package snowflake
