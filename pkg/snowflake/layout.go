package snowflake

import (
	"fmt"
	"time"
)

// 位布局，与其他实现共享 id 空间时必须完全一致
//
//	0 | 41 bits 时间戳差值 | 5 bits 数据中心 | 5 bits 节点 | 12 bits 序列号
const (
	// Epoch 基准时间（毫秒），一旦确定不能变动
	Epoch int64 = 1288834974657

	DatacenterBits = 5
	NodeBits       = 5
	SequenceBits   = 12
	TimestampBits  = 63 - DatacenterBits - NodeBits - SequenceBits

	MaxDatacenterID int64 = -1 ^ (-1 << DatacenterBits)
	MaxNodeID       int64 = -1 ^ (-1 << NodeBits)
	MaxSequence     int64 = -1 ^ (-1 << SequenceBits)
	MaxTimestamp    int64 = -1 ^ (-1 << TimestampBits)

	nodeShift       = SequenceBits
	datacenterShift = SequenceBits + NodeBits
	timestampShift  = SequenceBits + NodeBits + DatacenterBits
)

// Parts 一个 id 拆出来的各个字段
type Parts struct {
	// Timestamp 相对 Epoch 的毫秒数
	Timestamp    int64 `json:"timestamp"`
	DatacenterID int64 `json:"datacenter_id"`
	NodeID       int64 `json:"node_id"`
	Sequence     int64 `json:"sequence"`
}

// Time 生成该 id 时的墙上时间
func (p Parts) Time() time.Time {
	return time.UnixMilli(Epoch + p.Timestamp)
}

// Decompose 纯位运算拆解 id，不依赖任何生成器实例
func Decompose(id ID) (Parts, error) {
	if id < 0 {
		return Parts{}, fmt.Errorf("%d: %w", id, ErrInvalidID)
	}
	v := int64(id)
	return Parts{
		Timestamp:    v >> timestampShift,
		DatacenterID: (v >> datacenterShift) & MaxDatacenterID,
		NodeID:       (v >> nodeShift) & MaxNodeID,
		Sequence:     v & MaxSequence,
	}, nil
}

// Compose Decompose 的逆运算
func Compose(p Parts) (ID, error) {
	if p.Timestamp < 0 || p.Timestamp > MaxTimestamp {
		return 0, fmt.Errorf("timestamp %d out of range [0, %d]: %w", p.Timestamp, MaxTimestamp, ErrInvalidID)
	}
	if p.DatacenterID < 0 || p.DatacenterID > MaxDatacenterID {
		return 0, fmt.Errorf("datacenter id %d out of range [0, %d]: %w", p.DatacenterID, MaxDatacenterID, ErrInvalidID)
	}
	if p.NodeID < 0 || p.NodeID > MaxNodeID {
		return 0, fmt.Errorf("node id %d out of range [0, %d]: %w", p.NodeID, MaxNodeID, ErrInvalidID)
	}
	if p.Sequence < 0 || p.Sequence > MaxSequence {
		return 0, fmt.Errorf("sequence %d out of range [0, %d]: %w", p.Sequence, MaxSequence, ErrInvalidID)
	}
	return pack(p.Timestamp, p.DatacenterID, p.NodeID, p.Sequence), nil
}

func pack(timestamp, datacenterID, nodeID, sequence int64) ID {
	return ID(timestamp<<timestampShift |
		datacenterID<<datacenterShift |
		nodeID<<nodeShift |
		sequence)
}
