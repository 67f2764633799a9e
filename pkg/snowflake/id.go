package snowflake

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

// ID 生成的 63 位 id，符号位恒为 0。
//
// 位布局与 bwmarrin/snowflake 的默认布局兼容（同一个 Epoch，10 位节点 = 数据中心<<5 | 节点），
// 文本编码直接复用它的实现。
type ID int64

func (id ID) Int64() int64 { return int64(id) }

func (id ID) String() string { return id.flake().String() }

func (id ID) Base2() string { return id.flake().Base2() }

func (id ID) Base32() string { return id.flake().Base32() }

func (id ID) Base36() string { return id.flake().Base36() }

func (id ID) Base58() string { return id.flake().Base58() }

func (id ID) Base64() string { return id.flake().Base64() }

// Parts 拆解 id，负数 id 返回零值
func (id ID) Parts() Parts {
	p, _ := Decompose(id)
	return p
}

// Time 生成该 id 时的墙上时间，负数 id 返回零值 time.Time
func (id ID) Time() time.Time {
	p, err := Decompose(id)
	if err != nil {
		return time.Time{}
	}
	return p.Time()
}

// MarshalJSON 序列化成字符串，避免 js 等语言丢精度
func (id ID) MarshalJSON() ([]byte, error) { return id.flake().MarshalJSON() }

func (id *ID) UnmarshalJSON(b []byte) error {
	var f snowflake.ID
	if err := f.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("%s: %w", b, ErrInvalidID)
	}
	return id.set(f)
}

func (id ID) flake() snowflake.ID { return snowflake.ParseInt64(int64(id)) }

func (id *ID) set(f snowflake.ID) error {
	if f.Int64() < 0 {
		return fmt.Errorf("%d: %w", f.Int64(), ErrInvalidID)
	}
	*id = ID(f.Int64())
	return nil
}

// Format 文本编码方式
type Format string

const (
	FormatDecimal Format = "dec"
	FormatBase2   Format = "base2"
	FormatBase32  Format = "base32"
	FormatBase36  Format = "base36"
	FormatBase58  Format = "base58"
	FormatBase64  Format = "base64"
)

// Encode 按指定格式编码
func (id ID) Encode(f Format) (string, error) {
	switch f {
	case FormatDecimal, "":
		return id.String(), nil
	case FormatBase2:
		return id.Base2(), nil
	case FormatBase32:
		return id.Base32(), nil
	case FormatBase36:
		return id.Base36(), nil
	case FormatBase58:
		return id.Base58(), nil
	case FormatBase64:
		return id.Base64(), nil
	default:
		return "", fmt.Errorf("unknown id format %q", f)
	}
}

// Parse 按指定格式解析，Encode 的逆操作
func Parse(s string, f Format) (ID, error) {
	var (
		flake snowflake.ID
		err   error
	)
	switch f {
	case FormatDecimal, "":
		flake, err = snowflake.ParseString(s)
	case FormatBase2:
		flake, err = snowflake.ParseBase2(s)
	case FormatBase32:
		flake, err = snowflake.ParseBase32([]byte(s))
	case FormatBase36:
		flake, err = snowflake.ParseBase36(s)
	case FormatBase58:
		flake, err = snowflake.ParseBase58([]byte(s))
	case FormatBase64:
		flake, err = snowflake.ParseBase64(s)
	default:
		return 0, fmt.Errorf("unknown id format %q", f)
	}
	if err != nil {
		return 0, fmt.Errorf("parse %q as %s: %v: %w", s, f, err, ErrInvalidID)
	}
	var id ID
	if err = id.set(flake); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseString 解析十进制 id
func ParseString(s string) (ID, error) { return Parse(s, FormatDecimal) }

// ParseBase58 解析 base58 编码的 id
func ParseBase58(s string) (ID, error) { return Parse(s, FormatBase58) }
