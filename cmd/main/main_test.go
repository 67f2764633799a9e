package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuhaidong1/idgen/config"
	"github.com/xuhaidong1/idgen/pkg/snowflake"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestGenCmd(t *testing.T) {
	t.Parallel()

	t.Run("十进制", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "gen", "-n", "3", "--node", "1", "--datacenter", "2")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		var prev snowflake.ID
		for _, line := range lines {
			id, err := snowflake.ParseString(line)
			require.NoError(t, err)
			assert.Greater(t, id, prev)
			prev = id
			assert.Equal(t, int64(1), id.Parts().NodeID)
			assert.Equal(t, int64(2), id.Parts().DatacenterID)
		}
	})
	t.Run("base58", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "gen", "--format", "base58")
		require.NoError(t, err)
		_, err = snowflake.ParseBase58(strings.TrimSpace(out))
		require.NoError(t, err)
	})
	t.Run("json", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "gen", "--format", "json", "--node", "7", "--datacenter", "8")
		require.NoError(t, err)
		var line idLine
		require.NoError(t, json.Unmarshal([]byte(out), &line))
		assert.Equal(t, int64(7), line.Parts.NodeID)
		assert.Equal(t, int64(8), line.Parts.DatacenterID)
		assert.Equal(t, line.ID.Parts(), line.Parts)
	})
	t.Run("节点越界", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "gen", "--node", "32")
		assert.ErrorIs(t, err, config.ErrInvalid)
	})
	t.Run("日志级别写错", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "gen", "--log-level", "verbose")
		assert.ErrorIs(t, err, config.ErrInvalid)
	})
	t.Run("未知格式", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "gen", "--format", "hex")
		assert.Error(t, err)
	})
	t.Run("个数非法", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "gen", "-n", "0")
		assert.Error(t, err)
	})
}

func TestGenCmd_ConfigFile(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "idgen.yaml")
	require.NoError(t, os.WriteFile(p, []byte("generator:\n  node_id: 11\n  datacenter_id: 12\n"), 0o600))

	out, err := execute(t, "gen", "--config", p)
	require.NoError(t, err)
	id, err := snowflake.ParseString(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, int64(11), id.Parts().NodeID)
	assert.Equal(t, int64(12), id.Parts().DatacenterID)

	// 命令行优先于配置文件
	out, err = execute(t, "gen", "--config", p, "--node", "3")
	require.NoError(t, err)
	id, err = snowflake.ParseString(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, int64(3), id.Parts().NodeID)
	assert.Equal(t, int64(12), id.Parts().DatacenterID)
}

// 环境变量里的坐标写错时必须报错，不能退回默认坐标继续发号
func TestGenCmd_MalformedEnv(t *testing.T) {
	t.Setenv("IDGEN_DATACENTER_ID", "1O")

	out, err := execute(t, "gen")
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Empty(t, out)
}

func TestDecodeCmd(t *testing.T) {
	t.Parallel()

	t.Run("文本", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "decode", "4194979843")
		require.NoError(t, err)
		assert.Contains(t, out, "timestamp   1000\n")
		assert.Contains(t, out, "datacenter  5\n")
		assert.Contains(t, out, "node        5\n")
		assert.Contains(t, out, "sequence    3\n")
		assert.Contains(t, out, "time        2010-11-04T01:42:55.657Z\n")
	})
	t.Run("base58 输入 json 输出", func(t *testing.T) {
		t.Parallel()
		id := snowflake.ID(4194979843)
		out, err := execute(t, "decode", id.Base58(), "--format", "base58", "--json")
		require.NoError(t, err)
		var line idLine
		require.NoError(t, json.Unmarshal([]byte(out), &line))
		assert.Equal(t, id, line.ID)
		assert.Equal(t, snowflake.Parts{Timestamp: 1000, DatacenterID: 5, NodeID: 5, Sequence: 3}, line.Parts)
	})
	t.Run("非法输入", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "decode", "abc")
		assert.ErrorIs(t, err, snowflake.ErrInvalidID)
	})
	t.Run("缺参数", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "decode")
		assert.Error(t, err)
	})
}

func TestBenchCmd(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "bench", "--workers", "4", "--count", "5000")
	require.NoError(t, err)
	var report struct {
		Total      int `json:"total"`
		Unique     int `json:"unique"`
		Duplicates int `json:"duplicates"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 5000, report.Total)
	assert.Equal(t, 5000, report.Unique)
	assert.Equal(t, 0, report.Duplicates)

	_, err = execute(t, "bench", "--workers", "0")
	assert.Error(t, err)
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

// 端口能重新 Listen 说明 runWatch 返回后没有残留的指标服务
func assertPortReleased(t *testing.T, addr string) {
	t.Helper()
	assert.Eventually(t, func() bool {
		l, err := net.Listen("tcp", addr)
		if err != nil {
			return false
		}
		_ = l.Close()
		return true
	}, time.Second, 50*time.Millisecond)
}

func TestRunWatch_InvalidCron(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name string
		spec string
	}{
		{name: "无法解析", spec: "bogus"},
		{name: "自然语言", spec: "every second"},
	}
	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			addr := freeAddr(t)
			cfg := config.StartConfig
			cfg.Watch = config.WatchConfig{Cron: tc.spec, Out: filepath.Join(t.TempDir(), "ids.log"), Batch: 1}
			cfg.Metrics.Addr = addr

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			err := runWatch(ctx, cancel, cfg, newRootCmd())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.spec)

			time.Sleep(200 * time.Millisecond)
			_, dialErr := net.DialTimeout("tcp", addr, 200*time.Millisecond)
			assert.Error(t, dialErr)
			assertPortReleased(t, addr)
		})
	}
}

func TestRunWatch(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "ids.log")
	addr := freeAddr(t)
	cfg := config.StartConfig
	cfg.Generator.NodeID, cfg.Generator.DatacenterID = 6, 6
	cfg.Watch = config.WatchConfig{Cron: "* * * * * *", Out: out, Batch: 2}
	cfg.Metrics.Addr = addr

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()
	require.NoError(t, runWatch(ctx, cancel, cfg, newRootCmd()))
	assertPortReleased(t, addr)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	var entry struct {
		ID   string `json:"id"`
		Node int64  `json:"node"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, int64(6), entry.Node)
	id, err := snowflake.ParseString(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), id.Parts().DatacenterID)
}
