package zapx_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuhaidong1/idgen/pkg/zapx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("console", func(t *testing.T) {
		t.Parallel()
		cfg := zapx.NewLogger(zapcore.DebugLevel, "console")
		assert.Equal(t, "console", cfg.Encoding)
		assert.True(t, cfg.Development)
		assert.Equal(t, zapcore.DebugLevel, cfg.Level.Level())
		_, err := cfg.Build()
		require.NoError(t, err)
	})
	t.Run("json", func(t *testing.T) {
		t.Parallel()
		cfg := zapx.NewLogger(zapcore.WarnLevel, "json")
		assert.Equal(t, "json", cfg.Encoding)
		assert.False(t, cfg.Development)
		assert.Equal(t, zapcore.WarnLevel, cfg.Level.Level())
		_, err := cfg.Build()
		require.NoError(t, err)
	})
	t.Run("未知编码按 console 处理", func(t *testing.T) {
		t.Parallel()
		cfg := zapx.NewLogger(zapcore.InfoLevel, "")
		assert.Equal(t, "console", cfg.Encoding)
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zapcore.DebugLevel, zapx.ParseLevel("debug"))
	assert.Equal(t, zapcore.ErrorLevel, zapx.ParseLevel("ERROR"))
	assert.Equal(t, zapcore.InfoLevel, zapx.ParseLevel("loud"))
	assert.Equal(t, zapcore.InfoLevel, zapx.ParseLevel(""))
}

func TestNewFileLogger(t *testing.T) {
	t.Parallel()

	t.Run("写入 json 行", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "ids.log")
		logger, closeFn, err := zapx.NewFileLogger(path, zapcore.InfoLevel)
		require.NoError(t, err)

		logger.Debug("dropped")
		logger.Info("id", zap.String("id", "4194979840"))
		require.NoError(t, closeFn())

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(b)), "\n")
		require.Len(t, lines, 1)

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
		assert.Equal(t, "id", entry["msg"])
		assert.Equal(t, "4194979840", entry["id"])
		assert.Equal(t, "info", entry["lv"])
	})
	t.Run("空路径", func(t *testing.T) {
		t.Parallel()
		_, _, err := zapx.NewFileLogger("", zapcore.InfoLevel)
		assert.ErrorIs(t, err, zapx.ErrEmptyFilename)
	})
}
