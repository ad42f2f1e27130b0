package pkg

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	cfg := &LogConfig{
		LogPath:    filepath.Join(t.TempDir(), "test.log"),
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
		Level:      "debug",
	}
	logger := NewLogger(cfg)
	if logger == nil {
		t.Fatal("NewLogger が nil を返しました")
	}
	logger.Debug("テストメッセージ", zap.String("key", "value"))
	_ = logger.Sync()
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	cfg := &LogConfig{
		LogPath: filepath.Join(t.TempDir(), "test.log"),
		Level:   "not-a-level",
	}
	// 不正なレベルでも panic せず Info にフォールバックする
	logger := NewLogger(cfg)
	if logger == nil {
		t.Fatal("NewLogger が nil を返しました")
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithLogger(context.Background(), logger)
	if got := LoggerFromContext(ctx); got != logger {
		t.Error("context から取り出した logger が一致しません")
	}
	// 未設定の context では nop logger が返る
	if got := LoggerFromContext(context.Background()); got == nil {
		t.Error("未設定の context で nil が返りました")
	}
}

func TestConfigContextRoundTrip(t *testing.T) {
	cfg := &Config{Version: "test"}
	ctx := WithConfig(context.Background(), cfg)
	if got := ConfigFromContext(ctx); got != cfg {
		t.Error("context から取り出した設定が一致しません")
	}
	if got := ConfigFromContext(context.Background()); got == nil {
		t.Error("未設定の context で nil が返りました")
	}
}

func TestErrChanContextRoundTrip(t *testing.T) {
	errChan := make(chan error, 1)
	ctx := WithErrChan(context.Background(), errChan)
	ch := ErrChanFromContext(ctx)
	if ch == nil {
		t.Fatal("context から errChan を取り出せませんでした")
	}
	if got := ErrChanFromContext(context.Background()); got != nil {
		t.Error("未設定の context で nil 以外が返りました")
	}
}
