package pkg

import (
	"context"

	"go.uber.org/zap"
)

// context key の衝突を避けるための非公開 key 型
type loggerKey struct{}
type configKey struct{}

// WithLogger は zap.Logger を context に載せる
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext は context から logger を取り出す。
// 載っていない場合は何も出力しない logger を返す (テスト等で安全に使えるように)
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithConfig は設定を context に載せる
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext は context から設定を取り出す。載っていない場合は空の設定を返す
func ConfigFromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok {
		return cfg
	}
	return &Config{}
}
