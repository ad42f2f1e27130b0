// Package sink は受理済み電文の下流転送を担う。
//
// 本パッケージは API 層で解析・保存が完了した電文 (Envelope) を受け取り、
// 設定で有効化された転送先へ送出する。主な責務:
//   - 転送先実装 (Kafka, MQTT) の登録と初期化
//   - 電文の各転送先への振り分け
package sink

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ordergw/internal/pkg"
)

// Envelope は転送する受理済み電文1件
type Envelope struct {
	DocID      string `json:"doc_id"`
	DocVersion int    `json:"doc_version"`
	Payload    []byte `json:"payload"` // 正規スキーマの JSON
}

// Template は転送先実装の共通インタフェース
type Template interface {
	GetType() string
	Start(envChan chan *Envelope)
	Stop()
}

// FactoryFunc は転送先実装の工場関数
type FactoryFunc func(context.Context) (Template, error)

// Factories 型名から工場関数への対応表
var Factories = make(map[string]FactoryFunc)

// Register は転送先実装を登録する (各実装の init から呼ぶ)
func Register(sinkType string, factory FactoryFunc) {
	Factories[sinkType] = factory
}

// Manager は有効化された転送先の集合を管理し、電文を振り分ける
type Manager struct {
	sinks  []Template
	chans  []chan *Envelope
	logger *zap.Logger
}

// NewManager は設定で有効化された転送先を全て初期化する。
// 登録と有効化を分けているのは、設定を残したまま個別に止められるようにするため
func NewManager(ctx context.Context) (*Manager, error) {
	log := pkg.LoggerFromContext(ctx)
	config := pkg.ConfigFromContext(ctx)

	m := &Manager{logger: log}
	for _, sinkConfig := range config.Sink {
		if !sinkConfig.Enable {
			continue
		}
		factory, exists := Factories[sinkConfig.Type]
		if !exists {
			return nil, fmt.Errorf("未知の転送先種別です: %s", sinkConfig.Type)
		}
		s, err := factory(ctx)
		if err != nil {
			return nil, fmt.Errorf("転送先 %s の初期化に失敗しました: %w", sinkConfig.Type, err)
		}
		m.sinks = append(m.sinks, s)
	}
	log.Info("転送先を初期化しました", zap.Int("count", len(m.sinks)))
	return m, nil
}

// Start は各転送先の受信ループを起動する
func (m *Manager) Start() {
	m.chans = make([]chan *Envelope, len(m.sinks))
	for i, s := range m.sinks {
		ch := make(chan *Envelope, 128)
		m.chans[i] = ch
		go s.Start(ch)
	}
}

// Publish は電文を全ての転送先へ振り分ける。
// 詰まった転送先は取りこぼして警告を出す (受信APIをブロックしない)
func (m *Manager) Publish(env *Envelope) {
	for i, ch := range m.chans {
		select {
		case ch <- env:
		default:
			m.logger.Warn("転送先のバッファが一杯のため電文を破棄しました",
				zap.String("sink_type", m.sinks[i].GetType()),
				zap.String("doc_id", env.DocID))
			pkg.SinkErrors.WithLabelValues(m.sinks[i].GetType()).Inc()
		}
	}
}

// Stop は全ての転送先を停止する
func (m *Manager) Stop() {
	for _, ch := range m.chans {
		close(ch)
	}
	for _, s := range m.sinks {
		s.Stop()
	}
}
