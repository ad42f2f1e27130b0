package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"ordergw/internal/pkg"
)

// 初期化時に Kafka 転送先を登録する
func init() {
	Register("kafka", NewKafkaSink)
}

// KafkaSinkConfig Kafka 転送先固有の設定
type KafkaSinkConfig struct {
	Brokers         []string `mapstructure:"brokers"`
	Topic           string   `mapstructure:"topic"`
	Async           bool     `mapstructure:"async"`
	WriteTimeoutSec int      `mapstructure:"writeTimeoutSec"`
	ReadTimeoutSec  int      `mapstructure:"readTimeoutSec"`
	RequiredAcks    int      `mapstructure:"requiredAcks"`
}

// KafkaSink は Template を実装し、受理済み電文を Kafka へ送出する
type KafkaSink struct {
	writer *kafka.Writer
	config KafkaSinkConfig
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// NewKafkaSink KafkaSink の工場関数
func NewKafkaSink(ctx context.Context) (Template, error) {
	log := pkg.LoggerFromContext(ctx)
	config := pkg.ConfigFromContext(ctx)
	var cfg KafkaSinkConfig
	found := false

	for _, sinkConfig := range config.Sink {
		if sinkConfig.Enable && sinkConfig.Type == "kafka" {
			if err := mapstructure.Decode(sinkConfig.Config, &cfg); err != nil {
				log.Error("Kafka 設定の解釈に失敗しました", zap.Error(err), zap.Any("config", sinkConfig.Config))
				return nil, fmt.Errorf("kafka 設定の解釈に失敗しました: %w", err)
			}
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("有効な kafka 転送先の設定がありません")
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka 設定の検証に失敗しました: brokers は必須です")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka 設定の検証に失敗しました: topic は必須です")
	}
	if cfg.WriteTimeoutSec == 0 {
		cfg.WriteTimeoutSec = 10
	}
	if cfg.ReadTimeoutSec == 0 {
		cfg.ReadTimeoutSec = 10
	}
	// 未指定・不正値は RequireOne に落とす
	acks := kafka.RequireOne
	if cfg.RequiredAcks == -1 {
		acks = kafka.RequireAll
	} else if cfg.RequiredAcks == 0 {
		acks = kafka.RequireNone
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		RequiredAcks: acks,
		Async:        cfg.Async,
	}

	sinkCtx, cancel := context.WithCancel(ctx)
	ks := &KafkaSink{
		writer: writer,
		config: cfg,
		logger: log.With(zap.String("sink_type", "kafka"), zap.String("topic", cfg.Topic)),
		ctx:    sinkCtx,
		cancel: cancel,
	}
	ks.logger.Info("Kafka 転送先を初期化しました",
		zap.Strings("brokers", cfg.Brokers),
		zap.Bool("async", cfg.Async))
	return ks, nil
}

// GetType 転送先の種別を返す
func (ks *KafkaSink) GetType() string {
	return "kafka"
}

// Start は振り分けチャネルを監視し、電文を Kafka へ書き込む
func (ks *KafkaSink) Start(envChan chan *Envelope) {
	ks.logger.Info("===KafkaSink Started===")

	defer func() {
		if err := ks.writer.Close(); err != nil {
			ks.logger.Error("Kafka writer の停止に失敗しました", zap.Error(err))
		}
		ks.logger.Info("Kafka writer を閉じました")
	}()

OuterLoop:
	for {
		select {
		case <-ks.ctx.Done():
			ks.logger.Info("===KafkaSink Stopping===")
			break OuterLoop
		case env, ok := <-envChan:
			if !ok {
				ks.logger.Info("振り分けチャネルが閉じられたため停止します")
				break OuterLoop
			}
			if env == nil {
				continue
			}

			// 同一文書は同一パーティションに載るよう文書番号をキーにする
			msg := kafka.Message{
				Key:   []byte(env.DocID),
				Value: env.Payload,
				Time:  time.Now(),
			}
			if err := ks.writer.WriteMessages(ks.ctx, msg); err != nil {
				if ks.ctx.Err() != nil {
					ks.logger.Warn("停止処理中のため Kafka 書き込みを中断しました", zap.Error(ks.ctx.Err()))
					continue
				}
				pkg.SinkErrors.WithLabelValues("kafka").Inc()
				ks.logger.Error("Kafka への書き込みに失敗しました",
					zap.Error(err),
					zap.String("doc_id", env.DocID),
					zap.Int("doc_version", env.DocVersion))
				continue
			}
			pkg.SinkPublished.WithLabelValues("kafka").Inc()
			ks.logger.Debug("Kafka へ送出しました", zap.String("doc_id", env.DocID))
		}
	}
	ks.logger.Info("===KafkaSink Finished===")
}

// Stop は context の取消で KafkaSink を停止させる。後始末は Start 内の defer で行う
func (ks *KafkaSink) Stop() {
	ks.cancel()
}
