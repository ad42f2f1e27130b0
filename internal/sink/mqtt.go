package sink

import (
	"context"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"ordergw/internal/pkg"
)

// 初期化時に MQTT 転送先を登録する
func init() {
	Register("mqtt", NewMqttSink)
}

// MqttInfo MQTT 転送先固有の設定
type MqttInfo struct {
	Broker         string `mapstructure:"broker"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	ClientID       string `mapstructure:"clientID"`
	Topic          string `mapstructure:"topic"` // ベーストピック
	QoS            byte   `mapstructure:"qos"`
	Retained       bool   `mapstructure:"retained"`
	KeepAliveSec   uint   `mapstructure:"keepAliveSec"`
	PingTimeoutSec uint   `mapstructure:"pingTimeoutSec"`
}

// MqttSink は Template を実装し、受理済み電文を MQTT へ発行する
type MqttSink struct {
	client mqtt.Client
	info   MqttInfo
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

// NewMqttSink MqttSink の工場関数
func NewMqttSink(ctx context.Context) (Template, error) {
	log := pkg.LoggerFromContext(ctx)
	config := pkg.ConfigFromContext(ctx)
	var info MqttInfo
	found := false

	for _, sinkConfig := range config.Sink {
		if sinkConfig.Enable && sinkConfig.Type == "mqtt" {
			if err := mapstructure.Decode(sinkConfig.Config, &info); err != nil {
				log.Error("MQTT 設定の解釈に失敗しました", zap.Error(err), zap.Any("config", sinkConfig.Config))
				return nil, fmt.Errorf("mqtt 設定の解釈に失敗しました: %w", err)
			}
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("有効な mqtt 転送先の設定がありません")
	}

	if info.Broker == "" {
		return nil, fmt.Errorf("mqtt 設定の検証に失敗しました: broker は必須です")
	}
	if info.Topic == "" {
		return nil, fmt.Errorf("mqtt 設定の検証に失敗しました: topic は必須です")
	}
	if info.Port == 0 {
		info.Port = 1883
	}
	if info.ClientID == "" {
		info.ClientID = fmt.Sprintf("ordergw-mqtt-%d", time.Now().UnixNano())
		log.Info("MQTT のクライアントIDが未設定のため生成しました", zap.String("clientID", info.ClientID))
	}
	if info.KeepAliveSec == 0 {
		info.KeepAliveSec = 60
	}
	if info.PingTimeoutSec == 0 {
		info.PingTimeoutSec = 2
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", info.Broker, info.Port))
	opts.SetClientID(info.ClientID)
	opts.SetUsername(info.Username)
	opts.SetPassword(info.Password)
	opts.SetKeepAlive(time.Duration(info.KeepAliveSec) * time.Second)
	opts.SetPingTimeout(time.Duration(info.PingTimeoutSec) * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(10 * time.Second)
	opts.OnConnect = func(client mqtt.Client) {
		log.Info("MQTT 接続完了", zap.String("broker", info.Broker))
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		log.Error("MQTT 接続が切断されました", zap.Error(err), zap.String("broker", info.Broker))
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Error("MQTT 接続に失敗しました", zap.Error(token.Error()), zap.String("broker", info.Broker))
		return nil, fmt.Errorf("mqtt 接続に失敗しました (%s): %w", info.Broker, token.Error())
	}

	sinkCtx, cancel := context.WithCancel(ctx)
	return &MqttSink{
		client: client,
		info:   info,
		ctx:    sinkCtx,
		cancel: cancel,
		logger: log.With(zap.String("sink_type", "mqtt"), zap.String("broker", info.Broker), zap.String("base_topic", info.Topic)),
	}, nil
}

// GetType 転送先の種別を返す
func (b *MqttSink) GetType() string {
	return "mqtt"
}

// Start は振り分けチャネルを監視し、電文を MQTT へ発行する
func (b *MqttSink) Start(envChan chan *Envelope) {
	b.logger.Info("===MqttSink Started===")

OuterLoop:
	for {
		select {
		case <-b.ctx.Done():
			b.logger.Info("===MqttSink Stopping===")
			break OuterLoop
		case env, ok := <-envChan:
			if !ok {
				b.logger.Info("振り分けチャネルが閉じられたため停止します")
				break OuterLoop
			}
			if env == nil {
				continue
			}

			// トピック構成: base_topic/文書番号
			topic := strings.TrimSuffix(b.info.Topic, "/") + "/" + env.DocID

			token := b.client.Publish(topic, b.info.QoS, b.info.Retained, env.Payload)
			if token.WaitTimeout(5*time.Second) && token.Error() != nil {
				pkg.SinkErrors.WithLabelValues("mqtt").Inc()
				b.logger.Error("MQTT への発行に失敗しました",
					zap.Error(token.Error()),
					zap.String("topic", topic),
					zap.String("doc_id", env.DocID))
				continue
			}
			pkg.SinkPublished.WithLabelValues("mqtt").Inc()
			b.logger.Debug("MQTT へ発行しました", zap.String("topic", topic), zap.Int("payload_size", len(env.Payload)))
		}
	}
	b.logger.Info("===MqttSink Finished===")
	if b.client.IsConnected() {
		b.client.Disconnect(250)
	}
}

// Stop は context の取消で MqttSink を停止させる
func (b *MqttSink) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
}
