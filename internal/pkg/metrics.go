package pkg

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 電文受信・解析まわりの Prometheus 指標。
// /metrics エンドポイントは APIルーター側で promhttp を通して公開する。
var (
	// TelegramsReceived 受信した電文数 (source: upload|raw)
	TelegramsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ordergw_telegrams_received_total",
			Help: "受信した電文の総数",
		},
		[]string{"source"},
	)

	// TelegramsAccepted 解析・保存まで成功した電文数
	TelegramsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ordergw_telegrams_accepted_total",
			Help: "解析と保存に成功した電文の総数",
		},
	)

	// TelegramsRejected 拒否した電文数 (reason: empty|header|truncated|malformed|duplicate)
	TelegramsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ordergw_telegrams_rejected_total",
			Help: "拒否した電文の総数 (理由別)",
		},
		[]string{"reason"},
	)

	// SinkPublished 転送先へ送出した電文数 (sink: kafka|mqtt)
	SinkPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ordergw_sink_published_total",
			Help: "転送先へ送出した電文の総数",
		},
		[]string{"sink"},
	)

	// SinkErrors 転送失敗数 (sink: kafka|mqtt)
	SinkErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ordergw_sink_errors_total",
			Help: "転送先への送出失敗の総数",
		},
		[]string{"sink"},
	)
)

func init() {
	prometheus.MustRegister(
		TelegramsReceived,
		TelegramsAccepted,
		TelegramsRejected,
		SinkPublished,
		SinkErrors,
	)
}
