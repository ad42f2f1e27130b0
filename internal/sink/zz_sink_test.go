package sink

import (
	"context"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"

	"ordergw/internal/pkg"
)

// memorySink テスト用の転送先。受け取った電文を溜めるだけ
type memorySink struct {
	mu   sync.Mutex
	got  []*Envelope
	done chan struct{}
}

func (m *memorySink) GetType() string { return "memory" }

func (m *memorySink) Start(envChan chan *Envelope) {
	for env := range envChan {
		m.mu.Lock()
		m.got = append(m.got, env)
		m.mu.Unlock()
	}
	close(m.done)
}

func (m *memorySink) Stop() {}

func (m *memorySink) received() []*Envelope {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Envelope, len(m.got))
	copy(out, m.got)
	return out
}

func testCtx(cfg *pkg.Config) context.Context {
	ctx := pkg.WithLogger(context.Background(), zap.NewNop())
	return pkg.WithConfig(ctx, cfg)
}

func TestRegistry(t *testing.T) {
	Convey("組み込みの転送先が登録されている", t, func() {
		So(Factories, ShouldContainKey, "kafka")
		So(Factories, ShouldContainKey, "mqtt")
	})
}

func TestManager(t *testing.T) {
	Convey("Manager の振り分け", t, func() {
		mem := &memorySink{done: make(chan struct{})}
		Register("memory", func(ctx context.Context) (Template, error) {
			return mem, nil
		})
		defer delete(Factories, "memory")

		cfg := &pkg.Config{
			Sink: []pkg.SinkConfig{
				{Type: "memory", Enable: true},
				{Type: "kafka", Enable: false}, // 無効な転送先は初期化されない
			},
		}
		m, err := NewManager(testCtx(cfg))
		So(err, ShouldBeNil)
		So(m.sinks, ShouldHaveLength, 1)

		m.Start()

		Convey("発行した電文が転送先に届く", func() {
			env := &Envelope{DocID: "DOC-2025-0001", DocVersion: 1, Payload: []byte(`{"common":{}}`)}
			m.Publish(env)
			m.Stop()

			select {
			case <-mem.done:
			case <-time.After(time.Second):
				So("転送先が停止しませんでした", ShouldBeEmpty)
			}

			got := mem.received()
			So(got, ShouldHaveLength, 1)
			So(got[0].DocID, ShouldEqual, "DOC-2025-0001")
		})
	})

	Convey("未知の転送先種別はエラー", t, func() {
		cfg := &pkg.Config{
			Sink: []pkg.SinkConfig{{Type: "carrier-pigeon", Enable: true}},
		}
		_, err := NewManager(testCtx(cfg))
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "未知の転送先種別")
	})
}

func TestKafkaSinkConfigValidation(t *testing.T) {
	Convey("Kafka 設定の検証", t, func() {
		Convey("有効な設定がなければエラー", func() {
			_, err := NewKafkaSink(testCtx(&pkg.Config{}))
			So(err, ShouldNotBeNil)
		})

		Convey("brokers 欠落はエラー", func() {
			cfg := &pkg.Config{
				Sink: []pkg.SinkConfig{{
					Type:   "kafka",
					Enable: true,
					Config: map[string]interface{}{"topic": "telegrams"},
				}},
			}
			_, err := NewKafkaSink(testCtx(cfg))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "brokers")
		})

		Convey("topic 欠落はエラー", func() {
			cfg := &pkg.Config{
				Sink: []pkg.SinkConfig{{
					Type:   "kafka",
					Enable: true,
					Config: map[string]interface{}{"brokers": []string{"localhost:9092"}},
				}},
			}
			_, err := NewKafkaSink(testCtx(cfg))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "topic")
		})
	})
}

func TestMqttSinkConfigValidation(t *testing.T) {
	Convey("MQTT 設定の検証", t, func() {
		Convey("有効な設定がなければエラー", func() {
			_, err := NewMqttSink(testCtx(&pkg.Config{}))
			So(err, ShouldNotBeNil)
		})

		Convey("broker 欠落はエラー", func() {
			cfg := &pkg.Config{
				Sink: []pkg.SinkConfig{{
					Type:   "mqtt",
					Enable: true,
					Config: map[string]interface{}{"topic": "ordergw/telegrams"},
				}},
			}
			_, err := NewMqttSink(testCtx(cfg))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "broker")
		})
	})
}
