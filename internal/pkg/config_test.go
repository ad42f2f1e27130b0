package pkg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitCommon(t *testing.T) {
	dir := t.TempDir()

	content := `
version: "1.0.0"
server:
  port: ":8080"
  mode: "release"
  shutdownTimeout: 5s
parser:
  encoding: "cp932"
database:
  user: "ordergw"
  password: "secret"
  host: "127.0.0.1:3306"
  name: "ordergw"
sink:
  - type: "kafka"
    enable: true
    brokers:
      - "localhost:9092"
    topic: "telegrams"
log:
  log_path: "logs/ordergw.log"
  max_size: 10
  max_backups: 5
  max_age: 30
  compress: true
  level: "info"
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("テスト用設定の書き込みに失敗: %v", err)
	}

	cfg, err := InitCommon(dir)
	if err != nil {
		t.Fatalf("InitCommon が失敗: %v", err)
	}

	if cfg.Version != "1.0.0" {
		t.Errorf("version: got %q, want %q", cfg.Version, "1.0.0")
	}
	if cfg.Server.Port != ":8080" {
		t.Errorf("server.port: got %q, want %q", cfg.Server.Port, ":8080")
	}
	if cfg.Parser.Encoding != "cp932" {
		t.Errorf("parser.encoding: got %q, want %q", cfg.Parser.Encoding, "cp932")
	}
	if got, want := cfg.Database.DSN(), "ordergw:secret@tcp(127.0.0.1:3306)/ordergw?charset=utf8mb4&parseTime=True&loc=Local"; got != want {
		t.Errorf("database DSN: got %q, want %q", got, want)
	}
	if len(cfg.Sink) != 1 {
		t.Fatalf("sink: got %d 件, want 1 件", len(cfg.Sink))
	}
	if cfg.Sink[0].Type != "kafka" || !cfg.Sink[0].Enable {
		t.Errorf("sink[0]: got %+v", cfg.Sink[0])
	}
	if _, ok := cfg.Sink[0].Config["topic"]; !ok {
		t.Errorf("sink[0].Config に topic がありません: %+v", cfg.Sink[0].Config)
	}
	if cfg.Log.Level != "info" || cfg.Log.MaxBackups != 5 {
		t.Errorf("log: got %+v", cfg.Log)
	}
}

func TestInitCommonMergesMultipleFiles(t *testing.T) {
	dir := t.TempDir()

	base := `
version: "1.0.0"
server:
  port: ":8080"
`
	override := `
server:
  port: ":9090"
`
	if err := os.WriteFile(filepath.Join(dir, "a_base.yaml"), []byte(base), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b_override.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := InitCommon(dir)
	if err != nil {
		t.Fatalf("InitCommon が失敗: %v", err)
	}
	// 後から読まれたファイルが優先される
	if cfg.Server.Port != ":9090" {
		t.Errorf("server.port: got %q, want %q", cfg.Server.Port, ":9090")
	}
	if cfg.Version != "1.0.0" {
		t.Errorf("version: got %q, want %q", cfg.Version, "1.0.0")
	}
}

func TestInitCommonMissingDir(t *testing.T) {
	_, err := InitCommon(filepath.Join(t.TempDir(), "no-such-dir"))
	if err == nil {
		t.Fatal("存在しないディレクトリでエラーになりませんでした")
	}
}
