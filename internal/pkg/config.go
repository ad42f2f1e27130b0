package pkg

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// LogConfig ログ出力の設定
type LogConfig struct {
	LogPath    string `mapstructure:"log_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Level      string `mapstructure:"level"`
}

// ServerConfig 受信APIサーバの設定
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin の動作モード (debug|release|test)
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// ParserConfig 電文デコーダの設定
type ParserConfig struct {
	// Encoding テキストフィールドのレガシーエンコーディング名 (既定: cp932)
	Encoding string `mapstructure:"encoding"`
}

// DatabaseConfig MySQL 接続の設定
type DatabaseConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Name     string `mapstructure:"name"`
}

// DSN は gorm の mysql ドライバへ渡す接続文字列を組み立てる
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Name)
}

// SinkConfig 受理済み電文の転送先1件の設定。
// Config には各転送先固有の項目がそのまま入る (mapstructure で各実装が解釈する)
type SinkConfig struct {
	Type   string                 `mapstructure:"type"`
	Enable bool                   `mapstructure:"enable"`
	Config map[string]interface{} `mapstructure:",remain"`
}

// Config アプリケーション全体の設定
type Config struct {
	Version  string         `mapstructure:"version"`
	Server   ServerConfig   `mapstructure:"server"`
	Parser   ParserConfig   `mapstructure:"parser"`
	Database DatabaseConfig `mapstructure:"database"`
	Sink     []SinkConfig   `mapstructure:"sink"`
	Log      LogConfig      `mapstructure:"log"`
}

// InitCommon は設定ディレクトリ配下の yaml を全てマージして読み込む
func InitCommon(configDir string) (*Config, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("::")) // 既定の . はホスト名等と衝突するため :: にする
	v.AddConfigPath(configDir)
	v.AutomaticEnv() // 環境変数による上書きを許可

	// 設定ディレクトリとそのサブディレクトリの全ファイルを走査する
	err := filepath.WalkDir(configDir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("パス %s へのアクセスに失敗しました: %w", filePath, err)
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(filePath)
		if ext == ".yaml" || ext == ".yml" {
			v.SetConfigFile(filePath)
			// 読み込んでマージする (後勝ち)
			if err := v.MergeInConfig(); err != nil {
				return fmt.Errorf("設定ファイル %s の読み込みに失敗しました: %w", filePath, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var common Config
	if err := v.Unmarshal(&common); err != nil {
		return nil, fmt.Errorf("設定の反映に失敗しました: %w", err)
	}
	return &common, nil
}
