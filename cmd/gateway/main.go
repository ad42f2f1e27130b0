package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ordergw/internal/api"
	"ordergw/internal/pkg"
	"ordergw/internal/sink"
	"ordergw/internal/store"
	"ordergw/internal/telegram"
)

func main() {

	// 1. 設定の読み込み
	config, err := pkg.InitCommon("yaml")
	if err != nil {
		fmt.Printf("[main] 設定の読み込みに失敗しました: %s", err)
		return
	}

	// 2. logger の初期化
	log := pkg.NewLogger(&config.Log)

	log.Info("プログラム起動", zap.String("version", config.Version))
	log.Info("設定情報", zap.Any("common", config))
	log.Info("==== 初期化処理開始 ====")

	// 3. context の構築
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 10) // グローバルエラーチャネル
	ctx = pkg.WithErrChan(ctx, errChan)
	ctx = pkg.WithConfig(ctx, config)
	ctx = pkg.WithLogger(ctx, log)

	// 4. 電文デコーダ
	enc, err := telegram.EncodingByName(config.Parser.Encoding)
	if err != nil {
		log.Error("エンコーディング設定が不正です", zap.Error(err))
		cancel()
		return
	}
	parser := telegram.NewParser(telegram.WithEncoding(enc))

	// 5. 永続化層
	db, err := store.OpenDB(config.Database.DSN())
	if err != nil {
		log.Error("データベースの初期化に失敗しました", zap.Error(err))
		cancel()
		return
	}
	st := store.NewStore(db)

	// 6. 下流転送
	manager, err := sink.NewManager(ctx)
	if err != nil {
		log.Error("転送先の初期化に失敗しました", zap.Error(err))
		cancel()
		return
	}
	manager.Start()

	// 7. 受信APIサーバ
	handler := api.NewTelegramHandler(parser, st, manager, log, config.Version)
	router := api.SetupRouter(config.Server.Mode, handler)
	srv := &http.Server{
		Addr:    config.Server.Port,
		Handler: router,
	}
	go func() {
		log.Info("受信APIサーバを起動します", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("受信APIサーバが停止しました: %w", err)
		}
	}()

	// 8. 終了シグナルとグローバルエラーの監視
	si := make(chan os.Signal, 1)
	signal.Notify(si, os.Interrupt, syscall.SIGTERM)

	exitCode := 0
	select {
	case <-si:
		log.Info("終了シグナルを受信しました")
	case bad := <-errChan:
		log.Error("致命的なエラーが発生しました", zap.Error(bad))
		exitCode = 1
	}

	// 9. 後始末。受信を止めてから転送先を停止する
	shutdownTimeout := config.Server.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 5 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("受信APIサーバの停止に失敗しました", zap.Error(err))
	}
	shutdownCancel()
	manager.Stop()
	cancel()

	if err := log.Sync(); err != nil {
		fmt.Printf("[main] 終了時のログ同期に失敗しました: %s", err)
	}
	fmt.Println("Exiting ordergw...")
	os.Exit(exitCode)
}
