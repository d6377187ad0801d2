package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	authform "parking-frontend/internal/application/auth_form"
	notificationcenter "parking-frontend/internal/application/notification_center"
	paymentflow "parking-frontend/internal/application/payment_flow"
	"parking-frontend/internal/infrastructure/backend"
	"parking-frontend/internal/infrastructure/config"
	"parking-frontend/internal/infrastructure/localstore"
	otelinfra "parking-frontend/internal/infrastructure/observability/otel"
	"parking-frontend/internal/presentation/rest"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	tracer := otelinfra.Tracer("parking-frontend")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("parking-frontend")
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// バックエンドクライアントとゲートウェイの初期化
	client := backend.NewClient(&cfg.Backend, logger, metrics)
	paymentGateway := backend.NewPaymentGateway(client)
	authGateway := backend.NewAuthGateway(client)
	notificationGateway := backend.NewNotificationGateway(client)

	// セッションストアの初期化
	sessionStore := localstore.NewSessionStore(cfg.Session.FilePath)

	// アプリケーションサービスの初期化
	flowService := paymentflow.NewFlowService(logger)
	authService := authform.NewAuthFormService(authGateway, sessionStore, nil, logger)
	centerService := notificationcenter.NewCenterService(
		notificationGateway,
		sessionStore,
		cfg.Notification.PollInterval,
		logger,
		metrics,
	)

	// 保存済みセッションの復元（期限切れはここで破棄される）
	if session, err := authService.RestoreSession(context.Background()); err == nil {
		log.Printf("Restored session for user %d", session.UserID())
	}

	// 未読通知の定期ポーリングを開始
	pollCtx, pollCancel := context.WithCancel(context.Background())
	defer pollCancel()
	centerService.StartPolling(pollCtx)
	defer centerService.Stop()

	// REST APIルーターの初期化
	router, err := rest.NewRouter(
		logger,
		metrics,
		flowService,
		paymentGateway,
		authService,
		centerService,
		sessionStore,
	)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// サーバーアドレスの設定
	address := fmt.Sprintf(":%d", cfg.Server.Port)

	// グレースフルシャットダウンの設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// REST APIサーバーを別ゴルーチンで起動
	go func() {
		log.Printf("Demo frontend server starting on %s", address)
		if err := router.Start(address); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	// シグナルを待機
	<-quit
	log.Println("Shutting down server...")

	// グレースフルシャットダウン
	if err := router.Shutdown(); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	log.Println("Server stopped")
}
