package rest

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	authform "parking-frontend/internal/application/auth_form"
	notificationcenter "parking-frontend/internal/application/notification_center"
	paymentflow "parking-frontend/internal/application/payment_flow"
	"parking-frontend/internal/domain/account"
	"parking-frontend/internal/domain/payment"
	otelinfra "parking-frontend/internal/infrastructure/observability/otel"
	"parking-frontend/internal/presentation/rest/handler"
	restmiddleware "parking-frontend/internal/presentation/rest/middleware"
)

// Router REST APIルーター
type Router struct {
	echo                *echo.Echo
	flowHandler         *handler.PaymentFlowHandler
	formHandler         *handler.PaymentFormHandler
	authHandler         *handler.AuthHandler
	notificationHandler *handler.NotificationHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	flowService *paymentflow.FlowService,
	paymentGateway payment.Gateway,
	authService *authform.AuthFormService,
	centerService *notificationcenter.CenterService,
	sessionStore account.SessionStore,
) (*Router, error) {
	e := echo.New()

	// Echoのデフォルトエラーハンドラーを無効化（カスタムエラーハンドラーを使用）
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// エラーハンドリングミドルウェアで処理される
	}

	// ミドルウェアの設定
	setupMiddleware(e, logger, metrics)

	// ハンドラーの作成
	flowHandler := handler.NewPaymentFlowHandler(flowService)
	formHandler := handler.NewPaymentFormHandler(paymentGateway, flowService, logger, metrics)
	authHandler := handler.NewAuthHandler(authService)
	notificationHandler := handler.NewNotificationHandler(centerService)

	// ルーティングの設定
	setupRoutes(e, logger, sessionStore, flowHandler, formHandler, authHandler, notificationHandler)

	return &Router{
		echo:                e,
		flowHandler:         flowHandler,
		formHandler:         formHandler,
		authHandler:         authHandler,
		notificationHandler: notificationHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// CORS設定
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // 本番環境では適切に設定
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// リクエストIDの設定
	e.Use(middleware.RequestID())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware())

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// セキュリティヘッダーミドルウェア
	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	logger *otelinfra.Logger,
	sessionStore account.SessionStore,
	flowHandler *handler.PaymentFlowHandler,
	formHandler *handler.PaymentFormHandler,
	authHandler *handler.AuthHandler,
	notificationHandler *handler.NotificationHandler,
) {
	// API v1グループ
	api := e.Group("/api/v1")

	// 決済フローエンドポイント
	api.GET("/flow", flowHandler.GetState)
	api.POST("/flow/configure", flowHandler.Configure)
	api.POST("/flow/start", flowHandler.StartPayment)
	api.POST("/flow/return", flowHandler.ReturnToStart)

	// 決済フォームエンドポイント
	api.POST("/forms", formHandler.CreateForm)
	api.GET("/forms/:form_id", formHandler.GetForm)
	api.POST("/forms/:form_id/method", formHandler.SelectMethod)
	api.POST("/forms/:form_id/fields", formHandler.SetField)
	api.POST("/forms/:form_id/submit", formHandler.Submit)

	// 認証フォームエンドポイント
	api.GET("/auth", authHandler.GetState)
	api.POST("/auth/fields", authHandler.SetField)
	api.POST("/auth/toggle", authHandler.ToggleMode)
	api.POST("/auth/submit", authHandler.Submit)
	api.GET("/auth/session", authHandler.GetSession)
	api.POST("/auth/logout", authHandler.Logout)

	// 通知センターエンドポイント（ログイン必須）
	notificationGroup := api.Group("/notifications", restmiddleware.SessionMiddleware(sessionStore, logger))
	notificationGroup.GET("", notificationHandler.GetState)
	notificationGroup.POST("/refresh", notificationHandler.Refresh)
	notificationGroup.POST("/:notification_id/read", notificationHandler.MarkRead)
	notificationGroup.DELETE("/:notification_id", notificationHandler.Remove)
	notificationGroup.POST("/:notification_id/resend", notificationHandler.Resend)
	notificationGroup.POST("/show-all", notificationHandler.SetShowAll)

	// ヘルスチェックエンドポイント（認証不要）
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown サーバーをシャットダウン
func (r *Router) Shutdown() error {
	return r.echo.Close()
}
