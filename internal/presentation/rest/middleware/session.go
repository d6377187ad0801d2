package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"parking-frontend/internal/domain/account"
	otelinfra "parking-frontend/internal/infrastructure/observability/otel"
)

// SessionContextKey コンテキストに格納されるセッションのキー
const SessionContextKey = "session"

// SessionMiddleware ログイン済みセッションを要求するミドルウェア
// 保存済みセッションを読み込み、コンテキストに設定する
func SessionMiddleware(store account.SessionStore, logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			session, err := store.Load()
			if err != nil {
				logger.Warn(ctx, "No stored session", map[string]interface{}{
					"error": err.Error(),
				})
				return c.JSON(401, ErrorResponse{
					Error:   "unauthorized",
					Message: "Not logged in",
				})
			}

			if session.Expired(time.Now()) {
				logger.Warn(ctx, "Stored session expired", map[string]interface{}{
					"user_id": session.UserID(),
				})
				return c.JSON(401, ErrorResponse{
					Error:   "unauthorized",
					Message: "Session expired",
				})
			}

			// セッションをリクエストコンテキストに設定
			c.Set(SessionContextKey, session)

			// 次のハンドラーを実行
			return next(c)
		}
	}
}
