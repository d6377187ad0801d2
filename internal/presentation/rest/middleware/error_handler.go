package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	authform "parking-frontend/internal/application/auth_form"
	paymentflow "parking-frontend/internal/application/payment_flow"
	"parking-frontend/internal/domain/account"
	"parking-frontend/internal/domain/notification"
	"parking-frontend/internal/domain/payment"
	otelinfra "parking-frontend/internal/infrastructure/observability/otel"
)

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// エラーハンドリング
			return handleError(c, err, logger)
		}
	}
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	// バックエンドが拒否した場合は元のステータスコードをそのまま返す
	var paymentRejected *payment.RejectedError
	if errors.As(err, &paymentRejected) {
		logger.Warn(ctx, "Payment rejected by backend", map[string]interface{}{
			"status_code": paymentRejected.StatusCode,
			"message":     paymentRejected.Message,
		})
		return c.JSON(paymentRejected.StatusCode, ErrorResponse{
			Error:   "payment_rejected",
			Message: paymentRejected.Message,
		})
	}

	var authRejected *account.RejectedError
	if errors.As(err, &authRejected) {
		logger.Warn(ctx, "Auth request rejected by backend", map[string]interface{}{
			"status_code": authRejected.StatusCode,
			"message":     authRejected.Message,
		})
		return c.JSON(authRejected.StatusCode, ErrorResponse{
			Error:   "auth_rejected",
			Message: authRejected.Error(),
		})
	}

	if errors.Is(err, payment.ErrInvalidPaymentMethod) {
		logger.Warn(ctx, "Invalid payment method", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_payment_method",
			Message: err.Error(),
		})
	}

	if errors.Is(err, payment.ErrUnknownField) || errors.Is(err, authform.ErrUnknownField) {
		logger.Warn(ctx, "Unknown field", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "unknown_field",
			Message: err.Error(),
		})
	}

	if errors.Is(err, authform.ErrMissingFields) {
		logger.Warn(ctx, "Missing required fields", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: err.Error(),
		})
	}

	if errors.Is(err, paymentflow.ErrInvalidAmount) || errors.Is(err, paymentflow.ErrInvalidSessionID) {
		logger.Warn(ctx, "Invalid flow configuration", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_configuration",
			Message: err.Error(),
		})
	}

	if errors.Is(err, payment.ErrSubmissionInProgress) || errors.Is(err, authform.ErrSubmissionInProgress) {
		logger.Warn(ctx, "Submission in progress", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "submission_in_progress",
			Message: err.Error(),
		})
	}

	if errors.Is(err, paymentflow.ErrFlowActive) {
		logger.Warn(ctx, "Flow already active", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "flow_active",
			Message: err.Error(),
		})
	}

	if errors.Is(err, account.ErrSessionNotFound) {
		logger.Warn(ctx, "Session not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: err.Error(),
		})
	}

	if errors.Is(err, notification.ErrNotificationNotFound) {
		logger.Warn(ctx, "Notification not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "notification_not_found",
			Message: err.Error(),
		})
	}

	if errors.Is(err, payment.ErrBackendUnavailable) ||
		errors.Is(err, account.ErrBackendUnavailable) ||
		errors.Is(err, notification.ErrBackendUnavailable) {
		logger.Error(ctx, "Backend unavailable", err, map[string]interface{}{
			"path": c.Request().URL.Path,
		})
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "backend_unavailable",
			Message: err.Error(),
		})
	}

	if errors.Is(err, notification.ErrFetchFailed) {
		logger.Warn(ctx, "Notification fetch failed", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "fetch_failed",
			Message: err.Error(),
		})
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message := ""
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_server_error",
		Message: "An unexpected error occurred",
	})
}
