package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// 決済送信数
	PaymentSubmissionCount metric.Int64Counter

	// バックエンドへのリクエスト数
	BackendRequestCount metric.Int64Counter

	// バックエンド呼び出しの所要時間
	BackendLatency metric.Float64Histogram

	// 通知取得数
	NotificationFetchCount metric.Int64Counter

	// 未読通知数
	UnreadNotificationCount metric.Int64Gauge

	// リクエスト数（デモUIサーバー）
	RequestCount metric.Int64Counter

	// レスポンス時間（デモUIサーバー）
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	paymentSubmissionCount, err := meter.Int64Counter(
		"payment_submissions_total",
		metric.WithDescription("Total number of payment submissions"),
	)
	if err != nil {
		return nil, err
	}

	backendRequestCount, err := meter.Int64Counter(
		"backend_requests_total",
		metric.WithDescription("Total number of backend API requests"),
	)
	if err != nil {
		return nil, err
	}

	backendLatency, err := meter.Float64Histogram(
		"backend_request_seconds",
		metric.WithDescription("Backend API request duration in seconds"),
	)
	if err != nil {
		return nil, err
	}

	notificationFetchCount, err := meter.Int64Counter(
		"notification_fetches_total",
		metric.WithDescription("Total number of notification fetches"),
	)
	if err != nil {
		return nil, err
	}

	unreadNotificationCount, err := meter.Int64Gauge(
		"unread_notifications",
		metric.WithDescription("Current unread notification count"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		PaymentSubmissionCount:  paymentSubmissionCount,
		BackendRequestCount:     backendRequestCount,
		BackendLatency:          backendLatency,
		NotificationFetchCount:  notificationFetchCount,
		UnreadNotificationCount: unreadNotificationCount,
		RequestCount:            requestCount,
		ResponseTime:            responseTime,
		ErrorCount:              errorCount,
	}, nil
}

// RecordPaymentSubmission 決済送信を記録
func (m *Metrics) RecordPaymentSubmission(ctx context.Context, method, outcome string) {
	m.PaymentSubmissionCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("payment_method", method),
			attribute.String("outcome", outcome),
		),
	)
}

// RecordBackendRequest バックエンドへのリクエストを記録
func (m *Metrics) RecordBackendRequest(ctx context.Context, method, path string, statusCode int, duration float64) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status_code", statusCode),
	)
	m.BackendRequestCount.Add(ctx, 1, attrs)
	m.BackendLatency.Record(ctx, duration, attrs)
}

// RecordNotificationFetch 通知取得を記録
func (m *Metrics) RecordNotificationFetch(ctx context.Context, variant string) {
	m.NotificationFetchCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("variant", variant),
		),
	)
}

// RecordUnreadCount 未読通知数を記録
func (m *Metrics) RecordUnreadCount(ctx context.Context, userID int64, count int64) {
	m.UnreadNotificationCount.Record(ctx, count,
		metric.WithAttributes(
			attribute.Int64("user_id", userID),
		),
	)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}
