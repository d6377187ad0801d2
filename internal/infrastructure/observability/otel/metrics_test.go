package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewMetrics(t *testing.T) {
	// Noopメータープロバイダーを使用
	mp := noop.NewMeterProvider()
	otel.SetMeterProvider(mp)

	metrics, err := NewMetrics("test-meter")
	require.NoError(t, err)
	assert.NotNil(t, metrics)

	assert.NotNil(t, metrics.PaymentSubmissionCount)
	assert.NotNil(t, metrics.BackendRequestCount)
	assert.NotNil(t, metrics.BackendLatency)
	assert.NotNil(t, metrics.NotificationFetchCount)
	assert.NotNil(t, metrics.UnreadNotificationCount)
	assert.NotNil(t, metrics.RequestCount)
	assert.NotNil(t, metrics.ResponseTime)
	assert.NotNil(t, metrics.ErrorCount)
}

func TestMetrics_RecordPaymentSubmission(t *testing.T) {
	mp := noop.NewMeterProvider()
	otel.SetMeterProvider(mp)

	metrics, err := NewMetrics("test-meter")
	require.NoError(t, err)

	ctx := context.Background()

	// 決済送信を記録
	metrics.RecordPaymentSubmission(ctx, "CREDIT_CARD", "succeeded")
	metrics.RecordPaymentSubmission(ctx, "CASH", "failed")

	// エラーが発生しないことを確認
}

func TestMetrics_RecordBackendRequest(t *testing.T) {
	mp := noop.NewMeterProvider()
	otel.SetMeterProvider(mp)

	metrics, err := NewMetrics("test-meter")
	require.NoError(t, err)

	ctx := context.Background()

	// バックエンド呼び出しを記録
	metrics.RecordBackendRequest(ctx, "POST", "/api/payments/process", 200, 0.123)
	metrics.RecordBackendRequest(ctx, "GET", "/api/notifications/user/1/unread", 500, 0.05)

	// エラーが発生しないことを確認
}

func TestMetrics_RecordNotificationFetch(t *testing.T) {
	mp := noop.NewMeterProvider()
	otel.SetMeterProvider(mp)

	metrics, err := NewMetrics("test-meter")
	require.NoError(t, err)

	ctx := context.Background()

	// 通知取得を記録
	metrics.RecordNotificationFetch(ctx, "unread")
	metrics.RecordNotificationFetch(ctx, "all")

	// エラーが発生しないことを確認
}

func TestMetrics_RecordUnreadCount(t *testing.T) {
	mp := noop.NewMeterProvider()
	otel.SetMeterProvider(mp)

	metrics, err := NewMetrics("test-meter")
	require.NoError(t, err)

	ctx := context.Background()

	// 未読通知数を記録
	metrics.RecordUnreadCount(ctx, 42, 3)
	metrics.RecordUnreadCount(ctx, 42, 0)

	// エラーが発生しないことを確認
}

func TestMetrics_RecordError(t *testing.T) {
	mp := noop.NewMeterProvider()
	otel.SetMeterProvider(mp)

	metrics, err := NewMetrics("test-meter")
	require.NoError(t, err)

	ctx := context.Background()

	// エラーを記録
	metrics.RecordError(ctx, "payment_failed")
	metrics.RecordError(ctx, "network_error")

	// エラーが発生しないことを確認
}

func TestMetrics_MultipleCalls(t *testing.T) {
	mp := noop.NewMeterProvider()
	otel.SetMeterProvider(mp)

	metrics, err := NewMetrics("test-meter")
	require.NoError(t, err)

	ctx := context.Background()

	// 複数回メトリクスを記録
	for i := 0; i < 10; i++ {
		metrics.RecordPaymentSubmission(ctx, "QR_CODE", "succeeded")
		metrics.RecordBackendRequest(ctx, "POST", "/api/payments/process", 200, 0.1)
		metrics.RecordRequest(ctx, "GET", "/notifications")
		metrics.RecordResponseTime(ctx, "GET", "/notifications", 0.02)
	}

	// エラーが発生しないことを確認
}
