package handler

import (
	"context"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace/noop"

	"parking-frontend/internal/domain/account"
	"parking-frontend/internal/domain/notification"
	"parking-frontend/internal/domain/payment"
	otelinfra "parking-frontend/internal/infrastructure/observability/otel"
	restmiddleware "parking-frontend/internal/presentation/rest/middleware"
)

// MockPaymentGateway モック決済ゲートウェイ
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Process(ctx context.Context, request *payment.PaymentRequest) (payment.Result, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(payment.Result), args.Error(1)
}

// MockAuthGateway モック認証ゲートウェイ
type MockAuthGateway struct {
	mock.Mock
}

func (m *MockAuthGateway) Login(ctx context.Context, credentials account.Credentials) (*account.AuthResult, error) {
	args := m.Called(ctx, credentials)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.AuthResult), args.Error(1)
}

func (m *MockAuthGateway) Register(ctx context.Context, registration account.Registration) (*account.AuthResult, error) {
	args := m.Called(ctx, registration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.AuthResult), args.Error(1)
}

// MockSessionStore モックセッションストア
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(session *account.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockSessionStore) Load() (*account.Session, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Session), args.Error(1)
}

func (m *MockSessionStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// MockNotificationGateway モック通知ゲートウェイ
type MockNotificationGateway struct {
	mock.Mock
}

func (m *MockNotificationGateway) ListForUser(ctx context.Context, userID int64, token string) ([]*notification.Notification, error) {
	args := m.Called(ctx, userID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationGateway) ListUnreadForUser(ctx context.Context, userID int64, token string) ([]*notification.Notification, error) {
	args := m.Called(ctx, userID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationGateway) MarkRead(ctx context.Context, notificationID int64, token string) error {
	args := m.Called(ctx, notificationID, token)
	return args.Error(0)
}

func (m *MockNotificationGateway) Delete(ctx context.Context, notificationID int64, token string) error {
	args := m.Called(ctx, notificationID, token)
	return args.Error(0)
}

func (m *MockNotificationGateway) Resend(ctx context.Context, notificationID int64, token string) (*notification.Notification, error) {
	args := m.Called(ctx, notificationID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

// newTestEcho エラーハンドリングミドルウェア付きのechoインスタンスを作成
func newTestEcho(logger *otelinfra.Logger) *echo.Echo {
	e := echo.New()
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
	return e
}

// newTestLogger テスト用ロガーを作成
func newTestLogger() *otelinfra.Logger {
	return otelinfra.NewLogger(noop.NewTracerProvider().Tracer("test"))
}

// newTestMetrics テスト用メトリクスを作成
func newTestMetrics(t *testing.T) *otelinfra.Metrics {
	t.Helper()

	otel.SetMeterProvider(metricnoop.NewMeterProvider())
	metrics, err := otelinfra.NewMetrics("handler-test")
	require.NoError(t, err)
	return metrics
}
