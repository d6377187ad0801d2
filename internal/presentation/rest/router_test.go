package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	authform "parking-frontend/internal/application/auth_form"
	notificationcenter "parking-frontend/internal/application/notification_center"
	paymentflow "parking-frontend/internal/application/payment_flow"
	"parking-frontend/internal/domain/account"
	"parking-frontend/internal/domain/notification"
	"parking-frontend/internal/domain/payment"
	otelinfra "parking-frontend/internal/infrastructure/observability/otel"
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

// setupTestRouter テスト用のルーターをセットアップ
func setupTestRouter(t *testing.T) (*Router, *MockSessionStore) {
	t.Helper()

	tracer := noop.NewTracerProvider().Tracer("test")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)

	mockPaymentGateway := new(MockPaymentGateway)
	mockAuthGateway := new(MockAuthGateway)
	mockNotificationGateway := new(MockNotificationGateway)
	mockStore := new(MockSessionStore)

	flowService := paymentflow.NewFlowService(logger)
	authService := authform.NewAuthFormService(mockAuthGateway, mockStore, nil, logger)
	centerService := notificationcenter.NewCenterService(mockNotificationGateway, mockStore, time.Minute, logger, metrics)
	t.Cleanup(centerService.Stop)

	router, err := NewRouter(
		logger,
		metrics,
		flowService,
		mockPaymentGateway,
		authService,
		centerService,
		mockStore,
	)
	require.NoError(t, err)
	require.NotNil(t, router)

	return router, mockStore
}

func TestNewRouter(t *testing.T) {
	router, _ := setupTestRouter(t)

	assert.NotNil(t, router)
	assert.NotNil(t, router.echo)
	assert.NotNil(t, router.flowHandler)
	assert.NotNil(t, router.formHandler)
	assert.NotNil(t, router.authHandler)
	assert.NotNil(t, router.notificationHandler)
}

func TestRouter_HealthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
}

func TestRouter_FlowEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/flow", nil)
	rec := httptest.NewRecorder()

	router.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, float64(1), response["sessionId"])
	assert.Equal(t, "15", response["amount"])
}

func TestRouter_AuthEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth", nil)
	rec := httptest.NewRecorder()

	router.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "login", response["mode"])
}

func TestRouter_NotificationsRequireSession(t *testing.T) {
	router, mockStore := setupTestRouter(t)

	mockStore.On("Load").Return(nil, account.ErrSessionNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	rec := httptest.NewRecorder()

	router.echo.ServeHTTP(rec, req)

	// ログインしていない場合はセッションミドルウェアが401を返す
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_NotificationsWithSession(t *testing.T) {
	router, mockStore := setupTestRouter(t)

	session := account.NewSession("token-abc", 42, "taro", "")
	mockStore.On("Load").Return(session, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	rec := httptest.NewRecorder()

	router.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Middleware(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	// セキュリティヘッダーが設定されていることを確認
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	// リクエストIDが付与されていることを確認
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRouter_StartShutdown(t *testing.T) {
	router, _ := setupTestRouter(t)

	go func() {
		err := router.Start(":0") // 利用可能なポートを使用
		_ = err
	}()

	// 少し待機してからシャットダウン
	time.Sleep(100 * time.Millisecond)

	err := router.Shutdown()
	assert.NoError(t, err)
}

func TestRouter_RouteRegistration(t *testing.T) {
	router, _ := setupTestRouter(t)

	routes := router.echo.Routes()

	foundEndpoints := make(map[string]bool)
	for _, route := range routes {
		foundEndpoints[route.Method+" "+route.Path] = true
	}

	endpoints := []string{
		"GET /health",
		"GET /api/v1/flow",
		"POST /api/v1/flow/configure",
		"POST /api/v1/forms",
		"POST /api/v1/forms/:form_id/submit",
		"GET /api/v1/auth",
		"POST /api/v1/auth/submit",
		"GET /api/v1/notifications",
		"POST /api/v1/notifications/:notification_id/read",
	}

	for _, endpoint := range endpoints {
		assert.True(t, foundEndpoints[endpoint], "エンドポイント %s が登録されていることを確認", endpoint)
	}
}
