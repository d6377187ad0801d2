package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	notificationcenter "parking-frontend/internal/application/notification_center"
	"parking-frontend/internal/domain/account"
	"parking-frontend/internal/domain/notification"
)

func newNotificationTestServer(t *testing.T) (*echo.Echo, *MockNotificationGateway, *MockSessionStore) {
	t.Helper()

	logger := newTestLogger()
	metrics := newTestMetrics(t)
	mockGateway := new(MockNotificationGateway)
	mockStore := new(MockSessionStore)

	centerService := notificationcenter.NewCenterService(mockGateway, mockStore, time.Minute, logger, metrics)
	t.Cleanup(centerService.Stop)
	h := NewNotificationHandler(centerService)

	e := newTestEcho(logger)
	e.GET("/notifications", h.GetState)
	e.POST("/notifications/refresh", h.Refresh)
	e.POST("/notifications/:notification_id/read", h.MarkRead)
	e.DELETE("/notifications/:notification_id", h.Remove)
	e.POST("/notifications/:notification_id/resend", h.Resend)
	e.POST("/notifications/show-all", h.SetShowAll)
	return e, mockGateway, mockStore
}

func unreadNotification(id int64, title string) *notification.Notification {
	return notification.NewNotification(
		id,
		title,
		"本文",
		notification.NotificationTypeSystem,
		notification.PriorityNormal,
		notification.StatusSent,
		time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		nil,
	)
}

func TestNotificationHandler_GetState(t *testing.T) {
	e, _, _ := newNotificationTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response NotificationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Empty(t, response.Notifications)
	assert.Equal(t, int64(0), response.UnreadCount)
	assert.False(t, response.ShowAll)
}

func TestNotificationHandler_Refresh(t *testing.T) {
	e, mockGateway, mockStore := newNotificationTestServer(t)

	session := account.NewSession("token-abc", 42, "taro", "")
	mockStore.On("Load").Return(session, nil)
	mockGateway.On("ListUnreadForUser", mock.Anything, int64(42), "token-abc").Return([]*notification.Notification{
		unreadNotification(101, "お知らせ1"),
		unreadNotification(102, "お知らせ2"),
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/notifications/refresh", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response NotificationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Notifications, 2)
	assert.Equal(t, int64(2), response.UnreadCount)
	assert.Equal(t, int64(101), response.Notifications[0].ID)
	assert.True(t, response.Notifications[0].Unread)
	assert.Equal(t, "2024-01-15T10:30:00Z", response.Notifications[0].CreatedAt)

	mockGateway.AssertExpectations(t)
}

func TestNotificationHandler_Refresh_NotLoggedIn(t *testing.T) {
	e, _, mockStore := newNotificationTestServer(t)

	mockStore.On("Load").Return(nil, account.ErrSessionNotFound)

	req := httptest.NewRequest(http.MethodPost, "/notifications/refresh", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	e, mockGateway, mockStore := newNotificationTestServer(t)

	session := account.NewSession("token-abc", 42, "taro", "")
	mockStore.On("Load").Return(session, nil)
	mockGateway.On("ListUnreadForUser", mock.Anything, int64(42), "token-abc").Return([]*notification.Notification{
		unreadNotification(101, "お知らせ1"),
	}, nil)
	mockGateway.On("MarkRead", mock.Anything, int64(101), "token-abc").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/notifications/refresh", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/notifications/101/read", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response NotificationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Notifications, 1)
	assert.False(t, response.Notifications[0].Unread)
	assert.NotNil(t, response.Notifications[0].ReadAt)
	assert.Equal(t, int64(0), response.UnreadCount)

	mockGateway.AssertExpectations(t)
}

func TestNotificationHandler_MarkRead_InvalidID(t *testing.T) {
	e, _, _ := newNotificationTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/notifications/abc/read", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotificationHandler_Remove(t *testing.T) {
	e, mockGateway, mockStore := newNotificationTestServer(t)

	session := account.NewSession("token-abc", 42, "taro", "")
	mockStore.On("Load").Return(session, nil)
	mockGateway.On("ListUnreadForUser", mock.Anything, int64(42), "token-abc").Return([]*notification.Notification{
		unreadNotification(101, "お知らせ1"),
		unreadNotification(102, "お知らせ2"),
	}, nil)
	mockGateway.On("Delete", mock.Anything, int64(101), "token-abc").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/notifications/refresh", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/notifications/101", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response NotificationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Notifications, 1)
	assert.Equal(t, int64(102), response.Notifications[0].ID)
	assert.Equal(t, int64(1), response.UnreadCount)

	mockGateway.AssertExpectations(t)
}

func TestNotificationHandler_Remove_NotFound(t *testing.T) {
	e, mockGateway, mockStore := newNotificationTestServer(t)

	session := account.NewSession("token-abc", 42, "taro", "")
	mockStore.On("Load").Return(session, nil)
	mockGateway.On("Delete", mock.Anything, int64(999), "token-abc").Return(notification.ErrNotificationNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/notifications/999", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotificationHandler_Resend(t *testing.T) {
	e, mockGateway, mockStore := newNotificationTestServer(t)

	failed := notification.NewNotification(
		101, "お知らせ1", "本文",
		notification.NotificationTypeEmail,
		notification.PriorityHigh,
		notification.StatusFailed,
		time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		nil,
	)
	resent := notification.NewNotification(
		101, "お知らせ1", "本文",
		notification.NotificationTypeEmail,
		notification.PriorityHigh,
		notification.StatusSent,
		time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		nil,
	)

	session := account.NewSession("token-abc", 42, "taro", "")
	mockStore.On("Load").Return(session, nil)
	mockGateway.On("ListUnreadForUser", mock.Anything, int64(42), "token-abc").Return([]*notification.Notification{failed}, nil)
	mockGateway.On("Resend", mock.Anything, int64(101), "token-abc").Return(resent, nil)

	req := httptest.NewRequest(http.MethodPost, "/notifications/refresh", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var response NotificationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Notifications[0].CanResend)

	req = httptest.NewRequest(http.MethodPost, "/notifications/101/resend", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "SENT", response.Notifications[0].Status)
	assert.False(t, response.Notifications[0].CanResend)

	mockGateway.AssertExpectations(t)
}

func TestNotificationHandler_SetShowAll(t *testing.T) {
	e, mockGateway, mockStore := newNotificationTestServer(t)

	read := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	session := account.NewSession("token-abc", 42, "taro", "")
	mockStore.On("Load").Return(session, nil)
	mockGateway.On("ListForUser", mock.Anything, int64(42), "token-abc").Return([]*notification.Notification{
		unreadNotification(101, "お知らせ1"),
		notification.NewNotification(
			100, "既読のお知らせ", "本文",
			notification.NotificationTypeSystem,
			notification.PriorityLow,
			notification.StatusSent,
			time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC),
			&read,
		),
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/notifications/show-all", strings.NewReader(`{"showAll": true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response NotificationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.ShowAll)
	require.Len(t, response.Notifications, 2)
	assert.False(t, response.Notifications[1].Unread)
	assert.NotNil(t, response.Notifications[1].ReadAt)

	mockGateway.AssertExpectations(t)
}
