package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"parking-frontend/internal/domain/notification"
)

// NotificationGateway notification.GatewayのHTTP実装
type NotificationGateway struct {
	client *Client
}

// NewNotificationGateway 新しいNotificationGatewayを作成
func NewNotificationGateway(client *Client) *NotificationGateway {
	return &NotificationGateway{
		client: client,
	}
}

// notificationRecord バックエンドの通知レスポンス
type notificationRecord struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Type      string  `json:"type"`
	Priority  string  `json:"priority"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
	ReadAt    *string `json:"readAt"`
}

// timestampLayouts バックエンドが返すタイムスタンプ形式
// タイムゾーンオフセットなしの形式も許容する
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// toEntity レコードをエンティティに変換
// 表示専用のため未知の列挙値もそのまま通す
func (r notificationRecord) toEntity() *notification.Notification {
	nType, err := notification.NewNotificationType(r.Type)
	if err != nil {
		nType = notification.NotificationType(r.Type)
	}

	priority, err := notification.NewPriority(r.Priority)
	if err != nil {
		priority = notification.Priority(r.Priority)
	}

	status, err := notification.NewStatus(r.Status)
	if err != nil {
		status = notification.Status(r.Status)
	}

	var readAt *time.Time
	if r.ReadAt != nil && *r.ReadAt != "" {
		ts := parseTimestamp(*r.ReadAt)
		readAt = &ts
	}

	return notification.NewNotification(
		r.ID,
		r.Title,
		r.Message,
		nType,
		priority,
		status,
		parseTimestamp(r.CreatedAt),
		readAt,
	)
}

// ListForUser ユーザーの全通知を取得
func (g *NotificationGateway) ListForUser(ctx context.Context, userID int64, token string) ([]*notification.Notification, error) {
	return g.list(ctx, fmt.Sprintf("/api/notifications/user/%d", userID), token)
}

// ListUnreadForUser ユーザーの未読通知を取得
func (g *NotificationGateway) ListUnreadForUser(ctx context.Context, userID int64, token string) ([]*notification.Notification, error) {
	return g.list(ctx, fmt.Sprintf("/api/notifications/user/%d/unread", userID), token)
}

func (g *NotificationGateway) list(ctx context.Context, path, token string) ([]*notification.Notification, error) {
	resp, err := g.client.Do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", notification.ErrBackendUnavailable, err)
	}

	if !resp.Success() {
		return nil, fmt.Errorf("%w: status %d", notification.ErrFetchFailed, resp.StatusCode)
	}

	var records []notificationRecord
	if err := json.Unmarshal(resp.Body, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", notification.ErrFetchFailed, err)
	}

	items := make([]*notification.Notification, 0, len(records))
	for _, record := range records {
		items = append(items, record.toEntity())
	}
	return items, nil
}

// MarkRead 通知を既読にする
func (g *NotificationGateway) MarkRead(ctx context.Context, notificationID int64, token string) error {
	resp, err := g.client.Do(ctx, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", notificationID), token, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", notification.ErrBackendUnavailable, err)
	}
	return checkMutation(resp, "mark read")
}

// Delete 通知を削除する
func (g *NotificationGateway) Delete(ctx context.Context, notificationID int64, token string) error {
	resp, err := g.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/notifications/%d", notificationID), token, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", notification.ErrBackendUnavailable, err)
	}
	return checkMutation(resp, "delete")
}

// Resend 送信失敗した通知を再送信し、更新後の通知を返す
func (g *NotificationGateway) Resend(ctx context.Context, notificationID int64, token string) (*notification.Notification, error) {
	resp, err := g.client.Do(ctx, http.MethodPost, fmt.Sprintf("/api/notifications/%d/resend", notificationID), token, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", notification.ErrBackendUnavailable, err)
	}

	if err := checkMutation(resp, "resend"); err != nil {
		return nil, err
	}

	var record notificationRecord
	if err := json.Unmarshal(resp.Body, &record); err != nil {
		return nil, fmt.Errorf("failed to decode resend response: %w", err)
	}
	return record.toEntity(), nil
}

func checkMutation(resp *Response, operation string) error {
	if resp.Success() {
		return nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return notification.ErrNotificationNotFound
	}
	return fmt.Errorf("%s failed: status %d", operation, resp.StatusCode)
}
