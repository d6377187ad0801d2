package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	notificationcenter "parking-frontend/internal/application/notification_center"
)

// NotificationHandler 通知センター関連ハンドラー
// ルーティング側でセッションミドルウェアにより保護される
type NotificationHandler struct {
	centerService *notificationcenter.CenterService
}

// NewNotificationHandler 新しいNotificationHandlerを作成
func NewNotificationHandler(centerService *notificationcenter.CenterService) *NotificationHandler {
	return &NotificationHandler{
		centerService: centerService,
	}
}

// GetState 通知センターの現在状態を返す
func (h *NotificationHandler) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, toNotificationListResponse(h.centerService.Snapshot()))
}

// Refresh 通知リストを再取得する
func (h *NotificationHandler) Refresh(c echo.Context) error {
	if err := h.centerService.Refresh(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNotificationListResponse(h.centerService.Snapshot()))
}

// MarkRead 通知を既読にする
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	notificationID, err := notificationIDParam(c)
	if err != nil {
		return err
	}

	if err := h.centerService.MarkRead(c.Request().Context(), notificationID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNotificationListResponse(h.centerService.Snapshot()))
}

// Remove 通知を削除する
func (h *NotificationHandler) Remove(c echo.Context) error {
	notificationID, err := notificationIDParam(c)
	if err != nil {
		return err
	}

	if err := h.centerService.Remove(c.Request().Context(), notificationID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNotificationListResponse(h.centerService.Snapshot()))
}

// Resend 送信失敗した通知を再送信する
func (h *NotificationHandler) Resend(c echo.Context) error {
	notificationID, err := notificationIDParam(c)
	if err != nil {
		return err
	}

	if err := h.centerService.Resend(c.Request().Context(), notificationID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNotificationListResponse(h.centerService.Snapshot()))
}

// SetShowAll 全件表示と未読のみ表示を切り替える
func (h *NotificationHandler) SetShowAll(c echo.Context) error {
	var reqBody SetShowAllRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.centerService.SetShowAll(c.Request().Context(), reqBody.ShowAll); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNotificationListResponse(h.centerService.Snapshot()))
}

// notificationIDParam パスパラメータから通知IDを取り出す
func notificationIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("notification_id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid notification id")
	}
	return id, nil
}

// toNotificationListResponse アプリケーション層のスナップショットをレスポンスに変換
func toNotificationListResponse(snapshot *notificationcenter.Snapshot) NotificationListResponse {
	items := make([]NotificationItem, 0, len(snapshot.Notifications))
	for _, view := range snapshot.Notifications {
		items = append(items, NotificationItem{
			ID:        view.ID,
			Title:     view.Title,
			Message:   view.Message,
			Type:      view.Type,
			Priority:  view.Priority,
			Status:    view.Status,
			CreatedAt: view.CreatedAt.Format(time.RFC3339),
			ReadAt:    formatReadAt(view.ReadAt),
			Unread:    view.Unread,
			CanResend: view.CanResend,
		})
	}

	return NotificationListResponse{
		Notifications: items,
		UnreadCount:   snapshot.UnreadCount,
		ShowAll:       snapshot.ShowAll,
		LastError:     snapshot.LastError,
	}
}

func formatReadAt(readAt *time.Time) *string {
	if readAt == nil {
		return nil
	}
	formatted := readAt.Format(time.RFC3339)
	return &formatted
}
