package notification_center

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"parking-frontend/internal/domain/account"
	"parking-frontend/internal/domain/notification"
	otelinfra "parking-frontend/internal/infrastructure/observability/otel"
)

const (
	fetchErrorMessage   = "通知の取得に失敗しました"
	networkErrorMessage = "ネットワークエラーが発生しました"
)

// CenterService 通知センターアプリケーションサービス
// 通知リストと未読数を保持し、定期ポーリングで未読を更新する
type CenterService struct {
	gateway      notification.Gateway
	store        account.SessionStore
	logger       *otelinfra.Logger
	metrics      *otelinfra.Metrics
	tracer       trace.Tracer
	pollInterval time.Duration

	mu          sync.Mutex
	items       []*notification.Notification
	unreadCount int64
	showAll     bool
	lastError   string
	// ローカル編集とフェッチ開始のたびに進む版数
	// 古いフェッチの完了は破棄される
	seq uint64

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewCenterService 新しいCenterServiceを作成
func NewCenterService(
	gateway notification.Gateway,
	store account.SessionStore,
	pollInterval time.Duration,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *CenterService {
	return &CenterService{
		gateway:      gateway,
		store:        store,
		pollInterval: pollInterval,
		logger:       logger,
		metrics:      metrics,
		tracer:       otel.Tracer("notification-center-service"),
		stopCh:       make(chan struct{}),
	}
}

// Refresh 通知リストを再取得する
// showAllに応じて全件または未読のみを取得し、未読モードでは取得件数を未読数とする
func (s *CenterService) Refresh(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "CenterService.Refresh")
	defer span.End()

	session, err := s.store.Load()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	showAll := s.showAll
	s.mu.Unlock()

	span.SetAttributes(
		attribute.Int64("user_id", session.UserID()),
		attribute.Bool("show_all", showAll),
	)

	variant := "unread"
	fetch := s.gateway.ListUnreadForUser
	if showAll {
		variant = "all"
		fetch = s.gateway.ListForUser
	}
	s.metrics.RecordNotificationFetch(ctx, variant)

	items, err := fetch(ctx, session.UserID(), session.Token())
	if err != nil {
		message := fetchFailureMessage(err)

		s.mu.Lock()
		if seq == s.seq {
			s.lastError = message
		}
		s.mu.Unlock()

		span.RecordError(err)
		span.SetStatus(otelcodes.Error, message)
		s.logger.Error(ctx, "Failed to fetch notifications", err, map[string]interface{}{
			"user_id": session.UserID(),
			"variant": variant,
		})
		return err
	}

	s.mu.Lock()
	if seq != s.seq {
		// このフェッチ開始後にローカル編集か新しいフェッチがあったため結果を破棄する
		s.mu.Unlock()
		s.logger.Debug(ctx, "Discarding stale notification fetch", map[string]interface{}{
			"user_id": session.UserID(),
		})
		return nil
	}
	s.items = items
	s.lastError = ""
	if !showAll {
		s.unreadCount = int64(len(items))
	}
	unreadCount := s.unreadCount
	s.mu.Unlock()

	if !showAll {
		s.metrics.RecordUnreadCount(ctx, session.UserID(), unreadCount)
	}

	s.logger.Info(ctx, "Notifications refreshed", map[string]interface{}{
		"user_id": session.UserID(),
		"variant": variant,
		"count":   len(items),
	})
	return nil
}

// MarkRead 通知を既読にする
// サーバー確認後にローカルのreadAtを更新し未読数を減らす。再取得はしない
func (s *CenterService) MarkRead(ctx context.Context, notificationID int64) error {
	ctx, span := s.tracer.Start(ctx, "CenterService.MarkRead")
	defer span.End()

	span.SetAttributes(attribute.Int64("notification_id", notificationID))

	session, err := s.store.Load()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	if err := s.gateway.MarkRead(ctx, notificationID, session.Token()); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to mark notification as read", err, map[string]interface{}{
			"notification_id": notificationID,
		})
		return err
	}

	now := time.Now()

	s.mu.Lock()
	s.seq++
	for _, item := range s.items {
		if item.ID() == notificationID && item.Unread() {
			item.MarkRead(now)
			break
		}
	}
	if s.unreadCount > 0 {
		s.unreadCount--
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "Notification marked as read", map[string]interface{}{
		"notification_id": notificationID,
	})
	return nil
}

// Remove 通知を削除する
// サーバー側で削除後にローカルから取り除き、未読モードでは未読数を減らす
func (s *CenterService) Remove(ctx context.Context, notificationID int64) error {
	ctx, span := s.tracer.Start(ctx, "CenterService.Remove")
	defer span.End()

	span.SetAttributes(attribute.Int64("notification_id", notificationID))

	session, err := s.store.Load()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	if err := s.gateway.Delete(ctx, notificationID, session.Token()); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to delete notification", err, map[string]interface{}{
			"notification_id": notificationID,
		})
		return err
	}

	s.mu.Lock()
	s.seq++
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID() != notificationID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	if !s.showAll && s.unreadCount > 0 {
		s.unreadCount--
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "Notification deleted", map[string]interface{}{
		"notification_id": notificationID,
	})
	return nil
}

// Resend 送信失敗した通知を再送信する
// サーバーが返した更新後の通知でローカルのレコードを置き換える
func (s *CenterService) Resend(ctx context.Context, notificationID int64) error {
	ctx, span := s.tracer.Start(ctx, "CenterService.Resend")
	defer span.End()

	span.SetAttributes(attribute.Int64("notification_id", notificationID))

	session, err := s.store.Load()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	updated, err := s.gateway.Resend(ctx, notificationID, session.Token())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to resend notification", err, map[string]interface{}{
			"notification_id": notificationID,
		})
		return err
	}

	s.mu.Lock()
	s.seq++
	for i, item := range s.items {
		if item.ID() == notificationID {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "Notification resent", map[string]interface{}{
		"notification_id": notificationID,
		"status":          updated.Status().String(),
	})
	return nil
}

// SetShowAll 全件表示と未読のみ表示を切り替え、切り替え時に1回だけ再取得する
// 同じ値への切り替えでは再取得しない
func (s *CenterService) SetShowAll(ctx context.Context, showAll bool) error {
	s.mu.Lock()
	if s.showAll == showAll {
		s.mu.Unlock()
		return nil
	}
	s.showAll = showAll
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// StartPolling 定期的な未読更新を開始する
// 全件表示中はポーリングをスキップする
func (s *CenterService) StartPolling(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.mu.Lock()
				showAll := s.showAll
				s.mu.Unlock()
				if showAll {
					continue
				}

				if err := s.Refresh(ctx); err != nil {
					if errors.Is(err, account.ErrSessionNotFound) {
						// 未ログインの間は静かにスキップする
						continue
					}
					s.logger.Warn(ctx, "Periodic notification refresh failed", map[string]interface{}{
						"error": err.Error(),
					})
				}
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ポーリングを停止する
func (s *CenterService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// Snapshot 通知センターの現在状態を返す
func (s *CenterService) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]*NotificationView, 0, len(s.items))
	for _, item := range s.items {
		views = append(views, &NotificationView{
			ID:        item.ID(),
			Title:     item.Title(),
			Message:   item.Message(),
			Type:      item.Type().String(),
			Priority:  item.Priority().String(),
			Status:    item.Status().String(),
			CreatedAt: item.CreatedAt(),
			ReadAt:    item.ReadAt(),
			Unread:    item.Unread(),
			CanResend: item.Status().IsFailed(),
		})
	}

	return &Snapshot{
		Notifications: views,
		UnreadCount:   s.unreadCount,
		ShowAll:       s.showAll,
		LastError:     s.lastError,
	}
}

// fetchFailureMessage エラーから利用者向けメッセージを導出
func fetchFailureMessage(err error) string {
	if errors.Is(err, notification.ErrBackendUnavailable) {
		return networkErrorMessage
	}
	return fetchErrorMessage
}
