package notification

import (
	"context"
)

// Gateway 通知バックエンドゲートウェイインターフェース
// 認証が必要な呼び出しはセッションのBearerトークンを明示的に受け取る
type Gateway interface {
	// ListForUser ユーザーの全通知を取得
	ListForUser(ctx context.Context, userID int64, token string) ([]*Notification, error)

	// ListUnreadForUser ユーザーの未読通知を取得
	ListUnreadForUser(ctx context.Context, userID int64, token string) ([]*Notification, error)

	// MarkRead 通知を既読にする
	MarkRead(ctx context.Context, notificationID int64, token string) error

	// Delete 通知を削除する
	Delete(ctx context.Context, notificationID int64, token string) error

	// Resend 送信失敗した通知を再送信し、更新後の通知を返す
	Resend(ctx context.Context, notificationID int64, token string) (*Notification, error)
}
