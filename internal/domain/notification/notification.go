package notification

import (
	"time"
)

// Notification 通知エンティティ
type Notification struct {
	id        int64
	title     string
	message   string
	nType     NotificationType
	priority  Priority
	status    Status
	createdAt time.Time
	readAt    *time.Time
}

// NewNotification 新しいNotificationエンティティを作成
func NewNotification(
	id int64,
	title string,
	message string,
	nType NotificationType,
	priority Priority,
	status Status,
	createdAt time.Time,
	readAt *time.Time,
) *Notification {
	return &Notification{
		id:        id,
		title:     title,
		message:   message,
		nType:     nType,
		priority:  priority,
		status:    status,
		createdAt: createdAt,
		readAt:    readAt,
	}
}

// ID 通知IDを返す
func (n *Notification) ID() int64 {
	return n.id
}

// Title タイトルを返す
func (n *Notification) Title() string {
	return n.title
}

// Message 本文を返す
func (n *Notification) Message() string {
	return n.message
}

// Type 通知タイプを返す
func (n *Notification) Type() NotificationType {
	return n.nType
}

// Priority 優先度を返す
func (n *Notification) Priority() Priority {
	return n.priority
}

// Status 送信ステータスを返す
func (n *Notification) Status() Status {
	return n.status
}

// CreatedAt 作成日時を返す
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// ReadAt 既読日時を返す（未読の場合はnil）
func (n *Notification) ReadAt() *time.Time {
	return n.readAt
}

// Unread 未読かどうかを返す
func (n *Notification) Unread() bool {
	return n.readAt == nil
}

// MarkRead 既読にする（楽観的更新: サーバー確認前にローカル状態へ反映される）
func (n *Notification) MarkRead(at time.Time) {
	n.readAt = &at
}
