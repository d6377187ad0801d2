package notification_center

import "time"

// NotificationView 通知の表示用表現
type NotificationView struct {
	ID        int64
	Title     string
	Message   string
	Type      string
	Priority  string
	Status    string
	CreatedAt time.Time
	ReadAt    *time.Time
	Unread    bool
	CanResend bool
}

// Snapshot 通知センターの現在状態
type Snapshot struct {
	Notifications []*NotificationView
	UnreadCount   int64
	ShowAll       bool
	LastError     string
}
