package handler

// SetShowAllRequest 表示モード切り替えリクエスト
type SetShowAllRequest struct {
	ShowAll bool `json:"showAll" example:"true"`
}

// NotificationItem 通知1件のレスポンス表現
type NotificationItem struct {
	ID        int64   `json:"id" example:"101"`
	Title     string  `json:"title" example:"お支払いが完了しました"`
	Message   string  `json:"message" example:"駐車料金のお支払いを受け付けました"`
	Type      string  `json:"type" example:"PAYMENT"`
	Priority  string  `json:"priority" example:"NORMAL"`
	Status    string  `json:"status" example:"SENT"`
	CreatedAt string  `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	ReadAt    *string `json:"readAt,omitempty"`
	Unread    bool    `json:"unread" example:"true"`
	CanResend bool    `json:"canResend" example:"false"`
}

// NotificationListResponse 通知センターの現在状態レスポンス
type NotificationListResponse struct {
	Notifications []NotificationItem `json:"notifications"`
	UnreadCount   int64              `json:"unreadCount" example:"3"`
	ShowAll       bool               `json:"showAll" example:"false"`
	LastError     string             `json:"lastError,omitempty"`
}
