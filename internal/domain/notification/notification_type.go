package notification

import (
	"fmt"
)

// NotificationType 通知タイプを表す値オブジェクト
type NotificationType string

const (
	NotificationTypeEmail  NotificationType = "EMAIL"  // メール
	NotificationTypeSMS    NotificationType = "SMS"    // SMS
	NotificationTypePush   NotificationType = "PUSH"   // プッシュ通知
	NotificationTypeSystem NotificationType = "SYSTEM" // システム通知
)

// NewNotificationType 新しいNotificationTypeを作成
func NewNotificationType(s string) (NotificationType, error) {
	nt := NotificationType(s)
	if !nt.Valid() {
		return "", fmt.Errorf("invalid notification type: %s", s)
	}
	return nt, nil
}

// String 文字列表現を返す
func (nt NotificationType) String() string {
	return string(nt)
}

// Valid 有効な通知タイプかどうかを返す
func (nt NotificationType) Valid() bool {
	switch nt {
	case NotificationTypeEmail, NotificationTypeSMS, NotificationTypePush, NotificationTypeSystem:
		return true
	default:
		return false
	}
}
