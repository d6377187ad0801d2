package notification

import "errors"

var (
	// ErrNotificationNotFound 通知が見つからないエラー
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrFetchFailed 通知一覧の取得に失敗したエラー
	ErrFetchFailed = errors.New("failed to fetch notifications")
	// ErrBackendUnavailable バックエンドに到達できないエラー（レスポンスなし）
	ErrBackendUnavailable = errors.New("notification backend unavailable")
)
