package account

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound 保存されたセッションが存在しないエラー
	ErrSessionNotFound = errors.New("session not found")
	// ErrBackendUnavailable バックエンドに到達できないエラー（レスポンスなし）
	ErrBackendUnavailable = errors.New("auth backend unavailable")
)

// RejectedError 認証リクエストが拒否されたエラー（非2xxレスポンス）
// Messageはレスポンスボディから抽出できた場合のみ設定される
type RejectedError struct {
	StatusCode int
	Message    string
}

// Error エラーメッセージを返す
func (e *RejectedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("auth request rejected with status %d", e.StatusCode)
}
