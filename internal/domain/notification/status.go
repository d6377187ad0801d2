package notification

import (
	"fmt"
)

// Status 通知の送信ステータスを表す値オブジェクト
type Status string

const (
	StatusPending Status = "PENDING" // 送信待ち
	StatusSent    Status = "SENT"    // 送信済み
	StatusFailed  Status = "FAILED"  // 送信失敗
)

// NewStatus 新しいStatusを作成
func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid notification status: %s", s)
	}
	return st, nil
}

// String 文字列表現を返す
func (s Status) String() string {
	return string(s)
}

// Valid 有効なステータスかどうかを返す
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSent, StatusFailed:
		return true
	default:
		return false
	}
}

// IsFailed 送信失敗かどうかを返す（再送信が可能な状態）
func (s Status) IsFailed() bool {
	return s == StatusFailed
}
