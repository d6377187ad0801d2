package notification

import (
	"fmt"
)

// Priority 通知の優先度を表す値オブジェクト
type Priority string

const (
	PriorityLow      Priority = "LOW"      // 低
	PriorityNormal   Priority = "NORMAL"   // 通常
	PriorityHigh     Priority = "HIGH"     // 高
	PriorityCritical Priority = "CRITICAL" // 緊急
)

// NewPriority 新しいPriorityを作成
func NewPriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}

// String 文字列表現を返す
func (p Priority) String() string {
	return string(p)
}

// Valid 有効な優先度かどうかを返す
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}
