package auth_form

import "parking-frontend/internal/domain/account"

// Mode フォームのモード
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

// SetFieldRequest 入力フィールド更新リクエスト
type SetFieldRequest struct {
	Name  string
	Value string
}

// SubmitResponse 送信レスポンス
// Resultにはバックエンドのレスポンス全体が含まれる
type SubmitResponse struct {
	Message string
	Result  *account.AuthResult
}

// SessionView 保存済みセッションの表示用表現
type SessionView struct {
	UserID   int64
	Username string
	Email    string
}

// Snapshot フォームの現在状態
type Snapshot struct {
	Mode        Mode
	Fields      map[string]string
	Submitting  bool
	LastError   string
	LastSuccess string
}
