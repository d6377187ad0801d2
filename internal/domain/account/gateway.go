package account

import (
	"context"
)

// AuthResult 認証エンドポイントのレスポンス
// Rawはレスポンスボディ全体を加工せず保持する（成功コールバックへそのまま渡される）
type AuthResult struct {
	Message  string
	Token    string
	UserID   int64
	Username string
	Email    string
	Raw      map[string]interface{}
}

// AuthGateway 認証バックエンドゲートウェイインターフェース
type AuthGateway interface {
	// Login ログインリクエストを送信する
	Login(ctx context.Context, credentials Credentials) (*AuthResult, error)

	// Register 登録リクエストを送信する
	Register(ctx context.Context, registration Registration) (*AuthResult, error)
}
