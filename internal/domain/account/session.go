package account

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session 認証済みセッションエンティティ
// バックエンドが発行した不透明トークンと最小限のユーザー情報を保持する
type Session struct {
	token     string
	userID    int64
	username  string
	email     string
	expiresAt time.Time
}

// NewSession 新しいSessionエンティティを作成
// トークンがJWTの場合はexpクレームから有効期限を取り出す
// クライアントは署名鍵を持たないため検証はしない
func NewSession(token string, userID int64, username, email string) *Session {
	s := &Session{
		token:    token,
		userID:   userID,
		username: username,
		email:    email,
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			s.expiresAt = exp.Time
		}
	}

	return s
}

// Token Bearerトークンを返す
func (s *Session) Token() string {
	return s.token
}

// UserID ユーザーIDを返す
func (s *Session) UserID() int64 {
	return s.userID
}

// Username ユーザー名を返す
func (s *Session) Username() string {
	return s.username
}

// Email メールアドレスを返す
func (s *Session) Email() string {
	return s.email
}

// ExpiresAt 有効期限を返す（不明な場合はゼロ値）
func (s *Session) ExpiresAt() time.Time {
	return s.expiresAt
}

// Expired 有効期限切れかどうかを返す
// 有効期限が不明なトークンは期限切れとして扱わない
func (s *Session) Expired(now time.Time) bool {
	if s.expiresAt.IsZero() {
		return false
	}
	return now.After(s.expiresAt)
}
