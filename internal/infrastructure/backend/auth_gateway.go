package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"parking-frontend/internal/domain/account"
)

// AuthGateway account.AuthGatewayのHTTP実装
type AuthGateway struct {
	client *Client
}

// NewAuthGateway 新しいAuthGatewayを作成
func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{
		client: client,
	}
}

// Login ログインリクエストを送信する
func (g *AuthGateway) Login(ctx context.Context, credentials account.Credentials) (*account.AuthResult, error) {
	body := map[string]string{
		"username": credentials.Username,
		"password": credentials.Password,
	}
	return g.authenticate(ctx, "/api/auth/login", body)
}

// Register 登録リクエストを送信する
func (g *AuthGateway) Register(ctx context.Context, registration account.Registration) (*account.AuthResult, error) {
	body := map[string]string{
		"username":        registration.Username,
		"email":           registration.Email,
		"password":        registration.Password,
		"confirmPassword": registration.ConfirmPassword,
		"firstName":       registration.FirstName,
		"lastName":        registration.LastName,
		"phoneNumber":     registration.PhoneNumber,
	}
	return g.authenticate(ctx, "/api/auth/register", body)
}

func (g *AuthGateway) authenticate(ctx context.Context, path string, body map[string]string) (*account.AuthResult, error) {
	resp, err := g.client.Do(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", account.ErrBackendUnavailable, err)
	}

	if !resp.Success() {
		// フォールバックメッセージの選択はアプリケーション層に委ねる
		return nil, &account.RejectedError{
			StatusCode: resp.StatusCode,
			Message:    resp.Message(""),
		}
	}

	raw, err := resp.DecodeMap()
	if err != nil {
		return nil, fmt.Errorf("failed to decode auth response: %w", err)
	}

	return &account.AuthResult{
		Message:  stringField(raw, "message"),
		Token:    stringField(raw, "token"),
		UserID:   int64Field(raw, "userId"),
		Username: stringField(raw, "username"),
		Email:    stringField(raw, "email"),
		Raw:      raw,
	}, nil
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func int64Field(m map[string]interface{}, key string) int64 {
	if v, ok := m[key].(json.Number); ok {
		if n, err := v.Int64(); err == nil {
			return n
		}
	}
	return 0
}
