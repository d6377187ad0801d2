package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authform "parking-frontend/internal/application/auth_form"
)

// AuthHandler 認証フォーム関連ハンドラー
type AuthHandler struct {
	authService *authform.AuthFormService
}

// NewAuthHandler 新しいAuthHandlerを作成
func NewAuthHandler(authService *authform.AuthFormService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// GetState フォームの現在状態を返す
func (h *AuthHandler) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, toAuthStateResponse(h.authService.Snapshot()))
}

// SetField 入力フィールドを1つ更新する
func (h *AuthHandler) SetField(c echo.Context) error {
	var reqBody SetAuthFieldRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if reqBody.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	req := &authform.SetFieldRequest{
		Name:  reqBody.Name,
		Value: reqBody.Value,
	}
	if err := h.authService.SetField(c.Request().Context(), req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAuthStateResponse(h.authService.Snapshot()))
}

// ToggleMode ログインと登録を切り替える
func (h *AuthHandler) ToggleMode(c echo.Context) error {
	h.authService.ToggleMode(c.Request().Context())
	return c.JSON(http.StatusOK, toAuthStateResponse(h.authService.Snapshot()))
}

// Submit 現在のモードでログインまたは登録を送信する
func (h *AuthHandler) Submit(c echo.Context) error {
	resp, err := h.authService.Submit(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SubmitAuthResponse{
		Message: resp.Message,
		Result:  resp.Result.Raw,
		Form:    toAuthStateResponse(h.authService.Snapshot()),
	})
}

// GetSession 保存済みセッションを返す
// セッションがない、または期限切れの場合は401が返る
func (h *AuthHandler) GetSession(c echo.Context) error {
	session, err := h.authService.RestoreSession(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SessionResponse{
		UserID:   session.UserID(),
		Username: session.Username(),
		Email:    session.Email(),
	})
}

// Logout 保存済みセッションを破棄する
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// toAuthStateResponse アプリケーション層のスナップショットをレスポンスに変換
func toAuthStateResponse(snapshot *authform.Snapshot) AuthStateResponse {
	return AuthStateResponse{
		Mode:        string(snapshot.Mode),
		Fields:      snapshot.Fields,
		Submitting:  snapshot.Submitting,
		LastError:   snapshot.LastError,
		LastSuccess: snapshot.LastSuccess,
	}
}
