package handler

// SetAuthFieldRequest 入力フィールド更新リクエスト
type SetAuthFieldRequest struct {
	Name  string `json:"name" example:"username"`
	Value string `json:"value" example:"taro"`
}

// AuthStateResponse フォームの現在状態レスポンス
type AuthStateResponse struct {
	Mode        string            `json:"mode" example:"login"`
	Fields      map[string]string `json:"fields"`
	Submitting  bool              `json:"submitting" example:"false"`
	LastError   string            `json:"lastError,omitempty"`
	LastSuccess string            `json:"lastSuccess,omitempty"`
}

// SubmitAuthResponse 認証送信レスポンス
// Resultはバックエンドのレスポンスボディをそのまま含む
type SubmitAuthResponse struct {
	Message string                 `json:"message" example:"ログインに成功しました"`
	Result  map[string]interface{} `json:"result"`
	Form    AuthStateResponse      `json:"form"`
}

// SessionResponse 保存済みセッションレスポンス
type SessionResponse struct {
	UserID   int64  `json:"userId" example:"42"`
	Username string `json:"username" example:"taro"`
	Email    string `json:"email" example:"taro@example.com"`
}
