package handler

import "parking-frontend/internal/domain/payment"

// SelectMethodRequest 支払い方法選択リクエスト
type SelectMethodRequest struct {
	Method string `json:"method" example:"CREDIT_CARD"`
}

// SetFormFieldRequest 入力フィールド更新リクエスト
type SetFormFieldRequest struct {
	Name  string `json:"name" example:"cardNumber"`
	Value string `json:"value" example:"4111111111111111"`
}

// FormFieldView 入力フィールドの表示用メタデータと現在値
type FormFieldView struct {
	Name        string   `json:"name" example:"cardNumber"`
	Label       string   `json:"label" example:"Card Number"`
	Placeholder string   `json:"placeholder,omitempty" example:"1234 5678 9012 3456"`
	Options     []string `json:"options,omitempty"`
	Value       string   `json:"value"`
}

// FormStateResponse フォームの現在状態レスポンス
type FormStateResponse struct {
	FormID          string          `json:"formId" example:"a4b54f04-3ef6-4fe5-9361-2b1e55d0c9df"`
	SessionID       int64           `json:"sessionId" example:"1"`
	Amount          string          `json:"amount" example:"15"`
	SelectedMethod  string          `json:"selectedMethod" example:"CREDIT_CARD"`
	Methods         []string        `json:"methods"`
	VisibleFields   []string        `json:"visibleFields"`
	Fields          []FormFieldView `json:"fields"`
	SubmissionState string          `json:"submissionState" example:"idle"`
	LastError       string          `json:"lastError,omitempty"`
	LastSuccess     string          `json:"lastSuccess,omitempty"`
}

// SubmitPaymentResponse 決済送信レスポンス
// Resultはバックエンドのレスポンスボディをそのまま含む
type SubmitPaymentResponse struct {
	Message string            `json:"message" example:"Payment processed successfully!"`
	Result  payment.Result    `json:"result"`
	Form    FormStateResponse `json:"form"`
}
