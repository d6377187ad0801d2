package payment_form

import "parking-frontend/internal/domain/payment"

// SubmissionState フォームの送信状態
type SubmissionState string

const (
	SubmissionStateIdle       SubmissionState = "idle"
	SubmissionStateSubmitting SubmissionState = "submitting"
	SubmissionStateSucceeded  SubmissionState = "succeeded"
	SubmissionStateFailed     SubmissionState = "failed"
)

// SelectMethodRequest 支払い方法選択リクエスト
type SelectMethodRequest struct {
	Method string
}

// SetFieldRequest 入力フィールド更新リクエスト
type SetFieldRequest struct {
	Name  string
	Value string
}

// SubmitResponse 送信レスポンス
// Resultはバックエンドのレスポンスボディをそのまま保持する
type SubmitResponse struct {
	Message string
	Result  payment.Result
}

// FieldView 入力フィールドの表示用メタデータと現在値
// 論理的なレンダリング契約のみを表し、スタイリングは持たない
type FieldView struct {
	Name        string
	Label       string
	Placeholder string
	Options     []string
	Value       string
}

// Snapshot フォームの現在状態
type Snapshot struct {
	FormID          string
	SessionID       int64
	Amount          string
	SelectedMethod  string
	Methods         []string
	VisibleFields   []string
	Fields          []FieldView
	SubmissionState SubmissionState
	LastError       string
	LastSuccess     string
}
