package payment

import "errors"

var (
	// ErrInvalidPaymentMethod 無効な支払い方法エラー
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	// ErrUnknownField 未知の入力フィールドエラー
	ErrUnknownField = errors.New("unknown payment field")
	// ErrSubmissionInProgress 送信処理中エラー（同一フォームからの並行送信は許可しない）
	ErrSubmissionInProgress = errors.New("payment submission already in progress")
	// ErrBackendUnavailable バックエンドに到達できないエラー（レスポンスなし）
	ErrBackendUnavailable = errors.New("payment backend unavailable")
)

// RejectedError バックエンドが決済を拒否したエラー（非2xxレスポンス）
// レスポンスボディから抽出した人間可読メッセージを保持する
type RejectedError struct {
	StatusCode int
	Message    string
}

// Error エラーメッセージを返す
func (e *RejectedError) Error() string {
	return e.Message
}
