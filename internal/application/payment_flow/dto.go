package payment_flow

import "parking-frontend/internal/domain/payment"

// ConfigureRequest デモ開始前の設定リクエスト
type ConfigureRequest struct {
	SessionID int64
	Amount    string
}

// Snapshot フローの現在状態
type Snapshot struct {
	SessionID   int64
	Amount      string
	FormVisible bool
	LastResult  payment.Result
}
