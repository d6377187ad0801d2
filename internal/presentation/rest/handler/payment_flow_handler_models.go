package handler

import "parking-frontend/internal/domain/payment"

// ConfigureFlowRequest フロー設定リクエスト
type ConfigureFlowRequest struct {
	SessionID int64  `json:"sessionId" example:"1"`
	Amount    string `json:"amount" example:"15.00"`
}

// FlowStateResponse フローの現在状態レスポンス
type FlowStateResponse struct {
	SessionID   int64          `json:"sessionId" example:"1"`
	Amount      string         `json:"amount" example:"15"`
	FormVisible bool           `json:"formVisible" example:"false"`
	LastResult  payment.Result `json:"lastResult,omitempty"`
}
