package payment

import (
	"context"
)

// Result バックエンドが返した決済結果
// レスポンスボディを一切加工せずそのまま保持する
type Result map[string]interface{}

// Gateway 決済バックエンドゲートウェイインターフェース
type Gateway interface {
	// Process 決済リクエストを送信する
	// 非2xxレスポンスは*RejectedError、レスポンスなしはErrBackendUnavailableを返す
	Process(ctx context.Context, request *PaymentRequest) (Result, error)
}
