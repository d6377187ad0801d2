package backend

import (
	"context"
	"fmt"
	"net/http"

	"parking-frontend/internal/domain/payment"
)

// PaymentGateway payment.GatewayのHTTP実装
type PaymentGateway struct {
	client *Client
}

// NewPaymentGateway 新しいPaymentGatewayを作成
func NewPaymentGateway(client *Client) *PaymentGateway {
	return &PaymentGateway{
		client: client,
	}
}

// Process 決済リクエストを送信する
func (g *PaymentGateway) Process(ctx context.Context, request *payment.PaymentRequest) (payment.Result, error) {
	resp, err := g.client.Do(ctx, http.MethodPost, "/api/payments/process", "", request.WireBody())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrBackendUnavailable, err)
	}

	if !resp.Success() {
		return nil, &payment.RejectedError{
			StatusCode: resp.StatusCode,
			Message:    resp.Message("Payment processing failed"),
		}
	}

	result, err := resp.DecodeMap()
	if err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}

	return payment.Result(result), nil
}
