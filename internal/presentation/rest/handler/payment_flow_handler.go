package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	paymentflow "parking-frontend/internal/application/payment_flow"
)

// PaymentFlowHandler 決済デモフロー関連ハンドラー
type PaymentFlowHandler struct {
	flowService *paymentflow.FlowService
}

// NewPaymentFlowHandler 新しいPaymentFlowHandlerを作成
func NewPaymentFlowHandler(flowService *paymentflow.FlowService) *PaymentFlowHandler {
	return &PaymentFlowHandler{
		flowService: flowService,
	}
}

// GetState フローの現在状態を返す
func (h *PaymentFlowHandler) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, toFlowStateResponse(h.flowService.Snapshot()))
}

// Configure デモ開始前にsessionIdと金額を設定する
func (h *PaymentFlowHandler) Configure(c echo.Context) error {
	var reqBody ConfigureFlowRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := &paymentflow.ConfigureRequest{
		SessionID: reqBody.SessionID,
		Amount:    reqBody.Amount,
	}

	if err := h.flowService.Configure(c.Request().Context(), req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFlowStateResponse(h.flowService.Snapshot()))
}

// StartPayment 決済フォームを表示する
func (h *PaymentFlowHandler) StartPayment(c echo.Context) error {
	h.flowService.StartPayment(c.Request().Context())
	return c.JSON(http.StatusOK, toFlowStateResponse(h.flowService.Snapshot()))
}

// ReturnToStart フォームを閉じて開始画面に戻る
func (h *PaymentFlowHandler) ReturnToStart(c echo.Context) error {
	h.flowService.ReturnToStart(c.Request().Context())
	return c.JSON(http.StatusOK, toFlowStateResponse(h.flowService.Snapshot()))
}

// toFlowStateResponse アプリケーション層のスナップショットをレスポンスに変換
func toFlowStateResponse(snapshot *paymentflow.Snapshot) FlowStateResponse {
	return FlowStateResponse{
		SessionID:   snapshot.SessionID,
		Amount:      snapshot.Amount,
		FormVisible: snapshot.FormVisible,
		LastResult:  snapshot.LastResult,
	}
}
