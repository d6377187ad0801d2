package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	paymentflow "parking-frontend/internal/application/payment_flow"
	paymentform "parking-frontend/internal/application/payment_form"
	"parking-frontend/internal/domain/payment"
	otelinfra "parking-frontend/internal/infrastructure/observability/otel"
)

// PaymentFormHandler 決済フォーム関連ハンドラー
// フォームインスタンスをIDで管理し、フロー設定から新しいフォームを生成する
type PaymentFormHandler struct {
	gateway     payment.Gateway
	flowService *paymentflow.FlowService
	logger      *otelinfra.Logger
	metrics     *otelinfra.Metrics

	mu    sync.RWMutex
	forms map[string]*paymentform.FormService
}

// NewPaymentFormHandler 新しいPaymentFormHandlerを作成
func NewPaymentFormHandler(
	gateway payment.Gateway,
	flowService *paymentflow.FlowService,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *PaymentFormHandler {
	return &PaymentFormHandler{
		gateway:     gateway,
		flowService: flowService,
		logger:      logger,
		metrics:     metrics,
		forms:       make(map[string]*paymentform.FormService),
	}
}

// CreateForm フローの現在設定で新しい決済フォームを作成する
// フォームを表示状態にし、送信成功時の結果はフローに渡される
func (h *PaymentFormHandler) CreateForm(c echo.Context) error {
	ctx := c.Request().Context()

	h.flowService.StartPayment(ctx)

	// コールバックは後続の送信リクエストから呼ばれるため
	// このリクエストのコンテキストを持ち越さない
	form := paymentform.NewFormService(
		h.flowService.SessionID(),
		h.flowService.Amount(),
		h.gateway,
		func(result payment.Result) {
			h.flowService.CompletePayment(context.Background(), result)
		},
		h.logger,
		h.metrics,
	)

	h.mu.Lock()
	h.forms[form.ID().String()] = form
	h.mu.Unlock()

	return c.JSON(http.StatusCreated, toFormStateResponse(form.Snapshot()))
}

// GetForm フォームの現在状態を返す
func (h *PaymentFormHandler) GetForm(c echo.Context) error {
	form, err := h.lookupForm(c.Param("form_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFormStateResponse(form.Snapshot()))
}

// SelectMethod 支払い方法を選択する
func (h *PaymentFormHandler) SelectMethod(c echo.Context) error {
	form, err := h.lookupForm(c.Param("form_id"))
	if err != nil {
		return err
	}

	var reqBody SelectMethodRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := &paymentform.SelectMethodRequest{
		Method: reqBody.Method,
	}
	if err := form.SelectMethod(c.Request().Context(), req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFormStateResponse(form.Snapshot()))
}

// SetField 入力フィールドを1つ更新する
func (h *PaymentFormHandler) SetField(c echo.Context) error {
	form, err := h.lookupForm(c.Param("form_id"))
	if err != nil {
		return err
	}

	var reqBody SetFormFieldRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if reqBody.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	req := &paymentform.SetFieldRequest{
		Name:  reqBody.Name,
		Value: reqBody.Value,
	}
	if err := form.SetField(c.Request().Context(), req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFormStateResponse(form.Snapshot()))
}

// Submit 現在の入力内容で決済を送信する
func (h *PaymentFormHandler) Submit(c echo.Context) error {
	form, err := h.lookupForm(c.Param("form_id"))
	if err != nil {
		return err
	}

	resp, err := form.Submit(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SubmitPaymentResponse{
		Message: resp.Message,
		Result:  resp.Result,
		Form:    toFormStateResponse(form.Snapshot()),
	})
}

// lookupForm IDからフォームインスタンスを取得する
func (h *PaymentFormHandler) lookupForm(formID string) (*paymentform.FormService, error) {
	h.mu.RLock()
	form, ok := h.forms[formID]
	h.mu.RUnlock()
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "form not found")
	}
	return form, nil
}

// toFormStateResponse アプリケーション層のスナップショットをレスポンスに変換
func toFormStateResponse(snapshot *paymentform.Snapshot) FormStateResponse {
	fields := make([]FormFieldView, 0, len(snapshot.Fields))
	for _, field := range snapshot.Fields {
		fields = append(fields, FormFieldView{
			Name:        field.Name,
			Label:       field.Label,
			Placeholder: field.Placeholder,
			Options:     field.Options,
			Value:       field.Value,
		})
	}

	return FormStateResponse{
		FormID:          snapshot.FormID,
		SessionID:       snapshot.SessionID,
		Amount:          snapshot.Amount,
		SelectedMethod:  snapshot.SelectedMethod,
		Methods:         snapshot.Methods,
		VisibleFields:   snapshot.VisibleFields,
		Fields:          fields,
		SubmissionState: string(snapshot.SubmissionState),
		LastError:       snapshot.LastError,
		LastSuccess:     snapshot.LastSuccess,
	}
}
