package payment_form

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"parking-frontend/internal/domain/payment"
	otelinfra "parking-frontend/internal/infrastructure/observability/otel"
)

const (
	successMessage        = "Payment processed successfully!"
	genericFailureMessage = "Payment processing failed"
	networkErrorMessage   = "Network error. Please try again."
)

// methodFields 支払い方法ごとに編集対象となる入力フィールド
// 方法セレクター自体は選択に関わらず常に6方法すべてを提示する
var methodFields = map[payment.PaymentMethod][]string{
	payment.PaymentMethodCreditCard:       {"cardNumber", "cardHolderName", "cardExpiryMonth", "cardExpiryYear", "cardCvv"},
	payment.PaymentMethodDebitCard:        {"cardNumber", "cardHolderName", "cardExpiryMonth", "cardExpiryYear", "cardCvv"},
	payment.PaymentMethodMobilePayment:    {"phoneNumber", "walletType"},
	payment.PaymentMethodQRCode:           {"qrCodeData"},
	payment.PaymentMethodElectronicWallet: {"walletProvider", "walletId"},
	payment.PaymentMethodCash:             {},
}

// fieldMeta 入力フィールドのラベル・プレースホルダー・選択肢
// 有効期限の月・年は画面側で動的に生成されるため選択肢を持たない
var fieldMeta = map[string]FieldView{
	"cardNumber":      {Name: "cardNumber", Label: "Card Number", Placeholder: "1234 5678 9012 3456"},
	"cardHolderName":  {Name: "cardHolderName", Label: "Cardholder Name", Placeholder: "John Doe"},
	"cardExpiryMonth": {Name: "cardExpiryMonth", Label: "Expiry Month", Placeholder: "MM"},
	"cardExpiryYear":  {Name: "cardExpiryYear", Label: "Expiry Year", Placeholder: "YYYY"},
	"cardCvv":         {Name: "cardCvv", Label: "CVV", Placeholder: "123"},
	"phoneNumber":     {Name: "phoneNumber", Label: "Phone Number", Placeholder: "+81-90-1234-5678"},
	"walletType":      {Name: "walletType", Label: "Wallet Type", Options: []string{"Apple Pay", "Google Pay", "Samsung Pay", "PayPal"}},
	"qrCodeData":      {Name: "qrCodeData", Label: "QR Code Data", Placeholder: "parking-payment-12345"},
	"walletProvider":  {Name: "walletProvider", Label: "Wallet Provider", Options: []string{"LINE Pay", "PayPay", "Rakuten Pay", "d Payment"}},
	"walletId":        {Name: "walletId", Label: "Wallet ID", Placeholder: "wallet-12345"},
}

// FormService 決済フォームアプリケーションサービス
// 1インスタンスが1フォームの状態を保持する
type FormService struct {
	id         uuid.UUID
	gateway    payment.Gateway
	onComplete func(payment.Result)
	logger     *otelinfra.Logger
	metrics    *otelinfra.Metrics
	tracer     trace.Tracer

	mu          sync.Mutex
	request     *payment.PaymentRequest
	state       SubmissionState
	lastError   string
	lastSuccess string
}

// NewFormService 新しいFormServiceを作成
// onCompleteは送信成功時にバックエンドのレスポンスボディをそのまま受け取る
func NewFormService(
	sessionID int64,
	amount decimal.Decimal,
	gateway payment.Gateway,
	onComplete func(payment.Result),
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *FormService {
	return &FormService{
		id:         uuid.New(),
		gateway:    gateway,
		onComplete: onComplete,
		logger:     logger,
		metrics:    metrics,
		tracer:     otel.Tracer("payment-form-service"),
		request:    payment.NewPaymentRequest(sessionID, amount),
		state:      SubmissionStateIdle,
	}
}

// ID フォームインスタンスIDを返す
func (s *FormService) ID() uuid.UUID {
	return s.id
}

// SelectMethod 支払い方法を選択する
// 他の方法の入力値はクリアされず保持される
func (s *FormService) SelectMethod(ctx context.Context, req *SelectMethodRequest) error {
	_, span := s.tracer.Start(ctx, "FormService.SelectMethod")
	defer span.End()

	span.SetAttributes(attribute.String("payment_method", req.Method))

	method, err := payment.NewPaymentMethod(req.Method)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SubmissionStateSubmitting {
		err := payment.ErrSubmissionInProgress
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	return s.request.SelectMethod(method)
}

// SetField 入力フィールドを1つ更新する
// バリデーションや型変換は行わない
func (s *FormService) SetField(ctx context.Context, req *SetFieldRequest) error {
	_, span := s.tracer.Start(ctx, "FormService.SetField")
	defer span.End()

	span.SetAttributes(attribute.String("field", req.Name))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SubmissionStateSubmitting {
		err := payment.ErrSubmissionInProgress
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	if err := s.request.SetField(req.Name, req.Value); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}
	return nil
}

// Submit 現在の入力内容で決済を送信する
// 同一フォームからの並行送信は拒否する
func (s *FormService) Submit(ctx context.Context) (*SubmitResponse, error) {
	ctx, span := s.tracer.Start(ctx, "FormService.Submit")
	defer span.End()

	s.mu.Lock()
	if s.state == SubmissionStateSubmitting {
		s.mu.Unlock()
		err := payment.ErrSubmissionInProgress
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}
	s.state = SubmissionStateSubmitting
	s.lastError = ""
	s.lastSuccess = ""
	request := s.request
	s.mu.Unlock()

	span.SetAttributes(
		attribute.Int64("session_id", request.SessionID()),
		attribute.String("payment_method", request.Method().String()),
	)

	s.logger.Info(ctx, "Submitting payment", map[string]interface{}{
		"form_id":        s.id.String(),
		"session_id":     request.SessionID(),
		"amount":         request.Amount().String(),
		"payment_method": request.Method().String(),
	})

	result, err := s.gateway.Process(ctx, request)
	if err != nil {
		message := failureMessage(err)

		s.mu.Lock()
		s.state = SubmissionStateFailed
		s.lastError = message
		s.mu.Unlock()

		s.metrics.RecordPaymentSubmission(ctx, request.Method().String(), "failed")
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, message)
		s.logger.Error(ctx, "Payment submission failed", err, map[string]interface{}{
			"form_id":    s.id.String(),
			"session_id": request.SessionID(),
		})
		return nil, err
	}

	s.mu.Lock()
	s.state = SubmissionStateSucceeded
	s.lastSuccess = successMessage
	s.mu.Unlock()

	s.metrics.RecordPaymentSubmission(ctx, request.Method().String(), "succeeded")
	s.logger.Info(ctx, "Payment submitted successfully", map[string]interface{}{
		"form_id":    s.id.String(),
		"session_id": request.SessionID(),
	})

	if s.onComplete != nil {
		s.onComplete(result)
	}

	return &SubmitResponse{
		Message: successMessage,
		Result:  result,
	}, nil
}

// Snapshot フォームの現在状態を返す
func (s *FormService) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	methods := payment.AllPaymentMethods()
	names := make([]string, 0, len(methods))
	for _, m := range methods {
		names = append(names, m.String())
	}

	visible := visibleFields(s.request.Method())
	fields := make([]FieldView, 0, len(visible))
	for _, name := range visible {
		view := fieldMeta[name]
		view.Value = s.request.Field(name)
		fields = append(fields, view)
	}

	return &Snapshot{
		FormID:          s.id.String(),
		SessionID:       s.request.SessionID(),
		Amount:          s.request.Amount().String(),
		SelectedMethod:  s.request.Method().String(),
		Methods:         names,
		VisibleFields:   visible,
		Fields:          fields,
		SubmissionState: s.state,
		LastError:       s.lastError,
		LastSuccess:     s.lastSuccess,
	}
}

// visibleFields 選択中の方法で編集対象となるフィールドを返す
func visibleFields(method payment.PaymentMethod) []string {
	fields, ok := methodFields[method]
	if !ok {
		return []string{}
	}
	return append([]string{}, fields...)
}

// failureMessage エラーから利用者向けメッセージを導出
func failureMessage(err error) string {
	var rejected *payment.RejectedError
	if errors.As(err, &rejected) {
		return rejected.Message
	}
	if errors.Is(err, payment.ErrBackendUnavailable) {
		return networkErrorMessage
	}
	return genericFailureMessage
}
