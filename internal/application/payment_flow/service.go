package payment_flow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"parking-frontend/internal/domain/payment"
	otelinfra "parking-frontend/internal/infrastructure/observability/otel"
)

var (
	// ErrFlowActive フォーム表示中は設定を変更できないエラー
	ErrFlowActive = errors.New("payment flow already started")
	// ErrInvalidAmount 金額がパースできないエラー
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidSessionID セッションIDが不正なエラー
	ErrInvalidSessionID = errors.New("invalid session id")
)

// FlowService 決済デモフローアプリケーションサービス
// sessionIdと金額を保持し、フォームの表示と決済結果の受け取りを仲介する
type FlowService struct {
	logger *otelinfra.Logger
	tracer trace.Tracer

	mu          sync.Mutex
	sessionID   int64
	amount      decimal.Decimal
	formVisible bool
	lastResult  payment.Result
}

// NewFlowService 新しいFlowServiceを作成
func NewFlowService(logger *otelinfra.Logger) *FlowService {
	return &FlowService{
		logger:    logger,
		tracer:    otel.Tracer("payment-flow-service"),
		sessionID: 1,
		amount:    decimal.NewFromFloat(15.00),
	}
}

// Configure デモ開始前にsessionIdと金額を設定する
// フォーム表示中は変更できない
func (s *FlowService) Configure(ctx context.Context, req *ConfigureRequest) error {
	_, span := s.tracer.Start(ctx, "FlowService.Configure")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("session_id", req.SessionID),
		attribute.String("amount", req.Amount),
	)

	if req.SessionID < 1 {
		err := fmt.Errorf("%w: %d", ErrInvalidSessionID, req.SessionID)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		err := fmt.Errorf("%w: %q", ErrInvalidAmount, req.Amount)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.formVisible {
		span.RecordError(ErrFlowActive)
		span.SetStatus(otelcodes.Error, ErrFlowActive.Error())
		return ErrFlowActive
	}

	s.sessionID = req.SessionID
	s.amount = amount
	return nil
}

// StartPayment フォームを表示し、前回の決済結果をクリアする
func (s *FlowService) StartPayment(ctx context.Context) {
	s.mu.Lock()
	s.formVisible = true
	s.lastResult = nil
	sessionID := s.sessionID
	amount := s.amount
	s.mu.Unlock()

	s.logger.Info(ctx, "Payment flow started", map[string]interface{}{
		"session_id": sessionID,
		"amount":     amount.String(),
	})
}

// CompletePayment 決済完了コールバック
// 結果を保存する。フォームの表示状態は変更しない
func (s *FlowService) CompletePayment(ctx context.Context, result payment.Result) {
	s.mu.Lock()
	s.lastResult = result
	s.mu.Unlock()

	s.logger.Info(ctx, "Payment flow completed", map[string]interface{}{
		"session_id": s.SessionID(),
	})
}

// ReturnToStart フォームを閉じ、決済結果をクリアする
func (s *FlowService) ReturnToStart(ctx context.Context) {
	s.mu.Lock()
	s.formVisible = false
	s.lastResult = nil
	s.mu.Unlock()

	s.logger.Info(ctx, "Payment flow returned to start", nil)
}

// SessionID 現在のセッションIDを返す
func (s *FlowService) SessionID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Amount 現在の金額を返す
func (s *FlowService) Amount() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.amount
}

// Snapshot フローの現在状態を返す
func (s *FlowService) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Snapshot{
		SessionID:   s.sessionID,
		Amount:      s.amount.String(),
		FormVisible: s.formVisible,
		LastResult:  s.lastResult,
	}
}
