package auth_form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"parking-frontend/internal/domain/account"
	otelinfra "parking-frontend/internal/infrastructure/observability/otel"
)

const (
	loginSuccessMessage    = "ログインに成功しました"
	registerSuccessMessage = "登録に成功しました"
	genericErrorMessage    = "エラーが発生しました"
	networkErrorMessage    = "ネットワークエラーが発生しました"
)

var (
	// ErrUnknownField 未知の入力フィールドエラー
	ErrUnknownField = errors.New("unknown auth field")
	// ErrSubmissionInProgress 送信処理中エラー
	ErrSubmissionInProgress = errors.New("auth submission already in progress")
	// ErrMissingFields 必須フィールドが未入力のエラー
	ErrMissingFields = errors.New("required fields are missing")
)

// AuthFormService 認証フォームアプリケーションサービス
// ログインと登録の2モードを持ち、成功時にセッションを永続化する
type AuthFormService struct {
	gateway   account.AuthGateway
	store     account.SessionStore
	onSuccess func(*account.AuthResult)
	logger    *otelinfra.Logger
	tracer    trace.Tracer

	mu          sync.Mutex
	mode        Mode
	fields      account.Registration
	submitting  bool
	lastError   string
	lastSuccess string
}

// NewAuthFormService 新しいAuthFormServiceを作成
func NewAuthFormService(
	gateway account.AuthGateway,
	store account.SessionStore,
	onSuccess func(*account.AuthResult),
	logger *otelinfra.Logger,
) *AuthFormService {
	return &AuthFormService{
		gateway:   gateway,
		store:     store,
		onSuccess: onSuccess,
		logger:    logger,
		tracer:    otel.Tracer("auth-form-service"),
		mode:      ModeLogin,
	}
}

// SetField 入力フィールドを1つ更新する
func (s *AuthFormService) SetField(ctx context.Context, req *SetFieldRequest) error {
	_, span := s.tracer.Start(ctx, "AuthFormService.SetField")
	defer span.End()

	span.SetAttributes(attribute.String("field", req.Name))

	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.Name {
	case "username":
		s.fields.Username = req.Value
	case "email":
		s.fields.Email = req.Value
	case "password":
		s.fields.Password = req.Value
	case "confirmPassword":
		s.fields.ConfirmPassword = req.Value
	case "firstName":
		s.fields.FirstName = req.Value
	case "lastName":
		s.fields.LastName = req.Value
	case "phoneNumber":
		s.fields.PhoneNumber = req.Value
	default:
		err := fmt.Errorf("%w: %s", ErrUnknownField, req.Name)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}
	return nil
}

// ToggleMode ログインと登録を切り替える
// フィールドとメッセージはすべてリセットされる
func (s *AuthFormService) ToggleMode(ctx context.Context) Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeLogin {
		s.mode = ModeRegister
	} else {
		s.mode = ModeLogin
	}
	s.fields = account.Registration{}
	s.lastError = ""
	s.lastSuccess = ""

	s.logger.Debug(ctx, "Auth form mode toggled", map[string]interface{}{
		"mode": string(s.mode),
	})
	return s.mode
}

// Submit 現在のモードに応じてログインまたは登録を送信する
// 入力層の必須チェックとして非空のみを要求する
// パスワードと確認パスワードの一致は検証しない
func (s *AuthFormService) Submit(ctx context.Context) (*SubmitResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthFormService.Submit")
	defer span.End()

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		span.RecordError(ErrSubmissionInProgress)
		span.SetStatus(otelcodes.Error, ErrSubmissionInProgress.Error())
		return nil, ErrSubmissionInProgress
	}
	s.submitting = true
	s.lastError = ""
	s.lastSuccess = ""
	mode := s.mode
	fields := s.fields
	s.mu.Unlock()

	span.SetAttributes(attribute.String("mode", string(mode)))

	if err := requiredFields(mode, fields); err != nil {
		s.finishFailure(genericErrorMessage)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Submitting auth form", map[string]interface{}{
		"mode":     string(mode),
		"username": fields.Username,
	})

	var result *account.AuthResult
	var err error
	if mode == ModeLogin {
		result, err = s.gateway.Login(ctx, account.Credentials{
			Username: fields.Username,
			Password: fields.Password,
		})
	} else {
		result, err = s.gateway.Register(ctx, fields)
	}

	if err != nil {
		message := authFailureMessage(err)
		s.finishFailure(message)

		span.RecordError(err)
		span.SetStatus(otelcodes.Error, message)
		s.logger.Error(ctx, "Auth submission failed", err, map[string]interface{}{
			"mode":     string(mode),
			"username": fields.Username,
		})
		return nil, err
	}

	message := result.Message
	if message == "" {
		if mode == ModeLogin {
			message = loginSuccessMessage
		} else {
			message = registerSuccessMessage
		}
	}

	// トークンが返された場合のみセッションを永続化する
	if result.Token != "" {
		session := account.NewSession(result.Token, result.UserID, result.Username, result.Email)
		if err := s.store.Save(session); err != nil {
			s.logger.Warn(ctx, "Failed to persist session", map[string]interface{}{
				"user_id": result.UserID,
				"error":   err.Error(),
			})
		}
	}

	if s.onSuccess != nil {
		s.onSuccess(result)
	}

	s.mu.Lock()
	s.submitting = false
	s.lastSuccess = message
	s.fields = account.Registration{}
	s.mu.Unlock()

	s.logger.Info(ctx, "Auth submission succeeded", map[string]interface{}{
		"mode":    string(mode),
		"user_id": result.UserID,
	})

	return &SubmitResponse{
		Message: message,
		Result:  result,
	}, nil
}

// RestoreSession 保存済みセッションを復元する
// 有効期限切れのセッションは破棄しErrSessionNotFoundを返す
func (s *AuthFormService) RestoreSession(ctx context.Context) (*account.Session, error) {
	_, span := s.tracer.Start(ctx, "AuthFormService.RestoreSession")
	defer span.End()

	session, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now()) {
		s.logger.Info(ctx, "Stored session expired, clearing", map[string]interface{}{
			"user_id": session.UserID(),
		})
		if err := s.store.Clear(); err != nil {
			s.logger.Warn(ctx, "Failed to clear expired session", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil, account.ErrSessionNotFound
	}

	return session, nil
}

// Logout 保存済みセッションを破棄する
func (s *AuthFormService) Logout(ctx context.Context) error {
	_, span := s.tracer.Start(ctx, "AuthFormService.Logout")
	defer span.End()

	if err := s.store.Clear(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	s.logger.Info(ctx, "Logged out", nil)
	return nil
}

// Snapshot フォームの現在状態を返す
func (s *AuthFormService) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &Snapshot{
		Mode: s.mode,
		Fields: map[string]string{
			"username":        s.fields.Username,
			"email":           s.fields.Email,
			"password":        s.fields.Password,
			"confirmPassword": s.fields.ConfirmPassword,
			"firstName":       s.fields.FirstName,
			"lastName":        s.fields.LastName,
			"phoneNumber":     s.fields.PhoneNumber,
		},
		Submitting:  s.submitting,
		LastError:   s.lastError,
		LastSuccess: s.lastSuccess,
	}
}

func (s *AuthFormService) finishFailure(message string) {
	s.mu.Lock()
	s.submitting = false
	s.lastError = message
	s.mu.Unlock()
}

// requiredFields 入力層の必須チェック（非空のみ）
// 電話番号は登録時も任意
func requiredFields(mode Mode, fields account.Registration) error {
	missing := fields.Username == "" || fields.Password == ""
	if mode == ModeRegister {
		missing = missing ||
			fields.Email == "" ||
			fields.ConfirmPassword == "" ||
			fields.FirstName == "" ||
			fields.LastName == ""
	}
	if missing {
		return ErrMissingFields
	}
	return nil
}

// authFailureMessage エラーから利用者向けメッセージを導出
func authFailureMessage(err error) string {
	var rejected *account.RejectedError
	if errors.As(err, &rejected) {
		if rejected.Message != "" {
			return rejected.Message
		}
		return genericErrorMessage
	}
	if errors.Is(err, account.ErrBackendUnavailable) {
		return networkErrorMessage
	}
	return genericErrorMessage
}
