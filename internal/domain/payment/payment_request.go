package payment

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CardDetails カード決済の入力項目
type CardDetails struct {
	Number      string
	HolderName  string
	ExpiryMonth string
	ExpiryYear  string
	CVV         string
}

// MobileDetails モバイル決済の入力項目
type MobileDetails struct {
	PhoneNumber string
	WalletType  string
}

// QRCodeDetails QRコード決済の入力項目
type QRCodeDetails struct {
	Data string
}

// WalletDetails 電子ウォレット決済の入力項目
type WalletDetails struct {
	Provider string
	WalletID string
}

// PaymentRequest 決済リクエストエンティティ
// フォームの入力レコード。全支払い方法の入力グループを保持し続けるため、
// 方法を切り替えて戻しても入力済みの値は失われない。
// ワイヤー形式へは選択中の方法に対応するグループのみを射影する。
type PaymentRequest struct {
	sessionID int64
	amount    decimal.Decimal
	method    PaymentMethod
	card      CardDetails
	mobile    MobileDetails
	qrCode    QRCodeDetails
	wallet    WalletDetails
}

// NewPaymentRequest 新しいPaymentRequestエンティティを作成
// sessionIDとamountは呼び出し元が設定し、以後フォーム層では変更しない
func NewPaymentRequest(sessionID int64, amount decimal.Decimal) *PaymentRequest {
	return &PaymentRequest{
		sessionID: sessionID,
		amount:    amount,
		method:    PaymentMethodCreditCard,
	}
}

// SessionID 駐車セッションIDを返す
func (pr *PaymentRequest) SessionID() int64 {
	return pr.sessionID
}

// Amount 金額を返す
func (pr *PaymentRequest) Amount() decimal.Decimal {
	return pr.amount
}

// Method 選択中の支払い方法を返す
func (pr *PaymentRequest) Method() PaymentMethod {
	return pr.method
}

// Card カード入力グループを返す
func (pr *PaymentRequest) Card() CardDetails {
	return pr.card
}

// Mobile モバイル決済入力グループを返す
func (pr *PaymentRequest) Mobile() MobileDetails {
	return pr.mobile
}

// QRCode QRコード入力グループを返す
func (pr *PaymentRequest) QRCode() QRCodeDetails {
	return pr.qrCode
}

// Wallet 電子ウォレット入力グループを返す
func (pr *PaymentRequest) Wallet() WalletDetails {
	return pr.wallet
}

// SelectMethod 支払い方法を切り替える
// 他の入力グループは消去しない
func (pr *PaymentRequest) SelectMethod(method PaymentMethod) error {
	if !method.Valid() {
		return ErrInvalidPaymentMethod
	}
	pr.method = method
	return nil
}

// SetField ワイヤー上のフィールド名で入力項目を1つ更新する
// バリデーションや型変換は行わない（入力ウィジェットが返した文字列をそのまま保持する）
func (pr *PaymentRequest) SetField(name, value string) error {
	switch name {
	case "cardNumber":
		pr.card.Number = value
	case "cardHolderName":
		pr.card.HolderName = value
	case "cardExpiryMonth":
		pr.card.ExpiryMonth = value
	case "cardExpiryYear":
		pr.card.ExpiryYear = value
	case "cardCvv":
		pr.card.CVV = value
	case "phoneNumber":
		pr.mobile.PhoneNumber = value
	case "walletType":
		pr.mobile.WalletType = value
	case "qrCodeData":
		pr.qrCode.Data = value
	case "walletProvider":
		pr.wallet.Provider = value
	case "walletId":
		pr.wallet.WalletID = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Field ワイヤー上のフィールド名で入力項目の現在値を返す
func (pr *PaymentRequest) Field(name string) string {
	switch name {
	case "cardNumber":
		return pr.card.Number
	case "cardHolderName":
		return pr.card.HolderName
	case "cardExpiryMonth":
		return pr.card.ExpiryMonth
	case "cardExpiryYear":
		return pr.card.ExpiryYear
	case "cardCvv":
		return pr.card.CVV
	case "phoneNumber":
		return pr.mobile.PhoneNumber
	case "walletType":
		return pr.mobile.WalletType
	case "qrCodeData":
		return pr.qrCode.Data
	case "walletProvider":
		return pr.wallet.Provider
	case "walletId":
		return pr.wallet.WalletID
	}
	return ""
}

// WireBody バックエンドへ送信するリクエストボディを構築する
// 選択中の支払い方法に対応する入力グループのみを含める
func (pr *PaymentRequest) WireBody() map[string]interface{} {
	body := map[string]interface{}{
		"sessionId":     pr.sessionID,
		"amount":        json.Number(pr.amount.String()),
		"paymentMethod": pr.method.String(),
	}

	switch pr.method {
	case PaymentMethodCreditCard, PaymentMethodDebitCard:
		body["cardNumber"] = pr.card.Number
		body["cardHolderName"] = pr.card.HolderName
		body["cardExpiryMonth"] = pr.card.ExpiryMonth
		body["cardExpiryYear"] = pr.card.ExpiryYear
		body["cardCvv"] = pr.card.CVV
	case PaymentMethodMobilePayment:
		body["phoneNumber"] = pr.mobile.PhoneNumber
		body["walletType"] = pr.mobile.WalletType
	case PaymentMethodQRCode:
		body["qrCodeData"] = pr.qrCode.Data
	case PaymentMethodElectronicWallet:
		body["walletProvider"] = pr.wallet.Provider
		body["walletId"] = pr.wallet.WalletID
	case PaymentMethodCash:
		// 現金は追加項目なし
	}

	return body
}
