package payment

import (
	"fmt"
)

// PaymentMethod 支払い方法を表す値オブジェクト
type PaymentMethod string

const (
	PaymentMethodCreditCard       PaymentMethod = "CREDIT_CARD"       // クレジットカード
	PaymentMethodDebitCard        PaymentMethod = "DEBIT_CARD"        // デビットカード
	PaymentMethodMobilePayment    PaymentMethod = "MOBILE_PAYMENT"    // モバイル決済
	PaymentMethodQRCode           PaymentMethod = "QR_CODE"           // QRコード決済
	PaymentMethodElectronicWallet PaymentMethod = "ELECTRONIC_WALLET" // 電子ウォレット
	PaymentMethodCash             PaymentMethod = "CASH"              // 現金
)

// AllPaymentMethods 選択可能な全支払い方法（セレクタは常に全方法を表示する）
func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentMethodCreditCard,
		PaymentMethodDebitCard,
		PaymentMethodMobilePayment,
		PaymentMethodQRCode,
		PaymentMethodElectronicWallet,
		PaymentMethodCash,
	}
}

// NewPaymentMethod 新しいPaymentMethodを作成
func NewPaymentMethod(s string) (PaymentMethod, error) {
	pm := PaymentMethod(s)
	if !pm.Valid() {
		return "", fmt.Errorf("invalid payment method: %s", s)
	}
	return pm, nil
}

// String 文字列表現を返す
func (pm PaymentMethod) String() string {
	return string(pm)
}

// Valid 有効な支払い方法かどうかを返す
func (pm PaymentMethod) Valid() bool {
	switch pm {
	case PaymentMethodCreditCard,
		PaymentMethodDebitCard,
		PaymentMethodMobilePayment,
		PaymentMethodQRCode,
		PaymentMethodElectronicWallet,
		PaymentMethodCash:
		return true
	default:
		return false
	}
}

// IsCard カード系の支払い方法かどうかを返す
func (pm PaymentMethod) IsCard() bool {
	return pm == PaymentMethodCreditCard || pm == PaymentMethodDebitCard
}
