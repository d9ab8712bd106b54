package payment

import (
	"errors"
	"time"
)

var ErrInvalidMethod = errors.New("invalid payment method")

type Method string

const (
	MethodMpesa        Method = "mpesa"
	MethodAirtel       Method = "airtel"
	MethodBankTransfer Method = "bank_transfer"
	MethodCard         Method = "card"
	MethodManual       Method = "manual"
)

func (m Method) Valid() bool {
	switch m {
	case MethodMpesa, MethodAirtel, MethodBankTransfer, MethodCard, MethodManual:
		return true
	}
	return false
}

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Payment records one repayment event received from the payment collaborator
// webhook. Rows are append-only.
type Payment struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"-"`
	// Public identifier (32-char lowercase hex)
	PaymentID string `gorm:"size:32;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	// FK to loans.id (numeric)
	LoanID               uint64    `gorm:"column:loan_id;not null;index" json:"-"`
	Amount               float64   `gorm:"type:decimal(18,2)" json:"amount"`
	Method               Method    `gorm:"type:enum('mpesa','airtel','bank_transfer','card','manual')" json:"method"`
	TransactionReference string    `gorm:"size:128" json:"transaction_reference,omitempty"`
	Status               Status    `gorm:"type:enum('pending','success','failed');default:'pending'" json:"status"`
	ReceivedAt           time.Time `gorm:"column:received_at" json:"received_at"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
