package loan

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"wezacredit-backend/internal/domain/pricing"
)

var (
	ErrNotFound      = errors.New("loan not found")
	ErrInvalidAmount = errors.New("invalid amount")
)

type Status string

const (
	StatusActive     Status = "active"
	StatusDelinquent Status = "delinquent"
	StatusClosed     Status = "closed"
	StatusWrittenOff Status = "written_off"
)

// Schedule is the amortization schedule persisted on the loan row as JSON.
type Schedule []pricing.Installment

func (s Schedule) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *Schedule) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
}

// Loan is created exactly once, at disbursal, and never deleted. The
// outstanding balance is driven down by repayments.
type Loan struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"-"`
	// Public identifier (32-char lowercase hex)
	LoanID string `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	// FK to loan_applications.id (numeric); unique so an application yields at
	// most one loan.
	ApplicationID      uint64         `gorm:"column:application_id;not null;uniqueIndex:ux_loans_application_active" json:"-"`
	Principal          float64        `gorm:"type:decimal(18,2)" json:"principal"`
	OutstandingBalance float64        `gorm:"type:decimal(18,2)" json:"outstanding_balance"`
	DisbursedAmount    float64        `gorm:"type:decimal(18,2)" json:"disbursed_amount"`
	DisbursedAt        time.Time      `gorm:"column:disbursed_at" json:"disbursed_at"`
	NextDueDate        *time.Time     `gorm:"column:next_due_date" json:"next_due_date,omitempty"`
	RepaymentSchedule  Schedule       `gorm:"type:json;column:repayment_schedule" json:"repayment_schedule,omitempty"`
	Status             Status         `gorm:"type:enum('active','delinquent','closed','written_off');default:'active'" json:"status"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }
