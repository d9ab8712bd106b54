package repayment

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wezacredit-backend/internal/domain/audit"
	domainLoan "wezacredit-backend/internal/domain/loan"
	domainPayment "wezacredit-backend/internal/domain/payment"
	"wezacredit-backend/internal/domain/uow"
	"wezacredit-backend/pkg/id"
)

var ErrLoanNotOpen = errors.New("loan is not open for repayment")

// Usecase ingests repayment webhooks from the payment collaborator: records
// the payment, reduces the outstanding balance and closes the loan once the
// balance reaches zero.
type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type RecordInput struct {
	LoanID               string
	Amount               float64
	Method               string
	TransactionReference string
}

type PaymentDTO struct {
	PaymentID            string    `json:"payment_id"`
	LoanID               string    `json:"loan_id"`
	Amount               float64   `json:"amount"`
	Method               string    `json:"method"`
	TransactionReference string    `json:"transaction_reference,omitempty"`
	OutstandingBalance   float64   `json:"outstanding_balance"`
	LoanStatus           string    `json:"loan_status"`
	ReceivedAt           time.Time `json:"received_at"`
}

func (u *Usecase) Record(ctx context.Context, in RecordInput) (*PaymentDTO, error) {
	if in.Amount <= 0 {
		return nil, domainLoan.ErrInvalidAmount
	}
	method := domainPayment.Method(in.Method)
	if !method.Valid() {
		return nil, domainPayment.ErrInvalidMethod
	}

	var dto *PaymentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status == domainLoan.StatusClosed || l.Status == domainLoan.StatusWrittenOff {
			return ErrLoanNotOpen
		}

		now := time.Now().UTC()
		p := &domainPayment.Payment{
			PaymentID:            id.NewID32(),
			LoanID:               l.ID,
			Amount:               in.Amount,
			Method:               method,
			TransactionReference: in.TransactionReference,
			Status:               domainPayment.StatusSuccess,
			ReceivedAt:           now,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}

		balance := decimal.NewFromFloat(l.OutstandingBalance).Sub(decimal.NewFromFloat(in.Amount))
		if balance.LessThanOrEqual(decimal.Zero) {
			balance = decimal.Zero
			l.Status = domainLoan.StatusClosed
			l.NextDueDate = nil
		}
		l.OutstandingBalance = balance.InexactFloat64()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		if err := r.Audits.Record(ctx, &audit.Entry{
			Action:     "loan.repayment_recorded",
			EntityType: "loan",
			EntityID:   l.LoanID,
			Payload: audit.Payload{
				"payment_id": p.PaymentID,
				"amount":     in.Amount,
				"method":     in.Method,
			},
		}); err != nil {
			return err
		}

		dto = &PaymentDTO{
			PaymentID:            p.PaymentID,
			LoanID:               l.LoanID,
			Amount:               p.Amount,
			Method:               string(p.Method),
			TransactionReference: p.TransactionReference,
			OutstandingBalance:   l.OutstandingBalance,
			LoanStatus:           string(l.Status),
			ReceivedAt:           p.ReceivedAt,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}
