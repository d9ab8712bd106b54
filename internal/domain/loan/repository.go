package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// Same lookup with a row lock; only valid inside a transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetByApplicationID(ctx context.Context, applicationID uint64) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
}
