package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *LoanApplication) error
	GetByApplicationID(ctx context.Context, applicationID string) (*LoanApplication, error)
	// Same lookup with a row lock; only valid inside a transaction.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*LoanApplication, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]LoanApplication, error)
	// List returns applications in the given statuses, newest first; with no
	// statuses it returns everything.
	List(ctx context.Context, statuses ...Status) ([]LoanApplication, error)
	Save(ctx context.Context, a *LoanApplication) error
}
