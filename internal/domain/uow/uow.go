package uow

import (
	"context"

	"wezacredit-backend/internal/domain/application"
	"wezacredit-backend/internal/domain/asset"
	"wezacredit-backend/internal/domain/audit"
	"wezacredit-backend/internal/domain/loan"
	"wezacredit-backend/internal/domain/payment"
)

type Repos struct {
	Assets       asset.Repository
	Applications application.Repository
	Loans        loan.Repository
	Payments     payment.Repository
	Audits       audit.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.LoanApplication) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
