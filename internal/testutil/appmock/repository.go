package appmock

import (
	"context"
	"errors"

	domain "wezacredit-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies application.Repository. Only
// fill in the function fields a test needs.
type Repo struct {
	CreateFn                      func(ctx context.Context, a *domain.LoanApplication) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.LoanApplication, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.LoanApplication, error)
	ListByApplicantFn             func(ctx context.Context, applicantID string) ([]domain.LoanApplication, error)
	ListFn                        func(ctx context.Context, statuses ...domain.Status) ([]domain.LoanApplication, error)
	SaveFn                        func(ctx context.Context, a *domain.LoanApplication) error
}

func (m *Repo) Create(ctx context.Context, a *domain.LoanApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, errors.New("not implemented")
}

func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, errors.New("not implemented")
}

func (m *Repo) ListByApplicant(ctx context.Context, applicantID string) ([]domain.LoanApplication, error) {
	if m.ListByApplicantFn != nil {
		return m.ListByApplicantFn(ctx, applicantID)
	}
	return nil, errors.New("not implemented")
}

func (m *Repo) List(ctx context.Context, statuses ...domain.Status) ([]domain.LoanApplication, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, statuses...)
	}
	return nil, errors.New("not implemented")
}

func (m *Repo) Save(ctx context.Context, a *domain.LoanApplication) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}
