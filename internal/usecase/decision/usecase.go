package decision

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domainApp "wezacredit-backend/internal/domain/application"
	"wezacredit-backend/internal/domain/audit"
	domainLoan "wezacredit-backend/internal/domain/loan"
	"wezacredit-backend/internal/domain/pricing"
	"wezacredit-backend/internal/domain/profile"
	"wezacredit-backend/internal/domain/uow"
	"wezacredit-backend/pkg/id"
)

// Usecase covers every administrator action on an application: opening
// review, approving, rejecting and disbursing. Each action runs inside a
// unit-of-work transaction with the application row locked, so the status
// change and its side effects land together or not at all.
type Usecase struct {
	apps domainApp.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(apps domainApp.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{apps: apps, uow: tx}
}

type DecisionDTO struct {
	ApplicationID    string    `json:"application_id"`
	Status           string    `json:"status"`
	AssignedLenderID string    `json:"assigned_lender_id,omitempty"`
	DecisionReason   string    `json:"decision_reason,omitempty"`
	StatusUpdatedAt  time.Time `json:"status_updated_at"`
}

type DisbursementDTO struct {
	DecisionDTO
	LoanID          string     `json:"loan_id"`
	Principal       float64    `json:"principal"`
	DisbursedAmount float64    `json:"disbursed_amount"`
	DisbursedAt     time.Time  `json:"disbursed_at"`
	NextDueDate     *time.Time `json:"next_due_date,omitempty"`
}

// StartReview moves submitted -> under_review.
func (u *Usecase) StartReview(ctx context.Context, actor profile.Actor, applicationID string) (*DecisionDTO, error) {
	if !actor.Role.CanDecide() {
		return nil, profile.ErrForbidden
	}

	var dto *DecisionDTO
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, app *domainApp.LoanApplication) error {
		if err := app.Transition(domainApp.StatusUnderReview, time.Now().UTC()); err != nil {
			return err
		}
		if err := r.Applications.Save(ctx, app); err != nil {
			return err
		}
		if err := r.Audits.Record(ctx, &audit.Entry{
			ActorID:    actor.UserID,
			Action:     "application.review_started",
			EntityType: "loan_application",
			EntityID:   app.ApplicationID,
		}); err != nil {
			return err
		}
		dto = toDecisionDTO(app)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

type ApproveInput struct {
	ApplicationID string
	Reason        string
}

// Approve moves submitted|under_review -> approved and assigns the acting
// administrator as lender. Approving an already-approved application fails
// with ErrAlreadyDecided before any write.
func (u *Usecase) Approve(ctx context.Context, actor profile.Actor, in ApproveInput) (*DecisionDTO, error) {
	if !actor.Role.CanDecide() {
		return nil, profile.ErrForbidden
	}

	var dto *DecisionDTO
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, app *domainApp.LoanApplication) error {
		if err := app.Transition(domainApp.StatusApproved, time.Now().UTC()); err != nil {
			return err
		}
		app.AssignedLenderID = actor.UserID
		app.DecisionReason = strings.TrimSpace(in.Reason)
		if err := r.Applications.Save(ctx, app); err != nil {
			return err
		}
		if err := r.Audits.Record(ctx, &audit.Entry{
			ActorID:    actor.UserID,
			Action:     "application.approved",
			EntityType: "loan_application",
			EntityID:   app.ApplicationID,
		}); err != nil {
			return err
		}
		dto = toDecisionDTO(app)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

type RejectInput struct {
	ApplicationID string
	Reason        string
}

// Reject moves submitted|under_review -> rejected. The reason is mandatory
// and persisted with the application.
func (u *Usecase) Reject(ctx context.Context, actor profile.Actor, in RejectInput) (*DecisionDTO, error) {
	if !actor.Role.CanDecide() {
		return nil, profile.ErrForbidden
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domainApp.ErrReasonRequired
	}

	var dto *DecisionDTO
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, app *domainApp.LoanApplication) error {
		if err := app.Transition(domainApp.StatusRejected, time.Now().UTC()); err != nil {
			return err
		}
		app.AssignedLenderID = actor.UserID
		app.DecisionReason = reason
		if err := r.Applications.Save(ctx, app); err != nil {
			return err
		}
		if err := r.Audits.Record(ctx, &audit.Entry{
			ActorID:    actor.UserID,
			Action:     "application.rejected",
			EntityType: "loan_application",
			EntityID:   app.ApplicationID,
			Payload:    audit.Payload{"reason": reason},
		}); err != nil {
			return err
		}
		dto = toDecisionDTO(app)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

type DisburseInput struct {
	ApplicationID string
	Amount        float64
}

// Disburse moves approved -> disbursed and creates the servicing loan with
// principal = outstanding balance = requested amount plus its amortization
// schedule. The status update and the loan insert share one transaction.
func (u *Usecase) Disburse(ctx context.Context, actor profile.Actor, in DisburseInput) (*DisbursementDTO, error) {
	if !actor.Role.CanDecide() {
		return nil, profile.ErrForbidden
	}
	if in.Amount <= 0 {
		return nil, domainLoan.ErrInvalidAmount
	}

	var dto *DisbursementDTO
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, app *domainApp.LoanApplication) error {
		if _, err := r.Loans.GetByApplicationID(ctx, app.ID); err == nil {
			return domainApp.ErrAlreadyDecided
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		if err := app.Transition(domainApp.StatusDisbursed, now); err != nil {
			return err
		}

		schedule := pricing.Schedule(decimal.NewFromFloat(app.RequestedAmount), app.InterestRate, app.TermMonths, now)
		l := &domainLoan.Loan{
			LoanID:             id.NewID32(),
			ApplicationID:      app.ID,
			Principal:          app.RequestedAmount,
			OutstandingBalance: app.RequestedAmount,
			DisbursedAmount:    in.Amount,
			DisbursedAt:        now,
			RepaymentSchedule:  schedule,
			Status:             domainLoan.StatusActive,
		}
		if len(schedule) > 0 {
			due := schedule[0].DueDate
			l.NextDueDate = &due
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if err := r.Applications.Save(ctx, app); err != nil {
			return err
		}
		if err := r.Audits.Record(ctx, &audit.Entry{
			ActorID:    actor.UserID,
			Action:     "loan.disbursed",
			EntityType: "loan",
			EntityID:   l.LoanID,
			Payload: audit.Payload{
				"application_id":   app.ApplicationID,
				"disbursed_amount": in.Amount,
			},
		}); err != nil {
			return err
		}

		dto = &DisbursementDTO{
			DecisionDTO:     *toDecisionDTO(app),
			LoanID:          l.LoanID,
			Principal:       l.Principal,
			DisbursedAmount: l.DisbursedAmount,
			DisbursedAt:     l.DisbursedAt,
			NextDueDate:     l.NextDueDate,
		}
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// List returns applications in the given statuses for the review queue; no
// statuses means all.
func (u *Usecase) List(ctx context.Context, actor profile.Actor, statuses ...domainApp.Status) ([]domainApp.LoanApplication, error) {
	if !actor.Role.CanDecide() {
		return nil, profile.ErrForbidden
	}
	return u.apps.List(ctx, statuses...)
}

type Stats struct {
	Total              int     `json:"total"`
	Pending            int     `json:"pending"`
	Approved           int     `json:"approved"`
	Disbursed          int     `json:"disbursed"`
	TotalApprovedValue float64 `json:"total_approved_value"`
}

// DashboardStats folds the application book into the admin dashboard
// counters.
func (u *Usecase) DashboardStats(ctx context.Context, actor profile.Actor) (*Stats, error) {
	if !actor.Role.CanDecide() {
		return nil, profile.ErrForbidden
	}
	apps, err := u.apps.List(ctx)
	if err != nil {
		return nil, err
	}

	s := &Stats{Total: len(apps)}
	value := decimal.Zero
	for i := range apps {
		switch apps[i].Status {
		case domainApp.StatusSubmitted, domainApp.StatusUnderReview:
			s.Pending++
		case domainApp.StatusApproved:
			s.Approved++
			value = value.Add(decimal.NewFromFloat(apps[i].RequestedAmount))
		case domainApp.StatusDisbursed:
			s.Disbursed++
			value = value.Add(decimal.NewFromFloat(apps[i].RequestedAmount))
		}
	}
	s.TotalApprovedValue = value.InexactFloat64()
	return s, nil
}

func toDecisionDTO(app *domainApp.LoanApplication) *DecisionDTO {
	return &DecisionDTO{
		ApplicationID:    app.ApplicationID,
		Status:           string(app.Status),
		AssignedLenderID: app.AssignedLenderID,
		DecisionReason:   app.DecisionReason,
		StatusUpdatedAt:  app.StatusUpdatedAt,
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainApp.ErrNotFound
	}
	return err
}
