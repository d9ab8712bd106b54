package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domainApp "wezacredit-backend/internal/domain/application"
	domainAsset "wezacredit-backend/internal/domain/asset"
	"wezacredit-backend/internal/domain/audit"
	"wezacredit-backend/internal/domain/pricing"
	"wezacredit-backend/internal/domain/profile"
	"wezacredit-backend/internal/domain/uow"
	"wezacredit-backend/pkg/id"
)

var ErrInvalidInput = errors.New("invalid input")

type Usecase struct {
	apps domainApp.Repository
	uow  uow.UnitOfWork
	// product annual rate in percent applied to every new application
	defaultRatePercent float64
}

// NewUsecase: repo for reads, UoW for the submission unit.
func NewUsecase(apps domainApp.Repository, tx uow.UnitOfWork, defaultRatePercent float64) *Usecase {
	return &Usecase{apps: apps, uow: tx, defaultRatePercent: defaultRatePercent}
}

func (u *Usecase) DefaultRatePercent() float64 { return u.defaultRatePercent }

type SubmitInput struct {
	AssetType        string
	AssetMake        string
	AssetModel       string
	AssetYear        int
	AssetValue       float64
	AssetDescription string
	RequestedAmount  float64
	TermMonths       int
}

type AssetDTO struct {
	AssetID string  `json:"asset_id"`
	Type    string  `json:"type"`
	Make    string  `json:"make,omitempty"`
	Model   string  `json:"model,omitempty"`
	Year    int     `json:"year,omitempty"`
	Value   float64 `json:"value"`
}

type QuoteDTO struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
}

type ApplicationDTO struct {
	ApplicationID    string                     `json:"application_id"`
	ApplicantID      string                     `json:"applicant_id"`
	Asset            *AssetDTO                  `json:"asset,omitempty"`
	RequestedAmount  float64                    `json:"requested_amount"`
	TermMonths       int                        `json:"term_months"`
	InterestRate     float64                    `json:"interest_rate"`
	Status           string                     `json:"status"`
	AssignedLenderID string                     `json:"assigned_lender_id,omitempty"`
	DecisionReason   string                     `json:"decision_reason,omitempty"`
	WezaScore        *domainApp.ScoreResult     `json:"wezascore,omitempty"`
	FraudAssessment  *domainApp.FraudAssessment `json:"fraud_assessment,omitempty"`
	Quote            *QuoteDTO                  `json:"quote,omitempty"`
	CreatedAt        time.Time                  `json:"created_at"`
}

// Submit runs the affordability guard and creates the asset and application
// as one unit: either both rows exist afterwards or neither does.
func (u *Usecase) Submit(ctx context.Context, actor profile.Actor, in SubmitInput) (*ApplicationDTO, error) {
	assetType := domainAsset.Type(in.AssetType)
	if !assetType.Valid() {
		return nil, domainAsset.ErrInvalidType
	}
	if in.AssetValue <= 0 {
		return nil, domainAsset.ErrInvalidValue
	}
	if in.RequestedAmount <= 0 || in.TermMonths <= 0 {
		return nil, ErrInvalidInput
	}
	if err := domainApp.CheckAffordability(in.RequestedAmount, in.AssetValue); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := &domainAsset.Asset{
		AssetID:     id.NewID32(),
		OwnerUserID: actor.UserID,
		Type:        assetType,
		Make:        in.AssetMake,
		Model:       in.AssetModel,
		Year:        in.AssetYear,
		Value:       in.AssetValue,
		Description: in.AssetDescription,
	}
	app := &domainApp.LoanApplication{
		ApplicationID:   id.NewID32(),
		ApplicantID:     actor.UserID,
		RequestedAmount: in.RequestedAmount,
		TermMonths:      in.TermMonths,
		InterestRate:    u.defaultRatePercent,
		Status:          domainApp.StatusSubmitted,
		StatusUpdatedAt: now,
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Assets.Create(ctx, a); err != nil {
			return err
		}
		app.AssetID = a.ID
		if err := r.Applications.Create(ctx, app); err != nil {
			return err
		}
		return r.Audits.Record(ctx, &audit.Entry{
			ActorID:    actor.UserID,
			Action:     "application.submitted",
			EntityType: "loan_application",
			EntityID:   app.ApplicationID,
			Payload: audit.Payload{
				"requested_amount": in.RequestedAmount,
				"term_months":      in.TermMonths,
				"asset_id":         a.AssetID,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	dto := toDTO(app)
	dto.Asset = toAssetDTO(a)
	dto.Quote = u.quoteDTO(app.RequestedAmount, app.InterestRate, app.TermMonths)
	return dto, nil
}

// Get returns an application to its owner; staff roles may read any.
func (u *Usecase) Get(ctx context.Context, actor profile.Actor, applicationID string) (*ApplicationDTO, error) {
	app, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainApp.ErrNotFound
		}
		return nil, err
	}
	if app.ApplicantID != actor.UserID && !actor.Role.CanDecide() {
		return nil, domainApp.ErrNotFound
	}
	dto := toDTO(app)
	dto.Quote = u.quoteDTO(app.RequestedAmount, app.InterestRate, app.TermMonths)
	return dto, nil
}

// List returns the acting borrower's applications, newest first.
func (u *Usecase) List(ctx context.Context, actor profile.Actor) ([]ApplicationDTO, error) {
	apps, err := u.apps.ListByApplicant(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, *toDTO(&apps[i]))
	}
	return out, nil
}

// Quote previews the installment for arbitrary parameters; amounts are
// rounded to 2 dp at this presentation edge.
func (u *Usecase) Quote(principal, annualRatePercent float64, termMonths int) QuoteDTO {
	return *u.quoteDTO(principal, annualRatePercent, termMonths)
}

type AttachScoreInput struct {
	ApplicationID   string
	WezaScore       *domainApp.ScoreResult
	FraudAssessment *domainApp.FraudAssessment
}

// AttachScore stores the external scoring/fraud payloads on the application.
// The values are opaque to this service.
func (u *Usecase) AttachScore(ctx context.Context, in AttachScoreInput) (*ApplicationDTO, error) {
	if in.WezaScore == nil && in.FraudAssessment == nil {
		return nil, ErrInvalidInput
	}

	var dto *ApplicationDTO
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, app *domainApp.LoanApplication) error {
		if in.WezaScore != nil {
			app.WezaScore = in.WezaScore
		}
		if in.FraudAssessment != nil {
			app.FraudAssessment = in.FraudAssessment
		}
		if err := r.Applications.Save(ctx, app); err != nil {
			return err
		}
		if err := r.Audits.Record(ctx, &audit.Entry{
			Action:     "application.scored",
			EntityType: "loan_application",
			EntityID:   app.ApplicationID,
		}); err != nil {
			return err
		}
		dto = toDTO(app)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainApp.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) quoteDTO(principal, ratePercent float64, termMonths int) *QuoteDTO {
	q := pricing.MonthlyQuote(decimal.NewFromFloat(principal), ratePercent, termMonths)
	return &QuoteDTO{
		MonthlyPayment: q.MonthlyPayment.Round(2).InexactFloat64(),
		TotalPayment:   q.TotalPayment.Round(2).InexactFloat64(),
		TotalInterest:  q.TotalInterest.Round(2).InexactFloat64(),
	}
}

func toDTO(app *domainApp.LoanApplication) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID:    app.ApplicationID,
		ApplicantID:      app.ApplicantID,
		RequestedAmount:  app.RequestedAmount,
		TermMonths:       app.TermMonths,
		InterestRate:     app.InterestRate,
		Status:           string(app.Status),
		AssignedLenderID: app.AssignedLenderID,
		DecisionReason:   app.DecisionReason,
		WezaScore:        app.WezaScore,
		FraudAssessment:  app.FraudAssessment,
		CreatedAt:        app.CreatedAt,
	}
}

func toAssetDTO(a *domainAsset.Asset) *AssetDTO {
	return &AssetDTO{
		AssetID: a.AssetID,
		Type:    string(a.Type),
		Make:    a.Make,
		Model:   a.Model,
		Year:    a.Year,
		Value:   a.Value,
	}
}
