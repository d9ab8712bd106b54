package application

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	domainApp "wezacredit-backend/internal/domain/application"
	domainAsset "wezacredit-backend/internal/domain/asset"
	"wezacredit-backend/internal/domain/profile"
	"wezacredit-backend/internal/domain/uow"
	"wezacredit-backend/internal/testutil/appmock"
	"wezacredit-backend/internal/testutil/assetmock"
	"wezacredit-backend/internal/testutil/auditmock"
	"wezacredit-backend/internal/testutil/uowmock"
)

const applicantID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

func borrower() profile.Actor {
	return profile.Actor{UserID: applicantID, Role: profile.RoleUser}
}

func validSubmit() SubmitInput {
	return SubmitInput{
		AssetType:       "vehicle",
		AssetMake:       "Toyota",
		AssetModel:      "Hilux",
		AssetYear:       2021,
		AssetValue:      2_000_000,
		RequestedAmount: 1_200_000,
		TermMonths:      12,
	}
}

func passthroughUoW(assets *assetmock.Repo, apps *appmock.Repo, audits *auditmock.Repo) *uowmock.UoW {
	return &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(uow.Repos{Assets: assets, Applications: apps, Audits: audits})
		},
	}
}

func TestSubmit_Success(t *testing.T) {
	assets := &assetmock.Repo{
		CreateFn: func(ctx context.Context, a *domainAsset.Asset) error {
			a.ID = 5
			return nil
		},
	}
	apps := &appmock.Repo{
		CreateFn: func(ctx context.Context, a *domainApp.LoanApplication) error {
			if a.AssetID != 5 {
				t.Fatalf("application not linked to created asset: asset_id=%d", a.AssetID)
			}
			if a.Status != domainApp.StatusSubmitted {
				t.Fatalf("status=%s", a.Status)
			}
			return nil
		},
	}
	audits := &auditmock.Repo{}
	uc := NewUsecase(apps, passthroughUoW(assets, apps, audits), 15)

	dto, err := uc.Submit(context.Background(), borrower(), validSubmit())
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if len(dto.ApplicationID) != 32 {
		t.Fatalf("ApplicationID length: %d", len(dto.ApplicationID))
	}
	if dto.Status != string(domainApp.StatusSubmitted) {
		t.Fatalf("state=%s", dto.Status)
	}
	if dto.InterestRate != 15 {
		t.Fatalf("rate=%v", dto.InterestRate)
	}
	if dto.Quote == nil || dto.Quote.MonthlyPayment <= 0 {
		t.Fatalf("expected installment preview, got %+v", dto.Quote)
	}
	if len(audits.Entries) != 1 || audits.Entries[0].Action != "application.submitted" {
		t.Fatalf("audit entries: %+v", audits.Entries)
	}
}

func TestSubmit_RejectsOverAffordabilityCap(t *testing.T) {
	tx := &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			t.Fatalf("no record may be persisted when the guard fails")
			return nil
		},
	}
	uc := NewUsecase(&appmock.Repo{}, tx, 15)

	in := validSubmit()
	in.AssetValue = 2_000_000
	in.RequestedAmount = 1_600_000.01

	_, err := uc.Submit(context.Background(), borrower(), in)
	if !errors.Is(err, domainApp.ErrAmountExceedsLimit) {
		t.Fatalf("want ErrAmountExceedsLimit, got %v", err)
	}
}

func TestSubmit_AcceptsCapBoundary(t *testing.T) {
	assets := &assetmock.Repo{}
	apps := &appmock.Repo{}
	uc := NewUsecase(apps, passthroughUoW(assets, apps, &auditmock.Repo{}), 15)

	in := validSubmit()
	in.AssetValue = 2_000_000
	in.RequestedAmount = 1_600_000

	if _, err := uc.Submit(context.Background(), borrower(), in); err != nil {
		t.Fatalf("exactly 80%% of asset value must be accepted: %v", err)
	}
}

func TestSubmit_InvalidInputs(t *testing.T) {
	uc := NewUsecase(&appmock.Repo{}, &uowmock.UoW{}, 15)

	cases := []struct {
		name    string
		mutate  func(*SubmitInput)
		wantErr error
	}{
		{"unknown asset type", func(in *SubmitInput) { in.AssetType = "boat" }, domainAsset.ErrInvalidType},
		{"zero asset value", func(in *SubmitInput) { in.AssetValue = 0 }, domainAsset.ErrInvalidValue},
		{"zero amount", func(in *SubmitInput) { in.RequestedAmount = 0 }, ErrInvalidInput},
		{"zero term", func(in *SubmitInput) { in.TermMonths = 0 }, ErrInvalidInput},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			in := validSubmit()
			tt.mutate(&in)
			_, err := uc.Submit(context.Background(), borrower(), in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGet_ScopedToOwner(t *testing.T) {
	apps := &appmock.Repo{
		GetByApplicationIDFn: func(ctx context.Context, applicationID string) (*domainApp.LoanApplication, error) {
			return &domainApp.LoanApplication{
				ApplicationID: applicationID,
				ApplicantID:   applicantID,
				Status:        domainApp.StatusSubmitted,
			}, nil
		},
	}
	uc := NewUsecase(apps, &uowmock.UoW{}, 15)

	if _, err := uc.Get(context.Background(), borrower(), "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"); err != nil {
		t.Fatalf("owner read: %v", err)
	}

	stranger := profile.Actor{UserID: "cccccccccccccccccccccccccccccccc", Role: profile.RoleUser}
	if _, err := uc.Get(context.Background(), stranger, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"); !errors.Is(err, domainApp.ErrNotFound) {
		t.Fatalf("stranger read: want ErrNotFound, got %v", err)
	}

	lender := profile.Actor{UserID: "dddddddddddddddddddddddddddddddd", Role: profile.RoleLender}
	if _, err := uc.Get(context.Background(), lender, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"); err != nil {
		t.Fatalf("lender read: %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	apps := &appmock.Repo{
		GetByApplicationIDFn: func(context.Context, string) (*domainApp.LoanApplication, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(apps, &uowmock.UoW{}, 15)
	if _, err := uc.Get(context.Background(), borrower(), "missing"); !errors.Is(err, domainApp.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAttachScore_StoresOpaquePayloads(t *testing.T) {
	app := &domainApp.LoanApplication{
		ApplicationID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		ApplicantID:   applicantID,
		Status:        domainApp.StatusSubmitted,
	}
	apps := &appmock.Repo{}
	audits := &auditmock.Repo{}
	tx := &uowmock.UoW{
		WithinApplicationTxFn: func(ctx context.Context, applicationID string, fn func(r uow.Repos, a *domainApp.LoanApplication) error) error {
			return fn(uow.Repos{Applications: apps, Audits: audits}, app)
		},
	}
	uc := NewUsecase(apps, tx, 15)

	dto, err := uc.AttachScore(context.Background(), AttachScoreInput{
		ApplicationID: app.ApplicationID,
		WezaScore: &domainApp.ScoreResult{
			Score:      712,
			Components: map[string]float64{"repayment_history": 0.6, "asset_quality": 0.4},
		},
		FraudAssessment: &domainApp.FraudAssessment{Score: 0.12, Reasons: []string{"device_reuse"}},
	})
	if err != nil {
		t.Fatalf("AttachScore: %v", err)
	}
	if dto.WezaScore == nil || dto.WezaScore.Score != 712 {
		t.Fatalf("wezascore not stored: %+v", dto.WezaScore)
	}
	if dto.FraudAssessment == nil || len(dto.FraudAssessment.Reasons) != 1 {
		t.Fatalf("fraud assessment not stored: %+v", dto.FraudAssessment)
	}
}

func TestAttachScore_RequiresPayload(t *testing.T) {
	uc := NewUsecase(&appmock.Repo{}, &uowmock.UoW{}, 15)
	if _, err := uc.AttachScore(context.Background(), AttachScoreInput{ApplicationID: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestQuote_RoundsAtTheEdge(t *testing.T) {
	uc := NewUsecase(&appmock.Repo{}, &uowmock.UoW{}, 15)
	q := uc.Quote(1_000_000, 15, 12)
	if q.MonthlyPayment < 90_257 || q.MonthlyPayment > 90_259 {
		t.Fatalf("monthly payment=%v", q.MonthlyPayment)
	}
	if q.TotalInterest <= 0 {
		t.Fatalf("interest=%v", q.TotalInterest)
	}
}
