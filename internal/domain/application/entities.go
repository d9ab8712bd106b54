package application

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("application not found")
	ErrInvalidTransition = errors.New("invalid application status transition")
	ErrAlreadyDecided    = errors.New("application already decided")
	ErrReasonRequired    = errors.New("decision reason is required")
)

type Status string

const (
	StatusDraft       Status = "draft"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusDisbursed   Status = "disbursed"
	StatusRejected    Status = "rejected"
	StatusClosed      Status = "closed"
)

// transitions is the full lifecycle. disbursed, rejected and closed are
// terminal; a loan is only ever created on the approved -> disbursed edge.
var transitions = map[Status][]Status{
	StatusDraft:       {StatusSubmitted},
	StatusSubmitted:   {StatusUnderReview, StatusApproved, StatusRejected},
	StatusUnderReview: {StatusApproved, StatusRejected},
	StatusApproved:    {StatusDisbursed},
}

// CanTransition reports whether moving from s to next is a legal lifecycle
// step.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool { return len(transitions[s]) == 0 }

// Decided reports whether an administrator has already ruled on the
// application.
func (s Status) Decided() bool {
	switch s {
	case StatusApproved, StatusDisbursed, StatusRejected, StatusClosed:
		return true
	}
	return false
}

// ScoreResult is the WezaScore payload: produced by the external scoring
// service, stored and displayed here, never computed locally.
type ScoreResult struct {
	Score        float64            `json:"score"`
	Components   map[string]float64 `json:"components,omitempty"`
	ModelVersion string             `json:"model_version,omitempty"`
}

// FraudAssessment is the external fraud engine's verdict for an application.
type FraudAssessment struct {
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons,omitempty"`
}

func (s ScoreResult) Value() (driver.Value, error) { return json.Marshal(s) }

func (s *ScoreResult) Scan(src any) error { return scanJSON(src, s) }

func (f FraudAssessment) Value() (driver.Value, error) { return json.Marshal(f) }

func (f *FraudAssessment) Scan(src any) error { return scanJSON(src, f) }

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
}

type LoanApplication struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"-"`
	// Public identifier (32-char lowercase hex)
	ApplicationID string `gorm:"size:32;uniqueIndex:ux_applications_app_id_active" json:"application_id"`
	ApplicantID   string `gorm:"size:32;index:idx_applications_applicant" json:"applicant_id"`
	// FK to assets.id (numeric)
	AssetID         uint64  `gorm:"column:asset_id;not null;index" json:"-"`
	RequestedAmount float64 `gorm:"type:decimal(18,2)" json:"requested_amount"`
	TermMonths      int     `gorm:"column:term_months" json:"term_months"`
	// Annual rate in percent, e.g. 15 = 15% p.a.
	InterestRate     float64          `gorm:"type:decimal(6,4)" json:"interest_rate"`
	Status           Status           `gorm:"type:enum('draft','submitted','under_review','approved','disbursed','rejected','closed');default:'submitted'" json:"status"`
	AssignedLenderID string           `gorm:"size:32" json:"assigned_lender_id,omitempty"`
	DecisionReason   string           `gorm:"type:text" json:"decision_reason,omitempty"`
	WezaScore        *ScoreResult     `gorm:"type:json;column:wezascore" json:"wezascore,omitempty"`
	FraudAssessment  *FraudAssessment `gorm:"type:json;column:fraud_assessment" json:"fraud_assessment,omitempty"`
	StatusUpdatedAt  time.Time        `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt        time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (LoanApplication) TableName() string { return "loan_applications" }

// Transition moves the application to next after checking legality. Decided
// targets surface ErrAlreadyDecided so a repeated approve/reject stays a
// no-op for the caller.
func (a *LoanApplication) Transition(next Status, now time.Time) error {
	if a.Status.CanTransition(next) {
		a.Status = next
		a.StatusUpdatedAt = now
		return nil
	}
	if a.Status.Decided() {
		return ErrAlreadyDecided
	}
	return ErrInvalidTransition
}
