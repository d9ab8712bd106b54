package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM, JSON stored as text) ---

type assetSQLite struct {
	ID          uint64         `gorm:"primaryKey;column:id"`
	AssetID     string         `gorm:"size:32;column:asset_id"`
	OwnerUserID string         `gorm:"size:32;column:owner_user_id"`
	Type        string         `gorm:"type:text;column:type"` // ← no enum
	Make        string         `gorm:"column:make"`
	Model       string         `gorm:"column:model"`
	Year        int            `gorm:"column:year"`
	Value       float64        `gorm:"column:value"`
	Description string         `gorm:"column:description"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (assetSQLite) TableName() string { return "assets" }

type applicationSQLite struct {
	ID               uint64         `gorm:"primaryKey;column:id"`
	ApplicationID    string         `gorm:"size:32;column:application_id"`
	ApplicantID      string         `gorm:"size:32;column:applicant_id"`
	AssetID          uint64         `gorm:"column:asset_id"`
	RequestedAmount  float64        `gorm:"column:requested_amount"`
	TermMonths       int            `gorm:"column:term_months"`
	InterestRate     float64        `gorm:"column:interest_rate"`
	Status           string         `gorm:"type:text;column:status"` // ← no enum
	AssignedLenderID string         `gorm:"column:assigned_lender_id"`
	DecisionReason   string         `gorm:"column:decision_reason"`
	WezaScore        *string        `gorm:"type:text;column:wezascore"` // ← json as text
	FraudAssessment  *string        `gorm:"type:text;column:fraud_assessment"`
	StatusUpdatedAt  time.Time      `gorm:"column:status_updated_at"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (applicationSQLite) TableName() string { return "loan_applications" }

type loanSQLite struct {
	ID                 uint64         `gorm:"primaryKey;column:id"`
	LoanID             string         `gorm:"size:32;column:loan_id"`
	ApplicationID      uint64         `gorm:"column:application_id"`
	Principal          float64        `gorm:"column:principal"`
	OutstandingBalance float64        `gorm:"column:outstanding_balance"`
	DisbursedAmount    float64        `gorm:"column:disbursed_amount"`
	DisbursedAt        time.Time      `gorm:"column:disbursed_at"`
	NextDueDate        *time.Time     `gorm:"column:next_due_date"`
	RepaymentSchedule  *string        `gorm:"type:text;column:repayment_schedule"`
	Status             string         `gorm:"type:text;column:status"`
	CreatedAt          time.Time      `gorm:"column:created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type paymentSQLite struct {
	ID                   uint64    `gorm:"primaryKey;column:id"`
	PaymentID            string    `gorm:"size:32;column:payment_id"`
	LoanID               uint64    `gorm:"column:loan_id"`
	Amount               float64   `gorm:"column:amount"`
	Method               string    `gorm:"type:text;column:method"`
	TransactionReference string    `gorm:"column:transaction_reference"`
	Status               string    `gorm:"type:text;column:status"`
	ReceivedAt           time.Time `gorm:"column:received_at"`
	CreatedAt            time.Time `gorm:"column:created_at"`
}

func (paymentSQLite) TableName() string { return "payments" }

type profileSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	UserID     string    `gorm:"size:32;column:user_id"`
	FirstName  string    `gorm:"column:first_name"`
	LastName   string    `gorm:"column:last_name"`
	Phone      string    `gorm:"column:phone"`
	NationalID string    `gorm:"column:national_id"`
	IsVerified bool      `gorm:"column:is_verified"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (profileSQLite) TableName() string { return "profiles" }

type userRoleSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	UserID    string    `gorm:"size:32;column:user_id"`
	Role      string    `gorm:"type:text;column:role"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (userRoleSQLite) TableName() string { return "user_roles" }

type auditSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	ActorID    string    `gorm:"size:32;column:actor_id"`
	Action     string    `gorm:"column:action"`
	EntityType string    `gorm:"column:entity_type"`
	EntityID   string    `gorm:"size:32;column:entity_id"`
	Payload    *string   `gorm:"type:text;column:payload"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (auditSQLite) TableName() string { return "audit_logs" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe
// schemas, NOT the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&assetSQLite{},
		&applicationSQLite{},
		&loanSQLite{},
		&paymentSQLite{},
		&profileSQLite{},
		&userRoleSQLite{},
		&auditSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
