package services

import (
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// ProfileUpdateFields holds optional profile fields; nil means leave unchanged.
type ProfileUpdateFields struct {
	Username      *string
	Email         *string
	Currency      *string
	Language      *string
	MonthlyBudget *int64
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdateProfile(userID uint, fields ProfileUpdateFields) (*models.User, error)
	UpdatePassword(userID uint, currentPassword, newPassword string) error
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Category *models.Category
	Type     *models.TransactionType
}

// TransactionUpdateFields holds the editable transaction fields; nil means
// leave unchanged. Ownership is never editable.
type TransactionUpdateFields struct {
	Amount      *int64
	Description *string
	Category    *models.Category
	Type        *models.TransactionType
	Date        *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
// Every query is scoped by the owning user at the store level.
type TransactionServicer interface {
	CreateTransaction(userID uint, amount int64, description string, category models.Category, txType models.TransactionType, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetRecentTransactions(userID uint) ([]models.Transaction, error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
}

// DateRange bounds a report query. Either bound may be nil; present bounds
// are inclusive.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Summary contains income/expense totals for a user, in cents.
type Summary struct {
	TotalIncome   int64 `json:"total_income"`
	TotalExpenses int64 `json:"total_expenses"`
	NetSavings    int64 `json:"net_savings"`
}

// CategoryTotal contains the expense total and count for a single category.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    int64           `json:"total"`
	Count    int64           `json:"count"`
}

// ReportServicer defines the contract for read-only aggregations over a
// user's transactions. Results are recomputed on every call, never persisted.
type ReportServicer interface {
	GetSummary(userID uint, rng DateRange) (*Summary, error)
	GetCategoryBreakdown(userID uint) ([]CategoryTotal, error)
}

// Budget status values.
const (
	BudgetStatusOnTrack    = "on-track"
	BudgetStatusOverBudget = "over-budget"
)

// BudgetStatus contains spending vs monthly budget data, in cents.
// ProgressPercentage is capped at 100 for rendering; Status compares the
// uncapped totals. Status is empty when no budget is set.
type BudgetStatus struct {
	MonthlyBudget      int64   `json:"monthly_budget"`
	TotalExpenses      int64   `json:"total_expenses"`
	ProgressPercentage float64 `json:"progress_percentage"`
	Status             string  `json:"status,omitempty"`
	Overage            int64   `json:"overage"`
}

// BudgetServicer defines the contract for budget evaluation.
type BudgetServicer interface {
	GetBudgetStatus(userID uint) (*BudgetStatus, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
