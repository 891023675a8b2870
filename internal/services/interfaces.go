package services

import (
	"time"

	"github.com/shopspring/decimal"

	"pennywise/internal/models"
)

// UserServicer defines the contract for registration and authentication.
type UserServicer interface {
	Register(username, password string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

// CategoryLists holds a user's categories split by type, each sorted by name.
type CategoryLists struct {
	Income  []models.Category
	Expense []models.Category
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListCategories(userID string) (*CategoryLists, error)
	CreateCategory(userID, name string, categoryType models.CategoryType) (*models.Category, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// CreateTransactionInput carries the fields of a new transaction.
type CreateTransactionInput struct {
	Type       models.TransactionType
	CategoryID string
	Amount     decimal.Decimal
	Note       string
	Date       time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, input CreateTransactionInput) (*models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	ListUserTransactions(userID string) ([]models.Transaction, error)
	ListRecentTransactions(userID string, limit int) ([]models.Transaction, error)
}

// DashboardFilter selects the reporting window of the dashboard.
type DashboardFilter string

const (
	FilterThisMonth DashboardFilter = "this_month"
	FilterPrevMonth DashboardFilter = "prev_month"
)

// Summary holds the aggregated totals of a reporting window.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetBalance   decimal.Decimal
}

// Dashboard is everything the dashboard page displays.
type Dashboard struct {
	Filter             DashboardFilter
	PeriodStart        time.Time
	PeriodEnd          time.Time
	Summary            Summary
	RecentTransactions []models.Transaction
	Categories         *CategoryLists
}

// DashboardServicer defines the contract for the dashboard aggregation.
type DashboardServicer interface {
	GetDashboard(userID string, filter DashboardFilter) (*Dashboard, error)
}
