package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// dashboardService aggregates a user's transactions for the dashboard.
type dashboardService struct {
	db                 *gorm.DB
	categoryService    CategoryServicer
	transactionService TransactionServicer
	now                func() time.Time
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, categoryService CategoryServicer, transactionService TransactionServicer) DashboardServicer {
	return &dashboardService{
		db:                 db,
		categoryService:    categoryService,
		transactionService: transactionService,
		now:                time.Now,
	}
}

// ParseDashboardFilter maps a query value to a filter; anything other than
// prev_month selects the current month.
func ParseDashboardFilter(value string) DashboardFilter {
	if DashboardFilter(value) == FilterPrevMonth {
		return FilterPrevMonth
	}
	return FilterThisMonth
}

// MonthWindow returns the first and last instant of the month selected by
// filter, in now's location.
func MonthWindow(now time.Time, filter DashboardFilter) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if filter == FilterPrevMonth {
		start = start.AddDate(0, -1, 0)
	}
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// typeTotal is one row of the grouped sum.
type typeTotal struct {
	Type  models.TransactionType
	Total decimal.Decimal
}

// GetDashboard computes the totals for the selected month and loads the recent
// transactions and category lists. Nothing is cached.
func (s *dashboardService) GetDashboard(userID string, filter DashboardFilter) (*Dashboard, error) {
	filter = ParseDashboardFilter(string(filter))
	start, end := MonthWindow(s.now(), filter)

	summary, err := s.summarize(userID, start, end)
	if err != nil {
		return nil, err
	}

	recent, err := s.transactionService.ListRecentTransactions(userID, RecentTransactionsLimit)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryService.ListCategories(userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Filter:             filter,
		PeriodStart:        start,
		PeriodEnd:          end,
		Summary:            *summary,
		RecentTransactions: recent,
		Categories:         categories,
	}, nil
}

// summarize sums the user's transactions per type within [start, end].
func (s *dashboardService) summarize(userID string, start, end time.Time) (*Summary, error) {
	var rows []typeTotal
	err := s.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeIncome:
			summary.TotalIncome = row.Total
		case models.TransactionTypeExpense:
			summary.TotalExpense = row.Total
		}
	}
	summary.NetBalance = summary.TotalIncome.Sub(summary.TotalExpense)

	return summary, nil
}
