package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/services"
)

// --- mock dashboard service ---

type mockDashboardService struct {
	getDashboardFn func(userID string, filter services.DashboardFilter) (*services.Dashboard, error)
}

func (m *mockDashboardService) GetDashboard(userID string, filter services.DashboardFilter) (*services.Dashboard, error) {
	if m.getDashboardFn != nil {
		return m.getDashboardFn(userID, filter)
	}
	return sampleDashboard(filter), nil
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

func sampleDashboard(filter services.DashboardFilter) *services.Dashboard {
	start, end := services.MonthWindow(time.Date(2026, 10, 15, 0, 0, 0, 0, time.Local), filter)
	return &services.Dashboard{
		Filter:      filter,
		PeriodStart: start,
		PeriodEnd:   end,
		Summary: services.Summary{
			TotalIncome:  decimal.RequireFromString("1000"),
			TotalExpense: decimal.RequireFromString("300"),
			NetBalance:   decimal.RequireFromString("700"),
		},
		RecentTransactions: []models.Transaction{},
		Categories:         &services.CategoryLists{Income: []models.Category{}, Expense: []models.Category{}},
	}
}

func setupDashboardRouter(t *testing.T, handler *DashboardHandler) *gin.Engine {
	r := newTestRouter(t)
	r.GET("/dashboard", injectUser(testUserID, "alice"), handler.ShowDashboard)
	return r
}

func TestDashboardHandler_ShowDashboard(t *testing.T) {
	t.Run("renders totals", func(t *testing.T) {
		handler := NewDashboardHandler(&mockDashboardService{})
		handler.now = func() time.Time { return time.Date(2026, 10, 15, 8, 0, 0, 0, time.Local) }
		r := setupDashboardRouter(t, handler)

		rec := doRequest(r, http.MethodGet, "/dashboard", nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{"1000.00", "300.00", "700.00", `value="2026-10-15"`} {
			if !strings.Contains(body, want) {
				t.Errorf("expected dashboard to contain %q", want)
			}
		}
	})

	tests := []struct {
		query string
		want  services.DashboardFilter
	}{
		{"", services.FilterThisMonth},
		{"?filter=this_month", services.FilterThisMonth},
		{"?filter=prev_month", services.FilterPrevMonth},
		{"?filter=everything", services.FilterThisMonth},
	}
	for _, tt := range tests {
		t.Run("filter "+tt.query, func(t *testing.T) {
			var got services.DashboardFilter
			svc := &mockDashboardService{
				getDashboardFn: func(userID string, filter services.DashboardFilter) (*services.Dashboard, error) {
					got = filter
					return sampleDashboard(filter), nil
				},
			}
			r := setupDashboardRouter(t, NewDashboardHandler(svc))

			rec := doRequest(r, http.MethodGet, "/dashboard"+tt.query, nil)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if got != tt.want {
				t.Errorf("expected filter %s, got %s", tt.want, got)
			}
		})
	}

	t.Run("failure redirects to login", func(t *testing.T) {
		svc := &mockDashboardService{
			getDashboardFn: func(string, services.DashboardFilter) (*services.Dashboard, error) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("timeout"))
			},
		}
		r := setupDashboardRouter(t, NewDashboardHandler(svc))

		rec := doRequest(r, http.MethodGet, "/dashboard", nil)

		assertRedirect(t, rec, "/login")
		assertFlashes(t, r, rec, "|Error loading dashboard data.")
	})
}
