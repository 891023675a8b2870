package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"pennywise/internal/services"
	"pennywise/internal/session"
)

// DashboardHandler renders the monthly overview
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		now:              time.Now,
	}
}

// ShowDashboard renders totals for ?filter=this_month|prev_month together with
// the recent transactions and the add-transaction form.
func (h *DashboardHandler) ShowDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		redirectWithError(c, err, "/login")
		return
	}

	filter := services.ParseDashboardFilter(c.Query("filter"))
	dashboard, err := h.dashboardService.GetDashboard(userID, filter)
	if err != nil {
		logError(c, err)
		redirectWithFlash(c, session.FlashError, "Error loading dashboard data.", "/login")
		return
	}

	render(c, "dashboard.html", "Dashboard", gin.H{
		"Dashboard": dashboard,
		"Today":     h.now().Format(dateLayout),
	})
}
