package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/guestlist-app/services"
	"github.com/yeremiapane/guestlist-app/utils"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
	Monitor   *services.Monitor
}

func NewAnalyticsController(analytics *services.AnalyticsService, monitor *services.Monitor) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics, Monitor: monitor}
}

// GetAnalytics -> weekly totals and per-club stats. The current week is
// served from the monitor's cache when one is running.
func (ac *AnalyticsController) GetAnalytics(c *gin.Context) {
	ctx := c.Request.Context()
	day, err := ac.Analytics.Calendar.WeekOf(c.Query("week"))
	if err != nil {
		respondServiceError(c, err, "")
		return
	}

	var stats *services.Analytics
	if ac.Monitor != nil && ac.Analytics.Calendar.IsCurrentWeek(day) {
		stats, err = ac.Monitor.CurrentWeek(ctx)
	} else {
		stats, err = ac.Analytics.WeeklyAnalytics(ctx, day)
	}
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Weekly analytics", stats)
}
