package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-history/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-history/internal/core/domain"
	"github.com/comitanigiacomo/kanso-history/internal/core/services"
)

const maxDaysRange = 366

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetRangeStats)
	r.GET("/stats/streaks", h.GetStreaks)
}

// GetRangeStats godoc
// @Summary  Completion statistics over a date range (default: last 7 days)
// @Tags     stats
// @Produce  json
// @Param    start_date query string false "YYYY-MM-DD"
// @Param    end_date   query string false "YYYY-MM-DD"
// @Success  200 {object} domain.RangeStats
// @Router   /stats [get]
func (h *StatsHandler) GetRangeStats(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	endDateStr := c.Query("end_date")
	startDateStr := c.Query("start_date")

	var endDate, startDate time.Time
	var err error

	if endDateStr == "" {
		endDate = time.Now().UTC()
	} else {
		endDate, err = time.Parse(domain.ISODateLayout, endDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format, expected YYYY-MM-DD"})
			return
		}
	}

	if startDateStr == "" {
		startDate = endDate.AddDate(0, 0, -6)
	} else {
		startDate, err = time.Parse(domain.ISODateLayout, startDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format, expected YYYY-MM-DD"})
			return
		}
	}

	if startDate.After(endDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date cannot be after end_date"})
		return
	}

	if endDate.Sub(startDate).Hours()/24 > maxDaysRange {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date range too large, max 1 year allowed"})
		return
	}

	stats, err := h.svc.GetRangeStats(c.Request.Context(), domain.StatsInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetStreaks godoc
// @Summary  Current and longest streak per habit
// @Tags     stats
// @Produce  json
// @Success  200 {object} map[string]domain.Streak
// @Router   /stats/streaks [get]
func (h *StatsHandler) GetStreaks(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	streaks, err := h.svc.Streaks(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, streaks)
}
