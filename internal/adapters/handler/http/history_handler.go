package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-history/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-history/internal/core/domain"
	"github.com/comitanigiacomo/kanso-history/internal/core/services"
)

const (
	lowestDate  = "0000-01-01"
	highestDate = "9999-12-31"
)

type HistoryHandler struct {
	histories *services.HistoryRegistry
}

func NewHistoryHandler(histories *services.HistoryRegistry) *HistoryHandler {
	return &HistoryHandler{
		histories: histories,
	}
}

type updateEntryRequest struct {
	Title string             `json:"title" binding:"required"`
	Date  string             `json:"date" binding:"required"`
	Goal  *float64           `json:"goal"`
	Value *domain.EntryValue `json:"value" binding:"required" swaggertype:"primitive,number"`
	Sum   *float64           `json:"sum"`
}

func (h *HistoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	history := router.Group("/history")
	{
		history.GET("", h.List)
		history.GET("/dates", h.Dates)
		history.GET("/dataset", h.Dataset)
		history.GET("/chart", h.Chart)
		history.PUT("/entries", h.UpdateEntry)
		history.DELETE("/entries/:date/:title", h.RemoveEntry)
		history.POST("/reset", h.Reset)
		history.POST("/reload", h.Reload)
	}
}

func (h *HistoryHandler) store(c *gin.Context) (*services.HistoryStore, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return nil, false
	}

	store, err := h.histories.Store(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return nil, false
	}
	return store, true
}

// parseRange reads the optional from/to query bounds (YYYY-MM-DD). Missing
// bounds are open.
func parseRange(c *gin.Context) (string, string, error) {
	from := c.DefaultQuery("from", lowestDate)
	to := c.DefaultQuery("to", highestDate)

	if _, err := time.Parse(domain.ISODateLayout, from); err != nil {
		return "", "", errors.New("invalid from format, expected YYYY-MM-DD")
	}
	if _, err := time.Parse(domain.ISODateLayout, to); err != nil {
		return "", "", errors.New("invalid to format, expected YYYY-MM-DD")
	}
	if from > to {
		return "", "", errors.New("from cannot be after to")
	}
	return from, to, nil
}

// List godoc
// @Summary  Ordered history, optionally limited to [from, to]
// @Tags     history
// @Produce  json
// @Param    from query string false "YYYY-MM-DD"
// @Param    to   query string false "YYYY-MM-DD"
// @Success  200 {array} domain.HistoryDay
// @Router   /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	from, to, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if from == lowestDate && to == highestDate {
		c.JSON(http.StatusOK, store.OrderedHistory())
		return
	}
	c.JSON(http.StatusOK, store.FilteredHistoryByDate(from, to))
}

// Dates godoc
// @Summary  Recorded dates in chronological order
// @Tags     history
// @Produce  json
// @Success  200 {array} string
// @Router   /history/dates [get]
func (h *HistoryHandler) Dates(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, store.Dates())
}

// Dataset godoc
// @Summary  One series per goal-carrying habit
// @Tags     history
// @Produce  json
// @Success  200 {array} domain.DataSetPrerender
// @Router   /history/dataset [get]
func (h *HistoryHandler) Dataset(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, store.Dataset())
}

// Chart godoc
// @Summary  Series aligned on a shared date axis
// @Tags     history
// @Produce  json
// @Param    from query string false "YYYY-MM-DD"
// @Param    to   query string false "YYYY-MM-DD"
// @Success  200 {object} domain.ChartData
// @Router   /history/chart [get]
func (h *HistoryHandler) Chart(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	from, to, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, services.AlignDatasets(store.Dataset(), from, to))
}

// UpdateEntry godoc
// @Summary  Record a value for a habit on a date
// @Tags     history
// @Accept   json
// @Produce  json
// @Param    entry body updateEntryRequest true "Entry"
// @Success  200 {object} domain.HabitEntry
// @Failure  400 {object} map[string]string
// @Router   /history/entries [put]
func (h *HistoryHandler) UpdateEntry(c *gin.Context) {
	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	store, ok := h.store(c)
	if !ok {
		return
	}

	data := domain.HistoryData{
		Title: req.Title,
		Date:  req.Date,
		Goal:  req.Goal,
	}

	entry, err := store.UpdateValue(c.Request.Context(), *req.Value, data, req.Sum)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// RemoveEntry godoc
// @Summary  Remove a habit entry from a date
// @Tags     history
// @Param    date  path string true "DD.MM.YYYY"
// @Param    title path string true "Habit name"
// @Success  204
// @Failure  404 {object} map[string]string
// @Router   /history/entries/{date}/{title} [delete]
func (h *HistoryHandler) RemoveEntry(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	if !store.RemoveEntry(c.Request.Context(), c.Param("date"), c.Param("title")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Reset godoc
// @Summary  Remove every recorded date
// @Tags     history
// @Success  204
// @Router   /history/reset [post]
func (h *HistoryHandler) Reset(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	store.ResetHistory(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// Reload godoc
// @Summary  Merge the persisted history back into memory
// @Tags     history
// @Produce  json
// @Success  200 {array} domain.HistoryDay
// @Router   /history/reload [post]
func (h *HistoryHandler) Reload(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	store.LoadHistory(c.Request.Context())
	c.JSON(http.StatusOK, store.OrderedHistory())
}
