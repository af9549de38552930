package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockdash/internal/errors"
	"stockdash/internal/services"
)

// DashboardHandler handles indicator chart and forecast requests.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	maxUploadBytes   int64
	defaultPeriods   int
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer, maxUploadBytes int64, defaultPeriods int) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		maxUploadBytes:   maxUploadBytes,
		defaultPeriods:   defaultPeriods,
	}
}

// IndicatorsRequest selects which chart views to build. Empty means all.
type IndicatorsRequest struct {
	Views []string `form:"view" binding:"omitempty,dive,chart_view"`
}

// ForecastRequest sets the forecast horizon in periods.
type ForecastRequest struct {
	Periods int `form:"periods" binding:"omitempty,gt=0,lte=365"`
}

// Indicators parses an uploaded technical-indicator sheet and returns
// the requested chart payloads (signals, rsi, macd, bollinger, raw).
// Repeating the "view" query parameter selects views; none means all.
func (h *DashboardHandler) Indicators(c *gin.Context) {
	var req IndicatorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	file, filename, err := openUpload(c, "file", h.maxUploadBytes)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	report, err := h.dashboardService.Indicators(file, filename, req.Views)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Forecast projects the sheet's close series forward. The "periods"
// query parameter bounds the horizon (1..365); its default is
// configuration-driven.
func (h *DashboardHandler) Forecast(c *gin.Context) {
	var req ForecastRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if req.Periods == 0 {
		req.Periods = h.defaultPeriods
	}

	file, filename, err := openUpload(c, "file", h.maxUploadBytes)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	report, err := h.dashboardService.ForecastClose(file, filename, req.Periods)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
