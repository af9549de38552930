package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "stockdash/internal/errors"
	"stockdash/internal/models"
	"stockdash/internal/services"
)

// QuoteHandler serves daily close history for a single ticker.
type QuoteHandler struct {
	fetcher services.QuoteFetcher
	now     func() time.Time
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(fetcher services.QuoteFetcher) *QuoteHandler {
	return &QuoteHandler{fetcher: fetcher, now: time.Now}
}

// HistoryURI binds the ticker path parameter.
type HistoryURI struct {
	Ticker string `uri:"ticker" binding:"required,ticker"`
}

// HistoryQuery bounds the date range. Dates are YYYY-MM-DD; start
// defaults to one year back, end to today.
type HistoryQuery struct {
	Start string `form:"start" binding:"omitempty,datetime=2006-01-02"`
	End   string `form:"end" binding:"omitempty,datetime=2006-01-02"`
}

// History returns one daily close per trading day for the ticker over
// the requested range.
func (h *QuoteHandler) History(c *gin.Context) {
	var uri HistoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid ticker symbol"))
		return
	}
	var query HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	end := models.DateKey(h.now())
	if query.End != "" {
		end, _ = time.Parse("2006-01-02", query.End)
	}
	start := end.AddDate(-1, 0, 0)
	if query.Start != "" {
		start, _ = time.Parse("2006-01-02", query.Start)
	}
	if start.After(end) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "start must not be after end"))
		return
	}

	quotes, fetchErrs := h.fetcher.Fetch(c.Request.Context(), []string{uri.Ticker}, start, end)
	if len(fetchErrs) > 0 {
		respondWithError(c, apperrors.Wrap(apperrors.ErrQuoteFetch, fetchErrs[0]))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ticker": uri.Ticker,
		"quotes": quotes.Series(uri.Ticker),
	})
}
