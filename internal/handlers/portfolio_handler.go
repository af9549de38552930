package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockdash/internal/services"
)

// PortfolioHandler handles portfolio analysis requests.
type PortfolioHandler struct {
	analysisService services.AnalysisServicer
	maxUploadBytes  int64
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(analysisService services.AnalysisServicer, maxUploadBytes int64) *PortfolioHandler {
	return &PortfolioHandler{analysisService: analysisService, maxUploadBytes: maxUploadBytes}
}

// Analyze runs one full analysis over an uploaded trade ledger: parse
// and validate the file, fetch daily closes for its tickers, and
// compute per-ticker positions and profit/loss. The multipart field is
// "file"; .xlsx and .csv are accepted.
func (h *PortfolioHandler) Analyze(c *gin.Context) {
	file, filename, err := openUpload(c, "file", h.maxUploadBytes)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	report, err := h.analysisService.Analyze(c.Request.Context(), file, filename)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
