package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "stockdash/internal/errors"
	"stockdash/internal/models"
	"stockdash/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- mock analysis service ---

type mockAnalysisService struct {
	analyzeFn func(ctx context.Context, file io.Reader, filename string) (*models.AnalysisReport, error)
}

func (m *mockAnalysisService) Analyze(ctx context.Context, file io.Reader, filename string) (*models.AnalysisReport, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, file, filename)
	}
	return &models.AnalysisReport{Status: models.StatusOK}, nil
}

var _ services.AnalysisServicer = (*mockAnalysisService)(nil)

// multipartBody builds a multipart request body with one file field.
func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := io.Copy(fw, strings.NewReader(content)); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func setupPortfolioRouter(handler *PortfolioHandler) *gin.Engine {
	r := gin.New()
	r.POST("/portfolio/analyze", handler.Analyze)
	return r
}

func TestAnalyze_Success(t *testing.T) {
	svc := &mockAnalysisService{
		analyzeFn: func(_ context.Context, file io.Reader, filename string) (*models.AnalysisReport, error) {
			if filename != "trades.csv" {
				t.Errorf("filename = %q, want trades.csv", filename)
			}
			content, _ := io.ReadAll(file)
			if !strings.Contains(string(content), "AAPL") {
				t.Error("expected uploaded content to reach the service")
			}
			return &models.AnalysisReport{
				Status:      models.StatusOK,
				DroppedRows: 2,
			}, nil
		},
	}
	router := setupPortfolioRouter(NewPortfolioHandler(svc, 1<<20))

	body, contentType := multipartBody(t, "file", "trades.csv", "Date,Ticker,Action,Quantity,Price\n2024-01-01,AAPL,Buy,1,150\n")
	req := httptest.NewRequest(http.MethodPost, "/portfolio/analyze", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var report models.AnalysisReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if report.Status != models.StatusOK || report.DroppedRows != 2 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestAnalyze_MissingFile(t *testing.T) {
	router := setupPortfolioRouter(NewPortfolioHandler(&mockAnalysisService{}, 1<<20))

	req := httptest.NewRequest(http.MethodPost, "/portfolio/analyze", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), apperrors.ErrInvalidInput.Code) {
		t.Errorf("expected INVALID_INPUT error, got %s", w.Body.String())
	}
}

func TestAnalyze_FileTooLarge(t *testing.T) {
	router := setupPortfolioRouter(NewPortfolioHandler(&mockAnalysisService{}, 8))

	body, contentType := multipartBody(t, "file", "trades.csv", "this upload is larger than eight bytes")
	req := httptest.NewRequest(http.MethodPost, "/portfolio/analyze", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAnalyze_ServiceErrorMapped(t *testing.T) {
	svc := &mockAnalysisService{
		analyzeFn: func(_ context.Context, _ io.Reader, _ string) (*models.AnalysisReport, error) {
			return nil, apperrors.ErrNoValidTrades
		},
	}
	router := setupPortfolioRouter(NewPortfolioHandler(svc, 1<<20))

	body, contentType := multipartBody(t, "file", "trades.csv", "Date,Ticker,Action,Quantity,Price\n")
	req := httptest.NewRequest(http.MethodPost, "/portfolio/analyze", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if !strings.Contains(w.Body.String(), apperrors.ErrNoValidTrades.Code) {
		t.Errorf("expected NO_VALID_TRADES error, got %s", w.Body.String())
	}
}
