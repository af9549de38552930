package services

import (
	"io"

	"stockdash/internal/forecast"
	"stockdash/internal/indicators"
	"stockdash/internal/models"
)

// Chart view names accepted by the dashboard.
const (
	ViewSignals   = "signals"
	ViewRSI       = "rsi"
	ViewMACD      = "macd"
	ViewBollinger = "bollinger"
	ViewRaw       = "raw"
)

// dashboardService turns uploaded indicator sheets into chart payloads
// and close-price forecasts.
type dashboardService struct{}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService() DashboardServicer {
	return &dashboardService{}
}

// Indicators parses the sheet and builds the requested chart views.
// With no views given, every view is built. The raw view returns the
// trailing rows of the sheet.
func (s *dashboardService) Indicators(file io.Reader, filename string, views []string) (*models.IndicatorReport, error) {
	sheet, err := indicators.Load(file, filename)
	if err != nil {
		return nil, err
	}

	// With no explicit selection every view is built, but a sheet
	// without Bollinger columns only fails when bollinger was asked for.
	implicit := len(views) == 0
	if implicit {
		views = []string{ViewSignals, ViewRSI, ViewMACD, ViewBollinger, ViewRaw}
	}

	report := &models.IndicatorReport{}
	for _, view := range views {
		switch view {
		case ViewSignals:
			report.Signals = sheet.SignalView()
		case ViewRSI:
			report.RSI = sheet.RSIView()
		case ViewMACD:
			report.MACD = sheet.MACDView()
		case ViewBollinger:
			bollinger, err := sheet.BollingerView()
			if err != nil {
				if implicit {
					continue
				}
				return nil, err
			}
			report.Bollinger = bollinger
		case ViewRaw:
			report.Rows = sheet.RawTail()
		}
	}
	return report, nil
}

// ForecastClose parses the sheet and projects its close series the
// given number of periods ahead.
func (s *dashboardService) ForecastClose(file io.Reader, filename string, periods int) (*models.ForecastReport, error) {
	sheet, err := indicators.Load(file, filename)
	if err != nil {
		return nil, err
	}
	return forecast.Close(sheet.CloseSeries(), periods)
}
