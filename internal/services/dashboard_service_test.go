package services

import (
	"strings"
	"testing"
)

const indicatorCSV = "Date,Close,Buy_Signal,Sell_Signal,momentum_rsi,trend_macd,trend_macd_signal,volatility_bbm,volatility_bbh,volatility_bbl\n" +
	"2024-01-01,100,,,45.2,0.5,0.3,99,103,95\n" +
	"2024-01-02,102,102,,55.1,0.7,0.4,100,104,96\n" +
	"2024-01-03,101,,101,62.0,0.6,0.5,100.5,104.5,96.5\n" +
	"2024-01-04,105,,,58.0,0.8,0.6,101,105,97\n"

func TestIndicators_AllViewsByDefault(t *testing.T) {
	svc := NewDashboardService()

	report, err := svc.Indicators(strings.NewReader(indicatorCSV), "aapl.csv", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Signals == nil || report.RSI == nil || report.MACD == nil || report.Bollinger == nil {
		t.Error("expected every chart view to be built")
	}
	if len(report.Rows) != 4 {
		t.Errorf("expected raw rows, got %d", len(report.Rows))
	}
}

func TestIndicators_SelectedViewsOnly(t *testing.T) {
	svc := NewDashboardService()

	report, err := svc.Indicators(strings.NewReader(indicatorCSV), "aapl.csv", []string{ViewRSI})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.RSI == nil {
		t.Error("expected rsi view")
	}
	if report.Signals != nil || report.MACD != nil || report.Bollinger != nil || report.Rows != nil {
		t.Error("expected only the requested view to be built")
	}
}

func TestIndicators_BollingerErrorPropagates(t *testing.T) {
	svc := NewDashboardService()

	_, err := svc.Indicators(strings.NewReader("Date,Close\n2024-01-01,100\n"), "x.csv", []string{ViewBollinger})
	if err == nil {
		t.Fatal("expected an error for absent band columns")
	}
}

func TestIndicators_MissingBandsSkippedByDefault(t *testing.T) {
	svc := NewDashboardService()

	report, err := svc.Indicators(strings.NewReader("Date,Close\n2024-01-01,100\n"), "x.csv", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Bollinger != nil {
		t.Error("expected no bollinger view without band columns")
	}
	if report.Signals == nil || report.RSI == nil {
		t.Error("expected the remaining views to be built")
	}
}

func TestForecastClose(t *testing.T) {
	svc := NewDashboardService()

	report, err := svc.ForecastClose(strings.NewReader(indicatorCSV), "aapl.csv", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Periods != 7 || len(report.Points) != 7 {
		t.Errorf("expected 7 forecast points, got %d", len(report.Points))
	}
}
