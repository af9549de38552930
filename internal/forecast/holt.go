// Package forecast projects a daily close series into the future using
// Holt's double-exponential smoothing: a level plus a linear trend, both
// updated recursively over the observed series. Uncertainty bounds come
// from the standard deviation of the one-step-ahead fit residuals,
// widening with the square root of the horizon step.
package forecast

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	apperrors "stockdash/internal/errors"
	"stockdash/internal/models"
)

// Smoothing factors. Alpha weights the level toward recent
// observations; beta dampens trend updates.
const (
	alpha = 0.5
	beta  = 0.3
)

// zScore for ~95% bounds.
const zScore = 1.96

// minObservations is the shortest series Holt smoothing can fit: two
// points seed level and trend, a third produces the first residual.
const minObservations = 3

// Close projects the close series periods steps beyond its last
// observation, one step per calendar day. The input must be ascending
// by date.
func Close(series []models.SeriesPoint, periods int) (*models.ForecastReport, error) {
	if periods < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Forecast periods must be positive")
	}
	if len(series) < minObservations {
		return nil, apperrors.ErrInsufficientData
	}

	values := make([]float64, len(series))
	for i, p := range series {
		values[i], _ = p.Value.Float64()
	}

	// Seed: level = first observation, trend = first difference.
	level := values[0]
	trend := values[1] - values[0]

	residuals := make([]float64, 0, len(values)-1)
	for _, v := range values[1:] {
		predicted := level + trend
		residuals = append(residuals, v-predicted)

		prevLevel := level
		level = alpha*v + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
	}

	sd := stat.StdDev(residuals, nil)
	if math.IsNaN(sd) {
		sd = 0
	}

	lastDate := series[len(series)-1].Date
	report := &models.ForecastReport{Periods: periods}
	for h := 1; h <= periods; h++ {
		point := level + float64(h)*trend
		margin := zScore * sd * math.Sqrt(float64(h))
		report.Points = append(report.Points, models.ForecastPoint{
			Date:  lastDate.AddDate(0, 0, h),
			Value: decimal.NewFromFloat(point).Round(4),
			Lower: decimal.NewFromFloat(point - margin).Round(4),
			Upper: decimal.NewFromFloat(point + margin).Round(4),
		})
	}
	return report, nil
}
