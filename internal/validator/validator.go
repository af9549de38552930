// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tickerRegex accepts exchange symbols the market-data source
// understands: letters, digits, and the separators used by index,
// futures, and foreign listings (^GSPC, BRK-B, 7203.T, GC=F).
var tickerRegex = regexp.MustCompile(`^[A-Za-z0-9^][A-Za-z0-9.^=-]{0,11}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validateTicker)
		_ = v.RegisterValidation("chart_view", validateChartView)
	}
}

func validateTicker(fl validator.FieldLevel) bool {
	return tickerRegex.MatchString(fl.Field().String())
}

func validateChartView(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "signals", "rsi", "macd", "bollinger", "raw":
		return true
	}
	return false
}
