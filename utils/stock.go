package utils

import (
	"time"
)

// Stock status classifications for a drug, derived from quantity on hand
// against its reorder threshold.
const (
	StockStatusHealthy = "healthy"
	StockStatusLow     = "low_stock"
	StockStatusOut     = "out_of_stock"
)

// ReorderThreshold resolves the effective reorder threshold for a drug.
// A stored level of zero means the drug never had one set.
func ReorderThreshold(reorderLevel, defaultLevel int) int {
	if reorderLevel > 0 {
		return reorderLevel
	}
	return defaultLevel
}

// StockStatus classifies quantity on hand: zero is out of stock, anything up
// to the threshold is low, the rest is healthy.
func StockStatus(quantity, threshold int) string {
	switch {
	case quantity <= 0:
		return StockStatusOut
	case quantity <= threshold:
		return StockStatusLow
	default:
		return StockStatusHealthy
	}
}

// StockPercentage reports quantity as a share of the reorder threshold,
// capped at 100 for display.
func StockPercentage(quantity, threshold int) float64 {
	if threshold <= 0 {
		return 0
	}
	pct := float64(quantity) / float64(threshold) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// IsExpiringSoon reports whether expiry falls within windowDays of now.
// Drugs without an expiry date never expire soon; already-expired drugs do.
func IsExpiringSoon(expiry *time.Time, now time.Time, windowDays int) bool {
	if expiry == nil {
		return false
	}
	return !expiry.After(now.AddDate(0, 0, windowDays))
}
