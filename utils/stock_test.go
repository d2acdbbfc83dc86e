package utils

import (
	"testing"
	"time"
)

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		threshold int
		want      string
	}{
		{"zero quantity is out of stock", 0, 10, StockStatusOut},
		{"negative quantity is out of stock", -3, 10, StockStatusOut},
		{"below threshold is low", 5, 10, StockStatusLow},
		{"exactly at threshold is low", 10, 10, StockStatusLow},
		{"just above threshold is healthy", 11, 10, StockStatusHealthy},
		{"well stocked is healthy", 500, 10, StockStatusHealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StockStatus(tt.quantity, tt.threshold); got != tt.want {
				t.Errorf("StockStatus(%d, %d) = %q, want %q", tt.quantity, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestReorderThreshold(t *testing.T) {
	if got := ReorderThreshold(25, 10); got != 25 {
		t.Errorf("explicit level: got %d, want 25", got)
	}
	if got := ReorderThreshold(0, 10); got != 10 {
		t.Errorf("unset level falls back to default: got %d, want 10", got)
	}
}

func TestStockPercentage(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		threshold int
		want      float64
	}{
		{"half of threshold", 5, 10, 50},
		{"at threshold", 10, 10, 100},
		{"capped at 100", 250, 10, 100},
		{"empty", 0, 10, 0},
		{"zero threshold yields zero", 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StockPercentage(tt.quantity, tt.threshold); got != tt.want {
				t.Errorf("StockPercentage(%d, %d) = %v, want %v", tt.quantity, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestIsExpiringSoon(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	inWindow := now.AddDate(0, 0, 15)
	outside := now.AddDate(0, 0, 45)
	expired := now.AddDate(0, 0, -5)

	if !IsExpiringSoon(&inWindow, now, 30) {
		t.Error("expiry inside the window should report true")
	}
	if IsExpiringSoon(&outside, now, 30) {
		t.Error("expiry outside the window should report false")
	}
	if !IsExpiringSoon(&expired, now, 30) {
		t.Error("already-expired drug should report true")
	}
	if IsExpiringSoon(nil, now, 30) {
		t.Error("nil expiry should report false")
	}
}
