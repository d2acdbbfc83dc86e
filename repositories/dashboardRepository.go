package repositories

import (
	"PharmaCore/cache"
	"PharmaCore/database"
	"PharmaCore/models"
	"PharmaCore/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	DashboardCacheKey    = "dashboard_cache"
	DashboardCacheExpiry = time.Minute
)

// DashboardStats are the headline counters for the day.
type DashboardStats struct {
	PendingPrescriptions int64   `json:"pendingPrescriptions"`
	DispensedToday       int64   `json:"dispensedToday"`
	RevenueToday         float64 `json:"revenueToday"`
	LowStockCount        int64   `json:"lowStockCount"`
	OutOfStockCount      int64   `json:"outOfStockCount"`
	ExpiringSoonCount    int64   `json:"expiringSoonCount"`
}

// Dashboard is the advisory snapshot the operator landing page renders. It is
// served from a short-lived cache and makes no consistency promises across
// its sections.
type Dashboard struct {
	Stats           DashboardStats         `json:"stats"`
	UrgentQueue     []models.Prescription  `json:"urgentQueue"`
	InventoryAlerts []StockRow             `json:"inventoryAlerts"`
	RecentActivity  []models.DrugDispensal `json:"recentActivity"`
}

type DashboardRepository struct {
	cache            *cache.Cache
	reorderLevel     int
	expiringSoonDays int
}

func NewDashboardRepository(cache *cache.Cache, reorderLevel, expiringSoonDays int) *DashboardRepository {
	return &DashboardRepository{cache: cache, reorderLevel: reorderLevel, expiringSoonDays: expiringSoonDays}
}

// Get assembles the dashboard, serving a cached copy when fresh enough.
func (r *DashboardRepository) Get(ctx context.Context) (*Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cached, err := r.cache.Get(ctx, DashboardCacheKey)
	if err == nil && cached != "" {
		var dashboard Dashboard
		if err := json.Unmarshal([]byte(cached), &dashboard); err == nil {
			return &dashboard, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get dashboard from cache: %v", err)
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var dashboard Dashboard
	if err := r.collectStats(ctx, &dashboard.Stats, startOfDay, now); err != nil {
		return nil, err
	}

	dispensable := []string{models.PrescriptionStatusPending, models.PrescriptionStatusPartially}
	err = database.DB.WithContext(ctx).
		Preload("Patient").
		Preload("Items").
		Where("status IN ? AND is_deleted = ?", dispensable, false).
		Order(priorityOrderExpr + ", created_at ASC").
		Limit(5).
		Find(&dashboard.UrgentQueue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load urgent queue: %w", err)
	}

	var alertDrugs []models.Drug
	err = database.DB.WithContext(ctx).
		Where("is_deleted = ? AND quantity <= "+effectiveThresholdExpr, false, r.reorderLevel).
		Order("quantity ASC").
		Limit(10).
		Find(&alertDrugs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory alerts: %w", err)
	}
	for _, drug := range alertDrugs {
		threshold := utils.ReorderThreshold(drug.ReorderLevel, r.reorderLevel)
		dashboard.InventoryAlerts = append(dashboard.InventoryAlerts, StockRow{
			Drug:            drug,
			StockStatus:     utils.StockStatus(drug.Quantity, threshold),
			StockPercentage: utils.StockPercentage(drug.Quantity, threshold),
			IsExpiringSoon:  utils.IsExpiringSoon(drug.ExpiryDate, now, r.expiringSoonDays),
		})
	}

	err = database.DB.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(10).
		Find(&dashboard.RecentActivity).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}

	dashboardJSON, err := json.Marshal(dashboard)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dashboard: %w", err)
	}
	if err := r.cache.Set(ctx, DashboardCacheKey, dashboardJSON, DashboardCacheExpiry); err != nil {
		log.Printf("Failed to set dashboard in cache: %v", err)
	}

	return &dashboard, nil
}

func (r *DashboardRepository) collectStats(ctx context.Context, stats *DashboardStats, startOfDay, now time.Time) error {
	db := database.DB.WithContext(ctx)

	dispensable := []string{models.PrescriptionStatusPending, models.PrescriptionStatusPartially}
	if err := db.Model(&models.Prescription{}).
		Where("status IN ? AND is_deleted = ?", dispensable, false).
		Count(&stats.PendingPrescriptions).Error; err != nil {
		return fmt.Errorf("failed to count pending prescriptions: %w", err)
	}

	if err := db.Model(&models.DrugDispensal{}).
		Where("created_at >= ?", startOfDay).
		Count(&stats.DispensedToday).Error; err != nil {
		return fmt.Errorf("failed to count dispensals today: %w", err)
	}

	if err := db.Model(&models.BalanceTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ? AND created_at >= ?", "debit", startOfDay).
		Scan(&stats.RevenueToday).Error; err != nil {
		return fmt.Errorf("failed to sum revenue today: %w", err)
	}

	if err := db.Model(&models.Drug{}).
		Where("is_deleted = ? AND quantity = 0", false).
		Count(&stats.OutOfStockCount).Error; err != nil {
		return fmt.Errorf("failed to count out-of-stock drugs: %w", err)
	}

	if err := db.Model(&models.Drug{}).
		Where("is_deleted = ? AND quantity > 0 AND quantity <= "+effectiveThresholdExpr, false, r.reorderLevel).
		Count(&stats.LowStockCount).Error; err != nil {
		return fmt.Errorf("failed to count low-stock drugs: %w", err)
	}

	expiryCutoff := now.AddDate(0, 0, r.expiringSoonDays)
	if err := db.Model(&models.Drug{}).
		Where("is_deleted = ? AND expiry_date IS NOT NULL AND expiry_date <= ?", false, expiryCutoff).
		Count(&stats.ExpiringSoonCount).Error; err != nil {
		return fmt.Errorf("failed to count expiring drugs: %w", err)
	}
	return nil
}
