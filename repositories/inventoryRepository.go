package repositories

import (
	"PharmaCore/cache"
	"PharmaCore/database"
	"PharmaCore/models"
	"PharmaCore/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// effectiveThresholdExpr resolves the per-row reorder threshold in SQL; a
// stored level of zero falls back to the deployment default.
const effectiveThresholdExpr = "(CASE WHEN reorder_level > 0 THEN reorder_level ELSE ? END)"

// StockRow is a drug with its computed classification fields.
type StockRow struct {
	models.Drug
	StockStatus     string  `json:"stockStatus"`
	StockPercentage float64 `json:"stockPercentage"`
	IsExpiringSoon  bool    `json:"isExpiringSoon"`
}

// StockSummary aggregates the classification over the filtered catalog.
type StockSummary struct {
	TotalDrugs int64 `json:"totalDrugs"`
	InStock    int64 `json:"inStock"`
	LowStock   int64 `json:"lowStock"`
	OutOfStock int64 `json:"outOfStock"`
}

// StockPage is one page of the stock listing.
type StockPage struct {
	Rows       []StockRow   `json:"drugs"`
	Summary    StockSummary `json:"summary"`
	Categories []string     `json:"categories"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
}

type InventoryRepository struct {
	cache            *cache.Cache
	reorderLevel     int
	expiringSoonDays int
}

func NewInventoryRepository(cache *cache.Cache, reorderLevel, expiringSoonDays int) *InventoryRepository {
	return &InventoryRepository{cache: cache, reorderLevel: reorderLevel, expiringSoonDays: expiringSoonDays}
}

// baseStockQuery applies the category and search filters shared by the page
// and summary queries.
func (r *InventoryRepository) baseStockQuery(category, search string) *gorm.DB {
	query := database.DB.Model(&models.Drug{}).Where("is_deleted = ?", false)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		pattern := "%" + strings.TrimSpace(search) + "%"
		query = query.Where(
			"name ILIKE ? OR generic_name ILIKE ? OR brand_name ILIKE ? OR code ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	return query
}

// ListStock returns one classified, paginated page of the catalog plus the
// aggregate summary and the set of live categories. The status filter applies
// after classification; the summary ignores it so the totals describe the
// whole filtered catalog.
func (r *InventoryRepository) ListStock(ctx context.Context, category, status, search string, page, limit int) (*StockPage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := r.baseStockQuery(category, search).WithContext(ctx)
	switch status {
	case utils.StockStatusOut:
		query = query.Where("quantity = 0")
	case utils.StockStatusLow:
		query = query.Where("quantity > 0 AND quantity <= "+effectiveThresholdExpr, r.reorderLevel)
	case utils.StockStatusHealthy:
		query = query.Where("quantity > "+effectiveThresholdExpr, r.reorderLevel)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count stock rows: %w", err)
	}

	var drugs []models.Drug
	err := query.Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&drugs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}

	now := time.Now()
	rows := make([]StockRow, 0, len(drugs))
	for _, drug := range drugs {
		rows = append(rows, r.classify(drug, now))
	}

	summary, err := r.stockSummary(ctx, category, search)
	if err != nil {
		return nil, err
	}

	var categories []string
	err = database.DB.WithContext(ctx).Model(&models.Drug{}).
		Where("is_deleted = ? AND category <> ''", false).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &StockPage{
		Rows:       rows,
		Summary:    *summary,
		Categories: categories,
		Total:      total,
		Page:       page,
		Limit:      limit,
	}, nil
}

func (r *InventoryRepository) classify(drug models.Drug, now time.Time) StockRow {
	threshold := utils.ReorderThreshold(drug.ReorderLevel, r.reorderLevel)
	return StockRow{
		Drug:            drug,
		StockStatus:     utils.StockStatus(drug.Quantity, threshold),
		StockPercentage: utils.StockPercentage(drug.Quantity, threshold),
		IsExpiringSoon:  utils.IsExpiringSoon(drug.ExpiryDate, now, r.expiringSoonDays),
	}
}

func (r *InventoryRepository) stockSummary(ctx context.Context, category, search string) (*StockSummary, error) {
	var summary StockSummary
	if err := r.baseStockQuery(category, search).WithContext(ctx).Count(&summary.TotalDrugs).Error; err != nil {
		return nil, fmt.Errorf("failed to count drugs: %w", err)
	}
	if err := r.baseStockQuery(category, search).WithContext(ctx).
		Where("quantity = 0").Count(&summary.OutOfStock).Error; err != nil {
		return nil, fmt.Errorf("failed to count out-of-stock drugs: %w", err)
	}
	if err := r.baseStockQuery(category, search).WithContext(ctx).
		Where("quantity > 0 AND quantity <= "+effectiveThresholdExpr, r.reorderLevel).
		Count(&summary.LowStock).Error; err != nil {
		return nil, fmt.Errorf("failed to count low-stock drugs: %w", err)
	}
	summary.InStock = summary.TotalDrugs - summary.OutOfStock
	return &summary, nil
}

// AdjustStock sets a drug's quantity on hand directly and records the signed
// delta in the movement ledger within the same transaction.
func (r *InventoryRepository) AdjustStock(ctx context.Context, req models.StockAdjustmentRequest) (*models.Drug, int, error) {
	drugID := uint(req.ProductID)
	lockKey := fmt.Sprintf("drug_stock_lock:%d", drugID)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return nil, 0, fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	var drug models.Drug
	var delta int
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_deleted = ?", drugID, false).
			First(&drug).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDrugNotFound
			}
			return fmt.Errorf("failed to find drug: %w", err)
		}

		newQuantity := int(req.Quantity)
		delta = newQuantity - drug.Quantity

		if err := tx.Model(&drug).Update("quantity", newQuantity).Error; err != nil {
			return fmt.Errorf("failed to update quantity: %w", err)
		}
		drug.Quantity = newQuantity

		movement := models.StockMovement{
			DrugID:       drug.ID,
			Type:         models.MovementAdjustment,
			Quantity:     delta,
			BalanceAfter: newQuantity,
			Reason:       req.Reason,
			RecordedBy:   req.AdjustedBy,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to record stock movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	if err := r.cache.Delete(ctx, DrugsCacheKey); err != nil {
		log.Printf("Failed to delete drugs cache: %v", err)
	}
	if err := r.cache.Delete(ctx, DashboardCacheKey); err != nil {
		log.Printf("Failed to delete dashboard cache: %v", err)
	}
	return &drug, delta, nil
}

// GetMovements lists the ledger for one drug, newest first.
func (r *InventoryRepository) GetMovements(ctx context.Context, drugID uint, limit int) ([]models.StockMovement, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit < 1 || limit > 200 {
		limit = 50
	}
	var movements []models.StockMovement
	err := database.DB.WithContext(ctx).
		Where("drug_id = ?", drugID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return movements, nil
}
