package repositories

import (
	"PharmaCore/cache"
	"PharmaCore/database"
	"PharmaCore/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DrugCacheExpiry = 24 * time.Hour
	DrugsCacheKey   = "drugs_cache"
)

// Sentinel errors the handlers translate into HTTP statuses.
var (
	ErrDrugNotFound   = errors.New("drug not found")
	ErrDrugCodeExists = errors.New("a drug with this code already exists")
)

type DrugRepository struct {
	cache *cache.Cache
}

func NewDrugRepository(cache *cache.Cache) *DrugRepository {
	return &DrugRepository{cache: cache}
}

func (r *DrugRepository) Create(ctx context.Context, drug *models.Drug) error {
	lockKey := fmt.Sprintf("drug_lock:%s", drug.Code)
	lockValue := uuid.New().String()
	// Retry logic for acquiring lock
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
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	// Codes must be unique among live records; soft-deleted codes may be reused
	var existing models.Drug
	if err := database.DB.Where("code = ? AND is_deleted = ?", drug.Code, false).First(&existing).Error; err == nil {
		return ErrDrugCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for existing drug: %w", err)
	}

	if drug.Unit == "" {
		drug.Unit = models.DefaultDrugUnit
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(drug).Error; err != nil {
			return fmt.Errorf("failed to create drug: %w", err)
		}
		if err := r.cache.Delete(ctx, DrugsCacheKey); err != nil {
			return fmt.Errorf("failed to delete drugs cache: %w", err)
		}
		return r.cache.Delete(ctx, DashboardCacheKey)
	})
}

func (r *DrugRepository) GetByID(ctx context.Context, id uint) (*models.Drug, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var drug models.Drug
	err := database.DB.Where("id = ? AND is_deleted = ?", id, false).First(&drug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get drug: %w", err)
	}
	return &drug, nil
}

// GetAll returns every live drug, newest first.
func (r *DrugRepository) GetAll(ctx context.Context) ([]models.Drug, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cachedDrugs, err := r.cache.Get(ctx, DrugsCacheKey)
	if err == nil && cachedDrugs != "" {
		var drugs []models.Drug
		if err := json.Unmarshal([]byte(cachedDrugs), &drugs); err == nil {
			return drugs, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get drugs from cache: %v", err)
	}

	var drugs []models.Drug
	err = database.DB.Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&drugs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all drugs: %w", err)
	}

	drugsJSON, err := json.Marshal(drugs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal drugs: %w", err)
	}
	if err := r.cache.Set(ctx, DrugsCacheKey, drugsJSON, DrugCacheExpiry); err != nil {
		log.Printf("Failed to set drugs in cache: %v", err)
	}

	return drugs, nil
}

func (r *DrugRepository) Update(ctx context.Context, drug *models.Drug) error {
	lockKey := fmt.Sprintf("drug_lock:%d", drug.ID)
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
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	var existing models.Drug
	if err := database.DB.Where("id = ? AND is_deleted = ?", drug.ID, false).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDrugNotFound
		}
		return fmt.Errorf("failed to find drug: %w", err)
	}

	// The new code must not collide with a different live record
	var conflict models.Drug
	if err := database.DB.Where("code = ? AND id <> ? AND is_deleted = ?", drug.Code, drug.ID, false).First(&conflict).Error; err == nil {
		return ErrDrugCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for code conflict: %w", err)
	}

	if drug.Unit == "" {
		drug.Unit = models.DefaultDrugUnit
	}
	drug.CreatedAt = existing.CreatedAt
	drug.Quantity = existing.Quantity // quantity moves only via dispensing or adjustment

	if err := database.DB.Save(drug).Error; err != nil {
		return fmt.Errorf("failed to update drug: %w", err)
	}
	if err := r.cache.Delete(ctx, DrugsCacheKey); err != nil {
		return fmt.Errorf("failed to delete drugs cache: %w", err)
	}
	return r.cache.Delete(ctx, DashboardCacheKey)
}

// SoftDelete hides the drug from all listings without removing the row.
func (r *DrugRepository) SoftDelete(ctx context.Context, id uint) error {
	var drug models.Drug
	if err := database.DB.Where("id = ? AND is_deleted = ?", id, false).First(&drug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDrugNotFound
		}
		return fmt.Errorf("failed to find drug: %w", err)
	}

	if err := database.DB.Model(&drug).Update("is_deleted", true).Error; err != nil {
		return fmt.Errorf("failed to delete drug: %w", err)
	}
	if err := r.cache.Delete(ctx, DrugsCacheKey); err != nil {
		return fmt.Errorf("failed to delete drugs cache: %w", err)
	}
	return r.cache.Delete(ctx, DashboardCacheKey)
}
