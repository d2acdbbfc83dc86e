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
	PhysicianCacheExpiry = 7 * 24 * time.Hour
)

type PhysicianRepository struct {
	cache *cache.Cache
}

func NewPhysicianRepository(cache *cache.Cache) *PhysicianRepository {
	return &PhysicianRepository{cache: cache}
}

func (r *PhysicianRepository) Create(ctx context.Context, physician *models.Physician) error {
	lockKey := fmt.Sprintf("physician_lock:%s_%s", physician.FirstName, physician.LastName)
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

	// Reject exact duplicate names
	var existing models.Physician
	if err := database.DB.Where("first_name = ? AND last_name = ?", physician.FirstName, physician.LastName).First(&existing).Error; err == nil {
		return errors.New("physician with the same name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for existing physician: %w", err)
	}

	// Obtain the next sequence value outside the transaction
	var nextID string
	if err := database.DB.Raw("SELECT 'PHY-' || LPAD(nextval('physician_id_seq')::TEXT, 6, '0')").Scan(&nextID).Error; err != nil {
		return fmt.Errorf("failed to obtain next sequence value: %w", err)
	}
	physician.ID = nextID

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(physician).Error; err != nil {
			if rollbackErr := database.DB.Exec("SELECT setval('physician_id_seq', (SELECT last_value FROM physician_id_seq) - 1, false)").Error; rollbackErr != nil {
				return fmt.Errorf("transaction failed and sequence rollback failed: %v, rollback error: %v", err, rollbackErr)
			}
			return fmt.Errorf("failed to create physician: %w", err)
		}
		if err := r.cache.Delete(ctx, r.getPhysicianCacheKey(physician.ID)); err != nil {
			return fmt.Errorf("failed to delete physician cache: %w", err)
		}
		return r.cache.Delete(ctx, "physicians_cache")
	})
}

func (r *PhysicianRepository) GetByID(ctx context.Context, id string) (*models.Physician, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getPhysicianCacheKey(id)
	cachedPhysician, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedPhysician != "" {
		var physician models.Physician
		if err := json.Unmarshal([]byte(cachedPhysician), &physician); err == nil {
			return &physician, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get physician from cache: %v", err)
	}

	var physician models.Physician
	err = database.DB.First(&physician, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get physician: %w", err)
	}

	physicianJSON, err := json.Marshal(physician)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal physician: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, physicianJSON, PhysicianCacheExpiry); err != nil {
		log.Printf("Failed to set physician in cache: %v", err)
	}

	return &physician, nil
}

func (r *PhysicianRepository) GetAll(ctx context.Context) ([]models.Physician, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "physicians_cache"
	cachedPhysicians, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedPhysicians != "" {
		var physicians []models.Physician
		if err := json.Unmarshal([]byte(cachedPhysicians), &physicians); err == nil {
			return physicians, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get physicians from cache: %v", err)
	}

	var physicians []models.Physician
	err = database.DB.Order("last_name ASC").Find(&physicians).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all physicians: %w", err)
	}

	physiciansJSON, err := json.Marshal(physicians)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal physicians: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, physiciansJSON, PhysicianCacheExpiry); err != nil {
		log.Printf("Failed to set physicians in cache: %v", err)
	}

	return physicians, nil
}

func (r *PhysicianRepository) Update(ctx context.Context, physician *models.Physician) error {
	var existing models.Physician
	if err := database.DB.First(&existing, "id = ?", physician.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhysicianNotFound
		}
		return fmt.Errorf("failed to find physician: %w", err)
	}
	physician.CreatedAt = existing.CreatedAt

	if err := database.DB.Save(physician).Error; err != nil {
		return fmt.Errorf("failed to update physician: %w", err)
	}
	if err := r.cache.Delete(ctx, r.getPhysicianCacheKey(physician.ID)); err != nil {
		return fmt.Errorf("failed to delete physician cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "physicians_cache")
}

func (r *PhysicianRepository) Delete(ctx context.Context, id string) error {
	var physician models.Physician
	if err := database.DB.First(&physician, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhysicianNotFound
		}
		return fmt.Errorf("failed to find physician: %w", err)
	}

	if err := database.DB.Delete(&models.Physician{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete physician: %w", err)
	}
	if err := r.cache.Delete(ctx, r.getPhysicianCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete physician cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "physicians_cache")
}

func (r *PhysicianRepository) getPhysicianCacheKey(id string) string {
	return fmt.Sprintf("physician_cache:%s", id)
}
