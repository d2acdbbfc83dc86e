package repositories

import (
	"PharmaCore/cache"
	"PharmaCore/database"
	"PharmaCore/models"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrPhysicianNotFound    = errors.New("physician not found")
)

// priorityOrderExpr sorts emergency before urgent before normal.
const priorityOrderExpr = "CASE priority WHEN 'emergency' THEN 0 WHEN 'urgent' THEN 1 ELSE 2 END"

// PendingItemView is one prescription line in the queue, flagged with whether
// current stock covers the quantity still owed.
type PendingItemView struct {
	models.PrescriptionItem
	Available int  `json:"available"`
	InStock   bool `json:"inStock"`
}

// PendingRow is one queue entry.
type PendingRow struct {
	models.Prescription
	QueueItems []PendingItemView `json:"queue_items"`
}

// PendingPage is one page of the pending queue.
type PendingPage struct {
	Prescriptions  []PendingRow     `json:"prescriptions"`
	PriorityCounts map[string]int64 `json:"priorityCounts"`
	Total          int64            `json:"total"`
	Page           int              `json:"page"`
	Limit          int              `json:"limit"`
}

type PrescriptionRepository struct {
	cache *cache.Cache
}

func NewPrescriptionRepository(cache *cache.Cache) *PrescriptionRepository {
	return &PrescriptionRepository{cache: cache}
}

// Create builds a prescription from the payload, pricing every item from the
// live catalog and minting the RX number from a sequence.
func (r *PrescriptionRepository) Create(ctx context.Context, payload models.PrescriptionPayload) (*models.Prescription, error) {
	lockKey := fmt.Sprintf("prescription_lock:%s", payload.PatientID)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, errors.New("failed to acquire lock")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	var patient models.Patient
	if err := database.DB.First(&patient, "id = ?", payload.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to find patient: %w", err)
	}
	var physician models.Physician
	if err := database.DB.First(&physician, "id = ?", payload.PhysicianID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhysicianNotFound
		}
		return nil, fmt.Errorf("failed to find physician: %w", err)
	}

	// Price items from the live catalog
	items := make([]models.PrescriptionItem, 0, len(payload.Items))
	var totalCost float64
	for _, itemPayload := range payload.Items {
		var drug models.Drug
		if err := database.DB.Where("id = ? AND is_deleted = ?", uint(itemPayload.DrugID), false).First(&drug).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: id %d", ErrDrugNotFound, uint(itemPayload.DrugID))
			}
			return nil, fmt.Errorf("failed to find drug: %w", err)
		}
		quantity := int(itemPayload.Quantity)
		item := models.PrescriptionItem{
			DrugID:             drug.ID,
			QuantityPrescribed: quantity,
			UnitPrice:          drug.Price,
			TotalPrice:         drug.Price * float64(quantity),
			Dosage:             itemPayload.Dosage,
			Frequency:          itemPayload.Frequency,
			Duration:           itemPayload.Duration,
			Instructions:       itemPayload.Instructions,
		}
		totalCost += item.TotalPrice
		items = append(items, item)
	}

	// Obtain the next sequence value outside the transaction
	var prescriptionNo string
	if err := database.DB.Raw("SELECT 'RX-' || TO_CHAR(NOW(), 'YYYY') || '-' || LPAD(nextval('prescription_no_seq')::TEXT, 6, '0')").Scan(&prescriptionNo).Error; err != nil {
		return nil, fmt.Errorf("failed to obtain next sequence value: %w", err)
	}

	prescription := models.Prescription{
		PrescriptionNo: prescriptionNo,
		PatientID:      payload.PatientID,
		PhysicianID:    payload.PhysicianID,
		Status:         models.PrescriptionStatusPending,
		Priority:       payload.Priority,
		TotalCost:      totalCost,
		Diagnosis:      payload.Diagnosis,
		Notes:          payload.Notes,
		Items:          items,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&prescription).Error; err != nil {
			if rollbackErr := database.DB.Exec("SELECT setval('prescription_no_seq', (SELECT last_value FROM prescription_no_seq) - 1, false)").Error; rollbackErr != nil {
				return fmt.Errorf("transaction failed and sequence rollback failed: %v, rollback error: %v", err, rollbackErr)
			}
			return fmt.Errorf("failed to create prescription: %w", err)
		}
		return r.cache.Delete(ctx, DashboardCacheKey)
	})
	if err != nil {
		return nil, err
	}
	return &prescription, nil
}

// GetPending lists dispensable prescriptions (pending and partially
// dispensed), most urgent and oldest first, each item flagged against current
// stock. The priority counts cover the whole dispensable set regardless of
// the page filters.
func (r *PrescriptionRepository) GetPending(ctx context.Context, priority, search string, page, limit int) (*PendingPage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	dispensable := []string{models.PrescriptionStatusPending, models.PrescriptionStatusPartially}
	query := database.DB.WithContext(ctx).Model(&models.Prescription{}).
		Where("prescription.status IN ? AND prescription.is_deleted = ?", dispensable, false)
	if priority != "" {
		query = query.Where("prescription.priority = ?", priority)
	}
	if search != "" {
		pattern := "%" + strings.TrimSpace(search) + "%"
		query = query.Joins("JOIN patient ON patient.id = prescription.patient_id").
			Where("prescription.prescription_no ILIKE ? OR patient.first_name ILIKE ? OR patient.last_name ILIKE ?",
				pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending prescriptions: %w", err)
	}

	var prescriptions []models.Prescription
	err := query.
		Preload("Patient").
		Preload("Physician").
		Preload("Items").
		Preload("Items.Drug").
		Order(priorityOrderExpr + ", prescription.created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&prescriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending prescriptions: %w", err)
	}

	rows := make([]PendingRow, 0, len(prescriptions))
	for _, prescription := range prescriptions {
		row := PendingRow{Prescription: prescription}
		for _, item := range prescription.Items {
			owed := item.QuantityPrescribed - item.QuantityDispensed
			row.QueueItems = append(row.QueueItems, PendingItemView{
				PrescriptionItem: item,
				Available:        item.Drug.Quantity,
				InStock:          item.IsDispensed || item.Drug.Quantity >= owed,
			})
		}
		rows = append(rows, row)
	}

	counts, err := r.priorityCounts(ctx, dispensable)
	if err != nil {
		return nil, err
	}

	return &PendingPage{
		Prescriptions:  rows,
		PriorityCounts: counts,
		Total:          total,
		Page:           page,
		Limit:          limit,
	}, nil
}

func (r *PrescriptionRepository) priorityCounts(ctx context.Context, statuses []string) (map[string]int64, error) {
	type priorityCount struct {
		Priority string
		Count    int64
	}
	var results []priorityCount
	err := database.DB.WithContext(ctx).Model(&models.Prescription{}).
		Select("priority, COUNT(*) AS count").
		Where("status IN ? AND is_deleted = ?", statuses, false).
		Group("priority").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count priorities: %w", err)
	}
	counts := map[string]int64{
		models.PriorityEmergency: 0,
		models.PriorityUrgent:    0,
		models.PriorityNormal:    0,
	}
	for _, result := range results {
		counts[result.Priority] = result.Count
	}
	return counts, nil
}

// GetByID loads the full prescription with patient, physician and per-item
// drug stock data. Returns nil when missing or soft-deleted.
func (r *PrescriptionRepository) GetByID(ctx context.Context, id uint) (*models.Prescription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var prescription models.Prescription
	err := database.DB.WithContext(ctx).
		Preload("Patient").
		Preload("Physician").
		Preload("Items").
		Preload("Items.Drug").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &prescription, nil
}

// ItemStockFlags annotates a loaded prescription's items against current
// stock for the detail view.
func (r *PrescriptionRepository) ItemStockFlags(prescription *models.Prescription) []PendingItemView {
	views := make([]PendingItemView, 0, len(prescription.Items))
	for _, item := range prescription.Items {
		owed := item.QuantityPrescribed - item.QuantityDispensed
		views = append(views, PendingItemView{
			PrescriptionItem: item,
			Available:        item.Drug.Quantity,
			InStock:          item.IsDispensed || item.Drug.Quantity >= owed,
		})
	}
	return views
}
