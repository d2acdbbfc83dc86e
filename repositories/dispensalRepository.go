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
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrPrescriptionDispensed rejects dispensing a terminal prescription.
var ErrPrescriptionDispensed = errors.New("prescription has already been fully dispensed")

// DispenseResult is what the operator sees on the receipt.
type DispenseResult struct {
	DispensalNo    string  `json:"dispensalNo"`
	PrescriptionNo string  `json:"prescriptionNo"`
	PatientName    string  `json:"patientName"`
	Status         string  `json:"status"`
	TotalAmount    float64 `json:"totalAmount"`
	AmountPaid     float64 `json:"amountPaid"`
	Change         float64 `json:"change"`
}

type DispensalRepository struct {
	cache *cache.Cache
}

func NewDispensalRepository(cache *cache.Cache) *DispensalRepository {
	return &DispensalRepository{cache: cache}
}

// Dispense executes the whole dispensing operation as one unit of work: stock
// verification, item updates, inventory decrements with ledger rows, receipt
// creation, status transition and the payment entry. Any failure rolls the
// entire transaction back, leaving stock and the prescription untouched.
//
// Drug rows are locked FOR UPDATE inside the transaction so two concurrent
// dispenses cannot both pass the stock check against a stale quantity. The
// redis lock on the prescription keeps duplicate submits of the same
// prescription from racing each other at all.
func (r *DispensalRepository) Dispense(ctx context.Context, prescriptionID uint, req models.DispenseRequest) (*DispenseResult, error) {
	lockKey := fmt.Sprintf("dispense_lock:%d", prescriptionID)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 30*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	now := time.Now()
	dispensalNo := utils.GenerateDispensalNo(now)

	var result *DispenseResult
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var prescription models.Prescription
		if err := tx.Preload("Patient").
			Where("id = ? AND is_deleted = ?", prescriptionID, false).
			First(&prescription).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPrescriptionNotFound
			}
			return fmt.Errorf("failed to find prescription: %w", err)
		}
		if prescription.Status == models.PrescriptionStatusDispensed {
			return ErrPrescriptionDispensed
		}

		var items []models.PrescriptionItem
		if err := tx.Where("prescription_id = ?", prescriptionID).Find(&items).Error; err != nil {
			return fmt.Errorf("failed to load prescription items: %w", err)
		}

		// Lock the touched drug rows so the stock check and the decrement
		// see the same quantities.
		drugIDs := make([]uint, 0, len(req.Items))
		for _, item := range req.Items {
			drugIDs = append(drugIDs, uint(item.DrugID))
		}
		var drugs []models.Drug
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ? AND is_deleted = ?", drugIDs, false).
			Find(&drugs).Error; err != nil {
			return fmt.Errorf("failed to lock drug rows: %w", err)
		}
		drugByID := make(map[uint]*models.Drug, len(drugs))
		for i := range drugs {
			drugByID[drugs[i].ID] = &drugs[i]
		}
		for _, item := range req.Items {
			if _, ok := drugByID[uint(item.DrugID)]; !ok {
				return fmt.Errorf("%w: id %d", ErrDrugNotFound, uint(item.DrugID))
			}
		}
		for i := range items {
			if drug, ok := drugByID[items[i].DrugID]; ok {
				items[i].Drug = *drug
			}
		}

		plan, err := utils.BuildDispensePlan(items, req.Items)
		if err != nil {
			return err
		}

		dispensalItems := make([]models.DispensalItem, 0, len(plan))
		for _, line := range plan {
			if err := tx.Model(&models.PrescriptionItem{}).
				Where("id = ?", line.ItemID).
				Updates(map[string]interface{}{
					"quantity_dispensed": line.Quantity,
					"is_dispensed":       true,
					"dispensed_at":       now,
					"dispensed_by":       req.DispensedBy,
				}).Error; err != nil {
				return fmt.Errorf("failed to update prescription item: %w", err)
			}

			drug := drugByID[line.DrugID]
			drug.Quantity -= line.Quantity
			if err := tx.Model(&models.Drug{}).
				Where("id = ?", line.DrugID).
				Update("quantity", drug.Quantity).Error; err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}

			movement := models.StockMovement{
				DrugID:       line.DrugID,
				Type:         models.MovementDispense,
				Quantity:     -line.Quantity,
				BalanceAfter: drug.Quantity,
				Reason:       fmt.Sprintf("Dispensed against %s", prescription.PrescriptionNo),
				Reference:    dispensalNo,
				RecordedBy:   req.DispensedBy,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return fmt.Errorf("failed to record stock movement: %w", err)
			}

			dispensalItems = append(dispensalItems, models.DispensalItem{
				DrugID:     line.DrugID,
				DrugName:   line.DrugName,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: line.TotalPrice,
			})
		}

		dispensal := models.DrugDispensal{
			DispensalNo:    dispensalNo,
			PrescriptionID: prescriptionID,
			TotalAmount:    float64(req.TotalAmount),
			AmountPaid:     float64(req.AmountPaid),
			PaymentMethod:  req.PaymentMethod,
			Notes:          req.Notes,
			DispensedBy:    req.DispensedBy,
			Items:          dispensalItems,
		}
		if err := tx.Create(&dispensal).Error; err != nil {
			return fmt.Errorf("failed to create dispensal record: %w", err)
		}

		dispensedCount := len(plan)
		for _, item := range items {
			if item.IsDispensed {
				dispensedCount++
			}
		}
		status := utils.NextPrescriptionStatus(len(items), dispensedCount)
		updates := map[string]interface{}{"status": status}
		if status == models.PrescriptionStatusDispensed {
			updates["dispensed_at"] = now
			updates["dispensed_by"] = req.DispensedBy
		}
		if err := tx.Model(&models.Prescription{}).
			Where("id = ?", prescriptionID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update prescription status: %w", err)
		}

		if float64(req.AmountPaid) > 0 {
			payment := models.BalanceTransaction{
				PatientID:      prescription.PatientID,
				PrescriptionID: prescriptionID,
				Type:           "debit",
				Amount:         float64(req.AmountPaid),
				PaymentMethod:  req.PaymentMethod,
				Description:    fmt.Sprintf("Payment for prescription %s", prescription.PrescriptionNo),
			}
			if err := tx.Create(&payment).Error; err != nil {
				return fmt.Errorf("failed to record payment: %w", err)
			}
		}

		result = &DispenseResult{
			DispensalNo:    dispensalNo,
			PrescriptionNo: prescription.PrescriptionNo,
			PatientName:    prescription.Patient.FullName(),
			Status:         status,
			TotalAmount:    float64(req.TotalAmount),
			AmountPaid:     float64(req.AmountPaid),
			Change:         utils.ComputeChange(float64(req.AmountPaid), float64(req.TotalAmount)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Invalidate the read caches touched by the transaction
	if err := r.cache.Delete(ctx, DrugsCacheKey); err != nil {
		log.Printf("Failed to delete drugs cache: %v", err)
	}
	if err := r.cache.Delete(ctx, DashboardCacheKey); err != nil {
		log.Printf("Failed to delete dashboard cache: %v", err)
	}
	return result, nil
}

// GetByNo fetches one receipt with its items.
func (r *DispensalRepository) GetByNo(ctx context.Context, dispensalNo string) (*models.DrugDispensal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var dispensal models.DrugDispensal
	err := database.DB.WithContext(ctx).
		Preload("Items").
		First(&dispensal, "dispensal_no = ?", dispensalNo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dispensal: %w", err)
	}
	return &dispensal, nil
}
