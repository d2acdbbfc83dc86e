package utils

import (
	"PharmaCore/models"
	"fmt"
	"time"
)

// UnknownItemError rejects a dispense request referencing an item that does
// not belong to the prescription, or that names the wrong drug for it.
type UnknownItemError struct {
	ItemID uint
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("item %d does not belong to this prescription", e.ItemID)
}

// DuplicateItemError rejects a request listing the same item twice. Applying
// such a plan would decrement stock twice for one prescription line.
type DuplicateItemError struct {
	ItemID uint
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("item %d appears more than once in the request", e.ItemID)
}

// InsufficientStockError carries the offending drug and the shortfall.
type InsufficientStockError struct {
	DrugName  string
	Available int
	Required  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d available, %d required", e.DrugName, e.Available, e.Required)
}

// ItemAlreadyDispensedError rejects dispensing the same item twice.
type ItemAlreadyDispensedError struct {
	ItemID   uint
	DrugName string
}

func (e *ItemAlreadyDispensedError) Error() string {
	return fmt.Sprintf("item %d (%s) has already been dispensed", e.ItemID, e.DrugName)
}

// InvalidQuantityError rejects a dispense quantity that does not match the
// prescribed amount. Items are dispensed whole; partial fulfilment happens at
// the prescription level by leaving items for a later transaction.
type InvalidQuantityError struct {
	ItemID     uint
	DrugName   string
	Prescribed int
	Requested  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity for %s: %d requested, %d prescribed", e.DrugName, e.Requested, e.Prescribed)
}

// DispensePlanItem is one line of a validated dispense plan. Drug name and
// prices are resolved from the stored prescription item, never the request.
type DispensePlanItem struct {
	ItemID     uint
	DrugID     uint
	DrugName   string
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
}

// BuildDispensePlan checks every requested item against the prescription's
// stored items and current stock, and returns the full plan or the first
// error. Each item may appear once and must be dispensed at its full
// prescribed quantity. Stock is drawn down across the plan, so two items
// backed by the same drug cannot each pass against the same units. No error
// means every line can be applied; the caller commits the whole plan or
// nothing.
func BuildDispensePlan(items []models.PrescriptionItem, requests []models.DispenseItemRequest) ([]DispensePlanItem, error) {
	byID := make(map[uint]*models.PrescriptionItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	remaining := make(map[uint]int, len(items))
	planned := make(map[uint]bool, len(requests))

	plan := make([]DispensePlanItem, 0, len(requests))
	for _, req := range requests {
		item, ok := byID[uint(req.ItemID)]
		if !ok || uint(req.DrugID) != item.DrugID {
			return nil, &UnknownItemError{ItemID: uint(req.ItemID)}
		}
		if planned[item.ID] {
			return nil, &DuplicateItemError{ItemID: item.ID}
		}
		planned[item.ID] = true
		if item.IsDispensed {
			return nil, &ItemAlreadyDispensedError{ItemID: item.ID, DrugName: item.Drug.Name}
		}
		quantity := int(req.Quantity)
		if quantity != item.QuantityPrescribed {
			return nil, &InvalidQuantityError{
				ItemID:     item.ID,
				DrugName:   item.Drug.Name,
				Prescribed: item.QuantityPrescribed,
				Requested:  quantity,
			}
		}
		available, seen := remaining[item.DrugID]
		if !seen {
			available = item.Drug.Quantity
		}
		if available < quantity {
			return nil, &InsufficientStockError{
				DrugName:  item.Drug.Name,
				Available: available,
				Required:  quantity,
			}
		}
		remaining[item.DrugID] = available - quantity
		plan = append(plan, DispensePlanItem{
			ItemID:     item.ID,
			DrugID:     item.DrugID,
			DrugName:   item.Drug.Name,
			Quantity:   quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.UnitPrice * float64(quantity),
		})
	}
	return plan, nil
}

// NextPrescriptionStatus recomputes the status after a dispense commits.
func NextPrescriptionStatus(totalItems, dispensedItems int) string {
	if totalItems > 0 && dispensedItems >= totalItems {
		return models.PrescriptionStatusDispensed
	}
	return models.PrescriptionStatusPartially
}

// ComputeChange is the cash to hand back, floored at zero for display.
func ComputeChange(amountPaid, totalAmount float64) float64 {
	change := amountPaid - totalAmount
	if change < 0 {
		return 0
	}
	return change
}

// GenerateDispensalNo mints a receipt number of the form
// DISP-<year>-<last 6 digits of the epoch-millisecond timestamp>.
func GenerateDispensalNo(now time.Time) string {
	return fmt.Sprintf("DISP-%d-%06d", now.Year(), now.UnixMilli()%1000000)
}
