package utils

import (
	"PharmaCore/models"
	"errors"
	"regexp"
	"testing"
	"time"
)

func item(id, drugID uint, prescribed, stock int, price float64) models.PrescriptionItem {
	return models.PrescriptionItem{
		ID:                 id,
		DrugID:             drugID,
		QuantityPrescribed: prescribed,
		UnitPrice:          price,
		Drug: models.Drug{
			ID:       drugID,
			Name:     "Amoxicillin 500mg",
			Quantity: stock,
		},
	}
}

func request(itemID, drugID, quantity int) models.DispenseItemRequest {
	return models.DispenseItemRequest{
		ItemID:   models.FlexInt(itemID),
		DrugID:   models.FlexInt(drugID),
		Quantity: models.FlexInt(quantity),
	}
}

func TestBuildDispensePlan(t *testing.T) {
	items := []models.PrescriptionItem{
		item(1, 100, 10, 50, 2.5),
		item(2, 200, 5, 20, 10),
	}

	plan, err := BuildDispensePlan(items, []models.DispenseItemRequest{
		request(1, 100, 10),
		request(2, 200, 5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("plan has %d lines, want 2", len(plan))
	}
	if plan[0].TotalPrice != 25 {
		t.Errorf("line total = %v, want 25", plan[0].TotalPrice)
	}
	if plan[1].Quantity != 5 {
		t.Errorf("second line quantity = %d, want 5", plan[1].Quantity)
	}
}

func TestBuildDispensePlanDuplicateItem(t *testing.T) {
	// The same item twice in one request must not yield two plan lines; that
	// would decrement stock twice and over-count dispensed items when the
	// prescription status is recomputed.
	items := []models.PrescriptionItem{
		item(1, 100, 10, 50, 2.5),
		item(2, 200, 5, 20, 10),
	}

	_, err := BuildDispensePlan(items, []models.DispenseItemRequest{
		request(1, 100, 10),
		request(1, 100, 10),
	})
	var duplicate *DuplicateItemError
	if !errors.As(err, &duplicate) {
		t.Fatalf("got %v, want DuplicateItemError", err)
	}
	if duplicate.ItemID != 1 {
		t.Errorf("duplicate item id = %d, want 1", duplicate.ItemID)
	}
}

func TestBuildDispensePlanUnknownItem(t *testing.T) {
	items := []models.PrescriptionItem{item(1, 100, 10, 50, 2.5)}

	_, err := BuildDispensePlan(items, []models.DispenseItemRequest{request(99, 100, 1)})
	var unknown *UnknownItemError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownItemError", err)
	}

	// Right item id but wrong drug is also rejected.
	_, err = BuildDispensePlan(items, []models.DispenseItemRequest{request(1, 999, 1)})
	if !errors.As(err, &unknown) {
		t.Fatalf("drug mismatch: got %v, want UnknownItemError", err)
	}
}

func TestBuildDispensePlanInsufficientStock(t *testing.T) {
	items := []models.PrescriptionItem{item(1, 100, 10, 4, 2.5)}

	_, err := BuildDispensePlan(items, []models.DispenseItemRequest{request(1, 100, 10)})
	var short *InsufficientStockError
	if !errors.As(err, &short) {
		t.Fatalf("got %v, want InsufficientStockError", err)
	}
	if short.Available != 4 || short.Required != 10 {
		t.Errorf("shortfall = %d/%d, want 4/10", short.Available, short.Required)
	}
}

func TestBuildDispensePlanSharedDrugStock(t *testing.T) {
	// Two items backed by the same drug must not each pass against the same
	// units. 6 + 5 exceeds the 10 on hand even though either alone fits.
	items := []models.PrescriptionItem{
		item(1, 100, 6, 10, 1),
		item(2, 100, 5, 10, 1),
	}

	_, err := BuildDispensePlan(items, []models.DispenseItemRequest{
		request(1, 100, 6),
		request(2, 100, 5),
	})
	var short *InsufficientStockError
	if !errors.As(err, &short) {
		t.Fatalf("got %v, want InsufficientStockError", err)
	}
	if short.Available != 4 {
		t.Errorf("remaining after first line = %d, want 4", short.Available)
	}
}

func TestBuildDispensePlanAlreadyDispensed(t *testing.T) {
	dispensed := item(1, 100, 10, 50, 2.5)
	dispensed.IsDispensed = true

	_, err := BuildDispensePlan([]models.PrescriptionItem{dispensed}, []models.DispenseItemRequest{request(1, 100, 5)})
	var again *ItemAlreadyDispensedError
	if !errors.As(err, &again) {
		t.Fatalf("got %v, want ItemAlreadyDispensedError", err)
	}
}

func TestBuildDispensePlanInvalidQuantity(t *testing.T) {
	items := []models.PrescriptionItem{item(1, 100, 10, 50, 2.5)}

	// Items are dispensed whole: anything other than the prescribed quantity
	// is rejected, including a partial fill.
	for _, quantity := range []int{0, -2, 3, 11} {
		_, err := BuildDispensePlan(items, []models.DispenseItemRequest{request(1, 100, quantity)})
		var invalid *InvalidQuantityError
		if !errors.As(err, &invalid) {
			t.Fatalf("quantity %d: got %v, want InvalidQuantityError", quantity, err)
		}
	}
}

func TestNextPrescriptionStatus(t *testing.T) {
	if got := NextPrescriptionStatus(3, 3); got != models.PrescriptionStatusDispensed {
		t.Errorf("all items done: got %q", got)
	}
	if got := NextPrescriptionStatus(3, 1); got != models.PrescriptionStatusPartially {
		t.Errorf("some items done: got %q", got)
	}
}

func TestComputeChange(t *testing.T) {
	if got := ComputeChange(100, 75.5); got != 24.5 {
		t.Errorf("overpayment: got %v, want 24.5", got)
	}
	if got := ComputeChange(50, 75.5); got != 0 {
		t.Errorf("underpayment floors at zero: got %v", got)
	}
}

func TestGenerateDispensalNo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	no := GenerateDispensalNo(now)
	if !regexp.MustCompile(`^DISP-2025-\d{6}$`).MatchString(no) {
		t.Errorf("dispensal number %q does not match DISP-<year>-<6 digits>", no)
	}
}
