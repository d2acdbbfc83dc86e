package utils

import (
	"PharmaCore/models"
	"testing"
)

func validDrugPayload() models.DrugPayload {
	return models.DrugPayload{
		Code:       "AMX-500",
		Name:       "Amoxicillin 500mg",
		Quantity:   100,
		Price:      12.5,
		ExpiryDate: "2026-12-31",
	}
}

func TestValidateDrugPayload(t *testing.T) {
	if err := ValidateDrugPayload(validDrugPayload()); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	missingCode := validDrugPayload()
	missingCode.Code = ""
	if err := ValidateDrugPayload(missingCode); err == nil {
		t.Error("missing code should fail")
	}

	badDate := validDrugPayload()
	badDate.ExpiryDate = "31/12/2026"
	if err := ValidateDrugPayload(badDate); err == nil {
		t.Error("malformed expiry date should fail")
	}

	noExpiry := validDrugPayload()
	noExpiry.ExpiryDate = ""
	if err := ValidateDrugPayload(noExpiry); err != nil {
		t.Errorf("empty expiry date is optional, got: %v", err)
	}

	negativePrice := validDrugPayload()
	negativePrice.Price = -1
	if err := ValidateDrugPayload(negativePrice); err == nil {
		t.Error("negative price should fail")
	}
}

func TestValidateStockAdjustment(t *testing.T) {
	valid := models.StockAdjustmentRequest{
		ProductID:  1,
		Quantity:   40,
		Reason:     "Annual stocktake",
		AdjustedBy: "jdoe",
	}
	if err := ValidateStockAdjustment(valid); err != nil {
		t.Fatalf("valid adjustment rejected: %v", err)
	}

	noReason := valid
	noReason.Reason = ""
	if err := ValidateStockAdjustment(noReason); err == nil {
		t.Error("adjustment without a reason should fail")
	}

	noProduct := valid
	noProduct.ProductID = 0
	if err := ValidateStockAdjustment(noProduct); err == nil {
		t.Error("adjustment without a product should fail")
	}
}

func TestValidateDispenseRequest(t *testing.T) {
	valid := models.DispenseRequest{
		Items: []models.DispenseItemRequest{
			{ItemID: 1, DrugID: 2, Quantity: 3},
		},
		AmountPaid:  50,
		DispensedBy: "jdoe",
	}
	if err := ValidateDispenseRequest(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	noItems := valid
	noItems.Items = nil
	if err := ValidateDispenseRequest(noItems); err == nil {
		t.Error("request without items should fail")
	}

	zeroQuantity := valid
	zeroQuantity.Items = []models.DispenseItemRequest{{ItemID: 1, DrugID: 2, Quantity: 0}}
	if err := ValidateDispenseRequest(zeroQuantity); err == nil {
		t.Error("zero item quantity should fail")
	}

	negativePaid := valid
	negativePaid.AmountPaid = -5
	if err := ValidateDispenseRequest(negativePaid); err == nil {
		t.Error("negative payment should fail")
	}
}

func TestValidatePrescriptionPayload(t *testing.T) {
	valid := models.PrescriptionPayload{
		PatientID:   "PAT-000001",
		PhysicianID: "PHY-000001",
		Priority:    models.PriorityUrgent,
		Items: []models.PrescriptionItemPayload{
			{DrugID: 1, Quantity: 10},
		},
	}
	if err := ValidatePrescriptionPayload(valid); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	badPriority := valid
	badPriority.Priority = "whenever"
	if err := ValidatePrescriptionPayload(badPriority); err == nil {
		t.Error("unknown priority should fail")
	}

	noItems := valid
	noItems.Items = nil
	if err := ValidatePrescriptionPayload(noItems); err == nil {
		t.Error("prescription without items should fail")
	}

	zeroDrug := valid
	zeroDrug.Items = []models.PrescriptionItemPayload{{DrugID: 0, Quantity: 5}}
	if err := ValidatePrescriptionPayload(zeroDrug); err == nil {
		t.Error("item without a drug should fail")
	}
}
