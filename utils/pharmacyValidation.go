package utils

import (
	"PharmaCore/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateDrugPayload checks a drug create/update body.
func ValidateDrugPayload(payload models.DrugPayload) error {
	return validation.Errors{
		"code":     validation.Validate(payload.Code, validation.Required, validation.Length(1, 50)),
		"name":     validation.Validate(payload.Name, validation.Required, validation.Length(1, 255)),
		"quantity": validation.Validate(int(payload.Quantity), validation.Min(0)),
		"price":    validation.Validate(float64(payload.Price), validation.Min(0.0)),
		"expiry_date": validation.Validate(payload.ExpiryDate,
			validation.Date("2006-01-02").Error("expiry_date must be YYYY-MM-DD")),
	}.Filter()
}

// ValidateStockAdjustment checks a manual stock adjustment body. The reason
// is mandatory so the movement ledger always records why.
func ValidateStockAdjustment(req models.StockAdjustmentRequest) error {
	return validation.Errors{
		"productId":  validation.Validate(int(req.ProductID), validation.Required, validation.Min(1)),
		"quantity":   validation.Validate(int(req.Quantity), validation.Min(0)),
		"reason":     validation.Validate(req.Reason, validation.Required),
		"adjustedBy": validation.Validate(req.AdjustedBy, validation.Required),
	}.Filter()
}

// ValidateDispenseRequest checks the dispense body before any storage work.
func ValidateDispenseRequest(req models.DispenseRequest) error {
	if err := (validation.Errors{
		"items":       validation.Validate(req.Items, validation.Required),
		"amountPaid":  validation.Validate(float64(req.AmountPaid), validation.Min(0.0)),
		"dispensedBy": validation.Validate(req.DispensedBy, validation.Required),
	}.Filter()); err != nil {
		return err
	}
	for _, item := range req.Items {
		if err := (validation.Errors{
			"itemId":   validation.Validate(int(item.ItemID), validation.Required, validation.Min(1)),
			"drugId":   validation.Validate(int(item.DrugID), validation.Required, validation.Min(1)),
			"quantity": validation.Validate(int(item.Quantity), validation.Required, validation.Min(1)),
		}.Filter()); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePrescriptionPayload checks a new prescription body.
func ValidatePrescriptionPayload(payload models.PrescriptionPayload) error {
	if err := (validation.Errors{
		"patient_id":   validation.Validate(payload.PatientID, validation.Required),
		"physician_id": validation.Validate(payload.PhysicianID, validation.Required),
		"priority": validation.Validate(payload.Priority, validation.Required,
			validation.In(models.PriorityEmergency, models.PriorityUrgent, models.PriorityNormal)),
		"items": validation.Validate(payload.Items, validation.Required),
	}.Filter()); err != nil {
		return err
	}
	for _, item := range payload.Items {
		if err := (validation.Errors{
			"drug_id":  validation.Validate(int(item.DrugID), validation.Required, validation.Min(1)),
			"quantity": validation.Validate(int(item.Quantity), validation.Required, validation.Min(1)),
		}.Filter()); err != nil {
			return err
		}
	}
	return nil
}
