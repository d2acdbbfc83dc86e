package models

// Request payloads for the pharmacy API. Numeric fields use the Flex types so
// clients may post numbers either as JSON numbers or as strings.

// DrugPayload is shared by drug creation and update. ID is only read on
// update; ExpiryDate is an optional YYYY-MM-DD string.
type DrugPayload struct {
	ID                   FlexInt   `json:"id"`
	Code                 string    `json:"code"`
	Name                 string    `json:"name"`
	GenericName          string    `json:"generic_name"`
	BrandName            string    `json:"brand_name"`
	Category             string    `json:"category"`
	Quantity             FlexInt   `json:"quantity"`
	ReorderLevel         FlexInt   `json:"reorder_level"`
	Price                FlexFloat `json:"price"`
	Unit                 string    `json:"unit"`
	BatchNumber          string    `json:"batch_number"`
	ExpiryDate           string    `json:"expiry_date"`
	PrescriptionRequired *bool     `json:"prescription_required"`
}

// StockAdjustmentRequest sets a drug's quantity on hand directly.
type StockAdjustmentRequest struct {
	ProductID  FlexInt `json:"productId"`
	Quantity   FlexInt `json:"quantity"`
	Reason     string  `json:"reason"`
	AdjustedBy string  `json:"adjustedBy"`
}

// DispenseItemRequest names one prescription item to dispense.
type DispenseItemRequest struct {
	ItemID   FlexInt `json:"itemId"`
	DrugID   FlexInt `json:"drugId"`
	Quantity FlexInt `json:"quantity"`
}

// DispenseRequest is the body of the dispensing operation.
type DispenseRequest struct {
	Items         []DispenseItemRequest `json:"items"`
	TotalAmount   FlexFloat             `json:"totalAmount"`
	AmountPaid    FlexFloat             `json:"amountPaid"`
	PaymentMethod string                `json:"paymentMethod"`
	Notes         string                `json:"notes"`
	DispensedBy   string                `json:"dispensedBy"`
}

// PrescriptionItemPayload is one line of a new prescription.
type PrescriptionItemPayload struct {
	DrugID       FlexInt `json:"drug_id"`
	Quantity     FlexInt `json:"quantity"`
	Dosage       string  `json:"dosage"`
	Frequency    string  `json:"frequency"`
	Duration     string  `json:"duration"`
	Instructions string  `json:"instructions"`
}

// PrescriptionPayload creates a new prescription.
type PrescriptionPayload struct {
	PatientID   string                    `json:"patient_id"`
	PhysicianID string                    `json:"physician_id"`
	Priority    string                    `json:"priority"`
	Diagnosis   string                    `json:"diagnosis"`
	Notes       string                    `json:"notes"`
	Items       []PrescriptionItemPayload `json:"items"`
}
