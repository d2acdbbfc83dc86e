package models

import (
	"time"
)

// Prescription lifecycle statuses. A prescription only ever moves forward:
// pending -> partially_dispensed -> dispensed.
const (
	PrescriptionStatusPending   = "pending"
	PrescriptionStatusPartially = "partially_dispensed"
	PrescriptionStatusDispensed = "dispensed"
)

// Prescription queue priorities, highest first.
const (
	PriorityEmergency = "emergency"
	PriorityUrgent    = "urgent"
	PriorityNormal    = "normal"
)

// Stock movement types recorded in the inventory ledger.
const (
	MovementDispense   = "dispense"
	MovementAdjustment = "adjustment"
)

// DefaultDrugUnit is applied when a drug is created without a unit.
const DefaultDrugUnit = "Pieces"

// Patient model
type Patient struct {
	ID            string         `gorm:"primaryKey;column:id" json:"id"`
	FirstName     string         `gorm:"column:first_name;not null" json:"first_name"`
	MiddleName    string         `gorm:"column:middle_name" json:"middle_name"`
	LastName      string         `gorm:"column:last_name;not null;index" json:"last_name"`
	Sex           string         `gorm:"column:sex;check:sex IN ('Male', 'Female', 'Other');not null" json:"sex"`
	DateOfBirth   string         `gorm:"column:date_of_birth" json:"date_of_birth"`
	Phone         string         `gorm:"column:phone" json:"phone"`
	Email         string         `gorm:"column:email" json:"email"`
	Address       string         `gorm:"column:address" json:"address"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Prescriptions []Prescription `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// FullName joins the patient's name parts for receipts and queue rows.
func (p *Patient) FullName() string {
	name := p.FirstName
	if p.MiddleName != "" {
		name += " " + p.MiddleName
	}
	return name + " " + p.LastName
}

// Physician model
type Physician struct {
	ID            string         `gorm:"primaryKey;column:id" json:"id"`
	FirstName     string         `gorm:"column:first_name;not null" json:"first_name"`
	LastName      string         `gorm:"column:last_name;not null;index" json:"last_name"`
	Specialty     string         `gorm:"column:specialty" json:"specialty"`
	Phone         string         `gorm:"column:phone" json:"phone"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Prescriptions []Prescription `gorm:"foreignKey:PhysicianID;references:ID" json:"-"`
}

func (Physician) TableName() string {
	return "physician"
}

// Drug is a catalog entry with its quantity on hand. Records are never hard
// deleted; is_deleted hides them from every listing and lookup. Code
// uniqueness is enforced against live rows only, so a retired code can be
// reused.
type Drug struct {
	ID                   uint       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Code                 string     `gorm:"column:code;not null;index" json:"code"`
	Name                 string     `gorm:"column:name;not null;index" json:"name"`
	GenericName          string     `gorm:"column:generic_name" json:"generic_name"`
	BrandName            string     `gorm:"column:brand_name" json:"brand_name"`
	Category             string     `gorm:"column:category;index" json:"category"`
	Quantity             int        `gorm:"column:quantity;not null;default:0;check:quantity >= 0" json:"quantity"`
	ReorderLevel         int        `gorm:"column:reorder_level;default:0" json:"reorder_level"`
	Price                float64    `gorm:"column:price;not null" json:"price"`
	Unit                 string     `gorm:"column:unit;not null" json:"unit"`
	BatchNumber          string     `gorm:"column:batch_number" json:"batch_number"`
	ExpiryDate           *time.Time `gorm:"column:expiry_date" json:"expiry_date"`
	PrescriptionRequired bool       `gorm:"column:prescription_required;not null;default:false" json:"prescription_required"`
	IsDeleted            bool       `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Drug) TableName() string {
	return "drug"
}

// Prescription model. DispensedAt/DispensedBy are stamped only once every
// item has been dispensed.
type Prescription struct {
	ID             uint               `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PrescriptionNo string             `gorm:"column:prescription_no;not null;unique" json:"prescription_no"`
	PatientID      string             `gorm:"column:patient_id;not null;index" json:"patient_id"`
	PhysicianID    string             `gorm:"column:physician_id;not null;index" json:"physician_id"`
	Status         string             `gorm:"column:status;check:status IN ('pending', 'partially_dispensed', 'dispensed');not null;index" json:"status"`
	Priority       string             `gorm:"column:priority;check:priority IN ('emergency', 'urgent', 'normal');not null" json:"priority"`
	TotalCost      float64            `gorm:"column:total_cost" json:"total_cost"`
	Diagnosis      string             `gorm:"column:diagnosis" json:"diagnosis"`
	Notes          string             `gorm:"column:notes" json:"notes"`
	IsDeleted      bool               `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	DispensedAt    *time.Time         `gorm:"column:dispensed_at" json:"dispensed_at"`
	DispensedBy    string             `gorm:"column:dispensed_by" json:"dispensed_by"`
	Items          []PrescriptionItem `gorm:"foreignKey:PrescriptionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	Patient        Patient            `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	Physician      Physician          `gorm:"foreignKey:PhysicianID;references:ID" json:"physician"`
}

func (Prescription) TableName() string {
	return "prescription"
}

// PrescriptionItem model. Prices are fixed from the catalog at prescription
// time; quantity_dispensed never exceeds quantity_prescribed.
type PrescriptionItem struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PrescriptionID     uint       `gorm:"column:prescription_id;not null;index" json:"prescription_id"`
	DrugID             uint       `gorm:"column:drug_id;not null;index" json:"drug_id"`
	QuantityPrescribed int        `gorm:"column:quantity_prescribed;not null" json:"quantity_prescribed"`
	QuantityDispensed  int        `gorm:"column:quantity_dispensed;not null;default:0" json:"quantity_dispensed"`
	UnitPrice          float64    `gorm:"column:unit_price" json:"unit_price"`
	TotalPrice         float64    `gorm:"column:total_price" json:"total_price"`
	IsDispensed        bool       `gorm:"column:is_dispensed;not null;default:false" json:"is_dispensed"`
	Dosage             string     `gorm:"column:dosage" json:"dosage"`
	Frequency          string     `gorm:"column:frequency" json:"frequency"`
	Duration           string     `gorm:"column:duration" json:"duration"`
	Instructions       string     `gorm:"column:instructions" json:"instructions"`
	DispensedAt        *time.Time `gorm:"column:dispensed_at" json:"dispensed_at"`
	DispensedBy        string     `gorm:"column:dispensed_by" json:"dispensed_by"`
	Drug               Drug       `gorm:"foreignKey:DrugID;references:ID" json:"drug"`
}

func (PrescriptionItem) TableName() string {
	return "prescription_item"
}

// DrugDispensal is the append-only receipt of one dispensing transaction.
type DrugDispensal struct {
	DispensalNo    string          `gorm:"primaryKey;column:dispensal_no" json:"dispensal_no"`
	PrescriptionID uint            `gorm:"column:prescription_id;not null;index" json:"prescription_id"`
	TotalAmount    float64         `gorm:"column:total_amount;not null" json:"total_amount"`
	AmountPaid     float64         `gorm:"column:amount_paid" json:"amount_paid"`
	PaymentMethod  string          `gorm:"column:payment_method" json:"payment_method"`
	Notes          string          `gorm:"column:notes" json:"notes"`
	DispensedBy    string          `gorm:"column:dispensed_by;not null" json:"dispensed_by"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Items          []DispensalItem `gorm:"foreignKey:DispensalNo;references:DispensalNo;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	Prescription   Prescription    `gorm:"foreignKey:PrescriptionID;references:ID" json:"-"`
}

func (DrugDispensal) TableName() string {
	return "drug_dispensal"
}

// DispensalItem model. Drug name and prices are copied onto the receipt so it
// stays readable after catalog edits.
type DispensalItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DispensalNo string  `gorm:"column:dispensal_no;not null;index" json:"dispensal_no"`
	DrugID      uint    `gorm:"column:drug_id;not null" json:"drug_id"`
	DrugName    string  `gorm:"column:drug_name;not null" json:"drug_name"`
	Quantity    int     `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice   float64 `gorm:"column:unit_price" json:"unit_price"`
	TotalPrice  float64 `gorm:"column:total_price" json:"total_price"`
}

func (DispensalItem) TableName() string {
	return "dispensal_item"
}

// BalanceTransaction is an append-only payment ledger entry.
type BalanceTransaction struct {
	ID             uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID      string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	PrescriptionID uint      `gorm:"column:prescription_id;index" json:"prescription_id"`
	Type           string    `gorm:"column:type;check:type IN ('debit', 'credit');not null" json:"type"`
	Amount         float64   `gorm:"column:amount;not null" json:"amount"`
	PaymentMethod  string    `gorm:"column:payment_method" json:"payment_method"`
	Description    string    `gorm:"column:description" json:"description"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (BalanceTransaction) TableName() string {
	return "balance_transaction"
}

// StockMovement is the append-only audit trail of every inventory change.
// Quantity is the signed delta; BalanceAfter is the quantity on hand once the
// change committed. Written inside the same transaction as the change itself.
type StockMovement struct {
	ID           uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DrugID       uint      `gorm:"column:drug_id;not null;index" json:"drug_id"`
	Type         string    `gorm:"column:type;check:type IN ('dispense', 'adjustment');not null" json:"type"`
	Quantity     int       `gorm:"column:quantity;not null" json:"quantity"`
	BalanceAfter int       `gorm:"column:balance_after;not null" json:"balance_after"`
	Reason       string    `gorm:"column:reason" json:"reason"`
	Reference    string    `gorm:"column:reference" json:"reference"`
	RecordedBy   string    `gorm:"column:recorded_by" json:"recorded_by"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (StockMovement) TableName() string {
	return "stock_movement"
}
