package controllers

import (
	"PharmaCore/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPharmacyRoutes registers the catalog, inventory, prescription and
// dashboard routes directly on the router.
func SetupPharmacyRoutes(
	router *gin.Engine,
	drugHandler *handlers.DrugHandler,
	inventoryHandler *handlers.InventoryHandler,
	prescriptionHandler *handlers.PrescriptionHandler,
	dispensalHandler *handlers.DispensalHandler,
	dashboardHandler *handlers.DashboardHandler,
	patientHandler *handlers.PatientHandler,
	physicianHandler *handlers.PhysicianHandler,
) {
	// Drug catalog. Update carries the id in the body; delete takes ?id=.
	router.GET("/drugs", drugHandler.GetAllDrugs)
	router.GET("/drugs/:drug_id", drugHandler.GetDrugByID)
	router.POST("/drugs", drugHandler.CreateDrug)
	router.PUT("/drugs", drugHandler.UpdateDrug)
	router.DELETE("/drugs", drugHandler.DeleteDrug)

	router.GET("/pharmacist/inventory/stock", inventoryHandler.GetStock)
	router.PATCH("/pharmacist/inventory/stock", inventoryHandler.AdjustStock)
	router.GET("/pharmacist/inventory/stock/:drug_id/movements", inventoryHandler.GetMovements)

	router.POST("/prescriptions", prescriptionHandler.CreatePrescription)
	router.GET("/pharmacist/prescriptions/pending", prescriptionHandler.GetPendingPrescriptions)
	router.GET("/pharmacist/prescriptions/:prescription_id", prescriptionHandler.GetPrescriptionByID)
	router.POST("/pharmacist/prescriptions/:prescription_id/dispense", dispensalHandler.DispensePrescription)
	router.GET("/pharmacist/dispensals/:dispensal_no", dispensalHandler.GetDispensalByNo)

	router.GET("/pharmacist/dashboard", dashboardHandler.GetDashboard)

	router.POST("/patients", patientHandler.CreatePatient)
	router.GET("/patients/:patient_id", patientHandler.GetPatientByID)
	router.PUT("/patients/:patient_id", patientHandler.UpdatePatient)
	router.DELETE("/patients/:patient_id", patientHandler.DeletePatient)
	router.GET("/patients", patientHandler.GetAllPatients)

	router.POST("/physicians", physicianHandler.CreatePhysician)
	router.GET("/physicians/:physician_id", physicianHandler.GetPhysicianByID)
	router.PUT("/physicians/:physician_id", physicianHandler.UpdatePhysician)
	router.DELETE("/physicians/:physician_id", physicianHandler.DeletePhysician)
	router.GET("/physicians", physicianHandler.GetAllPhysicians)
}
