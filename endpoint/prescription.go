package endpoint

import (
	"fmt"
	"strings"

	"github.com/ariebrainware/doctor-portal/dashboard"
	"github.com/ariebrainware/doctor-portal/event"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
)

// PrescriptionRow is an enriched prescription with its badge hints.
type PrescriptionRow struct {
	dashboard.PrescriptionView
	FrequencyTone dashboard.Tone `json:"frequency_tone"`
	DurationClass string         `json:"duration_class"`
}

type CreatePrescriptionRequest struct {
	MedicalRecordID uint `json:"medical_record_id" binding:"required" example:"1"`
	AddPrescriptionRequest
}

type UpdatePrescriptionRequest struct {
	MedicineID *uint   `json:"medicine_id"`
	Dosage     *string `json:"dosage"`
	Frequency  *string `json:"frequency"`
	Duration   *string `json:"duration"`
}

func prescriptionRows(views []dashboard.PrescriptionView) []PrescriptionRow {
	rows := make([]PrescriptionRow, 0, len(views))
	for _, v := range views {
		rows = append(rows, PrescriptionRow{
			PrescriptionView: v,
			FrequencyTone:    dashboard.FrequencyTone(v.Frequency),
			DurationClass:    dashboard.DurationClass(v.Duration),
		})
	}
	return rows
}

// ListPrescriptions godoc
// @Summary      List prescriptions
// @Description  Prescriptions on the signed-in doctor's medical records with medicine and patient
// @Tags         Prescription
// @Produce      json
// @Security     SessionToken
// @Param        search query string false "Patient name, medicine name or dosage"
// @Success      200 {object} util.APIResponse{data=[]PrescriptionRow}
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /prescription [get]
func ListPrescriptions(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	var q searchQuery
	if !bindQueryOrRespond(c, &q) {
		return
	}
	records, err := fetchDoctorRecords(scope.DB, scope.DoctorID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve prescriptions", Err: err})
		return
	}
	prescriptions, err := fetchPrescriptionsFor(scope.DB, recordIDs(records))
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve prescriptions", Err: err})
		return
	}
	lookup, err := buildLookup(scope.DB, records, prescriptions)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve prescriptions", Err: err})
		return
	}

	views := dashboard.SearchPrescriptions(lookup.EnrichPrescriptions(prescriptions), strings.TrimSpace(q.Search))
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Prescriptions retrieved",
		Data: map[string]interface{}{
			"prescriptions": prescriptionRows(views),
			"total":         len(prescriptions),
		},
	})
}

// CreatePrescription godoc
// @Summary      Create prescription
// @Tags         Prescription
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body CreatePrescriptionRequest true "Prescription"
// @Success      200 {object} util.APIResponse{data=model.Prescription}
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Medical record not found"
// @Router       /prescription [post]
func CreatePrescription(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	var req CreatePrescriptionRequest
	if !bindJSONOrRespond(c, &req, "Medical record, medicine, dosage, frequency and duration are required") {
		return
	}
	record, err := fetchOwnedRecord(scope.DB, scope.DoctorID, req.MedicalRecordID)
	if err != nil {
		respondLookupError(c, err, "Medical record")
		return
	}
	prescription, ok := createPrescription(c, scope, record.ID, req.AddPrescriptionRequest)
	if !ok {
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Prescription created", Data: prescription})
}

// UpdatePrescription godoc
// @Summary      Update prescription
// @Tags         Prescription
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Prescription ID"
// @Param        request body UpdatePrescriptionRequest true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.Prescription}
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Prescription not found"
// @Router       /prescription/{id} [patch]
func UpdatePrescription(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	var req UpdatePrescriptionRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	prescription, err := fetchOwnedPrescription(scope.DB, scope.DoctorID, id)
	if err != nil {
		respondLookupError(c, err, "Prescription")
		return
	}

	updates := map[string]interface{}{}
	if req.MedicineID != nil {
		exists, err := medicineExists(scope.DB, *req.MedicineID)
		if err != nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to check medicine", Err: err})
			return
		}
		if !exists {
			util.CallUserError(c, util.APIErrorParams{Msg: "Unknown medicine", Err: fmt.Errorf("medicine %d not found", *req.MedicineID)})
			return
		}
		updates["medicine_id"] = *req.MedicineID
	}
	for column, value := range map[string]*string{"dosage": req.Dosage, "frequency": req.Frequency, "duration": req.Duration} {
		if value == nil {
			continue
		}
		trimmed := strings.TrimSpace(*value)
		if trimmed == "" {
			util.CallUserError(c, util.APIErrorParams{Msg: fmt.Sprintf("%s cannot be empty", column), Err: fmt.Errorf("blank %s", column)})
			return
		}
		updates[column] = trimmed
	}
	if len(updates) == 0 {
		util.CallUserError(c, util.APIErrorParams{Msg: "No fields to update", Err: fmt.Errorf("empty update")})
		return
	}

	if err := scope.DB.Model(&prescription).Updates(updates).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update prescription", Err: err})
		return
	}
	prescription, err = fetchOwnedPrescription(scope.DB, scope.DoctorID, id)
	if err != nil {
		respondLookupError(c, err, "Prescription")
		return
	}
	util.LogRecordChanged(scope.DoctorID, "prescription", prescription.ID, "update")
	publish(event.PrescriptionChanged, scope.DoctorID, prescription.ID, prescription)
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Prescription updated", Data: prescription})
}

// DeletePrescription godoc
// @Summary      Delete prescription
// @Tags         Prescription
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Prescription ID"
// @Success      200 {object} util.APIResponse "Prescription deleted"
// @Failure      404 {object} util.APIResponse "Prescription not found"
// @Router       /prescription/{id} [delete]
func DeletePrescription(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	prescription, err := fetchOwnedPrescription(scope.DB, scope.DoctorID, id)
	if err != nil {
		respondLookupError(c, err, "Prescription")
		return
	}
	if err := scope.DB.Delete(&prescription).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to delete prescription", Err: err})
		return
	}
	util.LogRecordChanged(scope.DoctorID, "prescription", prescription.ID, "delete")
	publish(event.PrescriptionChanged, scope.DoctorID, prescription.ID, map[string]string{"action": "delete"})
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Prescription deleted", Data: map[string]uint{"id": prescription.ID}})
}
