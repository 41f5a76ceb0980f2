package endpoint

import (
	"fmt"
	"strings"

	"github.com/ariebrainware/doctor-portal/dashboard"
	"github.com/ariebrainware/doctor-portal/event"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
)

type RecordListResponse struct {
	Records []dashboard.RecordView `json:"records"`
	Total   int                    `json:"total"`
	Stats   dashboard.RecordStats  `json:"stats"`
}

type CreateRecordRequest struct {
	PatientID  uint   `json:"patient_id" binding:"required" example:"1"`
	Diagnosis  string `json:"diagnosis" binding:"required" example:"Hypertension"`
	Treatment  string `json:"treatment" binding:"required" example:"Lisinopril 10mg daily"`
	RecordDate string `json:"record_date" binding:"omitempty,isodate" example:"2024-12-20"`
}

type UpdateRecordRequest struct {
	Diagnosis  *string `json:"diagnosis"`
	Treatment  *string `json:"treatment"`
	RecordDate *string `json:"record_date" binding:"omitempty,isodate"`
}

type searchQuery struct {
	Search string `form:"search"`
}

// ListMedicalRecords godoc
// @Summary      List medical records
// @Description  Records written by the signed-in doctor with patient, prescriptions and lab tests
// @Tags         MedicalRecord
// @Produce      json
// @Security     SessionToken
// @Param        search query string false "Patient name, diagnosis or treatment"
// @Success      200 {object} util.APIResponse{data=RecordListResponse}
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /medical-record [get]
func ListMedicalRecords(c *gin.Context) {
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
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve medical records", Err: err})
		return
	}
	views, err := loadRecordViews(scope.DB, records)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve medical records", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Medical records retrieved",
		Data: RecordListResponse{
			Records: dashboard.SearchRecords(views, strings.TrimSpace(q.Search)),
			Total:   len(views),
			Stats:   dashboard.CountRecords(views),
		},
	})
}

// GetMedicalRecord godoc
// @Summary      Medical record detail
// @Tags         MedicalRecord
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Medical record ID"
// @Success      200 {object} util.APIResponse{data=dashboard.RecordView}
// @Failure      404 {object} util.APIResponse "Medical record not found"
// @Router       /medical-record/{id} [get]
func GetMedicalRecord(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	record, err := fetchOwnedRecord(scope.DB, scope.DoctorID, id)
	if err != nil {
		respondLookupError(c, err, "Medical record")
		return
	}
	views, err := loadRecordViews(scope.DB, []model.MedicalRecord{record})
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve medical record", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Medical record retrieved", Data: views[0]})
}

// CreateMedicalRecord godoc
// @Summary      Create medical record
// @Tags         MedicalRecord
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body CreateRecordRequest true "Record"
// @Success      200 {object} util.APIResponse{data=model.MedicalRecord}
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Router       /medical-record [post]
func CreateMedicalRecord(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	var req CreateRecordRequest
	if !bindJSONOrRespond(c, &req, "Patient, diagnosis and treatment are required") {
		return
	}
	exists, err := patientExists(scope.DB, req.PatientID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to check patient", Err: err})
		return
	}
	if !exists {
		util.CallUserError(c, util.APIErrorParams{Msg: "Unknown patient", Err: fmt.Errorf("patient %d not found", req.PatientID)})
		return
	}

	recordDate := req.RecordDate
	if recordDate == "" {
		recordDate = util.Today()
	}
	record := model.MedicalRecord{
		PatientID:  req.PatientID,
		DoctorID:   scope.DoctorID,
		Diagnosis:  strings.TrimSpace(req.Diagnosis),
		Treatment:  strings.TrimSpace(req.Treatment),
		RecordDate: recordDate,
	}
	if err := scope.DB.Create(&record).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create medical record", Err: err})
		return
	}
	util.LogRecordChanged(scope.DoctorID, "medical_record", record.ID, "create")
	publish(event.MedicalRecordSaved, scope.DoctorID, record.ID, record)
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Medical record created", Data: record})
}

// UpdateMedicalRecord godoc
// @Summary      Update medical record
// @Tags         MedicalRecord
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Medical record ID"
// @Param        request body UpdateRecordRequest true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.MedicalRecord}
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Medical record not found"
// @Router       /medical-record/{id} [patch]
func UpdateMedicalRecord(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	var req UpdateRecordRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	record, err := fetchOwnedRecord(scope.DB, scope.DoctorID, id)
	if err != nil {
		respondLookupError(c, err, "Medical record")
		return
	}

	updates := map[string]interface{}{}
	if req.Diagnosis != nil {
		updates["diagnosis"] = strings.TrimSpace(*req.Diagnosis)
	}
	if req.Treatment != nil {
		updates["treatment"] = strings.TrimSpace(*req.Treatment)
	}
	if req.RecordDate != nil {
		updates["record_date"] = *req.RecordDate
	}
	if len(updates) == 0 {
		util.CallUserError(c, util.APIErrorParams{Msg: "No fields to update", Err: fmt.Errorf("empty update")})
		return
	}
	if err := scope.DB.Model(&record).Updates(updates).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update medical record", Err: err})
		return
	}
	record, err = fetchOwnedRecord(scope.DB, scope.DoctorID, id)
	if err != nil {
		respondLookupError(c, err, "Medical record")
		return
	}
	util.LogRecordChanged(scope.DoctorID, "medical_record", record.ID, "update")
	publish(event.MedicalRecordSaved, scope.DoctorID, record.ID, record)
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Medical record updated", Data: record})
}
