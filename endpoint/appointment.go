package endpoint

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/ariebrainware/doctor-portal/dashboard"
	"github.com/ariebrainware/doctor-portal/event"
	"github.com/ariebrainware/doctor-portal/export"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AppointmentListResponse is the filtered list with counters over every
// appointment of the doctor.
type AppointmentListResponse struct {
	Appointments []model.Appointment        `json:"appointments"`
	Total        int                        `json:"total"`
	TotalFetched int                        `json:"total_fetched"`
	Stats        dashboard.AppointmentStats `json:"stats"`
}

// AppointmentDetail bundles everything the appointment screen shows.
type AppointmentDetail struct {
	Appointment   model.Appointment            `json:"appointment"`
	Tone          dashboard.Tone               `json:"tone"`
	MedicalRecord *model.MedicalRecord         `json:"medical_record"`
	Prescriptions []dashboard.PrescriptionView `json:"prescriptions"`
	LabTests      []model.LabTest              `json:"lab_tests"`
}

type SaveRecordRequest struct {
	Diagnosis  string `json:"diagnosis" binding:"required" example:"Hypertension"`
	Treatment  string `json:"treatment" binding:"required" example:"Lisinopril 10mg daily"`
	RecordDate string `json:"record_date" binding:"omitempty,isodate" example:"2024-12-20"`
}

type CompleteAppointmentRequest struct {
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
}

type OrderLabTestRequest struct {
	TestType string `json:"test_type" binding:"required" example:"Complete Blood Count"`
	TestDate string `json:"test_date" binding:"omitempty,isodate" example:"2024-12-21"`
}

type AddPrescriptionRequest struct {
	MedicineID uint   `json:"medicine_id" binding:"required" example:"1"`
	Dosage     string `json:"dosage" binding:"required" example:"10mg"`
	Frequency  string `json:"frequency" binding:"required" example:"Once daily"`
	Duration   string `json:"duration" binding:"required" example:"30 days"`
}

func validWindow(w string) bool {
	return w == "" || util.Contains(w, []string{dashboard.WindowAll, dashboard.WindowToday, dashboard.WindowUpcoming})
}

func bindAppointmentFilter(c *gin.Context) (dashboard.AppointmentFilter, bool) {
	var filter dashboard.AppointmentFilter
	if !bindQueryOrRespond(c, &filter) {
		return filter, false
	}
	filter.Search = strings.TrimSpace(filter.Search)
	if !validWindow(filter.Window) {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid window", Err: fmt.Errorf("unknown window %q", filter.Window)})
		return filter, false
	}
	return filter, true
}

// ListAppointments godoc
// @Summary      List appointments
// @Description  Appointments of the signed-in doctor, filtered by search, status and date window
// @Tags         Appointment
// @Produce      json
// @Security     SessionToken
// @Param        search query string false "Patient name or notes"
// @Param        status query string false "Status or all"
// @Param        window query string false "all, today or upcoming"
// @Success      200 {object} util.APIResponse{data=AppointmentListResponse}
// @Failure      400 {object} util.APIResponse "Invalid query"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /appointment [get]
func ListAppointments(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	filter, ok := bindAppointmentFilter(c)
	if !ok {
		return
	}
	all, err := fetchDoctorAppointments(scope.DB, scope.DoctorID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve appointments", Err: err})
		return
	}

	now := util.Now()
	filtered := dashboard.FilterAppointments(all, filter, now)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Appointments retrieved",
		Data: AppointmentListResponse{
			Appointments: filtered,
			Total:        len(all),
			TotalFetched: len(filtered),
			Stats:        dashboard.CountAppointments(all, now),
		},
	})
}

func appointmentOrRespond(c *gin.Context, scope requestScope) (model.Appointment, bool) {
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return model.Appointment{}, false
	}
	appt, err := fetchOwnedAppointment(scope.DB, scope.DoctorID, id)
	if err != nil {
		respondLookupError(c, err, "Appointment")
		return model.Appointment{}, false
	}
	return appt, true
}

func loadAppointmentDetail(db *gorm.DB, appt model.Appointment) (AppointmentDetail, error) {
	detail := AppointmentDetail{
		Appointment:   appt,
		Tone:          dashboard.StatusTone(dashboard.KindAppointment, appt.Status),
		Prescriptions: []dashboard.PrescriptionView{},
		LabTests:      []model.LabTest{},
	}
	record, err := fetchRecordForAppointment(db, appt)
	if err != nil || record == nil {
		return detail, err
	}
	detail.MedicalRecord = record

	views, err := loadRecordViews(db, []model.MedicalRecord{*record})
	if err != nil {
		return detail, err
	}
	detail.Prescriptions = views[0].Prescriptions
	detail.LabTests = views[0].LabTests
	return detail, nil
}

// GetAppointment godoc
// @Summary      Appointment detail
// @Description  Appointment with patient, shift, the patient's medical record, prescriptions and lab tests
// @Tags         Appointment
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Appointment ID"
// @Success      200 {object} util.APIResponse{data=AppointmentDetail}
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointment/{id} [get]
func GetAppointment(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	appt, ok := appointmentOrRespond(c, scope)
	if !ok {
		return
	}
	detail, err := loadAppointmentDetail(scope.DB, appt)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve appointment", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment retrieved", Data: detail})
}

func setAppointmentStatus(c *gin.Context, scope requestScope, appt model.Appointment, status string) {
	if err := scope.DB.Model(&appt).Update("status", status).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update appointment", Err: err})
		return
	}
	appt.Status = status
	util.LogRecordChanged(scope.DoctorID, "appointment", appt.ID, strings.ToLower(status))
	publish(event.AppointmentUpdated, scope.DoctorID, appt.ID, map[string]string{"status": status})
	util.CallSuccessOK(c, util.APISuccessParams{Msg: fmt.Sprintf("Appointment %s", strings.ToLower(status)), Data: appt})
}

func triageAppointment(c *gin.Context, status string) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	appt, ok := appointmentOrRespond(c, scope)
	if !ok {
		return
	}
	if !appt.AwaitingTriage() {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Only pending or scheduled appointments can be accepted or rejected",
			Err: fmt.Errorf("appointment %d is %s", appt.ID, appt.Status),
		})
		return
	}
	setAppointmentStatus(c, scope, appt, status)
}

// AcceptAppointment godoc
// @Summary      Accept appointment
// @Tags         Appointment
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Appointment ID"
// @Success      200 {object} util.APIResponse{data=model.Appointment}
// @Failure      400 {object} util.APIResponse "Appointment is not pending or scheduled"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointment/{id}/accept [patch]
func AcceptAppointment(c *gin.Context) {
	triageAppointment(c, model.AppointmentAccepted)
}

// RejectAppointment godoc
// @Summary      Reject appointment
// @Tags         Appointment
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Appointment ID"
// @Success      200 {object} util.APIResponse{data=model.Appointment}
// @Failure      400 {object} util.APIResponse "Appointment is not pending or scheduled"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointment/{id}/reject [patch]
func RejectAppointment(c *gin.Context) {
	triageAppointment(c, model.AppointmentRejected)
}

// saveRecord updates the record the doctor keeps for the appointment's
// patient or creates it.
func saveRecord(db *gorm.DB, appt model.Appointment, diagnosis, treatment, recordDate string) (model.MedicalRecord, bool, error) {
	existing, err := fetchRecordForAppointment(db, appt)
	if err != nil {
		return model.MedicalRecord{}, false, err
	}
	if existing != nil {
		updates := map[string]interface{}{"diagnosis": diagnosis, "treatment": treatment}
		if recordDate != "" {
			updates["record_date"] = recordDate
		}
		if err := db.Model(existing).Updates(updates).Error; err != nil {
			return model.MedicalRecord{}, false, fmt.Errorf("update medical record: %w", err)
		}
		existing.Diagnosis, existing.Treatment = diagnosis, treatment
		if recordDate != "" {
			existing.RecordDate = recordDate
		}
		return *existing, false, nil
	}

	if recordDate == "" {
		recordDate = util.Today()
	}
	record := model.MedicalRecord{
		PatientID:  appt.PatientID,
		DoctorID:   appt.DoctorID,
		Diagnosis:  diagnosis,
		Treatment:  treatment,
		RecordDate: recordDate,
	}
	if err := db.Create(&record).Error; err != nil {
		return model.MedicalRecord{}, false, fmt.Errorf("create medical record: %w", err)
	}
	return record, true, nil
}

// SaveAppointmentRecord godoc
// @Summary      Save medical record for appointment
// @Description  Update the patient's medical record with this doctor or create it
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Appointment ID"
// @Param        request body SaveRecordRequest true "Record fields"
// @Success      200 {object} util.APIResponse{data=model.MedicalRecord}
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointment/{id}/record [put]
func SaveAppointmentRecord(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	appt, ok := appointmentOrRespond(c, scope)
	if !ok {
		return
	}
	var req SaveRecordRequest
	if !bindJSONOrRespond(c, &req, "Diagnosis and treatment are required") {
		return
	}
	diagnosis, treatment := strings.TrimSpace(req.Diagnosis), strings.TrimSpace(req.Treatment)
	if diagnosis == "" || treatment == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "Diagnosis and treatment are required", Err: fmt.Errorf("blank diagnosis or treatment")})
		return
	}

	record, created, err := saveRecord(scope.DB, appt, diagnosis, treatment, req.RecordDate)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to save medical record", Err: err})
		return
	}
	action := "update"
	if created {
		action = "create"
	}
	util.LogRecordChanged(scope.DoctorID, "medical_record", record.ID, action)
	publish(event.MedicalRecordSaved, scope.DoctorID, record.ID, record)
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Medical record saved", Data: record})
}

// CompleteAppointment godoc
// @Summary      Complete appointment
// @Description  Mark the appointment completed. The patient's record must carry a diagnosis and treatment, either already saved or sent in the body.
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Appointment ID"
// @Param        request body CompleteAppointmentRequest false "Optional record fields"
// @Success      200 {object} util.APIResponse{data=model.Appointment}
// @Failure      400 {object} util.APIResponse "Appointment closed or record incomplete"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointment/{id}/complete [patch]
func CompleteAppointment(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	appt, ok := appointmentOrRespond(c, scope)
	if !ok {
		return
	}
	if appt.IsClosed() {
		util.CallUserError(c, util.APIErrorParams{Msg: "Appointment is already closed", Err: fmt.Errorf("appointment %d is %s", appt.ID, appt.Status)})
		return
	}

	var req CompleteAppointmentRequest
	if c.Request.ContentLength > 0 && !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	diagnosis, treatment := strings.TrimSpace(req.Diagnosis), strings.TrimSpace(req.Treatment)
	if diagnosis != "" && treatment != "" {
		if _, _, err := saveRecord(scope.DB, appt, diagnosis, treatment, ""); err != nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to save medical record", Err: err})
			return
		}
	}

	record, err := fetchRecordForAppointment(scope.DB, appt)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve medical record", Err: err})
		return
	}
	if record == nil || strings.TrimSpace(record.Diagnosis) == "" || strings.TrimSpace(record.Treatment) == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Diagnosis and treatment must be recorded before completing the appointment",
			Err: fmt.Errorf("medical record incomplete"),
		})
		return
	}
	setAppointmentStatus(c, scope, appt, model.AppointmentCompleted)
}

func recordOrRespond(c *gin.Context, scope requestScope, appt model.Appointment) (*model.MedicalRecord, bool) {
	record, err := fetchRecordForAppointment(scope.DB, appt)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve medical record", Err: err})
		return nil, false
	}
	if record == nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Save the medical record first", Err: fmt.Errorf("no medical record for appointment %d", appt.ID)})
		return nil, false
	}
	return record, true
}

// OrderLabTest godoc
// @Summary      Order lab test
// @Description  Attach a pending lab test to the patient's medical record
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Appointment ID"
// @Param        request body OrderLabTestRequest true "Lab test"
// @Success      200 {object} util.APIResponse{data=model.LabTest}
// @Failure      400 {object} util.APIResponse "Invalid request or missing record"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointment/{id}/lab-test [post]
func OrderLabTest(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	appt, ok := appointmentOrRespond(c, scope)
	if !ok {
		return
	}
	var req OrderLabTestRequest
	if !bindJSONOrRespond(c, &req, "Test type is required") {
		return
	}
	testType := strings.TrimSpace(req.TestType)
	if testType == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "Test type is required", Err: fmt.Errorf("blank test_type")})
		return
	}
	record, ok := recordOrRespond(c, scope, appt)
	if !ok {
		return
	}

	testDate := req.TestDate
	if testDate == "" {
		testDate = util.Today()
	}
	labTest := model.LabTest{
		MedicalRecordID: record.ID,
		TestType:        testType,
		Result:          model.LabResultPending,
		TestDate:        testDate,
	}
	if err := scope.DB.Create(&labTest).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to order lab test", Err: err})
		return
	}
	util.LogRecordChanged(scope.DoctorID, "lab_test", labTest.ID, "create")
	publish(event.LabTestOrdered, scope.DoctorID, labTest.ID, labTest)
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Lab test ordered", Data: labTest})
}

// AddPrescription godoc
// @Summary      Add prescription
// @Description  Prescribe a medicine on the patient's medical record
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Appointment ID"
// @Param        request body AddPrescriptionRequest true "Prescription"
// @Success      200 {object} util.APIResponse{data=model.Prescription}
// @Failure      400 {object} util.APIResponse "Invalid request or missing record"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointment/{id}/prescription [post]
func AddPrescription(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	appt, ok := appointmentOrRespond(c, scope)
	if !ok {
		return
	}
	var req AddPrescriptionRequest
	if !bindJSONOrRespond(c, &req, "Medicine, dosage, frequency and duration are required") {
		return
	}
	record, ok := recordOrRespond(c, scope, appt)
	if !ok {
		return
	}
	prescription, ok := createPrescription(c, scope, record.ID, req)
	if !ok {
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Prescription added", Data: prescription})
}

func createPrescription(c *gin.Context, scope requestScope, recordID uint, req AddPrescriptionRequest) (model.Prescription, bool) {
	exists, err := medicineExists(scope.DB, req.MedicineID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to check medicine", Err: err})
		return model.Prescription{}, false
	}
	if !exists {
		util.CallUserError(c, util.APIErrorParams{Msg: "Unknown medicine", Err: fmt.Errorf("medicine %d not found", req.MedicineID)})
		return model.Prescription{}, false
	}

	prescription := model.Prescription{
		MedicalRecordID: recordID,
		MedicineID:      req.MedicineID,
		Dosage:          strings.TrimSpace(req.Dosage),
		Frequency:       strings.TrimSpace(req.Frequency),
		Duration:        strings.TrimSpace(req.Duration),
	}
	if err := scope.DB.Create(&prescription).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to add prescription", Err: err})
		return model.Prescription{}, false
	}
	util.LogRecordChanged(scope.DoctorID, "prescription", prescription.ID, "create")
	publish(event.PrescriptionChanged, scope.DoctorID, prescription.ID, prescription)
	return prescription, true
}

// ExportAppointments godoc
// @Summary      Export appointments
// @Description  Download the filtered appointment list as an xlsx workbook
// @Tags         Appointment
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     SessionToken
// @Param        search query string false "Patient name or notes"
// @Param        status query string false "Status or all"
// @Param        window query string false "all, today or upcoming"
// @Success      200 {file} file
// @Router       /appointment/export [get]
func ExportAppointments(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	filter, ok := bindAppointmentFilter(c)
	if !ok {
		return
	}
	all, err := fetchDoctorAppointments(scope.DB, scope.DoctorID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve appointments", Err: err})
		return
	}

	var buf bytes.Buffer
	if err := export.Appointments(&buf, dashboard.FilterAppointments(all, filter, util.Now())); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to build workbook", Err: err})
		return
	}
	sendWorkbook(c, fmt.Sprintf("appointments-%s.xlsx", util.Today()), buf.Bytes())
}

func sendWorkbook(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType, data)
}
