package endpoint

import (
	"fmt"

	"github.com/ariebrainware/doctor-portal/dashboard"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func fetchDoctorAppointments(db *gorm.DB, doctorID uint) ([]model.Appointment, error) {
	var appointments []model.Appointment
	if err := db.Preload("Patient").Preload("Shift").
		Where("doctor_id = ?", doctorID).
		Order("appointment_date ASC, id ASC").
		Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}
	return appointments, nil
}

func fetchDoctorLeaves(db *gorm.DB, doctorID uint) ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	if err := db.Where("doctor_id = ?", doctorID).
		Order("request_date DESC, id DESC").
		Find(&leaves).Error; err != nil {
		return nil, fmt.Errorf("load leave requests: %w", err)
	}
	return leaves, nil
}

func fetchDoctorCertificates(db *gorm.DB, doctorID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	if err := db.Where("doctor_id = ?", doctorID).
		Order("expiry_date ASC, id ASC").
		Find(&certs).Error; err != nil {
		return nil, fmt.Errorf("load certificates: %w", err)
	}
	return certs, nil
}

func loadSummary(scope requestScope) (dashboard.Summary, error) {
	appointments, err := fetchDoctorAppointments(scope.DB, scope.DoctorID)
	if err != nil {
		return dashboard.Summary{}, err
	}
	records, err := fetchDoctorRecords(scope.DB, scope.DoctorID)
	if err != nil {
		return dashboard.Summary{}, err
	}
	labTests, err := fetchLabTestsFor(scope.DB, recordIDs(records))
	if err != nil {
		return dashboard.Summary{}, err
	}
	leaves, err := fetchDoctorLeaves(scope.DB, scope.DoctorID)
	if err != nil {
		return dashboard.Summary{}, err
	}
	certs, err := fetchDoctorCertificates(scope.DB, scope.DoctorID)
	if err != nil {
		return dashboard.Summary{}, err
	}
	return dashboard.Summarize(appointments, labTests, leaves, certs, util.Now()), nil
}

// GetDashboard godoc
// @Summary      Dashboard summary
// @Description  Counters for appointments, pending lab tests, pending leave requests and expiring certificates
// @Tags         Dashboard
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=dashboard.Summary}
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /dashboard [get]
func GetDashboard(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	summary, err := loadSummary(scope)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load dashboard", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Dashboard retrieved", Data: summary})
}
