package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointment_AwaitingTriage(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{AppointmentPending, true},
		{AppointmentScheduled, true},
		{AppointmentAccepted, false},
		{AppointmentRejected, false},
		{AppointmentCompleted, false},
		{AppointmentInProgress, false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, Appointment{Status: tt.status}.AwaitingTriage())
		})
	}
}

func TestAppointment_IsClosed(t *testing.T) {
	assert.True(t, Appointment{Status: AppointmentCompleted}.IsClosed())
	assert.True(t, Appointment{Status: AppointmentRejected}.IsClosed())
	assert.True(t, Appointment{Status: AppointmentCancelled}.IsClosed())
	assert.False(t, Appointment{Status: AppointmentAccepted}.IsClosed())
	assert.False(t, Appointment{Status: AppointmentScheduled}.IsClosed())
}

func TestAppointmentModel_PreloadsPatientAndShift(t *testing.T) {
	db := setupTestDB(t, "appointment", &Patient{}, &Shift{}, &Appointment{})

	patient := Patient{FullName: "John Smith"}
	require.NoError(t, db.Create(&patient).Error)
	shift := Shift{Name: "Morning", StartTime: "08:00", EndTime: "16:00"}
	require.NoError(t, db.Create(&shift).Error)

	when := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)
	appt := Appointment{PatientID: patient.ID, DoctorID: 1, ShiftID: shift.ID, AppointmentDate: when, Notes: "Regular checkup"}
	require.NoError(t, db.Create(&appt).Error)

	var found Appointment
	require.NoError(t, db.Preload("Patient").Preload("Shift").First(&found, appt.ID).Error)
	assert.Equal(t, AppointmentPending, found.Status)
	require.NotNil(t, found.Patient)
	assert.Equal(t, "John Smith", found.Patient.FullName)
	require.NotNil(t, found.Shift)
	assert.Equal(t, "Morning", found.Shift.Name)
	assert.True(t, found.AppointmentDate.Equal(when))
}

func TestLabTestModel_DefaultsToPending(t *testing.T) {
	db := setupTestDB(t, "labtest", &LabTest{})

	test := LabTest{MedicalRecordID: 1, TestType: "ECG", TestDate: "2024-12-17"}
	require.NoError(t, db.Create(&test).Error)

	var found LabTest
	require.NoError(t, db.First(&found, test.ID).Error)
	assert.Equal(t, LabResultPending, found.Result)
}

func TestLeaveRequestModel_SoftDelete(t *testing.T) {
	db := setupTestDB(t, "leave", &LeaveRequest{})

	req := LeaveRequest{DoctorID: 1, RequestDate: "2024-12-10", StartDate: "2024-12-24", EndDate: "2024-12-26", Reason: "Holiday"}
	require.NoError(t, db.Create(&req).Error)

	var found LeaveRequest
	require.NoError(t, db.First(&found, req.ID).Error)
	assert.Equal(t, LeavePending, found.Status)

	require.NoError(t, db.Delete(&req).Error)
	assert.Error(t, db.First(&found, req.ID).Error)
	assert.NoError(t, db.Unscoped().First(&found, req.ID).Error)
}
