package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	AppointmentPending    = "Pending"
	AppointmentScheduled  = "Scheduled"
	AppointmentAccepted   = "Accepted"
	AppointmentRejected   = "Rejected"
	AppointmentInProgress = "In Progress"
	AppointmentCompleted  = "Completed"
	AppointmentCancelled  = "Cancelled"
)

// AppointmentStatuses lists every appointment status in display order.
var AppointmentStatuses = []string{
	AppointmentPending,
	AppointmentScheduled,
	AppointmentAccepted,
	AppointmentInProgress,
	AppointmentCompleted,
	AppointmentRejected,
	AppointmentCancelled,
}

// Appointment represents a patient visit booked with a doctor.
// @Description Appointment information
type Appointment struct {
	gorm.Model
	PatientID       uint      `json:"patient_id" gorm:"not null;index"`
	DoctorID        uint      `json:"doctor_id" gorm:"not null;index"`
	AppointmentDate time.Time `json:"appointment_date" gorm:"not null;index"`
	ShiftID         uint      `json:"shift_id"`
	Status          string    `json:"status" gorm:"type:varchar(32);not null;default:Pending"`
	Notes           string    `json:"notes"`

	Patient *Patient `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	Shift   *Shift   `json:"shift,omitempty" gorm:"foreignKey:ShiftID"`
}

// AwaitingTriage reports whether the doctor can still accept or reject the appointment.
func (a Appointment) AwaitingTriage() bool {
	return a.Status == AppointmentPending || a.Status == AppointmentScheduled
}

// IsClosed reports whether the appointment reached a terminal status.
func (a Appointment) IsClosed() bool {
	switch a.Status {
	case AppointmentCompleted, AppointmentRejected, AppointmentCancelled:
		return true
	}
	return false
}
