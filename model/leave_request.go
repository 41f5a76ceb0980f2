package model

import "gorm.io/gorm"

const (
	LeavePending   = "Pending"
	LeaveApproved  = "Approved"
	LeaveRejected  = "Rejected"
	LeaveCancelled = "Cancelled"
)

// LeaveRequest is a doctor's request for days off.
// @Description Leave request information
type LeaveRequest struct {
	gorm.Model
	DoctorID    uint   `json:"doctor_id" gorm:"not null;index"`
	RequestDate string `json:"request_date" gorm:"type:varchar(10);index"`
	StartDate   string `json:"start_date" gorm:"type:varchar(10);not null"`
	EndDate     string `json:"end_date" gorm:"type:varchar(10);not null"`
	Reason      string `json:"reason" gorm:"type:text"`
	Status      string `json:"status" gorm:"type:varchar(32);default:Pending"`
}
