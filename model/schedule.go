package model

import "gorm.io/gorm"

const (
	ScheduleActive    = "Active"
	ScheduleCompleted = "Completed"
	ScheduleCancelled = "Cancelled"
	SchedulePending   = "Pending"
)

// WorkSchedule assigns a doctor to a shift in a room on a given day.
type WorkSchedule struct {
	gorm.Model
	DoctorID uint   `json:"doctor_id" gorm:"not null;index"`
	ShiftID  uint   `json:"shift_id" gorm:"not null"`
	RoomID   uint   `json:"room_id" gorm:"not null"`
	WorkDate string `json:"work_date" gorm:"type:varchar(10);not null;index"`
	Status   string `json:"status" gorm:"type:varchar(32);default:Active"`
}

func (WorkSchedule) TableName() string {
	return "doctor_work_schedules"
}
