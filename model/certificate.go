package model

import "gorm.io/gorm"

// Certificate is a professional certification held by a doctor.
type Certificate struct {
	gorm.Model
	DoctorID   uint   `json:"doctor_id" gorm:"not null;index"`
	Name       string `json:"name" gorm:"not null"`
	IssuedBy   string `json:"issued_by"`
	IssueDate  string `json:"issue_date" gorm:"type:varchar(10)"`
	ExpiryDate string `json:"expiry_date" gorm:"type:varchar(10);index"`
}
