package model

import "gorm.io/gorm"

type Department struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type Room struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	Type         string `json:"type"`
	Floor        int    `json:"floor"`
	DepartmentID uint   `json:"department_id" gorm:"index"`
}

// Shift is a named working window; times are "HH:MM" wall-clock strings.
type Shift struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	StartTime string `json:"start_time" gorm:"not null"`
	EndTime   string `json:"end_time" gorm:"not null"`
}
