package model

import "gorm.io/gorm"

type Patient struct {
	gorm.Model
	FullName   string `json:"full_name" gorm:"not null;index"`
	PersonalID string `json:"personal_id" gorm:"type:varchar(64)"`
	Phone      string `json:"phone"`
	BirthDate  string `json:"birth_date"`
	Gender     string `json:"gender"`
	Status     string `json:"status" gorm:"default:Active"`
	Email      string `json:"email"`
	Address    string `json:"address"`
}
