package model

import "gorm.io/gorm"

// Specialty is a medical specialty a doctor practices.
type Specialty struct {
	gorm.Model
	Name        string `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `json:"description"`
}

// Doctor is the authenticated portal user.
// @Description Doctor profile information
type Doctor struct {
	gorm.Model
	SpecialtyID uint   `json:"specialty_id" gorm:"index" example:"1"`
	FullName    string `json:"full_name" gorm:"not null" example:"Dr. Sarah Johnson"`
	Username    string `json:"username" gorm:"type:varchar(100)" example:"sjohnson"`
	Password    string `json:"-" gorm:"not null"`
	Phone       string `json:"phone" example:"+1-555-0123"`
	BirthDate   string `json:"birth_date" example:"1985-03-15"`
	Gender      string `json:"gender" example:"Female"`
	Status      string `json:"status" gorm:"default:Active" example:"Active"`
	Email       string `json:"email" gorm:"type:varchar(191);uniqueIndex;not null" example:"sarah.johnson@hospital.com"`
	JoinDate    string `json:"join_date" example:"2018-01-15"`
	Role        string `json:"role" example:"Senior Doctor"`
	Address     string `json:"address"`
}
