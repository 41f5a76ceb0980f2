package model

import (
	"time"

	"gorm.io/gorm"
)

type Session struct {
	gorm.Model
	DoctorID     uint      `json:"doctor_id" gorm:"not null;index"`
	SessionToken string    `json:"session_token" gorm:"type:varchar(512);uniqueIndex"`
	ExpiresAt    time.Time `json:"expires_at" gorm:"index"`
	ClientIP     string    `json:"client_ip" gorm:"type:varchar(45)"`
	Browser      string    `json:"browser" gorm:"type:varchar(512)"`
}
