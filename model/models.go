package model

import "gorm.io/gorm"

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&Specialty{},
		&Doctor{},
		&Department{},
		&Room{},
		&Shift{},
		&Patient{},
		&Appointment{},
		&WorkSchedule{},
		&MedicalRecord{},
		&Medicine{},
		&Prescription{},
		&LabTest{},
		&LeaveRequest{},
		&Certificate{},
		&Session{},
		&AuditLog{},
	}
}

// Migrate runs AutoMigrate for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
