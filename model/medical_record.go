package model

import "gorm.io/gorm"

// LabResultPending is the result placeholder of a freshly ordered lab test.
const LabResultPending = "Pending"

// MedicalRecord is a diagnosis and treatment entry written by a doctor for a patient.
// @Description Medical record information
type MedicalRecord struct {
	gorm.Model
	PatientID  uint   `json:"patient_id" gorm:"not null;index"`
	DoctorID   uint   `json:"doctor_id" gorm:"not null;index"`
	Diagnosis  string `json:"diagnosis" gorm:"type:text"`
	Treatment  string `json:"treatment" gorm:"type:text"`
	RecordDate string `json:"record_date" gorm:"type:varchar(10);index"`
}

type Medicine struct {
	gorm.Model
	Name        string  `json:"name" gorm:"not null;index"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	ExpiryDate  string  `json:"expiry_date" gorm:"type:varchar(10)"`
}

type Prescription struct {
	gorm.Model
	MedicalRecordID uint   `json:"medical_record_id" gorm:"not null;index"`
	MedicineID      uint   `json:"medicine_id" gorm:"not null;index"`
	Dosage          string `json:"dosage" gorm:"not null"`
	Frequency       string `json:"frequency"`
	Duration        string `json:"duration"`
}

type LabTest struct {
	gorm.Model
	MedicalRecordID uint   `json:"medical_record_id" gorm:"not null;index"`
	TestType        string `json:"test_type" gorm:"not null"`
	Result          string `json:"result" gorm:"default:Pending"`
	TestDate        string `json:"test_date" gorm:"type:varchar(10)"`
}
