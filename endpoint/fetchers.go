package endpoint

import (
	"fmt"

	"github.com/ariebrainware/doctor-portal/dashboard"
	"github.com/ariebrainware/doctor-portal/model"
	"gorm.io/gorm"
)

func fetchOwnedAppointment(db *gorm.DB, doctorID, id uint) (model.Appointment, error) {
	var appt model.Appointment
	err := db.Preload("Patient").Preload("Shift").
		Where("id = ? AND doctor_id = ?", id, doctorID).
		First(&appt).Error
	return appt, err
}

func fetchOwnedRecord(db *gorm.DB, doctorID, id uint) (model.MedicalRecord, error) {
	var record model.MedicalRecord
	err := db.Where("id = ? AND doctor_id = ?", id, doctorID).First(&record).Error
	return record, err
}

// fetchRecordForAppointment returns the latest record the doctor keeps for
// the appointment's patient, or nil when there is none yet.
func fetchRecordForAppointment(db *gorm.DB, appt model.Appointment) (*model.MedicalRecord, error) {
	var records []model.MedicalRecord
	err := db.Where("patient_id = ? AND doctor_id = ?", appt.PatientID, appt.DoctorID).
		Order("id DESC").Limit(1).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("load medical record: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// ownedThroughRecord scopes a child table (prescriptions, lab_tests) to
// rows whose medical record belongs to the doctor.
func ownedThroughRecord(db *gorm.DB, table string, doctorID uint) *gorm.DB {
	return db.Joins(fmt.Sprintf("JOIN medical_records ON medical_records.id = %s.medical_record_id", table)).
		Where("medical_records.doctor_id = ? AND medical_records.deleted_at IS NULL", doctorID)
}

func fetchOwnedPrescription(db *gorm.DB, doctorID, id uint) (model.Prescription, error) {
	var p model.Prescription
	err := ownedThroughRecord(db, "prescriptions", doctorID).
		Where("prescriptions.id = ?", id).
		First(&p).Error
	return p, err
}

func fetchOwnedLabTest(db *gorm.DB, doctorID, id uint) (model.LabTest, error) {
	var t model.LabTest
	err := ownedThroughRecord(db, "lab_tests", doctorID).
		Where("lab_tests.id = ?", id).
		First(&t).Error
	return t, err
}

func fetchOwnedLeave(db *gorm.DB, doctorID, id uint) (model.LeaveRequest, error) {
	var leave model.LeaveRequest
	err := db.Where("id = ? AND doctor_id = ?", id, doctorID).First(&leave).Error
	return leave, err
}

func fetchOwnedCertificate(db *gorm.DB, doctorID, id uint) (model.Certificate, error) {
	var cert model.Certificate
	err := db.Where("id = ? AND doctor_id = ?", id, doctorID).First(&cert).Error
	return cert, err
}

func fetchDoctorRecords(db *gorm.DB, doctorID uint) ([]model.MedicalRecord, error) {
	var records []model.MedicalRecord
	if err := db.Where("doctor_id = ?", doctorID).
		Order("record_date DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load medical records: %w", err)
	}
	return records, nil
}

func recordIDs(records []model.MedicalRecord) []uint {
	ids := make([]uint, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

func fetchPatients(db *gorm.DB, ids []uint) ([]model.Patient, error) {
	var patients []model.Patient
	if len(ids) == 0 {
		return patients, nil
	}
	if err := db.Where("id IN ?", ids).Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}
	return patients, nil
}

func fetchMedicines(db *gorm.DB, ids []uint) ([]model.Medicine, error) {
	var medicines []model.Medicine
	if len(ids) == 0 {
		return medicines, nil
	}
	if err := db.Where("id IN ?", ids).Find(&medicines).Error; err != nil {
		return nil, fmt.Errorf("load medicines: %w", err)
	}
	return medicines, nil
}

func fetchPrescriptionsFor(db *gorm.DB, recordIDs []uint) ([]model.Prescription, error) {
	var prescriptions []model.Prescription
	if len(recordIDs) == 0 {
		return prescriptions, nil
	}
	if err := db.Where("medical_record_id IN ?", recordIDs).
		Order("id DESC").
		Find(&prescriptions).Error; err != nil {
		return nil, fmt.Errorf("load prescriptions: %w", err)
	}
	return prescriptions, nil
}

func fetchLabTestsFor(db *gorm.DB, recordIDs []uint) ([]model.LabTest, error) {
	var tests []model.LabTest
	if len(recordIDs) == 0 {
		return tests, nil
	}
	if err := db.Where("medical_record_id IN ?", recordIDs).
		Order("test_date DESC, id DESC").
		Find(&tests).Error; err != nil {
		return nil, fmt.Errorf("load lab tests: %w", err)
	}
	return tests, nil
}

func uniqueIDs(n int, at func(i int) uint) []uint {
	seen := make(map[uint]struct{}, n)
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		id := at(i)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// buildLookup fetches every patient and medicine the records and
// prescriptions point at.
func buildLookup(db *gorm.DB, records []model.MedicalRecord, prescriptions []model.Prescription) (dashboard.Lookup, error) {
	patients, err := fetchPatients(db, uniqueIDs(len(records), func(i int) uint { return records[i].PatientID }))
	if err != nil {
		return dashboard.Lookup{}, err
	}
	medicines, err := fetchMedicines(db, uniqueIDs(len(prescriptions), func(i int) uint { return prescriptions[i].MedicineID }))
	if err != nil {
		return dashboard.Lookup{}, err
	}
	return dashboard.NewLookup(patients, medicines, records), nil
}

// loadRecordViews enriches records with patient, prescriptions and lab tests.
func loadRecordViews(db *gorm.DB, records []model.MedicalRecord) ([]dashboard.RecordView, error) {
	ids := recordIDs(records)
	prescriptions, err := fetchPrescriptionsFor(db, ids)
	if err != nil {
		return nil, err
	}
	labTests, err := fetchLabTestsFor(db, ids)
	if err != nil {
		return nil, err
	}
	lookup, err := buildLookup(db, records, prescriptions)
	if err != nil {
		return nil, err
	}
	return lookup.EnrichRecords(records, prescriptions, labTests), nil
}

func medicineExists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.Model(&model.Medicine{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check medicine: %w", err)
	}
	return count > 0, nil
}

func patientExists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.Model(&model.Patient{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check patient: %w", err)
	}
	return count > 0, nil
}
