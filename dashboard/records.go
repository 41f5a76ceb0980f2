package dashboard

import "github.com/ariebrainware/doctor-portal/model"

// PrescriptionView is a prescription joined with the rows it points at.
type PrescriptionView struct {
	model.Prescription
	Medicine      *model.Medicine      `json:"medicine,omitempty"`
	MedicalRecord *model.MedicalRecord `json:"medical_record,omitempty"`
	Patient       *model.Patient       `json:"patient,omitempty"`
}

// RecordView is a medical record with its patient, prescriptions and lab tests.
type RecordView struct {
	model.MedicalRecord
	Patient       *model.Patient     `json:"patient,omitempty"`
	Prescriptions []PrescriptionView `json:"prescriptions"`
	LabTests      []model.LabTest    `json:"lab_tests"`
}

// Lookup indexes fetched rows by primary key for in-memory joins.
type Lookup struct {
	Patients  map[uint]model.Patient
	Medicines map[uint]model.Medicine
	Records   map[uint]model.MedicalRecord
}

// NewLookup builds a Lookup from plain row slices.
func NewLookup(patients []model.Patient, medicines []model.Medicine, records []model.MedicalRecord) Lookup {
	l := Lookup{
		Patients:  make(map[uint]model.Patient, len(patients)),
		Medicines: make(map[uint]model.Medicine, len(medicines)),
		Records:   make(map[uint]model.MedicalRecord, len(records)),
	}
	for _, p := range patients {
		l.Patients[p.ID] = p
	}
	for _, m := range medicines {
		l.Medicines[m.ID] = m
	}
	for _, r := range records {
		l.Records[r.ID] = r
	}
	return l
}

func (l Lookup) patient(id uint) *model.Patient {
	if p, ok := l.Patients[id]; ok {
		return &p
	}
	return nil
}

// EnrichPrescriptions attaches medicine, record and patient to each prescription.
// Missing references are left nil.
func (l Lookup) EnrichPrescriptions(prescriptions []model.Prescription) []PrescriptionView {
	out := make([]PrescriptionView, 0, len(prescriptions))
	for _, p := range prescriptions {
		view := PrescriptionView{Prescription: p}
		if m, ok := l.Medicines[p.MedicineID]; ok {
			view.Medicine = &m
		}
		if r, ok := l.Records[p.MedicalRecordID]; ok {
			view.MedicalRecord = &r
			view.Patient = l.patient(r.PatientID)
		}
		out = append(out, view)
	}
	return out
}

// EnrichRecords groups prescriptions and lab tests under their records.
func (l Lookup) EnrichRecords(records []model.MedicalRecord, prescriptions []model.Prescription, labTests []model.LabTest) []RecordView {
	byRecord := make(map[uint][]PrescriptionView)
	for _, p := range l.EnrichPrescriptions(prescriptions) {
		byRecord[p.MedicalRecordID] = append(byRecord[p.MedicalRecordID], p)
	}
	testsByRecord := make(map[uint][]model.LabTest)
	for _, t := range labTests {
		testsByRecord[t.MedicalRecordID] = append(testsByRecord[t.MedicalRecordID], t)
	}

	out := make([]RecordView, 0, len(records))
	for _, r := range records {
		view := RecordView{
			MedicalRecord: r,
			Patient:       l.patient(r.PatientID),
			Prescriptions: byRecord[r.ID],
			LabTests:      testsByRecord[r.ID],
		}
		if view.Prescriptions == nil {
			view.Prescriptions = []PrescriptionView{}
		}
		if view.LabTests == nil {
			view.LabTests = []model.LabTest{}
		}
		out = append(out, view)
	}
	return out
}

// SearchRecords matches patient name, diagnosis or treatment case-insensitively.
func SearchRecords(records []RecordView, term string) []RecordView {
	if term == "" {
		return records
	}
	out := make([]RecordView, 0, len(records))
	for _, r := range records {
		name := ""
		if r.Patient != nil {
			name = r.Patient.FullName
		}
		if containsFold(name, term) || containsFold(r.Diagnosis, term) || containsFold(r.Treatment, term) {
			out = append(out, r)
		}
	}
	return out
}

// RecordStats are the counters shown above the medical-record list.
type RecordStats struct {
	TotalRecords   int `json:"total_records"`
	UniquePatients int `json:"unique_patients"`
	LabTests       int `json:"lab_tests"`
	Prescriptions  int `json:"prescriptions"`
}

// CountRecords derives stats over enriched records.
func CountRecords(records []RecordView) RecordStats {
	patients := make(map[uint]struct{})
	stats := RecordStats{TotalRecords: len(records)}
	for _, r := range records {
		patients[r.PatientID] = struct{}{}
		stats.LabTests += len(r.LabTests)
		stats.Prescriptions += len(r.Prescriptions)
	}
	stats.UniquePatients = len(patients)
	return stats
}

// SearchPrescriptions matches patient name, medicine name or dosage case-insensitively.
func SearchPrescriptions(prescriptions []PrescriptionView, term string) []PrescriptionView {
	if term == "" {
		return prescriptions
	}
	out := make([]PrescriptionView, 0, len(prescriptions))
	for _, p := range prescriptions {
		var patient, medicine string
		if p.Patient != nil {
			patient = p.Patient.FullName
		}
		if p.Medicine != nil {
			medicine = p.Medicine.Name
		}
		if containsFold(patient, term) || containsFold(medicine, term) || containsFold(p.Dosage, term) {
			out = append(out, p)
		}
	}
	return out
}
