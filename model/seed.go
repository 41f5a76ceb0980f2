package model

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// seedOne inserts row unless a record matching query/args already exists.
func seedOne(db *gorm.DB, row interface{}, query string, args ...interface{}) error {
	err := db.Where(query, args...).First(row).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(row).Error
}

// SeedReferenceData creates the lookup tables the portal needs before any
// doctor can work: specialties, departments, rooms, shifts and medicines.
// Existing rows are left untouched.
func SeedReferenceData(db *gorm.DB) error {
	specialties := []Specialty{
		{Name: "Cardiology", Description: "Heart and cardiovascular system specialists"},
		{Name: "Neurology", Description: "Brain and nervous system specialists"},
		{Name: "Orthopedics", Description: "Bone and joint specialists"},
		{Name: "Pediatrics", Description: "Children's healthcare specialists"},
	}
	for i := range specialties {
		if err := seedOne(db, &specialties[i], "name = ?", specialties[i].Name); err != nil {
			return fmt.Errorf("failed to seed specialty %s: %w", specialties[i].Name, err)
		}
	}

	departments := []Department{
		{Name: "Cardiology", Description: "Heart Care Department", Location: "Building A, Floor 3"},
		{Name: "Emergency", Description: "Emergency Care", Location: "Building A, Floor 1"},
		{Name: "Surgery", Description: "Surgical Department", Location: "Building B, Floor 2"},
		{Name: "ICU", Description: "Intensive Care Unit", Location: "Building A, Floor 4"},
	}
	for i := range departments {
		if err := seedOne(db, &departments[i], "name = ?", departments[i].Name); err != nil {
			return fmt.Errorf("failed to seed department %s: %w", departments[i].Name, err)
		}
	}

	rooms := []Room{
		{Name: "Room 301", Type: "Consultation", Floor: 3, DepartmentID: departments[0].ID},
		{Name: "Room 302", Type: "Consultation", Floor: 3, DepartmentID: departments[0].ID},
		{Name: "Room 101", Type: "Emergency", Floor: 1, DepartmentID: departments[1].ID},
		{Name: "OR 201", Type: "Surgery", Floor: 2, DepartmentID: departments[2].ID},
	}
	for i := range rooms {
		if err := seedOne(db, &rooms[i], "name = ?", rooms[i].Name); err != nil {
			return fmt.Errorf("failed to seed room %s: %w", rooms[i].Name, err)
		}
	}

	shifts := []Shift{
		{Name: "Morning", StartTime: "08:00", EndTime: "16:00"},
		{Name: "Evening", StartTime: "16:00", EndTime: "00:00"},
		{Name: "Night", StartTime: "00:00", EndTime: "08:00"},
	}
	for i := range shifts {
		if err := seedOne(db, &shifts[i], "name = ?", shifts[i].Name); err != nil {
			return fmt.Errorf("failed to seed shift %s: %w", shifts[i].Name, err)
		}
	}

	medicines := []Medicine{
		{Name: "Lisinopril", Description: "ACE Inhibitor", UnitPrice: 10, Quantity: 100},
		{Name: "Metoprolol", Description: "Beta Blocker", UnitPrice: 20, Quantity: 50},
		{Name: "Atorvastatin", Description: "Statin", UnitPrice: 30, Quantity: 100},
		{Name: "Aspirin", Description: "Antiplatelet", UnitPrice: 40, Quantity: 50},
		{Name: "Ibuprofen", Description: "NSAID", UnitPrice: 50, Quantity: 100},
	}
	for i := range medicines {
		if err := seedOne(db, &medicines[i], "name = ?", medicines[i].Name); err != nil {
			return fmt.Errorf("failed to seed medicine %s: %w", medicines[i].Name, err)
		}
	}
	return nil
}

// SeedDemoDoctor creates a doctor account with the given (already hashed)
// password and a handful of patients so a fresh install can log in. The email
// is stored trimmed and lowercased, the form Login looks it up by.
func SeedDemoDoctor(db *gorm.DB, email, passwordHash string) (Doctor, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var specialty Specialty
	if err := db.Where("name = ?", "Cardiology").First(&specialty).Error; err != nil {
		return Doctor{}, fmt.Errorf("reference data missing: %w", err)
	}

	doctor := Doctor{
		SpecialtyID: specialty.ID,
		FullName:    "Dr. Sarah Johnson",
		Username:    "sjohnson",
		Password:    passwordHash,
		Phone:       "+1-555-0123",
		BirthDate:   "1985-03-15",
		Gender:      "Female",
		Status:      "Active",
		Email:       email,
		JoinDate:    "2018-01-15",
		Role:        "Senior Doctor",
	}
	if err := seedOne(db, &doctor, "email = ?", email); err != nil {
		return Doctor{}, fmt.Errorf("failed to seed doctor %s: %w", email, err)
	}

	patients := []Patient{
		{FullName: "John Smith", PersonalID: "123456789", Gender: "Male", BirthDate: "1978-06-20", Status: "Active"},
		{FullName: "Emily Davis", PersonalID: "987654321", Gender: "Female", BirthDate: "1990-11-12", Status: "Active"},
		{FullName: "Michael Brown", PersonalID: "456789123", Gender: "Male", BirthDate: "1965-09-08", Status: "Active"},
		{FullName: "Lisa Wilson", PersonalID: "789123456", Gender: "Female", BirthDate: "1982-04-25", Status: "Active"},
	}
	for i := range patients {
		if err := seedOne(db, &patients[i], "personal_id = ?", patients[i].PersonalID); err != nil {
			return Doctor{}, fmt.Errorf("failed to seed patient %s: %w", patients[i].FullName, err)
		}
	}
	return doctor, nil
}
