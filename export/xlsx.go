// Package export renders portal lists as xlsx workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/ariebrainware/doctor-portal/dashboard"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	AppointmentSheet = "Appointments"
	CertificateSheet = "Certificates"
)

func newWorkbook(sheet string, headers []string) (*excelize.File, error) {
	file := excelize.NewFile()
	idx, err := file.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	file.SetActiveSheet(idx)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
		if err := file.SetCellStyle(sheet, cell, cell, bold); err != nil {
			return nil, err
		}
	}
	return file, nil
}

func appendRow(file *excelize.File, sheet string, index int, values ...interface{}) error {
	rowCount := index + 2
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowCount)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func finish(file *excelize.File, w io.Writer) error {
	defer file.Close()
	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Appointments writes one row per appointment.
func Appointments(w io.Writer, rows []model.Appointment) error {
	headers := []string{"Date", "Time", "Patient", "Shift", "Status", "Notes"}
	file, err := newWorkbook(AppointmentSheet, headers)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	for i, a := range rows {
		var patient, shift string
		if a.Patient != nil {
			patient = a.Patient.FullName
		}
		if a.Shift != nil {
			shift = a.Shift.Name
		}
		err := appendRow(file, AppointmentSheet, i,
			a.AppointmentDate.Format("2006-01-02"),
			a.AppointmentDate.Format("15:04"),
			patient,
			shift,
			a.Status,
			a.Notes,
		)
		if err != nil {
			return fmt.Errorf("append appointment %d: %w", a.ID, err)
		}
	}
	_ = file.SetColWidth(AppointmentSheet, "C", "C", 24)
	_ = file.SetColWidth(AppointmentSheet, "F", "F", 40)
	return finish(file, w)
}

// Certificates writes one row per decorated certificate.
func Certificates(w io.Writer, rows []dashboard.CertificateView) error {
	headers := []string{"Name", "Issued By", "Issue Date", "Expiry Date", "Days Left", "Status", "Category"}
	file, err := newWorkbook(CertificateSheet, headers)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	for i, c := range rows {
		err := appendRow(file, CertificateSheet, i,
			c.Name,
			c.IssuedBy,
			c.IssueDate,
			c.ExpiryDate,
			c.DaysUntilExpiry,
			c.ExpiryStatus,
			c.Category,
		)
		if err != nil {
			return fmt.Errorf("append certificate %d: %w", c.ID, err)
		}
	}
	_ = file.SetColWidth(CertificateSheet, "A", "B", 32)
	return finish(file, w)
}
