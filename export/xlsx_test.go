package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/ariebrainware/doctor-portal/dashboard"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readRows(t *testing.T, buf *bytes.Buffer, sheet string) [][]string {
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheet}, f.GetSheetList())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestAppointments(t *testing.T) {
	rows := []model.Appointment{
		{
			AppointmentDate: time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC),
			Status:          model.AppointmentScheduled,
			Notes:           "Regular checkup",
			Patient:         &model.Patient{FullName: "John Smith"},
			Shift:           &model.Shift{Name: "Morning"},
		},
		{
			AppointmentDate: time.Date(2024, 12, 21, 14, 30, 0, 0, time.UTC),
			Status:          model.AppointmentPending,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Appointments(&buf, rows))

	got := readRows(t, &buf, AppointmentSheet)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Date", "Time", "Patient", "Shift", "Status", "Notes"}, got[0])
	assert.Equal(t, []string{"2024-12-20", "10:00", "John Smith", "Morning", "Scheduled", "Regular checkup"}, got[1])
	assert.Equal(t, "2024-12-21", got[2][0])
	assert.Equal(t, "14:30", got[2][1])
	assert.Equal(t, "Pending", got[2][4])
}

func TestAppointments_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Appointments(&buf, nil))
	got := readRows(t, &buf, AppointmentSheet)
	assert.Len(t, got, 1)
}

func TestCertificates(t *testing.T) {
	report := dashboard.BuildCertificateReport([]model.Certificate{
		{Name: "Medical License", IssuedBy: "State Medical Board", IssueDate: "2020-01-15", ExpiryDate: "2025-01-10"},
	}, time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, Certificates(&buf, report.Certificates))

	got := readRows(t, &buf, CertificateSheet)
	require.Len(t, got, 2)
	assert.Equal(t, "Days Left", got[0][4])
	assert.Equal(t, []string{"Medical License", "State Medical Board", "2020-01-15", "2025-01-10", "21", "Expiring Soon", "medical"}, got[1])
}
