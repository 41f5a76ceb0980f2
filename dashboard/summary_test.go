package dashboard

import (
	"testing"

	"github.com/ariebrainware/doctor-portal/model"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	labTests := []model.LabTest{
		{Result: model.LabResultPending},
		{Result: "Normal"},
		{Result: model.LabResultPending},
	}
	leaves := fixtureLeaves()
	certs := []model.Certificate{
		{ExpiryDate: "2025-01-10"},
		{ExpiryDate: "2024-11-30"},
		{ExpiryDate: "2027-01-01"},
	}

	s := Summarize(fixtureAppointments(), labTests, leaves, certs, refNoon)
	assert.Equal(t, 4, s.TotalAppointments)
	assert.Equal(t, 2, s.TodaysAppointments)
	assert.Len(t, s.Today, 2)
	assert.Equal(t, 2, s.PendingLabTests)
	assert.Equal(t, 1, s.PendingLeaveRequests)
	assert.Equal(t, 1, s.ExpiringCertificates)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil, nil, nil, refNoon)
	assert.Zero(t, s.TotalAppointments)
	assert.NotNil(t, s.Today)
}
