package endpoint

import (
	"net/http"
	"testing"

	"github.com/ariebrainware/doctor-portal/dashboard"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard(t *testing.T) {
	env := newTestEnv(t)
	seedAppointments(env)
	seedRecords(env)
	seedCertificates(env)
	env.leave("2024-12-23", "2024-12-27", model.LeavePending)
	env.leave("2024-11-01", "2024-11-05", model.LeaveApproved)

	w, _ := env.call(http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var summary dashboard.Summary
	decodeData(t, w, &summary)
	assert.Equal(t, 4, summary.TotalAppointments)
	assert.Equal(t, 2, summary.TodaysAppointments)
	assert.Len(t, summary.Today, 2)
	assert.Equal(t, 1, summary.PendingLabTests)
	assert.Equal(t, 1, summary.PendingLeaveRequests)
	assert.Equal(t, 2, summary.ExpiringCertificates)
}

func TestGetDashboard_Empty(t *testing.T) {
	env := newTestEnv(t)
	w, _ := env.call(http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary dashboard.Summary
	decodeData(t, w, &summary)
	assert.Zero(t, summary.TotalAppointments)
	assert.Empty(t, summary.Today)
}
