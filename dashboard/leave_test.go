package dashboard

import (
	"testing"

	"github.com/ariebrainware/doctor-portal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveDuration(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"same day", "2024-12-23", "2024-12-23", 1},
		{"work week", "2024-12-23", "2024-12-27", 5},
		{"reversed dates", "2024-12-27", "2024-12-23", 5},
		{"across months", "2024-01-30", "2024-02-02", 4},
		{"leap day", "2024-02-28", "2024-03-01", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LeaveDuration(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := LeaveDuration("2024-12-23", "tomorrow")
	assert.Error(t, err)
	_, err = LeaveDuration("", "2024-12-23")
	assert.Error(t, err)
}

func fixtureLeaves() []model.LeaveRequest {
	return []model.LeaveRequest{
		{StartDate: "2024-12-23", EndDate: "2024-12-27", Status: model.LeaveApproved},
		{StartDate: "2025-01-06", EndDate: "2025-01-06", Status: model.LeaveApproved},
		{StartDate: "2025-02-10", EndDate: "2025-02-12", Status: model.LeavePending},
		{StartDate: "2025-03-01", EndDate: "2025-03-02", Status: model.LeaveRejected},
		{StartDate: "2025-04-01", EndDate: "2025-04-03", Status: model.LeaveCancelled},
	}
}

func TestCountLeaves(t *testing.T) {
	stats := CountLeaves(fixtureLeaves())
	assert.Equal(t, LeaveStats{
		Total:             5,
		Pending:           1,
		Approved:          2,
		Rejected:          1,
		Cancelled:         1,
		TotalApprovedDays: 6,
	}, stats)
}

func TestDescribeLeaves(t *testing.T) {
	views := DescribeLeaves(fixtureLeaves())
	require.Len(t, views, 5)
	assert.Equal(t, 5, views[0].Days)
	assert.Equal(t, ToneSuccess, views[0].Tone)
	assert.Equal(t, ToneWarning, views[2].Tone)

	broken := DescribeLeaves([]model.LeaveRequest{{StartDate: "x", EndDate: "y"}})
	assert.Zero(t, broken[0].Days)
}
