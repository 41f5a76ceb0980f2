package dashboard

import "github.com/ariebrainware/doctor-portal/model"

// LeaveDuration returns the inclusive number of days a leave spans.
// Reversed dates count the same as ordered ones.
func LeaveDuration(start, end string) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	days := int(e.Sub(s).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days + 1, nil
}

// LeaveView is a leave request with its computed duration.
type LeaveView struct {
	model.LeaveRequest
	Days int  `json:"days"`
	Tone Tone `json:"tone"`
}

// DescribeLeaves decorates leave requests. Unparsable ranges get zero days.
func DescribeLeaves(requests []model.LeaveRequest) []LeaveView {
	out := make([]LeaveView, 0, len(requests))
	for _, r := range requests {
		days, _ := LeaveDuration(r.StartDate, r.EndDate)
		out = append(out, LeaveView{
			LeaveRequest: r,
			Days:         days,
			Tone:         StatusTone(KindLeave, r.Status),
		})
	}
	return out
}

// LeaveStats are the counters shown above the leave list.
type LeaveStats struct {
	Total             int `json:"total"`
	Pending           int `json:"pending"`
	Approved          int `json:"approved"`
	Rejected          int `json:"rejected"`
	Cancelled         int `json:"cancelled"`
	TotalApprovedDays int `json:"total_approved_days"`
}

// CountLeaves derives stats over a doctor's leave requests.
func CountLeaves(requests []model.LeaveRequest) LeaveStats {
	stats := LeaveStats{Total: len(requests)}
	for _, r := range requests {
		switch r.Status {
		case model.LeavePending:
			stats.Pending++
		case model.LeaveApproved:
			stats.Approved++
			if days, err := LeaveDuration(r.StartDate, r.EndDate); err == nil {
				stats.TotalApprovedDays += days
			}
		case model.LeaveRejected:
			stats.Rejected++
		case model.LeaveCancelled:
			stats.Cancelled++
		}
	}
	return stats
}
