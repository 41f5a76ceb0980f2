package dashboard

import (
	"strings"
	"time"

	"github.com/ariebrainware/doctor-portal/model"
)

// Date windows accepted by FilterAppointments.
const (
	WindowAll      = "all"
	WindowToday    = "today"
	WindowUpcoming = "upcoming"
)

// AppointmentFilter narrows an appointment list. Zero values match everything.
type AppointmentFilter struct {
	Search string `form:"search"`
	Status string `form:"status"`
	Window string `form:"window"`
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// SameDay reports whether t falls on the calendar day of ref, in ref's location.
func SameDay(t, ref time.Time) bool {
	y1, m1, d1 := t.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Match reports whether a single appointment passes the filter.
func (f AppointmentFilter) Match(a model.Appointment, ref time.Time) bool {
	if f.Search != "" {
		name := ""
		if a.Patient != nil {
			name = a.Patient.FullName
		}
		if !containsFold(name, f.Search) && !containsFold(a.Notes, f.Search) {
			return false
		}
	}
	if f.Status != "" && f.Status != "all" && a.Status != f.Status {
		return false
	}
	switch f.Window {
	case WindowToday:
		return SameDay(a.AppointmentDate, ref)
	case WindowUpcoming:
		return !a.AppointmentDate.Before(ref)
	}
	return true
}

// FilterAppointments keeps the appointments matching f, preserving order.
func FilterAppointments(appointments []model.Appointment, f AppointmentFilter, ref time.Time) []model.Appointment {
	out := make([]model.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if f.Match(a, ref) {
			out = append(out, a)
		}
	}
	return out
}

// AppointmentStats are the counters shown above the appointment list.
type AppointmentStats struct {
	Total    int            `json:"total"`
	Upcoming int            `json:"upcoming"`
	Today    int            `json:"today"`
	ByStatus map[string]int `json:"by_status"`
}

// CountAppointments derives stats over the unfiltered list.
func CountAppointments(appointments []model.Appointment, ref time.Time) AppointmentStats {
	stats := AppointmentStats{
		Total:    len(appointments),
		ByStatus: make(map[string]int),
	}
	for _, status := range model.AppointmentStatuses {
		stats.ByStatus[status] = 0
	}
	for _, a := range appointments {
		stats.ByStatus[a.Status]++
		if !a.AppointmentDate.Before(ref) {
			stats.Upcoming++
		}
		if SameDay(a.AppointmentDate, ref) {
			stats.Today++
		}
	}
	return stats
}
