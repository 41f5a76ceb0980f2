package dashboard

import (
	"time"

	"github.com/ariebrainware/doctor-portal/model"
)

// Summary is the landing page of the portal.
type Summary struct {
	TotalAppointments    int                 `json:"total_appointments"`
	TodaysAppointments   int                 `json:"todays_appointments"`
	PendingLabTests      int                 `json:"pending_lab_tests"`
	PendingLeaveRequests int                 `json:"pending_leave_requests"`
	ExpiringCertificates int                 `json:"expiring_certificates"`
	Today                []model.Appointment `json:"today"`
}

// Summarize derives the landing page counters for a doctor.
func Summarize(appointments []model.Appointment, labTests []model.LabTest, leaves []model.LeaveRequest, certs []model.Certificate, ref time.Time) Summary {
	s := Summary{
		TotalAppointments: len(appointments),
		Today:             FilterAppointments(appointments, AppointmentFilter{Window: WindowToday}, ref),
	}
	s.TodaysAppointments = len(s.Today)
	for _, t := range labTests {
		if t.Result == model.LabResultPending {
			s.PendingLabTests++
		}
	}
	for _, l := range leaves {
		if l.Status == model.LeavePending {
			s.PendingLeaveRequests++
		}
	}
	for _, c := range certs {
		if days, err := DaysUntilExpiry(c.ExpiryDate, ref); err == nil && IsExpiringSoon(days) {
			s.ExpiringCertificates++
		}
	}
	return s
}
