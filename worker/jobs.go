// Package worker runs the portal's periodic background jobs.
package worker

import (
	"fmt"
	"time"

	"github.com/ariebrainware/doctor-portal/dashboard"
	"github.com/ariebrainware/doctor-portal/event"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// Jobs holds the dependencies of the background jobs.
type Jobs struct {
	DB     *gorm.DB
	Events *event.Broadcaster
	Now    func() time.Time
}

// NewJobs creates the job set publishing through events.
func NewJobs(db *gorm.DB, events *event.Broadcaster) *Jobs {
	return &Jobs{DB: db, Events: events, Now: time.Now}
}

// Start schedules the certificate watch daily at watchAt (HH:MM) and the
// session sweep hourly, then starts the scheduler in the background.
func (j *Jobs) Start(watchAt string) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.Local)

	if _, err := scheduler.Every(1).Day().At(watchAt).Do(func() {
		if _, err := j.WatchCertificates(); err != nil {
			util.Logger.Error().Err(err).Msg("certificate expiry watch failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule certificate watch at %q: %w", watchAt, err)
	}

	if _, err := scheduler.Every(1).Hour().Do(func() {
		if _, err := j.SweepSessions(); err != nil {
			util.Logger.Error().Err(err).Msg("session sweep failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule session sweep: %w", err)
	}

	scheduler.StartAsync()
	util.Logger.Info().Str("cert_watch_at", watchAt).Msg("background jobs started")
	return scheduler, nil
}

// WatchCertificates notifies every doctor holding certificates inside the
// renewal window and returns how many doctors were notified.
func (j *Jobs) WatchCertificates() (int, error) {
	now := j.Now()
	horizon := dashboard.FormatDate(dashboard.CalendarDay(now).AddDate(0, 0, dashboard.RenewalWindowDays))

	var certs []model.Certificate
	if err := j.DB.Where("expiry_date <= ?", horizon).Order("expiry_date asc").Find(&certs).Error; err != nil {
		return 0, fmt.Errorf("load certificates: %w", err)
	}

	byDoctor := make(map[uint][]model.Certificate)
	var order []uint
	for _, c := range certs {
		if _, seen := byDoctor[c.DoctorID]; !seen {
			order = append(order, c.DoctorID)
		}
		byDoctor[c.DoctorID] = append(byDoctor[c.DoctorID], c)
	}

	notified := 0
	for _, doctorID := range order {
		report := dashboard.BuildCertificateReport(byDoctor[doctorID], now)
		if len(report.Expiring) == 0 {
			continue
		}
		notified++
		util.Logger.Info().
			Uint("doctor_id", doctorID).
			Str("doctor", util.GetDoctorName(j.DB, doctorID)).
			Int("expiring", len(report.Expiring)).
			Msg("certificates due for renewal")
		if j.Events != nil {
			j.Events.Publish(event.Event{
				Type:     event.CertificateExpiring,
				DoctorID: doctorID,
				Data:     report.Expiring,
			})
		}
	}
	return notified, nil
}

// SweepSessions hard-deletes sessions past their expiry.
func (j *Jobs) SweepSessions() (int64, error) {
	res := j.DB.Unscoped().Where("expires_at < ?", j.Now()).Delete(&model.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("sweep sessions: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		util.Logger.Info().Int64("removed", res.RowsAffected).Msg("expired sessions swept")
	}
	return res.RowsAffected, nil
}
