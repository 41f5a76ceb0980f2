package dashboard

import (
	"time"

	"github.com/ariebrainware/doctor-portal/model"
)

// FilterByDepartment keeps schedules whose room belongs to departmentID.
// A zero departmentID keeps everything.
func FilterByDepartment(schedules []model.WorkSchedule, rooms []model.Room, departmentID uint) []model.WorkSchedule {
	if departmentID == 0 {
		return schedules
	}
	roomDept := make(map[uint]uint, len(rooms))
	for _, r := range rooms {
		roomDept[r.ID] = r.DepartmentID
	}
	out := make([]model.WorkSchedule, 0, len(schedules))
	for _, s := range schedules {
		if roomDept[s.RoomID] == departmentID {
			out = append(out, s)
		}
	}
	return out
}

// ScheduleStats are the counters shown above the schedule view.
type ScheduleStats struct {
	TotalShifts    int `json:"total_shifts"`
	ThisWeekShifts int `json:"this_week_shifts"`
	Active         int `json:"active"`
	Completed      int `json:"completed"`
}

// CountSchedules derives stats, counting as this week the displayed week that
// contains ref. Pass the doctor's schedules before any department filter.
func CountSchedules(schedules []model.WorkSchedule, ref time.Time) ScheduleStats {
	week := make(map[string]struct{}, 7)
	for _, d := range WeekDates(ref) {
		week[d] = struct{}{}
	}
	stats := ScheduleStats{TotalShifts: len(schedules)}
	for _, s := range schedules {
		if _, ok := week[s.WorkDate]; ok {
			stats.ThisWeekShifts++
		}
		switch s.Status {
		case model.ScheduleActive:
			stats.Active++
		case model.ScheduleCompleted:
			stats.Completed++
		}
	}
	return stats
}

// WeekGrid groups schedules by work date for each day of a week.
func WeekGrid(schedules []model.WorkSchedule, weekStart time.Time) map[string][]model.WorkSchedule {
	grid := make(map[string][]model.WorkSchedule, 7)
	for _, d := range WeekDates(weekStart) {
		grid[d] = []model.WorkSchedule{}
	}
	for _, s := range schedules {
		if day, ok := grid[s.WorkDate]; ok {
			grid[s.WorkDate] = append(day, s)
		}
	}
	return grid
}
