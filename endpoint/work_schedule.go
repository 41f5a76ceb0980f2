package endpoint

import (
	"fmt"

	"github.com/ariebrainware/doctor-portal/dashboard"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type scheduleQuery struct {
	WeekStart    string `form:"week_start" binding:"omitempty,isodate"`
	DepartmentID uint   `form:"department_id"`
	Start        string `form:"start" binding:"omitempty,isodate"`
	End          string `form:"end" binding:"omitempty,isodate"`
}

// ScheduleResponse is the week view of the work schedule page.
type ScheduleResponse struct {
	WeekStart   string                          `json:"week_start"`
	WeekEnd     string                          `json:"week_end"`
	PrevWeek    string                          `json:"prev_week"`
	NextWeek    string                          `json:"next_week"`
	Days        []string                        `json:"days"`
	Grid        map[string][]model.WorkSchedule `json:"grid"`
	Schedules   []model.WorkSchedule            `json:"schedules"`
	Stats       dashboard.ScheduleStats         `json:"stats"`
	Shifts      []model.Shift                   `json:"shifts"`
	Rooms       []model.Room                    `json:"rooms"`
	Departments []model.Department              `json:"departments"`
	Tones       map[string]dashboard.Tone       `json:"tones"`
}

func fetchDoctorSchedules(db *gorm.DB, doctorID uint, q scheduleQuery) ([]model.WorkSchedule, error) {
	query := db.Where("doctor_id = ?", doctorID)
	if q.Start != "" {
		query = query.Where("work_date >= ?", q.Start)
	}
	if q.End != "" {
		query = query.Where("work_date <= ?", q.End)
	}
	var schedules []model.WorkSchedule
	if err := query.Order("work_date ASC, id ASC").Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("load work schedules: %w", err)
	}
	return schedules, nil
}

func scheduleTones() map[string]dashboard.Tone {
	tones := make(map[string]dashboard.Tone, 4)
	for _, s := range []string{model.ScheduleActive, model.ScheduleCompleted, model.ScheduleCancelled, model.SchedulePending} {
		tones[s] = dashboard.StatusTone(dashboard.KindSchedule, s)
	}
	return tones
}

// ListWorkSchedules godoc
// @Summary      Work schedule week view
// @Description  Shifts of the signed-in doctor grouped by day for a Sunday-start week, with stats and reference lists
// @Tags         WorkSchedule
// @Produce      json
// @Security     SessionToken
// @Param        week_start query string false "Any date in the week to show (YYYY-MM-DD), defaults to today"
// @Param        department_id query int false "Only shifts in rooms of this department"
// @Param        start query string false "Earliest work date (YYYY-MM-DD)"
// @Param        end query string false "Latest work date (YYYY-MM-DD)"
// @Success      200 {object} util.APIResponse{data=ScheduleResponse}
// @Failure      400 {object} util.APIResponse "Invalid query"
// @Router       /work-schedule [get]
func ListWorkSchedules(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	var q scheduleQuery
	if !bindQueryOrRespond(c, &q) {
		return
	}

	ref := util.Now()
	if q.WeekStart != "" {
		parsed, err := dashboard.ParseDate(q.WeekStart)
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: "Invalid week_start", Err: err})
			return
		}
		ref = parsed
	}

	schedules, err := fetchDoctorSchedules(scope.DB, scope.DoctorID, q)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve work schedules", Err: err})
		return
	}
	shifts, err := loadShifts(scope.DB)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve shifts", Err: err})
		return
	}
	rooms, err := loadRooms(scope.DB)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve rooms", Err: err})
		return
	}
	departments, err := loadDepartments(scope.DB)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve departments", Err: err})
		return
	}

	filtered := dashboard.FilterByDepartment(schedules, rooms, q.DepartmentID)
	days := dashboard.WeekDates(ref)
	weekStart, _ := dashboard.ParseDate(days[0])

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Work schedules retrieved",
		Data: ScheduleResponse{
			WeekStart:   days[0],
			WeekEnd:     days[len(days)-1],
			PrevWeek:    dashboard.FormatDate(dashboard.ShiftWeek(weekStart, -1)),
			NextWeek:    dashboard.FormatDate(dashboard.ShiftWeek(weekStart, 1)),
			Days:        days,
			Grid:        dashboard.WeekGrid(filtered, weekStart),
			Schedules:   filtered,
			Stats:       dashboard.CountSchedules(schedules, weekStart),
			Shifts:      shifts,
			Rooms:       rooms,
			Departments: departments,
			Tones:       scheduleTones(),
		},
	})
}
