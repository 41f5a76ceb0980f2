package endpoint

import (
	"net/http"
	"testing"

	"github.com/ariebrainware/doctor-portal/dashboard"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSchedules(env *testEnv) (cardiology, emergency model.Room) {
	env.t.Helper()
	require.NoError(env.t, env.DB.Where("name = ?", "Room 301").First(&cardiology).Error)
	require.NoError(env.t, env.DB.Where("name = ?", "Room 101").First(&emergency).Error)
	for _, s := range []model.WorkSchedule{
		{WorkDate: "2024-12-10", RoomID: cardiology.ID, Status: model.ScheduleCompleted},
		{WorkDate: "2024-12-16", RoomID: cardiology.ID, Status: model.ScheduleActive},
		{WorkDate: "2024-12-18", RoomID: emergency.ID, Status: model.ScheduleCompleted},
		{WorkDate: "2024-12-21", RoomID: cardiology.ID, Status: model.ScheduleActive},
		{WorkDate: "2024-12-25", RoomID: emergency.ID, Status: model.ScheduleActive},
	} {
		s.DoctorID = env.Doctor.ID
		s.ShiftID = 1
		env.create(&s)
	}
	return cardiology, emergency
}

func TestListWorkSchedules_CurrentWeek(t *testing.T) {
	env := newTestEnv(t)
	seedSchedules(env)

	w, _ := env.call(http.MethodGet, "/work-schedule", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data ScheduleResponse
	decodeData(t, w, &data)
	assert.Equal(t, "2024-12-15", data.WeekStart)
	assert.Equal(t, "2024-12-21", data.WeekEnd)
	assert.Equal(t, "2024-12-08", data.PrevWeek)
	assert.Equal(t, "2024-12-22", data.NextWeek)
	assert.Len(t, data.Days, 7)
	assert.Len(t, data.Grid, 7)
	assert.Len(t, data.Grid["2024-12-16"], 1)
	assert.Len(t, data.Grid["2024-12-17"], 0)
	assert.Equal(t, dashboard.ScheduleStats{TotalShifts: 5, ThisWeekShifts: 3, Active: 3, Completed: 2}, data.Stats)
	assert.Len(t, data.Shifts, 3)
	assert.Len(t, data.Rooms, 4)
	assert.Len(t, data.Departments, 4)
	assert.Equal(t, dashboard.ToneSuccess, data.Tones[model.ScheduleActive])
}

func TestListWorkSchedules_NavigateAndFilter(t *testing.T) {
	env := newTestEnv(t)
	_, emergency := seedSchedules(env)

	w, _ := env.call(http.MethodGet, "/work-schedule?week_start=2024-12-25", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var next ScheduleResponse
	decodeData(t, w, &next)
	assert.Equal(t, "2024-12-22", next.WeekStart)
	assert.Len(t, next.Grid["2024-12-25"], 1)
	assert.Equal(t, dashboard.ScheduleStats{TotalShifts: 5, ThisWeekShifts: 1, Active: 3, Completed: 2}, next.Stats)

	w, _ = env.call(http.MethodGet, "/work-schedule?department_id="+uintString(emergency.DepartmentID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var byDepartment ScheduleResponse
	decodeData(t, w, &byDepartment)
	assert.Len(t, byDepartment.Schedules, 2)
	assert.Len(t, byDepartment.Grid["2024-12-18"], 1)
	assert.Len(t, byDepartment.Grid["2024-12-16"], 0)
	assert.Equal(t, dashboard.ScheduleStats{TotalShifts: 5, ThisWeekShifts: 3, Active: 3, Completed: 2}, byDepartment.Stats)

	w, _ = env.call(http.MethodGet, "/work-schedule?start=2024-12-16&end=2024-12-21", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ranged ScheduleResponse
	decodeData(t, w, &ranged)
	assert.Len(t, ranged.Schedules, 3)
	assert.Equal(t, 3, ranged.Stats.TotalShifts)

	w, _ = env.call(http.MethodGet, "/work-schedule?week_start=next-week", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
