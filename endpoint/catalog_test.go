package endpoint

import (
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/ariebrainware/doctor-portal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func TestListMedicines(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.call(http.MethodGet, "/medicine", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var medicines []model.Medicine
	decodeData(t, w, &medicines)
	assert.Len(t, medicines, 5)
	assert.Equal(t, "Aspirin", medicines[0].Name)

	w, _ = env.call(http.MethodGet, "/medicine?search=OLOL", nil)
	decodeData(t, w, &medicines)
	require.Len(t, medicines, 1)
	assert.Equal(t, "Metoprolol", medicines[0].Name)
}

func TestGetMedicine(t *testing.T) {
	env := newTestEnv(t)
	m := env.medicine("Aspirin")

	w, _ := env.call(http.MethodGet, fmt.Sprintf("/medicine/%d", m.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = env.call(http.MethodGet, "/medicine/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatientsAreScopedToDoctor(t *testing.T) {
	env := newTestEnv(t)
	john, emily, lisa := env.patient("John Smith"), env.patient("Emily Davis"), env.patient("Lisa Wilson")
	env.appointment(env.Doctor.ID, john.ID, model.AppointmentPending, fixedNow)
	env.record(env.Doctor.ID, emily.ID, "Migraine", "Rest")
	other, _ := env.otherDoctor()
	env.appointment(other.ID, lisa.ID, model.AppointmentPending, fixedNow)

	w, _ := env.call(http.MethodGet, "/patient", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var patients []model.Patient
	decodeData(t, w, &patients)
	require.Len(t, patients, 2)
	assert.Equal(t, "Emily Davis", patients[0].FullName)
	assert.Equal(t, "John Smith", patients[1].FullName)

	w, _ = env.call(http.MethodGet, "/patient?search=smi", nil)
	decodeData(t, w, &patients)
	assert.Len(t, patients, 1)

	w, _ = env.call(http.MethodGet, fmt.Sprintf("/patient/%d", john.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = env.call(http.MethodGet, fmt.Sprintf("/patient/%d", lisa.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReferenceLists(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.call(http.MethodGet, "/shift", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var shifts []model.Shift
	decodeData(t, w, &shifts)
	assert.Len(t, shifts, 3)

	var cardiology model.Department
	require.NoError(t, env.DB.Where("name = ?", "Cardiology").First(&cardiology).Error)
	w, _ = env.call(http.MethodGet, "/room?department_id="+uintString(cardiology.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rooms []model.Room
	decodeData(t, w, &rooms)
	assert.Len(t, rooms, 2)

	w, _ = env.call(http.MethodGet, "/department", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var departments []model.Department
	decodeData(t, w, &departments)
	assert.Len(t, departments, 4)
}
