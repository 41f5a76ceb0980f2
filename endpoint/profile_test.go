package endpoint

import (
	"net/http"
	"testing"

	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	w, _ := env.call(http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile ProfileResponse
	decodeData(t, w, &profile)
	assert.Equal(t, testEmail, profile.Email)
	require.NotNil(t, profile.Specialty)
	assert.Equal(t, "Cardiology", profile.Specialty.Name)
}

func TestUpdateProfile_Fields(t *testing.T) {
	env := newTestEnv(t)
	w, _ := env.call(http.MethodPatch, "/me", map[string]interface{}{
		"full_name": "  dr.   sarah   johnson-lee ",
		"phone":     "+1-555-9999",
		"email":     "hijack@hospital.com",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile ProfileResponse
	decodeData(t, w, &profile)
	assert.Equal(t, util.NormalizeName("  dr.   sarah   johnson-lee "), profile.FullName)
	assert.Equal(t, "+1-555-9999", profile.Phone)
	assert.Equal(t, testEmail, profile.Email)
}

func TestUpdateProfile_NoFields(t *testing.T) {
	env := newTestEnv(t)
	w, resp := env.call(http.MethodPatch, "/me", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No fields to update", resp["msg"])
}

func TestUpdateProfile_BadBirthDate(t *testing.T) {
	env := newTestEnv(t)
	w, _ := env.call(http.MethodPatch, "/me", map[string]interface{}{"birth_date": "15/03/1985"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfile_PasswordNeedsCurrent(t *testing.T) {
	env := newTestEnv(t)
	w, resp := env.call(http.MethodPatch, "/me", map[string]interface{}{"password": "brand-new-pass", "current_password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Current password is incorrect", resp["msg"])
}

func TestUpdateProfile_PasswordClosesOtherSessions(t *testing.T) {
	env := newTestEnv(t)
	other := env.openSession(env.Doctor)

	w, _ := env.call(http.MethodPatch, "/me", map[string]interface{}{"password": "brand-new-pass", "current_password": testPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var doctor model.Doctor
	require.NoError(t, env.DB.First(&doctor, env.Doctor.ID).Error)
	assert.True(t, util.CheckPassword(doctor.Password, "brand-new-pass"))

	w, _ = env.callAs(other, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = env.call(http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
