package endpoint

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ariebrainware/doctor-portal/middleware"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testEmail    = "sarah.johnson@hospital.com"
	testPassword = "password123"
)

// testEnv is a seeded database, a router with every route and a signed-in doctor.
type testEnv struct {
	t      *testing.T
	DB     *gorm.DB
	Router *gin.Engine
	Doctor model.Doctor
	Token  string
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:testdb_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	require.NoError(t, model.SeedReferenceData(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	util.FlushRefCache()
	db := setupTestDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	doctor, err := model.SeedDemoDoctor(db, testEmail, string(hash))
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	RegisterRoutes(r, RouteOptions{})

	env := &testEnv{t: t, DB: db, Router: r, Doctor: doctor}
	env.Token = env.openSession(doctor)
	return env
}

func (e *testEnv) openSession(doctor model.Doctor) string {
	e.t.Helper()
	token, expiresAt, err := util.GenerateSessionToken(doctor.ID, doctor.Email, time.Hour)
	require.NoError(e.t, err)
	require.NoError(e.t, e.DB.Create(&model.Session{DoctorID: doctor.ID, SessionToken: token, ExpiresAt: expiresAt}).Error)
	return token
}

// otherDoctor creates a second doctor with a live session.
func (e *testEnv) otherDoctor() (model.Doctor, string) {
	e.t.Helper()
	doctor := model.Doctor{FullName: "Dr. Michael Chen", Email: "michael.chen@hospital.com", Password: "x", Status: "Active"}
	require.NoError(e.t, e.DB.Create(&doctor).Error)
	return doctor, e.openSession(doctor)
}

func (e *testEnv) patient(name string) model.Patient {
	e.t.Helper()
	var p model.Patient
	require.NoError(e.t, e.DB.Where("full_name = ?", name).First(&p).Error)
	return p
}

func (e *testEnv) medicine(name string) model.Medicine {
	e.t.Helper()
	var m model.Medicine
	require.NoError(e.t, e.DB.Where("name = ?", name).First(&m).Error)
	return m
}

func (e *testEnv) appointment(doctorID, patientID uint, status string, at time.Time) model.Appointment {
	e.t.Helper()
	a := model.Appointment{PatientID: patientID, DoctorID: doctorID, AppointmentDate: at, ShiftID: 1, Status: status}
	require.NoError(e.t, e.DB.Create(&a).Error)
	return a
}

func (e *testEnv) record(doctorID, patientID uint, diagnosis, treatment string) model.MedicalRecord {
	e.t.Helper()
	r := model.MedicalRecord{PatientID: patientID, DoctorID: doctorID, Diagnosis: diagnosis, Treatment: treatment, RecordDate: "2024-12-01"}
	require.NoError(e.t, e.DB.Create(&r).Error)
	return r
}

func (e *testEnv) create(row interface{}) {
	e.t.Helper()
	require.NoError(e.t, e.DB.Create(row).Error)
}

// call performs an authenticated request as the seeded doctor.
func (e *testEnv) call(method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	return e.callAs(e.Token, method, path, body)
}

func (e *testEnv) callAs(token, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	e.t.Helper()
	headers := map[string]string{}
	if token != "" {
		headers[middleware.SessionHeader] = token
	}
	w, resp, err := performRequest(e.Router, requestSpec{method: method, requestPath: path, body: body, headers: headers})
	require.NoError(e.t, err)
	return w, resp
}

// decodeData unmarshals the envelope's data field into dst.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}
