package middleware

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ariebrainware/doctor-portal/config"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	util.SetJWTSecret("middleware-test-secret")
	m.Run()
}

// newInMemoryDB creates an in-memory sqlite DB with the session tables migrated.
func newInMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_mw_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&model.Doctor{}, &model.Session{}, &model.AuditLog{}); err != nil {
		t.Fatalf("failed to auto-migrate: %v", err)
	}
	return db
}

// createTestSession stores a doctor and a live session signed for them.
func createTestSession(t *testing.T, db *gorm.DB, expiresAt time.Time) (model.Doctor, string) {
	t.Helper()
	doctor := model.Doctor{FullName: "Dr. Test", Email: fmt.Sprintf("doc%d@example.com", time.Now().UnixNano()), Password: "x"}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("failed to create doctor: %v", err)
	}
	token, _, err := util.GenerateSessionToken(doctor.ID, doctor.Email, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	session := model.Session{DoctorID: doctor.ID, SessionToken: token, ExpiresAt: expiresAt, ClientIP: "127.0.0.1", Browser: "test"}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return doctor, token
}

func setupRedisMock(t *testing.T) redismock.ClientMock {
	rdb, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(rdb)
	t.Cleanup(config.ResetRedisClientForTest)
	return mock
}

func runProtected(db *gorm.DB, token string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	if db != nil {
		r.Use(DatabaseMiddleware(db))
	}
	r.GET("/test", ValidateSessionToken(), handler)
	req := httptest.NewRequest("GET", "/test", nil)
	if token != "" {
		req.Header.Set(SessionHeader, token)
	}
	r.ServeHTTP(w, req)
	return w
}
