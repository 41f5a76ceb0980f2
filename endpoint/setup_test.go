package endpoint

import (
	"os"
	"testing"
	"time"

	"github.com/ariebrainware/doctor-portal/config"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
)

// fixedNow pins "today" for every handler test to Friday 2024-12-20.
var fixedNow = time.Date(2024, 12, 20, 12, 0, 0, 0, time.UTC)

// TestMain sets up consistent test configuration for all tests in the endpoint package.
func TestMain(m *testing.M) {
	os.Setenv("APPENV", "test")
	os.Setenv("JWTSECRET", "test-secret-123")
	os.Setenv("GINMODE", "release")

	util.SetJWTSecret("test-secret-123")
	config.LoadConfig()
	gin.SetMode(gin.TestMode)
	util.Now = func() time.Time { return fixedNow }

	os.Exit(m.Run())
}
