package endpoint

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ariebrainware/doctor-portal/config"
	"github.com/ariebrainware/doctor-portal/event"
	"github.com/ariebrainware/doctor-portal/middleware"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	util.RegisterValidators()
}

var errNotOwned = errors.New("record not found")

func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

func bindQueryOrRespond(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid query parameters", Err: err})
		return false
	}
	return true
}

func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}

func doctorOrRespond(c *gin.Context) (uint, bool) {
	id, ok := middleware.GetDoctorID(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Please login first", Err: fmt.Errorf("no doctor in session")})
		return 0, false
	}
	return id, true
}

// requestScope bundles what almost every protected handler needs.
type requestScope struct {
	DB       *gorm.DB
	DoctorID uint
}

func scopeOrRespond(c *gin.Context) (requestScope, bool) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return requestScope{}, false
	}
	doctorID, ok := doctorOrRespond(c)
	if !ok {
		return requestScope{}, false
	}
	return requestScope{DB: db, DoctorID: doctorID}, true
}

func idParamOrRespond(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		util.CallUserError(c, util.APIErrorParams{Msg: fmt.Sprintf("Invalid %s", name), Err: fmt.Errorf("%s must be a positive integer", name)})
		return 0, false
	}
	return uint(id), true
}

// respondLookupError maps a failed single-row lookup to 404 or 500.
func respondLookupError(c *gin.Context, err error, what string) {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, errNotOwned) {
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: fmt.Sprintf("%s not found", what), Err: errNotOwned})
		return
	}
	util.CallServerError(c, util.APIErrorParams{Msg: fmt.Sprintf("Failed to retrieve %s", what), Err: err})
}

func publish(t event.Type, doctorID, resourceID uint, data interface{}) {
	event.Publish(event.Event{Type: t, DoctorID: doctorID, ResourceID: resourceID, Data: data})
}

func sessionTTL() time.Duration {
	return config.LoadConfig().SessionTTL
}
