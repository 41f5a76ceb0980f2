package endpoint

import (
	"fmt"

	"github.com/ariebrainware/doctor-portal/config"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
)

// Index answers the root path with a welcome message.
func Index(c *gin.Context) {
	cfg := config.LoadConfig()
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  fmt.Sprintf("Welcome to %s!", cfg.AppName),
		Data: map[string]interface{}{"env": cfg.AppEnv},
	})
}

// Healthz godoc
// @Summary      Health check
// @Description  Ping the database
// @Tags         System
// @Produce      json
// @Success      200 {object} util.APIResponse "Healthy"
// @Failure      500 {object} util.APIResponse "Database unreachable"
// @Router       /healthz [get]
func Healthz(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database unreachable", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "ok", Data: map[string]interface{}{"database": "up"}})
}
