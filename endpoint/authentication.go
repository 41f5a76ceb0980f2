package endpoint

import (
	"errors"
	"fmt"
	"time"

	"github.com/ariebrainware/doctor-portal/config"
	"github.com/ariebrainware/doctor-portal/middleware"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"sarah.johnson@hospital.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type LoginResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time `json:"expires_at"`
	DoctorID  uint      `json:"doctor_id" example:"1"`
	FullName  string    `json:"full_name" example:"Dr. Sarah Johnson"`
}

type clientInfo struct {
	IP    string
	Agent string
}

type loginContext struct {
	C     *gin.Context
	DB    *gorm.DB
	Email string
	CI    clientInfo
}

// Login godoc
// @Summary      Doctor login
// @Description  Authenticate a doctor with email and password and open a session
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{data=LoginResponse} "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid request payload or credentials"
// @Failure      429 {object} util.APIResponse "Too many attempts"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	email := util.NormalizeEmail(req.Email)
	if !util.IsEmail(email) {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid request payload", Err: fmt.Errorf("malformed email")})
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	ctx := loginContext{
		C:     c,
		DB:    db,
		Email: email,
		CI:    clientInfo{IP: c.ClientIP(), Agent: c.Request.UserAgent()},
	}

	doctor, ok := loadDoctorForLogin(ctx)
	if !ok {
		return
	}
	if !util.CheckPassword(doctor.Password, req.Password) {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "invalid password")
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid email or password", Err: fmt.Errorf("invalid password")})
		return
	}
	if doctor.Status != "" && doctor.Status != "Active" {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "inactive account")
		util.CallUserError(c, util.APIErrorParams{Msg: "Account is not active", Err: fmt.Errorf("doctor status is %s", doctor.Status)})
		return
	}

	finalizeLogin(ctx, doctor)
}

func loadDoctorForLogin(ctx loginContext) (model.Doctor, bool) {
	var doctor model.Doctor
	err := ctx.DB.Where("email = ?", ctx.Email).First(&doctor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "doctor not found")
		util.CallUserError(ctx.C, util.APIErrorParams{Msg: "Invalid email or password", Err: fmt.Errorf("doctor not found")})
		return model.Doctor{}, false
	}
	if err != nil {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "database error")
		util.CallServerError(ctx.C, util.APIErrorParams{Msg: "Database error", Err: err})
		return model.Doctor{}, false
	}
	return doctor, true
}

func finalizeLogin(ctx loginContext, doctor model.Doctor) {
	ttl := sessionTTL()
	token, expiresAt, err := util.GenerateSessionToken(doctor.ID, doctor.Email, ttl)
	if err != nil {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "token generation failed")
		util.CallServerError(ctx.C, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	session := model.Session{
		DoctorID:     doctor.ID,
		SessionToken: token,
		ExpiresAt:    expiresAt,
		ClientIP:     ctx.CI.IP,
		Browser:      ctx.CI.Agent,
	}
	if err := ctx.DB.Create(&session).Error; err != nil {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "session creation failed")
		util.CallServerError(ctx.C, util.APIErrorParams{Msg: "Failed to record session", Err: err})
		return
	}

	reqCtx := ctx.C.Request.Context()
	if err := util.CacheSession(reqCtx, token, doctor.ID, ttl); err != nil {
		util.Logger.Warn().Err(err).Msg("failed to cache session")
	}
	if config.GetRedisClient() != nil {
		_ = middleware.ResetRateLimit(reqCtx, ctx.CI.IP, ctx.C.Request.URL.Path)
	}
	util.DoctorNameCacheSet(doctor.ID, doctor.FullName)
	util.LogLoginSuccess(doctor.ID, doctor.Email, ctx.CI.IP, ctx.CI.Agent)

	util.CallSuccessOK(ctx.C, util.APISuccessParams{
		Msg:  "Login successful",
		Data: LoginResponse{Token: token, ExpiresAt: expiresAt, DoctorID: doctor.ID, FullName: doctor.FullName},
	})
}

// Logout godoc
// @Summary      Doctor logout
// @Description  Close the current session
// @Tags         Authentication
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse "Logout successful"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /logout [delete]
func Logout(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	token := middleware.GetSessionToken(c)

	if err := scope.DB.Where("session_token = ? AND doctor_id = ?", token, scope.DoctorID).Delete(&model.Session{}).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to close session", Err: err})
		return
	}
	if err := util.RemoveSession(c.Request.Context(), scope.DoctorID, token); err != nil {
		util.Logger.Warn().Err(err).Msg("failed to drop cached session")
	}

	util.LogLogout(scope.DoctorID, c.ClientIP(), c.Request.UserAgent())
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Logout successful", Data: map[string]interface{}{}})
}
