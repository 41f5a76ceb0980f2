package endpoint

import (
	"fmt"
	"strings"

	"github.com/ariebrainware/doctor-portal/middleware"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
)

// ProfileResponse is the signed-in doctor with the specialty resolved.
type ProfileResponse struct {
	model.Doctor
	Specialty *model.Specialty `json:"specialty,omitempty"`
}

// UpdateProfileRequest lists the editable profile fields. Email and id are
// fixed once the account exists.
type UpdateProfileRequest struct {
	FullName        *string `json:"full_name" example:"Dr. Sarah Johnson"`
	Username        *string `json:"username" example:"sjohnson"`
	Phone           *string `json:"phone" example:"+1-555-0123"`
	BirthDate       *string `json:"birth_date" binding:"omitempty,isodate" example:"1985-03-15"`
	Gender          *string `json:"gender" example:"Female"`
	Address         *string `json:"address"`
	SpecialtyID     *uint   `json:"specialty_id" example:"1"`
	Password        string  `json:"password"`
	CurrentPassword string  `json:"current_password"`
}

func fetchDoctor(scope requestScope) (model.Doctor, error) {
	var doctor model.Doctor
	err := scope.DB.First(&doctor, scope.DoctorID).Error
	return doctor, err
}

func buildProfile(scope requestScope, doctor model.Doctor) (ProfileResponse, error) {
	resp := ProfileResponse{Doctor: doctor}
	if doctor.SpecialtyID == 0 {
		return resp, nil
	}
	var specialty model.Specialty
	err := scope.DB.Limit(1).Find(&specialty, doctor.SpecialtyID).Error
	if err != nil {
		return resp, fmt.Errorf("load specialty: %w", err)
	}
	if specialty.ID != 0 {
		resp.Specialty = &specialty
	}
	return resp, nil
}

// GetProfile godoc
// @Summary      Current doctor profile
// @Tags         Profile
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=ProfileResponse}
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /me [get]
func GetProfile(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	doctor, err := fetchDoctor(scope)
	if err != nil {
		respondLookupError(c, err, "Doctor")
		return
	}
	resp, err := buildProfile(scope, doctor)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load profile", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Profile retrieved", Data: resp})
}

func profileUpdates(req UpdateProfileRequest) map[string]interface{} {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = util.NormalizeName(*req.FullName)
	}
	if req.Username != nil {
		updates["username"] = strings.TrimSpace(*req.Username)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.BirthDate != nil {
		updates["birth_date"] = *req.BirthDate
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.SpecialtyID != nil {
		updates["specialty_id"] = *req.SpecialtyID
	}
	return updates
}

// UpdateProfile godoc
// @Summary      Update current doctor profile
// @Description  Change profile fields. A new password requires current_password and closes every other session.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body UpdateProfileRequest true "Profile fields"
// @Success      200 {object} util.APIResponse{data=ProfileResponse}
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /me [patch]
func UpdateProfile(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	if req.FullName != nil && util.NormalizeName(*req.FullName) == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "Full name cannot be empty", Err: fmt.Errorf("empty full_name")})
		return
	}

	doctor, err := fetchDoctor(scope)
	if err != nil {
		respondLookupError(c, err, "Doctor")
		return
	}

	updates := profileUpdates(req)
	passwordChanged := false
	if req.Password != "" {
		if !util.CheckPassword(doctor.Password, req.CurrentPassword) {
			util.CallUserError(c, util.APIErrorParams{Msg: "Current password is incorrect", Err: fmt.Errorf("current password mismatch")})
			return
		}
		hashed, err := util.HashPassword(req.Password)
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: "Invalid password", Err: err})
			return
		}
		updates["password"] = hashed
		passwordChanged = true
	}
	if len(updates) == 0 {
		util.CallUserError(c, util.APIErrorParams{Msg: "No fields to update", Err: fmt.Errorf("empty update")})
		return
	}

	if err := scope.DB.Model(&doctor).Updates(updates).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update profile", Err: err})
		return
	}
	util.DoctorNameCacheDelete(scope.DoctorID)

	if passwordChanged {
		closeOtherSessions(c, scope)
		util.LogPasswordChanged(scope.DoctorID, c.ClientIP())
	}

	doctor, err = fetchDoctor(scope)
	if err != nil {
		respondLookupError(c, err, "Doctor")
		return
	}
	resp, err := buildProfile(scope, doctor)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load profile", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Profile updated", Data: resp})
}

// closeOtherSessions keeps the caller's session and drops the rest.
func closeOtherSessions(c *gin.Context, scope requestScope) {
	current := middleware.GetSessionToken(c)
	if err := scope.DB.Where("doctor_id = ? AND session_token <> ?", scope.DoctorID, current).
		Delete(&model.Session{}).Error; err != nil {
		util.Logger.Warn().Err(err).Uint("doctor_id", scope.DoctorID).Msg("failed to close sessions")
	}
	ctx := c.Request.Context()
	if err := util.InvalidateDoctorSessions(ctx, scope.DoctorID); err != nil {
		util.Logger.Warn().Err(err).Msg("failed to invalidate cached sessions")
		return
	}
	if err := util.CacheSession(ctx, current, scope.DoctorID, sessionTTL()); err != nil {
		util.Logger.Warn().Err(err).Msg("failed to re-cache session")
	}
}
