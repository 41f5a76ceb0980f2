package endpoint

import (
	"fmt"
	"strings"

	"github.com/ariebrainware/doctor-portal/dashboard"
	"github.com/ariebrainware/doctor-portal/event"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
)

type LeaveListResponse struct {
	LeaveRequests []dashboard.LeaveView `json:"leave_requests"`
	Total         int                   `json:"total"`
	Stats         dashboard.LeaveStats  `json:"stats"`
}

type leaveQuery struct {
	Status string `form:"status"`
	Start  string `form:"start" binding:"omitempty,isodate"`
	End    string `form:"end" binding:"omitempty,isodate"`
}

type CreateLeaveRequestBody struct {
	StartDate string `json:"start_date" binding:"required,isodate" example:"2024-12-23"`
	EndDate   string `json:"end_date" binding:"required,isodate" example:"2024-12-27"`
	Reason    string `json:"reason" binding:"required" example:"Family vacation"`
}

type UpdateLeaveStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Approved Rejected" example:"Approved"`
}

func matchLeave(l model.LeaveRequest, q leaveQuery) bool {
	if q.Status != "" && q.Status != "all" && l.Status != q.Status {
		return false
	}
	if q.Start != "" && l.RequestDate < q.Start {
		return false
	}
	if q.End != "" && l.RequestDate > q.End {
		return false
	}
	return true
}

// ListLeaveRequests godoc
// @Summary      List leave requests
// @Description  Leave requests of the signed-in doctor, filtered by status and request date range
// @Tags         LeaveRequest
// @Produce      json
// @Security     SessionToken
// @Param        status query string false "Status or all"
// @Param        start query string false "Requested on or after (YYYY-MM-DD)"
// @Param        end query string false "Requested on or before (YYYY-MM-DD)"
// @Success      200 {object} util.APIResponse{data=LeaveListResponse}
// @Failure      400 {object} util.APIResponse "Invalid query"
// @Router       /leave-request [get]
func ListLeaveRequests(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	var q leaveQuery
	if !bindQueryOrRespond(c, &q) {
		return
	}
	all, err := fetchDoctorLeaves(scope.DB, scope.DoctorID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve leave requests", Err: err})
		return
	}
	filtered := make([]model.LeaveRequest, 0, len(all))
	for _, l := range all {
		if matchLeave(l, q) {
			filtered = append(filtered, l)
		}
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Leave requests retrieved",
		Data: LeaveListResponse{
			LeaveRequests: dashboard.DescribeLeaves(filtered),
			Total:         len(all),
			Stats:         dashboard.CountLeaves(all),
		},
	})
}

func leaveOrRespond(c *gin.Context, scope requestScope) (model.LeaveRequest, bool) {
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return model.LeaveRequest{}, false
	}
	leave, err := fetchOwnedLeave(scope.DB, scope.DoctorID, id)
	if err != nil {
		respondLookupError(c, err, "Leave request")
		return model.LeaveRequest{}, false
	}
	return leave, true
}

// GetLeaveRequest godoc
// @Summary      Leave request detail
// @Tags         LeaveRequest
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Leave request ID"
// @Success      200 {object} util.APIResponse{data=dashboard.LeaveView}
// @Failure      404 {object} util.APIResponse "Leave request not found"
// @Router       /leave-request/{id} [get]
func GetLeaveRequest(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	leave, ok := leaveOrRespond(c, scope)
	if !ok {
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Leave request retrieved", Data: dashboard.DescribeLeaves([]model.LeaveRequest{leave})[0]})
}

// CreateLeaveRequest godoc
// @Summary      Submit leave request
// @Tags         LeaveRequest
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body CreateLeaveRequestBody true "Leave request"
// @Success      200 {object} util.APIResponse{data=dashboard.LeaveView}
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Router       /leave-request [post]
func CreateLeaveRequest(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	var req CreateLeaveRequestBody
	if !bindJSONOrRespond(c, &req, "Start date, end date and reason are required") {
		return
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "Reason is required", Err: fmt.Errorf("blank reason")})
		return
	}
	if req.StartDate > req.EndDate {
		util.CallUserError(c, util.APIErrorParams{Msg: "Start date must not be after end date", Err: fmt.Errorf("%s > %s", req.StartDate, req.EndDate)})
		return
	}

	leave := model.LeaveRequest{
		DoctorID:    scope.DoctorID,
		RequestDate: util.Today(),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Reason:      reason,
		Status:      model.LeavePending,
	}
	if err := scope.DB.Create(&leave).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to submit leave request", Err: err})
		return
	}
	util.LogRecordChanged(scope.DoctorID, "leave_request", leave.ID, "create")
	publish(event.LeaveRequestUpdated, scope.DoctorID, leave.ID, leave)
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Leave request submitted", Data: dashboard.DescribeLeaves([]model.LeaveRequest{leave})[0]})
}

func setLeaveStatus(c *gin.Context, scope requestScope, leave model.LeaveRequest, status string) {
	if leave.Status != model.LeavePending {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Only pending leave requests can be changed",
			Err: fmt.Errorf("leave request %d is %s", leave.ID, leave.Status),
		})
		return
	}
	if err := scope.DB.Model(&leave).Update("status", status).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update leave request", Err: err})
		return
	}
	leave.Status = status
	util.LogRecordChanged(scope.DoctorID, "leave_request", leave.ID, strings.ToLower(status))
	publish(event.LeaveRequestUpdated, scope.DoctorID, leave.ID, map[string]string{"status": status})
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  fmt.Sprintf("Leave request %s", strings.ToLower(status)),
		Data: dashboard.DescribeLeaves([]model.LeaveRequest{leave})[0],
	})
}

// CancelLeaveRequest godoc
// @Summary      Cancel leave request
// @Tags         LeaveRequest
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Leave request ID"
// @Success      200 {object} util.APIResponse{data=dashboard.LeaveView}
// @Failure      400 {object} util.APIResponse "Leave request is not pending"
// @Failure      404 {object} util.APIResponse "Leave request not found"
// @Router       /leave-request/{id}/cancel [patch]
func CancelLeaveRequest(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	leave, ok := leaveOrRespond(c, scope)
	if !ok {
		return
	}
	setLeaveStatus(c, scope, leave, model.LeaveCancelled)
}

// UpdateLeaveStatus godoc
// @Summary      Approve or reject leave request
// @Tags         LeaveRequest
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Leave request ID"
// @Param        request body UpdateLeaveStatusRequest true "Approved or Rejected"
// @Success      200 {object} util.APIResponse{data=dashboard.LeaveView}
// @Failure      400 {object} util.APIResponse "Invalid status or leave request is not pending"
// @Failure      404 {object} util.APIResponse "Leave request not found"
// @Router       /leave-request/{id}/status [patch]
func UpdateLeaveStatus(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	var req UpdateLeaveStatusRequest
	if !bindJSONOrRespond(c, &req, "Status must be Approved or Rejected") {
		return
	}
	leave, ok := leaveOrRespond(c, scope)
	if !ok {
		return
	}
	setLeaveStatus(c, scope, leave, req.Status)
}

// DeleteLeaveRequest godoc
// @Summary      Delete leave request
// @Description  Remove a leave request. Approved requests are kept.
// @Tags         LeaveRequest
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Leave request ID"
// @Success      200 {object} util.APIResponse "Leave request deleted"
// @Failure      400 {object} util.APIResponse "Leave request is approved"
// @Failure      404 {object} util.APIResponse "Leave request not found"
// @Router       /leave-request/{id} [delete]
func DeleteLeaveRequest(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	leave, ok := leaveOrRespond(c, scope)
	if !ok {
		return
	}
	if leave.Status == model.LeaveApproved {
		util.CallUserError(c, util.APIErrorParams{Msg: "Approved leave requests cannot be deleted", Err: fmt.Errorf("leave request %d is approved", leave.ID)})
		return
	}
	if err := scope.DB.Delete(&leave).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to delete leave request", Err: err})
		return
	}
	util.LogRecordChanged(scope.DoctorID, "leave_request", leave.ID, "delete")
	publish(event.LeaveRequestUpdated, scope.DoctorID, leave.ID, map[string]string{"action": "delete"})
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Leave request deleted", Data: map[string]uint{"id": leave.ID}})
}
