package endpoint

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ariebrainware/doctor-portal/dashboard"
	"github.com/ariebrainware/doctor-portal/event"
	"github.com/ariebrainware/doctor-portal/export"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
)

type certificateQuery struct {
	Category string `form:"category" binding:"omitempty,oneof=medical emergency specialty"`
	Status   string `form:"status"`
}

type CreateCertificateRequest struct {
	Name       string `json:"name" binding:"required" example:"Board Certification - Cardiology"`
	IssuedBy   string `json:"issued_by" binding:"required" example:"American Board of Internal Medicine"`
	IssueDate  string `json:"issue_date" binding:"required,isodate" example:"2020-06-15"`
	ExpiryDate string `json:"expiry_date" binding:"required,isodate" example:"2030-06-15"`
}

func (q certificateQuery) match(v dashboard.CertificateView) bool {
	if q.Category != "" && v.Category != q.Category {
		return false
	}
	if q.Status != "" && q.Status != "all" && v.ExpiryStatus != q.Status {
		return false
	}
	return true
}

func loadCertificateReport(scope requestScope) (dashboard.CertificateReport, error) {
	certs, err := fetchDoctorCertificates(scope.DB, scope.DoctorID)
	if err != nil {
		return dashboard.CertificateReport{}, err
	}
	return dashboard.BuildCertificateReport(certs, util.Now()), nil
}

// ListCertificates godoc
// @Summary      List certificates
// @Description  Certificates with days until expiry, expiry status, category, summary and the expiring and expired subsets
// @Tags         Certificate
// @Produce      json
// @Security     SessionToken
// @Param        category query string false "medical, emergency or specialty"
// @Param        status query string false "Valid, Renewal Due, Expiring Soon, Expired or all"
// @Success      200 {object} util.APIResponse{data=dashboard.CertificateReport}
// @Failure      400 {object} util.APIResponse "Invalid query"
// @Router       /certificate [get]
func ListCertificates(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	var q certificateQuery
	if !bindQueryOrRespond(c, &q) {
		return
	}
	report, err := loadCertificateReport(scope)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve certificates", Err: err})
		return
	}
	filtered := make([]dashboard.CertificateView, 0, len(report.Certificates))
	for _, v := range report.Certificates {
		if q.match(v) {
			filtered = append(filtered, v)
		}
	}
	report.Certificates = filtered
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Certificates retrieved", Data: report})
}

// CreateCertificate godoc
// @Summary      Add certificate
// @Tags         Certificate
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body CreateCertificateRequest true "Certificate"
// @Success      200 {object} util.APIResponse{data=dashboard.CertificateView}
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Router       /certificate [post]
func CreateCertificate(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	var req CreateCertificateRequest
	if !bindJSONOrRespond(c, &req, "Name, issuer, issue date and expiry date are required") {
		return
	}
	name, issuer := strings.TrimSpace(req.Name), strings.TrimSpace(req.IssuedBy)
	if name == "" || issuer == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "Name and issuer are required", Err: fmt.Errorf("blank name or issued_by")})
		return
	}
	if req.IssueDate > req.ExpiryDate {
		util.CallUserError(c, util.APIErrorParams{Msg: "Issue date must not be after expiry date", Err: fmt.Errorf("%s > %s", req.IssueDate, req.ExpiryDate)})
		return
	}

	cert := model.Certificate{
		DoctorID:   scope.DoctorID,
		Name:       name,
		IssuedBy:   issuer,
		IssueDate:  req.IssueDate,
		ExpiryDate: req.ExpiryDate,
	}
	if err := scope.DB.Create(&cert).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to add certificate", Err: err})
		return
	}
	view, err := dashboard.DescribeCertificate(cert, util.Now())
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to describe certificate", Err: err})
		return
	}
	util.LogRecordChanged(scope.DoctorID, "certificate", cert.ID, "create")
	publish(event.CertificateChanged, scope.DoctorID, cert.ID, view)
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Certificate added", Data: view})
}

// DeleteCertificate godoc
// @Summary      Delete certificate
// @Tags         Certificate
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Certificate ID"
// @Success      200 {object} util.APIResponse "Certificate deleted"
// @Failure      404 {object} util.APIResponse "Certificate not found"
// @Router       /certificate/{id} [delete]
func DeleteCertificate(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	cert, err := fetchOwnedCertificate(scope.DB, scope.DoctorID, id)
	if err != nil {
		respondLookupError(c, err, "Certificate")
		return
	}
	if err := scope.DB.Delete(&cert).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to delete certificate", Err: err})
		return
	}
	util.LogRecordChanged(scope.DoctorID, "certificate", cert.ID, "delete")
	publish(event.CertificateChanged, scope.DoctorID, cert.ID, map[string]string{"action": "delete"})
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Certificate deleted", Data: map[string]uint{"id": cert.ID}})
}

// ExportCertificates godoc
// @Summary      Export certificates
// @Description  Download the certificate list with expiry fields as an xlsx workbook
// @Tags         Certificate
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     SessionToken
// @Success      200 {file} file
// @Router       /certificate/export [get]
func ExportCertificates(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	report, err := loadCertificateReport(scope)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve certificates", Err: err})
		return
	}
	var buf bytes.Buffer
	if err := export.Certificates(&buf, report.Certificates); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to build workbook", Err: err})
		return
	}
	sendWorkbook(c, fmt.Sprintf("certificates-%s.xlsx", util.Today()), buf.Bytes())
}
