package endpoint

import (
	"fmt"
	"strings"

	"github.com/ariebrainware/doctor-portal/event"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
)

// LabTestRow is a lab test with the patient of its medical record.
type LabTestRow struct {
	model.LabTest
	Patient *model.Patient `json:"patient,omitempty"`
}

type labTestQuery struct {
	Pending bool `form:"pending"`
}

type UpdateLabTestRequest struct {
	Result string `json:"result" binding:"required" example:"Normal"`
}

// ListLabTests godoc
// @Summary      List lab tests
// @Description  Lab tests on the signed-in doctor's medical records
// @Tags         LabTest
// @Produce      json
// @Security     SessionToken
// @Param        pending query bool false "Only tests still awaiting a result"
// @Success      200 {object} util.APIResponse{data=[]LabTestRow}
// @Router       /lab-test [get]
func ListLabTests(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	var q labTestQuery
	if !bindQueryOrRespond(c, &q) {
		return
	}
	records, err := fetchDoctorRecords(scope.DB, scope.DoctorID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve lab tests", Err: err})
		return
	}
	tests, err := fetchLabTestsFor(scope.DB, recordIDs(records))
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve lab tests", Err: err})
		return
	}
	lookup, err := buildLookup(scope.DB, records, nil)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve lab tests", Err: err})
		return
	}

	rows := make([]LabTestRow, 0, len(tests))
	for _, t := range tests {
		if q.Pending && t.Result != model.LabResultPending {
			continue
		}
		row := LabTestRow{LabTest: t}
		if record, ok := lookup.Records[t.MedicalRecordID]; ok {
			if p, ok := lookup.Patients[record.PatientID]; ok {
				row.Patient = &p
			}
		}
		rows = append(rows, row)
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Lab tests retrieved", Data: rows})
}

// UpdateLabTest godoc
// @Summary      Record lab test result
// @Tags         LabTest
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Lab test ID"
// @Param        request body UpdateLabTestRequest true "Result"
// @Success      200 {object} util.APIResponse{data=model.LabTest}
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Lab test not found"
// @Router       /lab-test/{id} [patch]
func UpdateLabTest(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	var req UpdateLabTestRequest
	if !bindJSONOrRespond(c, &req, "Result is required") {
		return
	}
	result := strings.TrimSpace(req.Result)
	if result == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "Result is required", Err: fmt.Errorf("blank result")})
		return
	}
	labTest, err := fetchOwnedLabTest(scope.DB, scope.DoctorID, id)
	if err != nil {
		respondLookupError(c, err, "Lab test")
		return
	}
	if err := scope.DB.Model(&labTest).Update("result", result).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update lab test", Err: err})
		return
	}
	labTest.Result = result
	util.LogRecordChanged(scope.DoctorID, "lab_test", labTest.ID, "update")
	publish(event.LabTestUpdated, scope.DoctorID, labTest.ID, labTest)
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Lab test updated", Data: labTest})
}
