package endpoint

import (
	"strings"

	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type roomQuery struct {
	DepartmentID uint `form:"department_id"`
}

func loadMedicines(db *gorm.DB) ([]model.Medicine, error) {
	return util.CachedRef(util.RefMedicines, func() ([]model.Medicine, error) {
		var medicines []model.Medicine
		err := db.Order("name ASC").Find(&medicines).Error
		return medicines, err
	})
}

func loadShifts(db *gorm.DB) ([]model.Shift, error) {
	return util.CachedRef(util.RefShifts, func() ([]model.Shift, error) {
		var shifts []model.Shift
		err := db.Order("start_time ASC").Find(&shifts).Error
		return shifts, err
	})
}

func loadRooms(db *gorm.DB) ([]model.Room, error) {
	return util.CachedRef(util.RefRooms, func() ([]model.Room, error) {
		var rooms []model.Room
		err := db.Order("name ASC").Find(&rooms).Error
		return rooms, err
	})
}

func loadDepartments(db *gorm.DB) ([]model.Department, error) {
	return util.CachedRef(util.RefDepartments, func() ([]model.Department, error) {
		var departments []model.Department
		err := db.Order("name ASC").Find(&departments).Error
		return departments, err
	})
}

// ListMedicines godoc
// @Summary      List medicines
// @Description  Shared medicine catalog, optionally filtered by name
// @Tags         Catalog
// @Produce      json
// @Security     SessionToken
// @Param        search query string false "Medicine name"
// @Success      200 {object} util.APIResponse{data=[]model.Medicine}
// @Router       /medicine [get]
func ListMedicines(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	var q searchQuery
	if !bindQueryOrRespond(c, &q) {
		return
	}
	medicines, err := loadMedicines(db)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve medicines", Err: err})
		return
	}
	term := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]model.Medicine, 0, len(medicines))
	for _, m := range medicines {
		if term == "" || strings.Contains(strings.ToLower(m.Name), term) {
			out = append(out, m)
		}
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Medicines retrieved", Data: out})
}

// GetMedicine godoc
// @Summary      Medicine detail
// @Tags         Catalog
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Medicine ID"
// @Success      200 {object} util.APIResponse{data=model.Medicine}
// @Failure      404 {object} util.APIResponse "Medicine not found"
// @Router       /medicine/{id} [get]
func GetMedicine(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	var medicine model.Medicine
	if err := db.First(&medicine, id).Error; err != nil {
		respondLookupError(c, err, "Medicine")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Medicine retrieved", Data: medicine})
}

// patientsOfDoctor limits patients to those with an appointment or a
// medical record with the doctor.
func patientsOfDoctor(db *gorm.DB, doctorID uint) *gorm.DB {
	return db.Model(&model.Patient{}).
		Where("(id IN (?) OR id IN (?))",
			db.Model(&model.Appointment{}).Select("patient_id").Where("doctor_id = ?", doctorID),
			db.Model(&model.MedicalRecord{}).Select("patient_id").Where("doctor_id = ?", doctorID),
		)
}

// ListPatients godoc
// @Summary      List patients
// @Description  Patients with an appointment or medical record with the signed-in doctor
// @Tags         Catalog
// @Produce      json
// @Security     SessionToken
// @Param        search query string false "Patient name"
// @Success      200 {object} util.APIResponse{data=[]model.Patient}
// @Router       /patient [get]
func ListPatients(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	var q searchQuery
	if !bindQueryOrRespond(c, &q) {
		return
	}
	query := patientsOfDoctor(scope.DB, scope.DoctorID)
	if term := strings.TrimSpace(q.Search); term != "" {
		query = query.Where("LOWER(full_name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	var patients []model.Patient
	if err := query.Order("full_name ASC").Find(&patients).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve patients", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patients retrieved", Data: patients})
}

// GetPatient godoc
// @Summary      Patient detail
// @Tags         Catalog
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse{data=model.Patient}
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patient/{id} [get]
func GetPatient(c *gin.Context) {
	scope, ok := scopeOrRespond(c)
	if !ok {
		return
	}
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	var patient model.Patient
	if err := patientsOfDoctor(scope.DB, scope.DoctorID).Where("id = ?", id).First(&patient).Error; err != nil {
		respondLookupError(c, err, "Patient")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient retrieved", Data: patient})
}

// ListShifts godoc
// @Summary      List shifts
// @Tags         Catalog
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=[]model.Shift}
// @Router       /shift [get]
func ListShifts(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	shifts, err := loadShifts(db)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve shifts", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Shifts retrieved", Data: shifts})
}

// ListRooms godoc
// @Summary      List rooms
// @Tags         Catalog
// @Produce      json
// @Security     SessionToken
// @Param        department_id query int false "Department ID"
// @Success      200 {object} util.APIResponse{data=[]model.Room}
// @Router       /room [get]
func ListRooms(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	var q roomQuery
	if !bindQueryOrRespond(c, &q) {
		return
	}
	rooms, err := loadRooms(db)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve rooms", Err: err})
		return
	}
	if q.DepartmentID != 0 {
		filtered := make([]model.Room, 0, len(rooms))
		for _, r := range rooms {
			if r.DepartmentID == q.DepartmentID {
				filtered = append(filtered, r)
			}
		}
		rooms = filtered
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Rooms retrieved", Data: rooms})
}

// ListDepartments godoc
// @Summary      List departments
// @Tags         Catalog
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=[]model.Department}
// @Router       /department [get]
func ListDepartments(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	departments, err := loadDepartments(db)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve departments", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Departments retrieved", Data: departments})
}
