package endpoint

import (
	"github.com/ariebrainware/doctor-portal/middleware"
	"github.com/gin-gonic/gin"
)

// RouteOptions tunes the public surface.
type RouteOptions struct {
	LoginRateLimit int
}

// RegisterRoutes mounts every portal route on r. The database middleware
// must already be installed.
func RegisterRoutes(r *gin.Engine, opts RouteOptions) {
	r.GET("/", Index)
	r.GET("/healthz", Healthz)
	r.POST("/login", middleware.RateLimiter(middleware.RateLimitConfig{Limit: opts.LoginRateLimit}), Login)

	auth := r.Group("/")
	auth.Use(middleware.ValidateSessionToken(), middleware.EndpointCallLogger())

	auth.DELETE("/logout", Logout)
	auth.GET("/me", GetProfile)
	auth.PATCH("/me", UpdateProfile)
	auth.GET("/dashboard", GetDashboard)
	auth.GET("/events", StreamEvents)

	appointment := auth.Group("/appointment")
	appointment.GET("", ListAppointments)
	appointment.GET("/export", ExportAppointments)
	appointment.GET("/:id", GetAppointment)
	appointment.PATCH("/:id/accept", AcceptAppointment)
	appointment.PATCH("/:id/reject", RejectAppointment)
	appointment.PATCH("/:id/complete", CompleteAppointment)
	appointment.PUT("/:id/record", SaveAppointmentRecord)
	appointment.POST("/:id/lab-test", OrderLabTest)
	appointment.POST("/:id/prescription", AddPrescription)

	record := auth.Group("/medical-record")
	record.GET("", ListMedicalRecords)
	record.GET("/:id", GetMedicalRecord)
	record.POST("", CreateMedicalRecord)
	record.PATCH("/:id", UpdateMedicalRecord)

	prescription := auth.Group("/prescription")
	prescription.GET("", ListPrescriptions)
	prescription.POST("", CreatePrescription)
	prescription.PATCH("/:id", UpdatePrescription)
	prescription.DELETE("/:id", DeletePrescription)

	labTest := auth.Group("/lab-test")
	labTest.GET("", ListLabTests)
	labTest.PATCH("/:id", UpdateLabTest)

	leave := auth.Group("/leave-request")
	leave.GET("", ListLeaveRequests)
	leave.GET("/:id", GetLeaveRequest)
	leave.POST("", CreateLeaveRequest)
	leave.PATCH("/:id/cancel", CancelLeaveRequest)
	leave.PATCH("/:id/status", UpdateLeaveStatus)
	leave.DELETE("/:id", DeleteLeaveRequest)

	certificate := auth.Group("/certificate")
	certificate.GET("", ListCertificates)
	certificate.GET("/export", ExportCertificates)
	certificate.POST("", CreateCertificate)
	certificate.DELETE("/:id", DeleteCertificate)

	auth.GET("/work-schedule", ListWorkSchedules)
	auth.GET("/medicine", ListMedicines)
	auth.GET("/medicine/:id", GetMedicine)
	auth.GET("/patient", ListPatients)
	auth.GET("/patient/:id", GetPatient)
	auth.GET("/shift", ListShifts)
	auth.GET("/room", ListRooms)
	auth.GET("/department", ListDepartments)
}
