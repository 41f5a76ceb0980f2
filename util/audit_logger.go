package util

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ariebrainware/doctor-portal/model"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEventType names a class of audit event.
type AuditEventType string

const (
	EventLoginSuccess       AuditEventType = "LOGIN_SUCCESS"
	EventLoginFailure       AuditEventType = "LOGIN_FAILURE"
	EventLogout             AuditEventType = "LOGOUT"
	EventPasswordChanged    AuditEventType = "PASSWORD_CHANGED"
	EventUnauthorizedAccess AuditEventType = "UNAUTHORIZED_ACCESS"
	EventRateLimitExceeded  AuditEventType = "RATE_LIMIT_EXCEEDED"
	EventEndpointCall       AuditEventType = "ENDPOINT_CALL"
	EventRecordChanged      AuditEventType = "RECORD_CHANGED"
)

// AuditEvent is a single audit entry.
type AuditEvent struct {
	EventType AuditEventType
	DoctorID  string
	Email     string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var auditLogger = zerolog.New(os.Stdout).With().Timestamp().Str("channel", "audit").Logger()
var auditDB *gorm.DB

// SetAuditLoggerDB sets the gorm DB audit events are persisted to.
// Call this during startup after the DB is connected.
func SetAuditLoggerDB(db *gorm.DB) {
	auditDB = db
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogAuditEvent writes the event to the audit log and, when a DB is set,
// persists it. Persistence failures are logged and otherwise ignored.
func LogAuditEvent(event AuditEvent) {
	entry := auditLogger.Info().
		Str("event", sanitizeLogValue(string(event.EventType))).
		Str("doctor_id", sanitizeLogValue(event.DoctorID)).
		Str("email", sanitizeLogValue(event.Email)).
		Str("ip", sanitizeLogValue(event.IP)).
		Str("user_agent", sanitizeLogValue(event.UserAgent))
	if len(event.Details) > 0 {
		entry = entry.Int("details_count", len(event.Details))
	}
	entry.Msg(sanitizeLogValue(event.Message))

	if auditDB == nil {
		return
	}
	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}
	row := model.AuditLog{
		EventType: string(event.EventType),
		DoctorID:  event.DoctorID,
		Email:     sanitizeLogValue(event.Email),
		IP:        sanitizeLogValue(event.IP),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Message:   sanitizeLogValue(event.Message),
		Details:   details,
	}
	if err := auditDB.Create(&row).Error; err != nil {
		auditLogger.Error().Err(err).Msg("failed to persist audit event")
	}
}

// LogLoginSuccess logs a successful login event
func LogLoginSuccess(doctorID uint, email, ip, userAgent string) {
	LogAuditEvent(AuditEvent{
		EventType: EventLoginSuccess,
		DoctorID:  fmt.Sprintf("%d", doctorID),
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "Doctor logged in successfully",
	})
}

// LogLoginFailure logs a failed login attempt
func LogLoginFailure(email, ip, userAgent, reason string) {
	LogAuditEvent(AuditEvent{
		EventType: EventLoginFailure,
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   fmt.Sprintf("Login failed: %s", reason),
	})
}

// LogLogout logs a logout event
func LogLogout(doctorID uint, ip, userAgent string) {
	LogAuditEvent(AuditEvent{
		EventType: EventLogout,
		DoctorID:  fmt.Sprintf("%d", doctorID),
		IP:        ip,
		UserAgent: userAgent,
		Message:   "Doctor logged out",
	})
}

// LogPasswordChanged logs a password change from the profile page
func LogPasswordChanged(doctorID uint, ip string) {
	LogAuditEvent(AuditEvent{
		EventType: EventPasswordChanged,
		DoctorID:  fmt.Sprintf("%d", doctorID),
		IP:        ip,
		Message:   "Password changed",
	})
}

// LogUnauthorizedAccess logs unauthorized access attempts
func LogUnauthorizedAccess(ip, resource, reason string) {
	LogAuditEvent(AuditEvent{
		EventType: EventUnauthorizedAccess,
		IP:        ip,
		Message:   fmt.Sprintf("Unauthorized access to %s: %s", resource, reason),
	})
}

// LogRateLimitExceeded logs when rate limit is exceeded
func LogRateLimitExceeded(ip, endpoint string) {
	LogAuditEvent(AuditEvent{
		EventType: EventRateLimitExceeded,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}

// LogRecordChanged logs a clinical write such as a status transition or a new prescription
func LogRecordChanged(doctorID uint, resource string, id uint, action string) {
	LogAuditEvent(AuditEvent{
		EventType: EventRecordChanged,
		DoctorID:  fmt.Sprintf("%d", doctorID),
		Message:   fmt.Sprintf("%s %d %s", resource, id, action),
		Details:   map[string]interface{}{"resource": resource, "id": id, "action": action},
	})
}

// SetAuditLoggerForTest swaps the audit logger and returns a restore func.
func SetAuditLoggerForTest(l zerolog.Logger) func() {
	orig := auditLogger
	auditLogger = l
	return func() { auditLogger = orig }
}
