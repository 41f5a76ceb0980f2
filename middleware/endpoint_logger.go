package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/doctor-portal/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger records each HTTP request as an audit event. Events are
// persisted when util.SetAuditLoggerDB was called during startup.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		doctorID, _ := GetDoctorID(c)
		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
		}
		if rid := c.GetString(RequestIDKey); rid != "" {
			details["request_id"] = rid
		}
		var doctor string
		if doctorID != 0 {
			doctor = fmt.Sprintf("%d", doctorID)
		}

		util.LogAuditEvent(util.AuditEvent{
			EventType: util.EventEndpointCall,
			DoctorID:  doctor,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}
