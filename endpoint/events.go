package endpoint

import (
	"net/http"
	"time"

	"github.com/ariebrainware/doctor-portal/event"
	"github.com/gin-gonic/gin"
)

const keepAliveInterval = 25 * time.Second

// StreamEvents godoc
// @Summary      Change notifications
// @Description  Server-sent events for the signed-in doctor's appointments, records, lab tests, leave requests and certificates
// @Tags         Events
// @Produce      text/event-stream
// @Security     SessionToken
// @Success      200 {string} string "event stream"
// @Router       /events [get]
func StreamEvents(c *gin.Context) {
	doctorID, ok := doctorOrRespond(c)
	if !ok {
		return
	}
	streamEvents(c, event.Default, doctorID)
}

func streamEvents(c *gin.Context, b *event.Broadcaster, doctorID uint) {
	ch := b.Subscribe(doctorID)
	defer b.Unsubscribe(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.SSEvent("ready", gin.H{"doctor_id": doctorID})
	c.Writer.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			c.Writer.Flush()
		case e, open := <-ch:
			if !open {
				return
			}
			c.SSEvent(string(e.Type), e)
			c.Writer.Flush()
		}
	}
}
