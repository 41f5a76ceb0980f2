package endpoint

import (
	"bufio"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ariebrainware/doctor-portal/event"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readEvent returns the next "event:" name from an SSE stream.
func readEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if name, ok := strings.CutPrefix(strings.TrimSpace(line), "event:"); ok {
			return name
		}
	}
}

func TestStreamEvents(t *testing.T) {
	b := event.NewBroadcaster(event.DefaultBuffer)
	r := gin.New()
	r.GET("/events", func(c *gin.Context) { streamEvents(c, b, 7) })
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	reader := bufio.NewReader(resp.Body)
	assert.Equal(t, "ready", readEvent(t, reader))
	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	assert.Equal(t, 0, b.Publish(event.Event{Type: event.LabTestOrdered, DoctorID: 8}))
	assert.Equal(t, 1, b.Publish(event.Event{Type: event.AppointmentUpdated, DoctorID: 7, ResourceID: 3}))
	assert.Equal(t, string(event.AppointmentUpdated), readEvent(t, reader))
}

func TestStreamEvents_EndsWhenBroadcasterCloses(t *testing.T) {
	b := event.NewBroadcaster(event.DefaultBuffer)
	r := gin.New()
	r.GET("/events", func(c *gin.Context) { streamEvents(c, b, 7) })
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	reader := bufio.NewReader(resp.Body)
	assert.Equal(t, "ready", readEvent(t, reader))
	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := io.Copy(io.Discard, reader)
		done <- err
	}()
	b.Close()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream still open after Close")
	}
}

func TestStreamEvents_RequiresSession(t *testing.T) {
	env := newTestEnv(t)
	w, _ := env.callAs("", http.MethodGet, "/events", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
