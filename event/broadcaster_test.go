package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_OnlyReachesOwner(t *testing.T) {
	b := NewBroadcaster(4)
	mine := b.Subscribe(1)
	other := b.Subscribe(2)
	defer b.Unsubscribe(mine)
	defer b.Unsubscribe(other)

	n := b.Publish(Event{Type: AppointmentUpdated, DoctorID: 1, ResourceID: 9})
	assert.Equal(t, 1, n)

	select {
	case e := <-mine:
		assert.Equal(t, AppointmentUpdated, e.Type)
		assert.Equal(t, uint(9), e.ResourceID)
		assert.False(t, e.At.IsZero())
	default:
		t.Fatal("expected an event for doctor 1")
	}

	select {
	case e := <-other:
		t.Fatalf("doctor 2 must not see doctor 1's event, got %+v", e)
	default:
	}
}

func TestPublish_DropsBlockedClient(t *testing.T) {
	b := NewBroadcaster(4)
	ch := b.Subscribe(1)

	// fill the buffer without reading
	for i := 0; i < cap(ch); i++ {
		require.Equal(t, 1, b.Publish(Event{Type: LabTestOrdered, DoctorID: 1}))
	}
	assert.Equal(t, 0, b.Publish(Event{Type: LabTestOrdered, DoctorID: 1}))
	assert.Equal(t, 0, b.ClientCount())

	// drain, then the channel reports closed
	for range ch {
	}
	b.Unsubscribe(ch)
}

func TestPublish_SlowClientDoesNotDelayOthers(t *testing.T) {
	b := NewBroadcaster(2)
	stalled := b.Subscribe(1)
	defer b.Unsubscribe(stalled)
	for i := 0; i < cap(stalled); i++ {
		b.Publish(Event{Type: LabTestOrdered, DoctorID: 1})
	}
	reader := b.Subscribe(2)
	defer b.Unsubscribe(reader)

	start := time.Now()
	assert.Equal(t, 1, b.Publish(Event{Type: AppointmentUpdated, DoctorID: 2}))
	assert.Equal(t, 0, b.Publish(Event{Type: AppointmentUpdated, DoctorID: 1}))
	assert.Less(t, time.Since(start), 50*time.Millisecond)

	e := <-reader
	assert.Equal(t, AppointmentUpdated, e.Type)
	assert.Equal(t, 1, b.ClientCount())
}

func TestClose_EndsEveryClient(t *testing.T) {
	b := NewBroadcaster(0)
	first := b.Subscribe(1)
	second := b.Subscribe(2)

	b.Close()
	assert.Equal(t, 0, b.ClientCount())
	_, open := <-first
	assert.False(t, open)
	_, open = <-second
	assert.False(t, open)

	b.Unsubscribe(first)
	assert.Equal(t, 0, b.Publish(Event{Type: LabTestOrdered, DoctorID: 1}))
}

func TestUnsubscribe_Idempotent(t *testing.T) {
	b := NewBroadcaster(0)
	ch := b.Subscribe(3)
	assert.Equal(t, 1, b.ClientCount())
	b.Unsubscribe(ch)
	b.Unsubscribe(ch)
	assert.Equal(t, 0, b.ClientCount())

	_, open := <-ch
	assert.False(t, open)
}

func TestDefaultPublish(t *testing.T) {
	ch := Default.Subscribe(77)
	defer Default.Unsubscribe(ch)

	assert.Equal(t, 1, Publish(Event{Type: CertificateExpiring, DoctorID: 77}))
	e := <-ch
	assert.Equal(t, CertificateExpiring, e.Type)
}
