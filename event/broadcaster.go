// Package event fans out change notifications to connected dashboard clients
// over server-sent events.
package event

import (
	"sync"
	"time"
)

// Type names a change notification.
type Type string

const (
	AppointmentUpdated  Type = "appointment.updated"
	MedicalRecordSaved  Type = "medical_record.saved"
	LabTestOrdered      Type = "lab_test.ordered"
	LabTestUpdated      Type = "lab_test.updated"
	PrescriptionChanged Type = "prescription.changed"
	LeaveRequestUpdated Type = "leave_request.updated"
	CertificateChanged  Type = "certificate.changed"
	CertificateExpiring Type = "certificate.expiring"
)

// Event is delivered to every client subscribed for DoctorID.
type Event struct {
	Type       Type        `json:"type"`
	DoctorID   uint        `json:"doctor_id"`
	ResourceID uint        `json:"resource_id,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	At         time.Time   `json:"at"`
}

// Broadcaster manages SSE client channels keyed by doctor.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[uint]map[chan Event]struct{}
	buffer  int
}

// DefaultBuffer is the number of events a client may fall behind before it
// is dropped.
const DefaultBuffer = 16

// NewBroadcaster creates a Broadcaster whose client channels hold buffer
// events. A client whose buffer is full when an event arrives is dropped.
func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Broadcaster{
		clients: make(map[uint]map[chan Event]struct{}),
		buffer:  buffer,
	}
}

// Default is the process-wide broadcaster used by handlers and workers.
var Default = NewBroadcaster(DefaultBuffer)

// Subscribe registers a new client for doctorID.
func (b *Broadcaster) Subscribe(doctorID uint) chan Event {
	ch := make(chan Event, b.buffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	set, ok := b.clients[doctorID]
	if !ok {
		set = make(map[chan Event]struct{})
		b.clients[doctorID] = set
	}
	set[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a client and closes its channel. Unknown channels are ignored.
func (b *Broadcaster) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for doctorID, set := range b.clients {
		if _, ok := set[ch]; ok {
			b.drop(doctorID, ch)
			return
		}
	}
}

// drop must be called with b.mu held.
func (b *Broadcaster) drop(doctorID uint, ch chan Event) {
	set := b.clients[doctorID]
	delete(set, ch)
	close(ch)
	if len(set) == 0 {
		delete(b.clients, doctorID)
	}
}

// Publish delivers e to the doctor's clients and returns how many received it.
// It never blocks: a client with a full buffer is dropped, and its stream
// ends when it drains the channel.
func (b *Broadcaster) Publish(e Event) int {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delivered := 0
	for ch := range b.clients[e.DoctorID] {
		select {
		case ch <- e:
			delivered++
		default:
			b.drop(e.DoctorID, ch)
		}
	}
	return delivered
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, set := range b.clients {
		n += len(set)
	}
	return n
}

// Close drops every client, which ends their streams. Used on shutdown.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for doctorID, set := range b.clients {
		for ch := range set {
			b.drop(doctorID, ch)
		}
	}
}

// Publish sends e through the Default broadcaster.
func Publish(e Event) int {
	return Default.Publish(e)
}
