package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTone(t *testing.T) {
	assert.Equal(t, ToneInfo, StatusTone(KindAppointment, "Scheduled"))
	assert.Equal(t, ToneSuccess, StatusTone(KindAppointment, "Completed"))
	assert.Equal(t, ToneDanger, StatusTone(KindAppointment, "Cancelled"))
	assert.Equal(t, ToneWarning, StatusTone(KindLeave, "Pending"))
	assert.Equal(t, ToneNeutral, StatusTone(KindLeave, "Cancelled"))
	assert.Equal(t, ToneInfo, StatusTone(KindSchedule, "Completed"))
	assert.Equal(t, ToneNotice, StatusTone(KindCertificate, ExpiryRenewalDue))
	assert.Equal(t, ToneNeutral, StatusTone(KindAppointment, "Unknown"))
	assert.Equal(t, ToneNeutral, StatusTone("nope", "Pending"))
}

func TestFrequencyTone(t *testing.T) {
	assert.Equal(t, ToneSuccess, FrequencyTone("Once daily"))
	assert.Equal(t, ToneDanger, FrequencyTone("Four times daily"))
	assert.Equal(t, ToneAccent, FrequencyTone("As needed"))
	assert.Equal(t, ToneNeutral, FrequencyTone("Every other day"))
}

func TestDurationClass(t *testing.T) {
	tests := map[string]string{
		"Ongoing":  "ongoing",
		"30 days":  "long",
		"1 month":  "long",
		"7 days":   "short",
		"2 weeks":  "short",
		"10 days":  "other",
		"":         "other",
		"3 months": "long",
	}
	for in, want := range tests {
		assert.Equal(t, want, DurationClass(in), "duration %q", in)
	}
}
