package dashboard

import "strings"

// Tone is a presentation hint for status badges.
type Tone string

const (
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
	ToneWarning Tone = "warning"
	ToneNotice  Tone = "notice"
	ToneAccent  Tone = "accent"
	ToneNeutral Tone = "neutral"
)

// StatusKind selects which status vocabulary a status string belongs to.
type StatusKind string

const (
	KindAppointment StatusKind = "appointment"
	KindLeave       StatusKind = "leave"
	KindSchedule    StatusKind = "schedule"
	KindCertificate StatusKind = "certificate"
)

var statusTones = map[StatusKind]map[string]Tone{
	KindAppointment: {
		"Scheduled":   ToneInfo,
		"Pending":     ToneWarning,
		"Accepted":    ToneSuccess,
		"Completed":   ToneSuccess,
		"Rejected":    ToneDanger,
		"Cancelled":   ToneDanger,
		"In Progress": ToneWarning,
	},
	KindLeave: {
		"Pending":   ToneWarning,
		"Approved":  ToneSuccess,
		"Rejected":  ToneDanger,
		"Cancelled": ToneNeutral,
	},
	KindSchedule: {
		"Active":    ToneSuccess,
		"Completed": ToneInfo,
		"Cancelled": ToneDanger,
		"Pending":   ToneWarning,
	},
	KindCertificate: {
		ExpiryExpired:      ToneDanger,
		ExpiryExpiringSoon: ToneWarning,
		ExpiryRenewalDue:   ToneNotice,
		ExpiryValid:        ToneSuccess,
	},
}

// StatusTone maps a status string to its badge tone. Unknown statuses are neutral.
func StatusTone(kind StatusKind, status string) Tone {
	if tone, ok := statusTones[kind][status]; ok {
		return tone
	}
	return ToneNeutral
}

var frequencyTones = map[string]Tone{
	"Once daily":        ToneSuccess,
	"Twice daily":       ToneInfo,
	"Three times daily": ToneNotice,
	"Four times daily":  ToneDanger,
	"As needed":         ToneAccent,
}

// FrequencyTone maps a prescription frequency to its badge tone.
func FrequencyTone(frequency string) Tone {
	if tone, ok := frequencyTones[frequency]; ok {
		return tone
	}
	return ToneNeutral
}

// DurationClass buckets a free-text prescription duration.
func DurationClass(duration string) string {
	switch {
	case duration == "Ongoing":
		return "ongoing"
	case strings.Contains(duration, "30 days"), strings.Contains(duration, "month"):
		return "long"
	case strings.Contains(duration, "7 days"), strings.Contains(duration, "week"):
		return "short"
	}
	return "other"
}
