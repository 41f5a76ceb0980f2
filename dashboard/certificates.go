package dashboard

import (
	"strings"
	"time"

	"github.com/ariebrainware/doctor-portal/model"
)

// Certificate expiry tiers.
const (
	ExpiryExpired      = "Expired"
	ExpiryExpiringSoon = "Expiring Soon"
	ExpiryRenewalDue   = "Renewal Due"
	ExpiryValid        = "Valid"
)

// Certificate categories.
const (
	CategoryMedical   = "medical"
	CategoryEmergency = "emergency"
	CategorySpecialty = "specialty"
)

// RenewalWindowDays bounds the expiring-soon set.
const RenewalWindowDays = 90

// DaysUntilExpiry returns the signed number of calendar days from ref to the
// expiry date. Negative values mean the certificate already expired.
func DaysUntilExpiry(expiry string, ref time.Time) (int, error) {
	date, err := ParseDate(expiry)
	if err != nil {
		return 0, err
	}
	return int(date.Sub(CalendarDay(ref)).Hours() / 24), nil
}

// ExpiryStatus maps a day count to its tier.
func ExpiryStatus(days int) string {
	switch {
	case days < 0:
		return ExpiryExpired
	case days <= 30:
		return ExpiryExpiringSoon
	case days <= RenewalWindowDays:
		return ExpiryRenewalDue
	}
	return ExpiryValid
}

// IsExpiringSoon reports whether days falls inside the renewal window.
func IsExpiringSoon(days int) bool {
	return days >= 0 && days <= RenewalWindowDays
}

// CertificateCategory classifies a certificate by keywords in its name.
func CertificateCategory(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "medical"), strings.Contains(lower, "board"), strings.Contains(lower, "license"):
		return CategoryMedical
	case strings.Contains(lower, "bls"), strings.Contains(lower, "acls"), strings.Contains(lower, "life support"):
		return CategoryEmergency
	}
	return CategorySpecialty
}

// CertificateView is a certificate with its derived expiry fields.
type CertificateView struct {
	model.Certificate
	DaysUntilExpiry int    `json:"days_until_expiry"`
	ExpiryStatus    string `json:"expiry_status"`
	Tone            Tone   `json:"tone"`
	Category        string `json:"category"`
}

// CertificateSummary is the header of the certificate view.
type CertificateSummary struct {
	Total        int            `json:"total"`
	Valid        int            `json:"valid"`
	ExpiringSoon int            `json:"expiring_soon"`
	Expired      int            `json:"expired"`
	ByCategory   map[string]int `json:"by_category"`
}

// CertificateReport bundles the decorated list with the expiring and expired subsets.
type CertificateReport struct {
	Certificates []CertificateView  `json:"certificates"`
	Expiring     []CertificateView  `json:"expiring"`
	Expired      []CertificateView  `json:"expired"`
	Summary      CertificateSummary `json:"summary"`
}

// DescribeCertificate decorates a single certificate.
func DescribeCertificate(c model.Certificate, ref time.Time) (CertificateView, error) {
	days, err := DaysUntilExpiry(c.ExpiryDate, ref)
	if err != nil {
		return CertificateView{}, err
	}
	status := ExpiryStatus(days)
	return CertificateView{
		Certificate:     c,
		DaysUntilExpiry: days,
		ExpiryStatus:    status,
		Tone:            StatusTone(KindCertificate, status),
		Category:        CertificateCategory(c.Name),
	}, nil
}

// BuildCertificateReport decorates every certificate and derives the summary.
// Rows with an unparsable expiry date are skipped.
func BuildCertificateReport(certs []model.Certificate, ref time.Time) CertificateReport {
	report := CertificateReport{
		Certificates: make([]CertificateView, 0, len(certs)),
		Expiring:     []CertificateView{},
		Expired:      []CertificateView{},
		Summary: CertificateSummary{ByCategory: map[string]int{
			CategoryMedical:   0,
			CategoryEmergency: 0,
			CategorySpecialty: 0,
		}},
	}
	for _, c := range certs {
		view, err := DescribeCertificate(c, ref)
		if err != nil {
			continue
		}
		report.Certificates = append(report.Certificates, view)
		report.Summary.ByCategory[view.Category]++
		switch {
		case view.DaysUntilExpiry < 0:
			report.Expired = append(report.Expired, view)
			report.Summary.Expired++
		case IsExpiringSoon(view.DaysUntilExpiry):
			report.Expiring = append(report.Expiring, view)
			report.Summary.ExpiringSoon++
		default:
			report.Summary.Valid++
		}
	}
	report.Summary.Total = len(report.Certificates)
	return report
}
