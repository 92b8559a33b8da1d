package schema

import (
	"fmt"
	"strings"
	"time"
)

// Statistics is a point-in-time aggregate over the audit logs. It is
// recomputed from the logs on every request, never cached.
type Statistics struct {
	TotalEvents          int       `json:"total_events"`
	TotalThreats         int       `json:"total_threats"`
	TotalVulnerabilities int       `json:"total_vulnerabilities"`
	CriticalThreats      int       `json:"critical_threats"`
	HighThreats          int       `json:"high_threats"`
	MediumThreats        int       `json:"medium_threats"`
	LowThreats           int       `json:"low_threats"`
	LastUpdated          time.Time `json:"last_updated"`
}

// Score returns an overall security score between 0 and 100. A clean
// log scores 100; each finding subtracts a weighted penalty.
func (s Statistics) Score() int {
	total := s.CriticalThreats + s.HighThreats + s.MediumThreats + s.LowThreats
	if total == 0 {
		return 100
	}
	penalty := s.CriticalThreats*25 + s.HighThreats*15 + s.MediumThreats*10 + s.LowThreats*5
	if penalty > 100 {
		return 0
	}
	return 100 - penalty
}

// Status returns the coarse status label mirroring the worst non-zero
// severity bucket.
func (s Statistics) Status() string {
	switch {
	case s.CriticalThreats > 0:
		return "CRITICAL"
	case s.HighThreats > 0:
		return "HIGH_RISK"
	case s.MediumThreats > 0:
		return "MEDIUM_RISK"
	case s.LowThreats > 0:
		return "LOW_RISK"
	default:
		return "SECURE"
	}
}

// Summary renders the statistics as a plain-text block.
func (s Statistics) Summary() string {
	var b strings.Builder
	b.WriteString("Security Statistics Summary\n")
	b.WriteString("==========================\n")
	fmt.Fprintf(&b, "Total Events: %d\n", s.TotalEvents)
	fmt.Fprintf(&b, "Total Threats: %d\n", s.TotalThreats)
	fmt.Fprintf(&b, "Total Vulnerabilities: %d\n", s.TotalVulnerabilities)
	fmt.Fprintf(&b, "Critical: %d\n", s.CriticalThreats)
	fmt.Fprintf(&b, "High: %d\n", s.HighThreats)
	fmt.Fprintf(&b, "Medium: %d\n", s.MediumThreats)
	fmt.Fprintf(&b, "Low: %d\n", s.LowThreats)
	fmt.Fprintf(&b, "Security Score: %d/100\n", s.Score())
	fmt.Fprintf(&b, "Status: %s\n", s.Status())
	fmt.Fprintf(&b, "Last Updated: %s\n", s.LastUpdated.Format("2006-01-02 15:04:05"))
	return b.String()
}
