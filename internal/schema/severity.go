package schema

// ThreatLevel ranks a threat found by the file scanner.
type ThreatLevel string

const (
	ThreatLow      ThreatLevel = "LOW"
	ThreatMedium   ThreatLevel = "MEDIUM"
	ThreatHigh     ThreatLevel = "HIGH"
	ThreatCritical ThreatLevel = "CRITICAL"
)

func (l ThreatLevel) String() string { return string(l) }

// Priority returns a numeric rank for ordering (higher = more severe).
// It is only ever compared, never summed.
func (l ThreatLevel) Priority() int {
	switch l {
	case ThreatCritical:
		return 4
	case ThreatHigh:
		return 3
	case ThreatMedium:
		return 2
	case ThreatLow:
		return 1
	default:
		return 0
	}
}

// DisplayName returns the human-readable name for UI surfaces.
func (l ThreatLevel) DisplayName() string {
	switch l {
	case ThreatCritical:
		return "Critical"
	case ThreatHigh:
		return "High"
	case ThreatMedium:
		return "Medium"
	case ThreatLow:
		return "Low"
	default:
		return "Unknown"
	}
}

func (l ThreatLevel) Description() string {
	switch l {
	case ThreatCritical:
		return "Immediate security threat"
	case ThreatHigh:
		return "Significant security risk"
	case ThreatMedium:
		return "Moderate security risk"
	case ThreatLow:
		return "Minor security concern"
	default:
		return "Unknown threat level"
	}
}

// ColorCode returns a hex color for presentation layers.
func (l ThreatLevel) ColorCode() string {
	switch l {
	case ThreatCritical:
		return "#FF0000"
	case ThreatHigh:
		return "#FF4500"
	case ThreatMedium:
		return "#FF8C00"
	case ThreatLow:
		return "#FFA500"
	default:
		return "#808080"
	}
}

// VulnerabilityLevel ranks a vulnerability found by the penetration test
// engine. Same shape as ThreatLevel, kept as its own type so the two
// finding families do not mix.
type VulnerabilityLevel string

const (
	VulnLow      VulnerabilityLevel = "LOW"
	VulnMedium   VulnerabilityLevel = "MEDIUM"
	VulnHigh     VulnerabilityLevel = "HIGH"
	VulnCritical VulnerabilityLevel = "CRITICAL"
)

func (l VulnerabilityLevel) String() string { return string(l) }

// Priority returns a numeric rank for ordering (higher = more severe).
func (l VulnerabilityLevel) Priority() int {
	return ThreatLevel(l).Priority()
}

func (l VulnerabilityLevel) DisplayName() string {
	return ThreatLevel(l).DisplayName()
}

func (l VulnerabilityLevel) ColorCode() string {
	return ThreatLevel(l).ColorCode()
}

// SecurityStatus is the coarse classification of a file scan, derived
// from the worst threat found.
type SecurityStatus string

const (
	StatusSafe       SecurityStatus = "SAFE"
	StatusLowRisk    SecurityStatus = "LOW_RISK"
	StatusMediumRisk SecurityStatus = "MEDIUM_RISK"
	StatusHighRisk   SecurityStatus = "HIGH_RISK"
	StatusCritical   SecurityStatus = "CRITICAL"
	StatusUnknown    SecurityStatus = "UNKNOWN"
)

func (s SecurityStatus) String() string { return string(s) }

func (s SecurityStatus) DisplayName() string {
	switch s {
	case StatusSafe:
		return "Safe"
	case StatusLowRisk:
		return "Low Risk"
	case StatusMediumRisk:
		return "Medium Risk"
	case StatusHighRisk:
		return "High Risk"
	case StatusCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

func (s SecurityStatus) ColorCode() string {
	switch s {
	case StatusSafe:
		return "#00FF00"
	case StatusLowRisk:
		return "#FFA500"
	case StatusMediumRisk:
		return "#FF8C00"
	case StatusHighRisk:
		return "#FF4500"
	case StatusCritical:
		return "#FF0000"
	default:
		return "#808080"
	}
}

// IsProcessable reports whether the scanned file is safe enough to hand
// to downstream processing.
func (s SecurityStatus) IsProcessable() bool {
	return s == StatusSafe || s == StatusLowRisk
}

// ShouldBlock reports whether the scanned file must be rejected.
// Never true together with IsProcessable.
func (s SecurityStatus) ShouldBlock() bool {
	return s == StatusCritical || s == StatusHighRisk
}

// TestStatus is the coarse classification of a penetration test run,
// derived from the worst vulnerability found.
type TestStatus string

const (
	TestSecure     TestStatus = "SECURE"
	TestLowRisk    TestStatus = "LOW_RISK"
	TestMediumRisk TestStatus = "MEDIUM_RISK"
	TestHighRisk   TestStatus = "HIGH_RISK"
	TestCritical   TestStatus = "CRITICAL_VULNERABILITIES"
	TestUnknown    TestStatus = "UNKNOWN"
)

func (s TestStatus) String() string { return string(s) }

func (s TestStatus) DisplayName() string {
	switch s {
	case TestSecure:
		return "Secure"
	case TestLowRisk:
		return "Low Risk"
	case TestMediumRisk:
		return "Medium Risk"
	case TestHighRisk:
		return "High Risk"
	case TestCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

func (s TestStatus) ColorCode() string {
	switch s {
	case TestSecure:
		return "#00FF00"
	case TestLowRisk:
		return "#FFA500"
	case TestMediumRisk:
		return "#FF8C00"
	case TestHighRisk:
		return "#FF4500"
	case TestCritical:
		return "#FF0000"
	default:
		return "#808080"
	}
}

// IsSecure reports whether the tested target can be considered safe.
func (s TestStatus) IsSecure() bool {
	return s == TestSecure || s == TestLowRisk
}

// RequiresImmediateAction reports whether findings demand intervention.
// Never true together with IsSecure.
func (s TestStatus) RequiresImmediateAction() bool {
	return s == TestCritical || s == TestHighRisk
}

// worstPriority returns the highest priority among findings, or 0 for
// none. Both status derivations funnel through here so the precedence
// rule cannot diverge between the two finding families.
func worstPriority(priorities []int) int {
	worst := 0
	for _, p := range priorities {
		if p > worst {
			worst = p
		}
	}
	return worst
}

// DeriveSecurityStatus maps a threat set to its overall status by
// worst-case precedence: CRITICAL > HIGH > MEDIUM > LOW > none.
func DeriveSecurityStatus(threats []Threat) SecurityStatus {
	ps := make([]int, len(threats))
	for i, t := range threats {
		ps[i] = t.Level.Priority()
	}
	switch worstPriority(ps) {
	case 4:
		return StatusCritical
	case 3:
		return StatusHighRisk
	case 2:
		return StatusMediumRisk
	case 1:
		return StatusLowRisk
	default:
		return StatusSafe
	}
}

// DeriveTestStatus maps a vulnerability set to its overall status using
// the same precedence as DeriveSecurityStatus.
func DeriveTestStatus(vulns []Vulnerability) TestStatus {
	ps := make([]int, len(vulns))
	for i, v := range vulns {
		ps[i] = v.Level.Priority()
	}
	switch worstPriority(ps) {
	case 4:
		return TestCritical
	case 3:
		return TestHighRisk
	case 2:
		return TestMediumRisk
	case 1:
		return TestLowRisk
	default:
		return TestSecure
	}
}
