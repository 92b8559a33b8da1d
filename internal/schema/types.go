package schema

import (
	"fmt"
	"strings"
	"time"
)

// Threat is a single finding produced by the file scanner.
type Threat struct {
	Type           string      `json:"type"`
	Description    string      `json:"description"`
	Level          ThreatLevel `json:"level"`
	DetectedAt     time.Time   `json:"detected_at"`
	Recommendation string      `json:"recommendation,omitempty"`
}

// NewThreat builds a threat and fixes its recommendation from the type
// tag. The recommendation does not depend on the level and is never
// recomputed afterwards.
func NewThreat(threatType, description string, level ThreatLevel) Threat {
	return Threat{
		Type:           threatType,
		Description:    description,
		Level:          level,
		DetectedAt:     time.Now(),
		Recommendation: recommendationFor(threatType),
	}
}

func (t Threat) String() string {
	return fmt.Sprintf("[%s] %s: %s", t.Level, t.Type, t.Description)
}

var recommendations = map[string]string{
	"SQL_INJECTION":        "Sanitize input data and use parameterized queries",
	"XSS_VULNERABILITY":    "Escape HTML/JavaScript content and validate user input",
	"MALICIOUS_CODE":       "Block file processing and investigate source",
	"EXECUTABLE_DETECTED":  "Reject file - executables are not allowed",
	"EMBEDDED_EXECUTABLE":  "Extract and scan embedded files separately",
	"SUSPICIOUS_EXTENSION": "Verify file type and scan for malware",
	"FILE_TOO_LARGE":       "Compress file or split into smaller chunks",
	"UNSUPPORTED_FORMAT":   "Convert to supported format or reject",
	"PDF_JAVASCRIPT":       "Disable JavaScript execution in PDF viewer",
	"PDF_EMBEDDED_FILE":    "Extract and scan embedded files",
	"SUSPICIOUS_URL":       "Verify URL safety before accessing",
	"EMBEDDED_SCRIPT":      "Review script content for malicious code",
}

const defaultRecommendation = "Review file content and apply appropriate security measures"

func recommendationFor(threatType string) string {
	if r, ok := recommendations[threatType]; ok {
		return r
	}
	return defaultRecommendation
}

// ScanResult holds everything found while scanning one file. The Status
// field is a snapshot written once after scanning completes; adding
// threats afterwards leaves it stale until the caller re-derives it.
type ScanResult struct {
	FileName string         `json:"file_name"`
	FileSize int64          `json:"file_size"`
	ScanTime time.Time      `json:"scan_time"`
	FileHash string         `json:"file_hash,omitempty"`
	Status   SecurityStatus `json:"status"`
	Threats  []Threat       `json:"threats"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewScanResult creates an empty result for the given file identity.
func NewScanResult(fileName string, fileSize int64) *ScanResult {
	return &ScanResult{
		FileName: fileName,
		FileSize: fileSize,
		ScanTime: time.Now(),
		Status:   StatusUnknown,
		Metadata: make(map[string]any),
	}
}

// AddThreat appends a finding built from the given type, description
// and level.
func (r *ScanResult) AddThreat(threatType, description string, level ThreatLevel) {
	r.Threats = append(r.Threats, NewThreat(threatType, description, level))
}

// AddMetadata attaches a free-form key/value pair to the result.
func (r *ScanResult) AddMetadata(key string, value any) {
	r.Metadata[key] = value
}

// ThreatCount returns the number of threats at the given level.
func (r *ScanResult) ThreatCount(level ThreatLevel) int {
	n := 0
	for _, t := range r.Threats {
		if t.Level == level {
			n++
		}
	}
	return n
}

// IsSafe reports whether the file can be processed further.
func (r *ScanResult) IsSafe() bool {
	return r.Status.IsProcessable()
}

// Summary renders a human-readable breakdown of the scan.
func (r *ScanResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Security Status: %s\n", r.Status)
	fmt.Fprintf(&b, "Total Threats: %d\n", len(r.Threats))
	fmt.Fprintf(&b, "Critical: %d\n", r.ThreatCount(ThreatCritical))
	fmt.Fprintf(&b, "High: %d\n", r.ThreatCount(ThreatHigh))
	fmt.Fprintf(&b, "Medium: %d\n", r.ThreatCount(ThreatMedium))
	fmt.Fprintf(&b, "Low: %d\n", r.ThreatCount(ThreatLow))
	if len(r.Threats) > 0 {
		b.WriteString("\nThreats Detected:\n")
		for _, t := range r.Threats {
			fmt.Fprintf(&b, "- %s: %s\n", t.Type, t.Description)
		}
	}
	return b.String()
}

// TestType selects which payload battery the penetration test engine
// runs.
type TestType string

const (
	TestSQLInjection     TestType = "SQL_INJECTION"
	TestXSS              TestType = "XSS"
	TestCommandInjection TestType = "COMMAND_INJECTION"
	TestFileUpload       TestType = "FILE_UPLOAD"
	TestAuthentication   TestType = "AUTHENTICATION"
	TestComprehensive    TestType = "COMPREHENSIVE"
)

func (t TestType) String() string { return string(t) }

func (t TestType) DisplayName() string {
	switch t {
	case TestSQLInjection:
		return "SQL Injection"
	case TestXSS:
		return "Cross-Site Scripting"
	case TestCommandInjection:
		return "Command Injection"
	case TestFileUpload:
		return "File Upload"
	case TestAuthentication:
		return "Authentication"
	case TestComprehensive:
		return "Comprehensive"
	default:
		return "Unknown"
	}
}

// ParseTestType normalises a user-supplied selector to a TestType.
func ParseTestType(s string) (TestType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SQL_INJECTION", "SQL", "SQLI":
		return TestSQLInjection, nil
	case "XSS":
		return TestXSS, nil
	case "COMMAND_INJECTION", "CMD":
		return TestCommandInjection, nil
	case "FILE_UPLOAD", "UPLOAD":
		return TestFileUpload, nil
	case "AUTHENTICATION", "AUTH":
		return TestAuthentication, nil
	case "COMPREHENSIVE", "ALL":
		return TestComprehensive, nil
	default:
		return "", fmt.Errorf("unknown test type %q", s)
	}
}

// Vulnerability is a single finding produced by the penetration test
// engine.
type Vulnerability struct {
	Type        string             `json:"type"`
	Description string             `json:"description"`
	Level       VulnerabilityLevel `json:"level"`
	DetectedAt  time.Time          `json:"detected_at"`
}

func (v Vulnerability) String() string {
	return fmt.Sprintf("[%s] %s: %s", v.Level, v.Type, v.Description)
}

// PenetrationTestResult holds the outcome of one payload battery
// against one target. Status is a snapshot, same rules as ScanResult.
type PenetrationTestResult struct {
	Target          string          `json:"target"`
	TestType        TestType        `json:"test_type"`
	TestTime        time.Time       `json:"test_time"`
	Status          TestStatus      `json:"status"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
	Metadata        map[string]any  `json:"metadata,omitempty"`
}

// NewPenetrationTestResult creates an empty result keyed by target and
// test type.
func NewPenetrationTestResult(target string, testType TestType) *PenetrationTestResult {
	return &PenetrationTestResult{
		Target:   target,
		TestType: testType,
		TestTime: time.Now(),
		Status:   TestUnknown,
		Metadata: make(map[string]any),
	}
}

// AddVulnerability appends a finding to the result.
func (r *PenetrationTestResult) AddVulnerability(vulnType, description string, level VulnerabilityLevel) {
	r.Vulnerabilities = append(r.Vulnerabilities, Vulnerability{
		Type:        vulnType,
		Description: description,
		Level:       level,
		DetectedAt:  time.Now(),
	})
}

// AddMetadata attaches a free-form key/value pair to the result.
func (r *PenetrationTestResult) AddMetadata(key string, value any) {
	r.Metadata[key] = value
}

// VulnerabilityCount returns the number of findings at the given level.
func (r *PenetrationTestResult) VulnerabilityCount(level VulnerabilityLevel) int {
	n := 0
	for _, v := range r.Vulnerabilities {
		if v.Level == level {
			n++
		}
	}
	return n
}

// Summary renders a human-readable breakdown of the test run.
func (r *PenetrationTestResult) Summary() string {
	var b strings.Builder
	b.WriteString("Penetration Test Results\n")
	b.WriteString("=======================\n")
	fmt.Fprintf(&b, "Target: %s\n", r.Target)
	fmt.Fprintf(&b, "Test Type: %s\n", r.TestType)
	fmt.Fprintf(&b, "Test Status: %s\n", r.Status)
	fmt.Fprintf(&b, "Total Vulnerabilities: %d\n", len(r.Vulnerabilities))
	fmt.Fprintf(&b, "Critical: %d\n", r.VulnerabilityCount(VulnCritical))
	fmt.Fprintf(&b, "High: %d\n", r.VulnerabilityCount(VulnHigh))
	fmt.Fprintf(&b, "Medium: %d\n", r.VulnerabilityCount(VulnMedium))
	fmt.Fprintf(&b, "Low: %d\n", r.VulnerabilityCount(VulnLow))
	if len(r.Vulnerabilities) > 0 {
		b.WriteString("\nVulnerabilities Found:\n")
		for _, v := range r.Vulnerabilities {
			fmt.Fprintf(&b, "- %s: %s\n", v.Type, v.Description)
		}
	}
	return b.String()
}
