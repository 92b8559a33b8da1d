package audit

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/clearwave-security/clearscan-agent/internal/schema"
)

const (
	// DefaultDir is where the audit logs live unless configured
	// otherwise.
	DefaultDir = "security_logs"

	auditLogFile         = "security_audit.log"
	threatLogFile        = "threat_detection.log"
	vulnerabilityLogFile = "vulnerability_scan.log"

	timestampLayout = "2006-01-02 15:04:05"
)

// Logger is an append-only audit sink over three flat log files:
// general audit events, threat detections, and vulnerability scans.
// Lines are only ever appended, never edited or removed. Writes are
// best-effort: a failed append is reported on the process log and
// never returned to the caller, so audit trouble cannot abort the
// operation that triggered it.
type Logger struct {
	mu sync.Mutex

	auditPath  string
	threatPath string
	vulnPath   string
}

// New creates a logger rooted at dir, creating the directory if
// needed. Log files themselves are initialized lazily on first append.
func New(dir string) (*Logger, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audit log dir: %w", err)
	}
	return &Logger{
		auditPath:  filepath.Join(dir, auditLogFile),
		threatPath: filepath.Join(dir, threatLogFile),
		vulnPath:   filepath.Join(dir, vulnerabilityLogFile),
	}, nil
}

// LogEvent appends a security event to the audit log.
func (l *Logger) LogEvent(event *schema.Event) {
	line := fmt.Sprintf("[%s] [%s] [%s] %s\n",
		event.Timestamp.Format(timestampLayout),
		event.Level,
		event.EventType,
		event.Description,
	)
	l.append(l.auditPath, auditHeader, line)

	log.Printf("SECURITY EVENT: %s - %s", event.EventType, event.Description)
}

// LogThreat appends one threat detection with its context (typically
// the scanned file name) to the threat log.
func (l *Logger) LogThreat(threat schema.Threat, context string) {
	line := fmt.Sprintf("[%s] [%s] [%s] %s (Context: %s)\n",
		threat.DetectedAt.Format(timestampLayout),
		threat.Level,
		threat.Type,
		threat.Description,
		context,
	)
	l.append(l.threatPath, threatHeader, line)

	if threat.Level == schema.ThreatCritical || threat.Level == schema.ThreatHigh {
		log.Printf("THREAT DETECTED: %s - %s", threat.Type, threat.Description)
	}
}

// LogScan appends a one-line summary of a file scan to the audit log.
func (l *Logger) LogScan(result *schema.ScanResult) {
	line := fmt.Sprintf("[%s] [FILE_UPLOAD] [%s] %s (Size: %d bytes, Hash: %s)\n",
		result.ScanTime.Format(timestampLayout),
		result.Status,
		result.FileName,
		result.FileSize,
		result.FileHash,
	)
	l.append(l.auditPath, auditHeader, line)

	if result.Status.ShouldBlock() {
		log.Printf("FILE BLOCKED: %s - %s", result.FileName, result.Status)
	}
}

// LogTest appends a one-line summary of a penetration test run to the
// vulnerability log.
func (l *Logger) LogTest(result *schema.PenetrationTestResult) {
	line := fmt.Sprintf("[%s] [%s] [%s] Vulnerabilities: %d (Critical: %d, High: %d, Medium: %d, Low: %d)\n",
		result.TestTime.Format(timestampLayout),
		result.TestType,
		result.Status,
		len(result.Vulnerabilities),
		result.VulnerabilityCount(schema.VulnCritical),
		result.VulnerabilityCount(schema.VulnHigh),
		result.VulnerabilityCount(schema.VulnMedium),
		result.VulnerabilityCount(schema.VulnLow),
	)
	l.append(l.vulnPath, vulnHeader, line)

	if result.Status.RequiresImmediateAction() {
		log.Printf("VULNERABILITY FOUND: %s - %s", result.TestType, result.Status)
	}
}

// Statistics re-derives the aggregate counters by scanning the logs
// from the beginning. There is no cached state: a fresh call after new
// appends always reflects them, and a call with an unchanged log is
// idempotent.
func (l *Logger) Statistics() schema.Statistics {
	stats := schema.Statistics{LastUpdated: time.Now()}

	stats.TotalEvents = l.countEntries(l.auditPath)
	stats.TotalThreats = l.countEntries(l.threatPath)
	stats.TotalVulnerabilities = l.countEntries(l.vulnPath)

	stats.CriticalThreats = l.countThreatLines(schema.ThreatCritical)
	stats.HighThreats = l.countThreatLines(schema.ThreatHigh)
	stats.MediumThreats = l.countThreatLines(schema.ThreatMedium)
	stats.LowThreats = l.countThreatLines(schema.ThreatLow)

	return stats
}

// append opens the log for appending, writing the header block first
// if the file does not exist yet. One append is a single
// open-write-close under the mutex so concurrent callers cannot
// interleave partial lines.
func (l *Logger) append(path, header, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		head := fmt.Sprintf(header, time.Now().Format(timestampLayout))
		if err := os.WriteFile(path, []byte(head), 0o644); err != nil {
			log.Printf("failed to initialize audit log %s: %v", path, err)
			return
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("failed to open audit log %s: %v", path, err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		log.Printf("failed to write audit log %s: %v", path, err)
	}
}

// countEntries counts non-comment, non-blank lines in a log file. A
// missing file counts as zero.
func (l *Logger) countEntries(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		n++
	}
	return n
}

// countThreatLines counts threat log lines tagged with the literal
// bracketed severity.
func (l *Logger) countThreatLines(level schema.ThreatLevel) int {
	f, err := os.Open(l.threatPath)
	if err != nil {
		return 0
	}
	defer f.Close()

	tag := "[" + level.String() + "]"
	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if strings.Contains(sc.Text(), tag) {
			n++
		}
	}
	return n
}

const (
	auditHeader = "# Security Audit Log\n" +
		"# Started: %s\n" +
		"# Format: [TIMESTAMP] [LEVEL] [EVENT_TYPE] [DESCRIPTION]\n\n"

	threatHeader = "# Threat Detection Log\n" +
		"# Started: %s\n" +
		"# Format: [TIMESTAMP] [THREAT_LEVEL] [THREAT_TYPE] [DESCRIPTION]\n\n"

	vulnHeader = "# Vulnerability Scan Log\n" +
		"# Started: %s\n" +
		"# Format: [TIMESTAMP] [TEST_TYPE] [STATUS] [VULNERABILITIES]\n\n"
)
