package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clearwave-security/clearscan-agent/internal/schema"
)

func newTestLogger(t *testing.T) (*Logger, string) {
	t.Helper()
	dir := t.TempDir()
	logger, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return logger, dir
}

func TestLogEventWritesHeaderAndLine(t *testing.T) {
	logger, dir := newTestLogger(t)

	event := schema.NewEvent("APP_STARTUP", "Application started successfully", "INFO")
	logger.LogEvent(event)

	data, err := os.ReadFile(filepath.Join(dir, auditLogFile))
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	text := string(data)

	if !strings.HasPrefix(text, "# Security Audit Log\n") {
		t.Errorf("missing header block:\n%s", text)
	}
	if !strings.Contains(text, "[INFO] [APP_STARTUP] Application started successfully\n") {
		t.Errorf("missing event line:\n%s", text)
	}
}

func TestLogThreatLineFormat(t *testing.T) {
	logger, dir := newTestLogger(t)

	threat := schema.NewThreat("EXECUTABLE_DETECTED", "File appears to be an executable: PE Executable", schema.ThreatCritical)
	logger.LogThreat(threat, "evil.exe")

	data, err := os.ReadFile(filepath.Join(dir, threatLogFile))
	if err != nil {
		t.Fatalf("read threat log: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "[CRITICAL] [EXECUTABLE_DETECTED]") {
		t.Errorf("missing severity/type tags:\n%s", text)
	}
	if !strings.Contains(text, "(Context: evil.exe)") {
		t.Errorf("missing context suffix:\n%s", text)
	}
}

func TestLogTestLineFormat(t *testing.T) {
	logger, dir := newTestLogger(t)

	res := schema.NewPenetrationTestResult("target", schema.TestXSS)
	res.AddVulnerability("XSS", "d", schema.VulnHigh)
	res.AddVulnerability("XSS_EXECUTION", "d", schema.VulnCritical)
	res.Status = schema.DeriveTestStatus(res.Vulnerabilities)
	logger.LogTest(res)

	data, err := os.ReadFile(filepath.Join(dir, vulnerabilityLogFile))
	if err != nil {
		t.Fatalf("read vulnerability log: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "[XSS] [CRITICAL_VULNERABILITIES] Vulnerabilities: 2 (Critical: 1, High: 1, Medium: 0, Low: 0)") {
		t.Errorf("unexpected vulnerability line:\n%s", text)
	}
}

func TestStatisticsRoundTrip(t *testing.T) {
	logger, _ := newTestLogger(t)

	logger.LogEvent(schema.NewEvent("E1", "first", "INFO"))
	logger.LogEvent(schema.NewEvent("E2", "second", "ERROR"))

	logger.LogThreat(schema.NewThreat("A", "d", schema.ThreatCritical), "f")
	logger.LogThreat(schema.NewThreat("B", "d", schema.ThreatHigh), "f")
	logger.LogThreat(schema.NewThreat("C", "d", schema.ThreatLow), "f")

	scan := schema.NewScanResult("a.txt", 11)
	scan.FileHash = "abc"
	scan.Status = schema.StatusSafe
	logger.LogScan(scan)

	test := schema.NewPenetrationTestResult("t", schema.TestSQLInjection)
	test.Status = schema.TestSecure
	logger.LogTest(test)

	stats := logger.Statistics()

	// Scan summaries land in the audit log, so they count as events.
	if stats.TotalEvents != 3 {
		t.Errorf("TotalEvents = %d, want 3", stats.TotalEvents)
	}
	if stats.TotalThreats != 3 {
		t.Errorf("TotalThreats = %d, want 3", stats.TotalThreats)
	}
	if stats.TotalVulnerabilities != 1 {
		t.Errorf("TotalVulnerabilities = %d, want 1", stats.TotalVulnerabilities)
	}
	if stats.CriticalThreats != 1 || stats.HighThreats != 1 || stats.MediumThreats != 0 || stats.LowThreats != 1 {
		t.Errorf("severity buckets = %d/%d/%d/%d, want 1/1/0/1",
			stats.CriticalThreats, stats.HighThreats, stats.MediumThreats, stats.LowThreats)
	}
}

func TestStatisticsIdempotentWithoutWrites(t *testing.T) {
	logger, _ := newTestLogger(t)

	logger.LogThreat(schema.NewThreat("A", "d", schema.ThreatMedium), "f")

	a := logger.Statistics()
	b := logger.Statistics()

	a.LastUpdated = b.LastUpdated
	if a != b {
		t.Errorf("statistics drifted without writes: %+v vs %+v", a, b)
	}
}

func TestStatisticsEmptyLogs(t *testing.T) {
	logger, _ := newTestLogger(t)

	stats := logger.Statistics()
	if stats.TotalEvents != 0 || stats.TotalThreats != 0 || stats.TotalVulnerabilities != 0 {
		t.Errorf("expected zero counts, got %+v", stats)
	}
	if stats.Status() != "SECURE" {
		t.Errorf("Status = %s, want SECURE", stats.Status())
	}
	if stats.Score() != 100 {
		t.Errorf("Score = %d, want 100", stats.Score())
	}
}

func TestHeaderWrittenOncePerLog(t *testing.T) {
	logger, dir := newTestLogger(t)

	logger.LogEvent(schema.NewEvent("E1", "first", "INFO"))
	logger.LogEvent(schema.NewEvent("E2", "second", "INFO"))

	data, err := os.ReadFile(filepath.Join(dir, auditLogFile))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "# Security Audit Log"); got != 1 {
		t.Errorf("header written %d times, want 1", got)
	}
}

func TestLoggerSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	first.LogThreat(schema.NewThreat("A", "d", schema.ThreatHigh), "f")

	// A new logger over the same directory sees the durable state.
	second, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	second.LogThreat(schema.NewThreat("B", "d", schema.ThreatHigh), "f")

	stats := second.Statistics()
	if stats.TotalThreats != 2 {
		t.Errorf("TotalThreats after reopen = %d, want 2", stats.TotalThreats)
	}
	if stats.HighThreats != 2 {
		t.Errorf("HighThreats after reopen = %d, want 2", stats.HighThreats)
	}
}

func TestConcurrentAppendsKeepWholeLines(t *testing.T) {
	logger, dir := newTestLogger(t)

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 25; j++ {
				logger.LogThreat(schema.NewThreat("T", "concurrent write", schema.ThreatLow), "f")
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	stats := logger.Statistics()
	if stats.TotalThreats != 100 {
		t.Errorf("TotalThreats = %d, want 100", stats.TotalThreats)
	}

	data, err := os.ReadFile(filepath.Join(dir, threatLogFile))
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasSuffix(line, "(Context: f)") {
			t.Fatalf("interleaved partial line: %q", line)
		}
	}
}
