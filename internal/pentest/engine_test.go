package pentest

import (
	"strings"
	"testing"

	"github.com/clearwave-security/clearscan-agent/internal/schema"
)

func hasVuln(res *schema.PenetrationTestResult, vulnType string, level schema.VulnerabilityLevel) bool {
	for _, v := range res.Vulnerabilities {
		if v.Type == vulnType && v.Level == level {
			return true
		}
	}
	return false
}

func countVulnType(res *schema.PenetrationTestResult, vulnType string) int {
	n := 0
	for _, v := range res.Vulnerabilities {
		if v.Type == vulnType {
			n++
		}
	}
	return n
}

func TestComprehensiveClassicInjection(t *testing.T) {
	res := NewEngine().Run("admin' OR '1'='1'--", schema.TestComprehensive)

	// The union-select payload concatenation must trip the
	// successful-injection indicators.
	if !hasVuln(res, "SQL_INJECTION_SUCCESS", schema.VulnCritical) {
		t.Error("expected CRITICAL SQL_INJECTION_SUCCESS")
	}
	if res.Status != schema.TestCritical {
		t.Errorf("status = %s, want CRITICAL_VULNERABILITIES", res.Status)
	}
	if res.Status.IsSecure() {
		t.Error("critical result cannot be secure")
	}
}

func TestSQLInjectionBattery(t *testing.T) {
	res := NewEngine().Run("id=1", schema.TestSQLInjection)

	// Exactly one payload carries the union-select indicator; the
	// target contributes nothing here.
	if got := countVulnType(res, "SQL_INJECTION_SUCCESS"); got != 1 {
		t.Errorf("SQL_INJECTION_SUCCESS count = %d, want 1", got)
	}
	if hasVuln(res, "SQL_INJECTION", schema.VulnCritical) {
		t.Error("no DB error indicator should fire for a plain target")
	}
}

func TestSQLInjectionErrorIndicatorFromTarget(t *testing.T) {
	res := NewEngine().Run("response said: You have an error in your SQL syntax", schema.TestSQLInjection)

	// The target itself carries the error indicator, so every payload
	// concatenation matches. Duplicates are retained, not deduplicated.
	if got := countVulnType(res, "SQL_INJECTION"); got != len(sqlInjectionPayloads) {
		t.Errorf("SQL_INJECTION count = %d, want %d", got, len(sqlInjectionPayloads))
	}
}

func TestXSSBattery(t *testing.T) {
	res := NewEngine().Run("q=search", schema.TestXSS)

	// Every payload contains alert(, so execution fires per payload.
	if got := countVulnType(res, "XSS_EXECUTION"); got != len(xssPayloads) {
		t.Errorf("XSS_EXECUTION count = %d, want %d", got, len(xssPayloads))
	}
	if !hasVuln(res, "XSS", schema.VulnHigh) {
		t.Error("expected HIGH XSS findings")
	}
	if res.Status != schema.TestCritical {
		t.Errorf("status = %s, want CRITICAL_VULNERABILITIES", res.Status)
	}
}

func TestCommandInjectionBattery(t *testing.T) {
	res := NewEngine().Run("ping 127.0.0.1", schema.TestCommandInjection)

	// Every payload carries a shell metacharacter.
	if got := countVulnType(res, "COMMAND_INJECTION"); got != len(commandInjectionPayloads) {
		t.Errorf("COMMAND_INJECTION count = %d, want %d", got, len(commandInjectionPayloads))
	}
	for _, v := range res.Vulnerabilities {
		if v.Level != schema.VulnCritical {
			t.Errorf("command injection finding at %s, want CRITICAL", v.Level)
		}
	}
}

func TestFileUploadChecksRawTargetOnly(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		vulnType string
		level    schema.VulnerabilityLevel
	}{
		{"malicious filename", "upload?name=malware.exe", "MALICIOUS_FILE_UPLOAD", schema.VulnCritical},
		{"php shell", "path/shell.php", "MALICIOUS_FILE_UPLOAD", schema.VulnCritical},
		{"path traversal", "file=../../../etc/passwd", "PATH_TRAVERSAL", schema.VulnHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewEngine().Run(tt.target, schema.TestFileUpload)
			if !hasVuln(res, tt.vulnType, tt.level) {
				t.Errorf("expected %s %s in %v", tt.level, tt.vulnType, res.Vulnerabilities)
			}
		})
	}

	// A benign upload name yields no findings at all: this battery
	// never concatenates payloads.
	res := NewEngine().Run("photo.png", schema.TestFileUpload)
	if len(res.Vulnerabilities) != 0 {
		t.Errorf("expected clean result, got %v", res.Vulnerabilities)
	}
	if res.Status != schema.TestSecure {
		t.Errorf("status = %s, want SECURE", res.Status)
	}
}

func TestAuthenticationBattery(t *testing.T) {
	res := NewEngine().Run("login with admin:admin", schema.TestAuthentication)

	if !hasVuln(res, "WEAK_PASSWORD", schema.VulnMedium) {
		t.Error("expected MEDIUM WEAK_PASSWORD for admin")
	}
	if !hasVuln(res, "DEFAULT_CREDENTIALS", schema.VulnHigh) {
		t.Error("expected HIGH DEFAULT_CREDENTIALS for admin:admin")
	}
	if res.Status != schema.TestHighRisk {
		t.Errorf("status = %s, want HIGH_RISK", res.Status)
	}
}

func TestComprehensiveSupplementaryChecks(t *testing.T) {
	t.Run("information disclosure", func(t *testing.T) {
		res := NewEngine().Run("api_key=abc123", schema.TestComprehensive)
		if !hasVuln(res, "INFORMATION_DISCLOSURE", schema.VulnMedium) {
			t.Error("expected INFORMATION_DISCLOSURE for api_key")
		}
	})

	t.Run("session exposure", func(t *testing.T) {
		res := NewEngine().Run("url?jsessionid=42", schema.TestComprehensive)
		if !hasVuln(res, "SESSION_EXPOSURE", schema.VulnMedium) {
			t.Error("expected SESSION_EXPOSURE for jsessionid")
		}
	})

	t.Run("oversized input", func(t *testing.T) {
		res := NewEngine().Run(strings.Repeat("a", maxInputLength+1), schema.TestComprehensive)
		if !hasVuln(res, "INPUT_VALIDATION_BYPASS", schema.VulnLow) {
			t.Error("expected INPUT_VALIDATION_BYPASS for oversized target")
		}
	})

	t.Run("special characters literal", func(t *testing.T) {
		res := NewEngine().Run(`field=<>"'&`, schema.TestComprehensive)
		if !hasVuln(res, "SPECIAL_CHARACTERS", schema.VulnLow) {
			t.Error("expected SPECIAL_CHARACTERS for contiguous literal")
		}

		// The characters scattered through the target must not fire:
		// the check is one contiguous literal, not a character class.
		res = NewEngine().Run(`a<b>c"d'e&f`, schema.TestComprehensive)
		if hasVuln(res, "SPECIAL_CHARACTERS", schema.VulnLow) {
			t.Error("scattered special characters should not fire")
		}
	})
}

func TestUnknownTestType(t *testing.T) {
	res := NewEngine().Run("anything", schema.TestType("BOGUS"))

	if !hasVuln(res, "TEST_ERROR", schema.VulnHigh) {
		t.Errorf("expected HIGH TEST_ERROR, got %v", res.Vulnerabilities)
	}
	if res.Status != schema.TestHighRisk {
		t.Errorf("status = %s, want HIGH_RISK", res.Status)
	}
}

func TestPayloadTableSizes(t *testing.T) {
	if len(sqlInjectionPayloads) != 10 {
		t.Errorf("sql payloads = %d, want 10", len(sqlInjectionPayloads))
	}
	if len(xssPayloads) != 10 {
		t.Errorf("xss payloads = %d, want 10", len(xssPayloads))
	}
	if len(commandInjectionPayloads) != 10 {
		t.Errorf("command payloads = %d, want 10", len(commandInjectionPayloads))
	}
}
