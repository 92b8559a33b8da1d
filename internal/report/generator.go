package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/clearwave-security/clearscan-agent/internal/schema"
)

const reportTemplate = `SECURITY AUDIT REPORT
====================
Generated: {{.GeneratedAt}}

OVERALL STATISTICS
------------------
Total Security Events: {{.TotalEvents}}
Total Threats Detected: {{.TotalThreats}}
Total Vulnerabilities Found: {{.TotalVulnerabilities}}
Security Score: {{.Score}}/100 (Grade {{.Grade}})

THREAT BREAKDOWN
----------------
Critical: {{.Critical}}
High: {{.High}}
Medium: {{.Medium}}
Low: {{.Low}}

SECURITY STATUS
---------------
Status: {{.StatusLine}}
`

// ---------- Public API ----------

// Generate renders the audit report for the given statistics snapshot.
// Output is a pure function of the snapshot except for the embedded
// generation timestamp.
func Generate(stats schema.Statistics) (string, error) {
	vm := buildViewModel(stats)

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vm); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// WriteFile renders the report and writes it to outDir/report.txt.
func WriteFile(stats schema.Statistics, outDir string) (string, error) {
	text, err := Generate(stats)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create out dir: %w", err)
	}

	path := filepath.Join(outDir, "report.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write report.txt: %w", err)
	}
	return path, nil
}

// ---------- View Model & helpers ----------

type viewModel struct {
	GeneratedAt          string
	TotalEvents          int
	TotalThreats         int
	TotalVulnerabilities int
	Score                int
	Grade                string
	Critical             int
	High                 int
	Medium               int
	Low                  int
	StatusLine           string
}

func buildViewModel(stats schema.Statistics) viewModel {
	score := stats.Score()
	return viewModel{
		GeneratedAt:          time.Now().Format("2006-01-02 15:04:05"),
		TotalEvents:          stats.TotalEvents,
		TotalThreats:         stats.TotalThreats,
		TotalVulnerabilities: stats.TotalVulnerabilities,
		Score:                score,
		Grade:                scoreToGrade(score),
		Critical:             stats.CriticalThreats,
		High:                 stats.HighThreats,
		Medium:               stats.MediumThreats,
		Low:                  stats.LowThreats,
		StatusLine:           statusLine(stats),
	}
}

// statusLine mirrors the worst-case precedence used for scan and test
// statuses.
func statusLine(stats schema.Statistics) string {
	switch {
	case stats.CriticalThreats > 0:
		return "CRITICAL - Immediate action required"
	case stats.HighThreats > 0:
		return "HIGH RISK - Urgent attention needed"
	case stats.MediumThreats > 0:
		return "MEDIUM RISK - Monitor closely"
	case stats.LowThreats > 0:
		return "LOW RISK - Minor concerns"
	default:
		return "SECURE - No threats detected"
	}
}

func scoreToGrade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
