package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/clearwave-security/clearscan-agent/internal/schema"
)

// SaveScanResult writes a scan result into a JSON file inside
// <outputDir>/<file>_<timestamp>/results.json and returns the file path.
func SaveScanResult(res *schema.ScanResult, outputDir string) (string, error) {
	return saveJSON(res, outputDir, safeName(res.FileName), res.ScanTime)
}

// SavePentestResult writes a penetration test result into a JSON file
// inside <outputDir>/<target>_<timestamp>/results.json.
func SavePentestResult(res *schema.PenetrationTestResult, outputDir string) (string, error) {
	return saveJSON(res, outputDir, safeName(res.Target), res.TestTime)
}

func saveJSON(v any, outputDir, name string, ts time.Time) (string, error) {
	dir := filepath.Join(outputDir, name+"_"+ts.Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	file := filepath.Join(dir, "results.json")
	fh, err := os.Create(file)
	if err != nil {
		return "", fmt.Errorf("failed to create results.json: %w", err)
	}
	defer fh.Close()

	enc := json.NewEncoder(fh)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode results: %w", err)
	}

	return file, nil
}

// safeName replaces characters not safe for file paths, and bounds the
// length so long pentest targets stay usable as directory names.
func safeName(s string) string {
	invalid := []rune{'/', '\\', ':', '*', '?', '"', '<', '>', '|', '\'', '&', ' '}
	rs := []rune(s)
	for i, r := range rs {
		for _, bad := range invalid {
			if r == bad {
				rs[i] = '_'
			}
		}
	}
	if len(rs) > 64 {
		rs = rs[:64]
	}
	if len(rs) == 0 {
		return "result"
	}
	return string(rs)
}
