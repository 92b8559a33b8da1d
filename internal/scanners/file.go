package scanners

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/clearwave-security/clearscan-agent/internal/schema"
)

// Source is the minimal file access the scanner needs. *os.File and
// *bytes.Reader both satisfy it.
type Source interface {
	io.Reader
	io.ReaderAt
	io.Seeker
}

// FileScanner inspects an uploaded file for threats: extension and
// size policy, magic-byte signatures, textual content patterns, and
// container structure. It always returns a usable result; internal
// failures become threats on the result instead of errors.
type FileScanner struct{}

func NewFileScanner() *FileScanner {
	return &FileScanner{}
}

// ScanFile opens path and scans it. An unreadable file yields a result
// with a single HIGH SCAN_ERROR threat rather than an error.
func (s *FileScanner) ScanFile(path string) *schema.ScanResult {
	f, err := os.Open(path)
	if err != nil {
		result := schema.NewScanResult(baseName(path), 0)
		result.AddThreat("SCAN_ERROR",
			fmt.Sprintf("Security scan failed: %v", err), schema.ThreatHigh)
		result.Status = schema.DeriveSecurityStatus(result.Threats)
		return result
	}
	defer f.Close()

	size := int64(0)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}
	return s.Scan(baseName(path), size, f)
}

// Scan runs the full pipeline over src. Each stage is isolated: a
// failure in one stage is recorded and does not abort the rest.
func (s *FileScanner) Scan(name string, size int64, src Source) *schema.ScanResult {
	result := schema.NewScanResult(name, size)

	if src == nil {
		result.AddThreat("SCAN_ERROR",
			"Security scan failed: no readable source provided", schema.ThreatHigh)
		result.Status = schema.DeriveSecurityStatus(result.Threats)
		return result
	}

	s.validateFileType(name, size, result)
	s.validateSignature(src, result)

	content := s.readContent(src, size, result)
	s.analyzeContent(content, result)
	s.detectContainerThreats(name, size, src, content, result)

	result.FileHash = s.hashContent(src)
	result.Status = schema.DeriveSecurityStatus(result.Threats)
	return result
}

// validateFileType checks the extension and size policy. The flags are
// independent; several may fire for one file.
func (s *FileScanner) validateFileType(name string, size int64, result *schema.ScanResult) {
	lower := strings.ToLower(name)
	ext := fileExtension(lower)

	if suspiciousFilePattern.MatchString(lower) {
		result.AddThreat("SUSPICIOUS_EXTENSION",
			"File has potentially dangerous extension: "+ext, schema.ThreatHigh)
	}

	if size > maxFileSize {
		result.AddThreat("FILE_TOO_LARGE",
			fmt.Sprintf("File size exceeds maximum allowed size: %dMB", size/1024/1024),
			schema.ThreatMedium)
	}

	if !allowedExtensions[ext] {
		result.AddThreat("UNSUPPORTED_FORMAT",
			"File format not supported: "+ext, schema.ThreatMedium)
	}
}

// validateSignature reads the first 8 bytes and matches the hex of the
// first 4 against known magic numbers.
func (s *FileScanner) validateSignature(src Source, result *schema.ScanResult) {
	header := make([]byte, 8)
	n, err := src.ReadAt(header, 0)
	if err != nil && err != io.EOF {
		result.AddThreat("SIGNATURE_SCAN_ERROR",
			fmt.Sprintf("Could not read file signature: %v", err), schema.ThreatLow)
		return
	}
	if n < 4 {
		return
	}

	hexSig := strings.ToUpper(hex.EncodeToString(header[:4]))
	for prefix, label := range magicSignatures {
		if strings.HasPrefix(hexSig, prefix) {
			if strings.Contains(label, "Executable") {
				result.AddThreat("EXECUTABLE_DETECTED",
					"File appears to be an executable: "+label, schema.ThreatCritical)
			} else {
				result.AddThreat("SUSPICIOUS_SIGNATURE",
					"File has suspicious signature: "+label, schema.ThreatMedium)
			}
		}
	}
}

// readContent returns up to the first 1 MiB of the file as text. A
// read failure is recorded as a LOW threat and yields empty content so
// the later stages still run.
func (s *FileScanner) readContent(src Source, size int64, result *schema.ScanResult) string {
	readSize := size
	if readSize > maxContentRead {
		readSize = maxContentRead
	}
	if readSize <= 0 {
		return ""
	}

	buf := make([]byte, readSize)
	n, err := src.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		result.AddThreat("CONTENT_ANALYSIS_ERROR",
			fmt.Sprintf("Could not analyze file content: %v", err), schema.ThreatLow)
		return ""
	}
	return string(buf[:n])
}

// analyzeContent tests the text window against every pattern family.
// Matches are additive; no check short-circuits another.
func (s *FileScanner) analyzeContent(content string, result *schema.ScanResult) {
	if content == "" {
		return
	}

	if sqlInjectionPattern.MatchString(content) {
		result.AddThreat("SQL_INJECTION",
			"Potential SQL injection pattern detected in content", schema.ThreatHigh)
	}

	if xssPattern.MatchString(content) {
		result.AddThreat("XSS_VULNERABILITY",
			"Potential XSS vulnerability detected in content", schema.ThreatHigh)
	}

	if maliciousPattern.MatchString(content) {
		result.AddThreat("MALICIOUS_CODE",
			"Potential malicious code pattern detected", schema.ThreatCritical)
	}

	lower := strings.ToLower(content)
	if strings.Contains(lower, "<script") || strings.Contains(lower, "javascript:") {
		result.AddThreat("EMBEDDED_SCRIPT",
			"Embedded script detected in content", schema.ThreatMedium)
	}

	for _, url := range urlPattern.FindAllString(content, -1) {
		if isSuspiciousURL(url) {
			result.AddThreat("SUSPICIOUS_URL",
				"Suspicious URL detected: "+url, schema.ThreatMedium)
		}
	}
}

func isSuspiciousURL(url string) bool {
	lower := strings.ToLower(url)
	for _, domain := range suspiciousDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return strings.Contains(lower, "javascript:") ||
		strings.Contains(lower, "data:") ||
		strings.Contains(lower, "vbscript:")
}

// detectContainerThreats applies format-specific structural checks for
// .docx and .pdf files. Failures here are logged only; the scan
// continues.
func (s *FileScanner) detectContainerThreats(name string, size int64, src Source, content string, result *schema.ScanResult) {
	lower := strings.ToLower(name)

	if strings.HasSuffix(lower, ".docx") {
		if err := s.checkArchiveEntries(src, size, result); err != nil {
			log.Printf("embedded executable check failed for %s: %v", name, err)
		}
	}

	if strings.HasSuffix(lower, ".pdf") {
		s.checkPDFContent(content, result)
	}
}

// checkArchiveEntries walks the ZIP structure of an Office container
// and flags embedded executables and scripts/macros.
func (s *FileScanner) checkArchiveEntries(src Source, size int64, result *schema.ScanResult) error {
	zr, err := zip.NewReader(src, size)
	if err != nil {
		return fmt.Errorf("open container: %w", err)
	}

	for _, entry := range zr.File {
		entryName := strings.ToLower(entry.Name)

		for _, suffix := range embeddedExecutableSuffixes {
			if strings.HasSuffix(entryName, suffix) {
				result.AddThreat("EMBEDDED_EXECUTABLE",
					"Embedded executable detected: "+entryName, schema.ThreatCritical)
				break
			}
		}

		if strings.Contains(entryName, "script") || strings.Contains(entryName, "macro") {
			result.AddThreat("EMBEDDED_SCRIPT",
				"Embedded script/macro detected: "+entryName, schema.ThreatMedium)
		}
	}
	return nil
}

// checkPDFContent re-scans the capped text window for PDF object
// markers that indicate active content.
func (s *FileScanner) checkPDFContent(content string, result *schema.ScanResult) {
	if strings.Contains(content, "/JavaScript") || strings.Contains(content, "/JS") {
		result.AddThreat("PDF_JAVASCRIPT",
			"PDF contains JavaScript which may be malicious", schema.ThreatMedium)
	}

	if strings.Contains(content, "/EmbeddedFile") || strings.Contains(content, "/FileAttachment") {
		result.AddThreat("PDF_EMBEDDED_FILE",
			"PDF contains embedded files which may be malicious", schema.ThreatMedium)
	}

	if strings.Contains(content, "/SubmitForm") || strings.Contains(content, "/ResetForm") {
		result.AddThreat("PDF_FORM_ACTION",
			"PDF contains form actions which may be used for data exfiltration", schema.ThreatLow)
	}
}

// hashContent streams the whole file through SHA-256, in fixed-size
// chunks regardless of the content cap. Returns the sentinel
// "HASH_ERROR" on failure so the scan itself never aborts.
func (s *FileScanner) hashContent(src Source) string {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		log.Printf("hash seek failed: %v", err)
		return "HASH_ERROR"
	}

	h := sha256.New()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(h, src, buf); err != nil {
		log.Printf("hash read failed: %v", err)
		return "HASH_ERROR"
	}
	return hex.EncodeToString(h.Sum(nil))
}

// fileExtension returns the lowercased portion after the last dot, or
// "" when there is no extension.
func fileExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx > 0 && idx < len(name)-1 {
		return name[idx+1:]
	}
	return ""
}

func baseName(path string) string {
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
