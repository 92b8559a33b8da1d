package scanners

import "regexp"

// Detection tables. All are fixed at process start; nothing mutates
// them at runtime.

var (
	sqlInjectionPattern = regexp.MustCompile(`(?i)(union|select|insert|update|delete|drop|create|alter|exec|execute|script|javascript|vbscript|onload|onerror|onclick)`)

	xssPattern = regexp.MustCompile(`(?i)(<script|</script|javascript:|vbscript:|onload=|onerror=|onclick=|<iframe|</iframe|alert\s*\(|document\.cookie)`)

	maliciousPattern = regexp.MustCompile(`(?i)(eval\s*\(|system\s*\(|exec\s*\(|shell_exec|passthru|file_get_contents|fopen|fwrite|base64_decode|gzinflate|str_rot13)`)

	suspiciousFilePattern = regexp.MustCompile(`(?i)\.(exe|bat|cmd|com|scr|pif|vbs|js|jar|war|sh|ps1|php|asp|jsp)$`)

	urlPattern = regexp.MustCompile(`https?://[^\s]+`)
)

// magicSignatures maps uppercase hex prefixes of the first file bytes
// to a format label. Labels containing "Executable" are treated as
// critical.
var magicSignatures = map[string]string{
	"4D5A":     "PE Executable",
	"7F454C46": "ELF Executable",
	"CAFEBABE": "Java Class File",
	"504B0304": "ZIP/Office Document",
}

// allowedExtensions is the upload allowlist; anything else is flagged
// as unsupported.
var allowedExtensions = map[string]bool{
	"txt":  true,
	"pdf":  true,
	"docx": true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"bmp":  true,
	"tiff": true,
}

// suspiciousDomains are substring-matched against every URL found in
// file content.
var suspiciousDomains = []string{
	"bit.ly", "tinyurl.com", "goo.gl", "t.co", "shortened",
	"malware", "virus", "phishing", "suspicious",
}

// embeddedExecutableSuffixes flag ZIP entries inside .docx containers.
var embeddedExecutableSuffixes = []string{".exe", ".bat", ".cmd", ".vbs"}

const (
	// maxFileSize is the upload policy limit (50 MiB).
	maxFileSize = 50 * 1024 * 1024

	// maxContentRead caps how much of a file is inspected as text. A
	// hard absolute limit, not proportional to file size; content
	// beyond it is never inspected.
	maxContentRead = 1024 * 1024

	// hashChunkSize is the buffer size for the streaming hash pass.
	hashChunkSize = 8192
)
