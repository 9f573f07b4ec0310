package generation

import (
	"regexp"
	"strings"
)

var (
	reFenceLine        = regexp.MustCompile("(?m)^[ \t]*```[A-Za-z0-9_+-]*[ \t]*$\n?")
	reMultiLineImport  = regexp.MustCompile(`(?ms)^[ \t]*import\s*\{[^}]*\}\s*from\s*['"][^'"\n]+['"];?[ \t]*$\n?`)
	reImport           = regexp.MustCompile(`(?m)^[ \t]*import[\s{*'"][^\n]*$\n?`)
	reRequire          = regexp.MustCompile(`(?m)^[ \t]*(?:const|let|var)\s+[^\n=]+=\s*require\([^\n]*$\n?`)
	reExportDefaultRef = regexp.MustCompile(`(?m)^[ \t]*export\s+default\s+[A-Za-z_$][\w$]*\s*;?[ \t]*$\n?`)
	reExportPrefix     = regexp.MustCompile(`(?m)^([ \t]*)export\s+(?:default\s+)?`)
)

// Sanitize strips code fences and module statements the preview cannot evaluate.
func Sanitize(markup string) string {
	s := reFenceLine.ReplaceAllString(markup, "")
	s = strings.ReplaceAll(s, "```", "")
	s = reMultiLineImport.ReplaceAllString(s, "")
	s = reImport.ReplaceAllString(s, "")
	s = reRequire.ReplaceAllString(s, "")
	s = reExportDefaultRef.ReplaceAllString(s, "")
	s = reExportPrefix.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// stripFences removes fence markers from non-markup sections.
func stripFences(s string) string {
	s = reFenceLine.ReplaceAllString(s, "")
	return strings.TrimSpace(strings.ReplaceAll(s, "```", ""))
}
