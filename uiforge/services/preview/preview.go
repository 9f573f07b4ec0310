// Package preview renders generated markup into a standalone HTML page.
//
// The component runs inside an iframe with sandbox="allow-scripts". That is
// the only isolation: generated code executes with the browser's script
// privileges for an opaque origin, so previews of untrusted output are unsafe.
package preview

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const pageShell = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title></title></head>
<body style="margin:0">
<iframe id="preview" sandbox="allow-scripts" title="Component preview" style="border:0;width:100%;height:100vh"></iframe>
</body>
</html>`

const frameShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style id="component-style"></style>
<script src="https://unpkg.com/react@18/umd/react.development.js" crossorigin></script>
<script src="https://unpkg.com/react-dom@18/umd/react-dom.development.js" crossorigin></script>
<script src="https://unpkg.com/@babel/standalone/babel.min.js"></script>
</head>
<body>
<div id="root"></div>
<script type="text/babel" id="component-script"></script>
</body>
</html>`

var (
	reComponentName = regexp.MustCompile(`(?m)^\s*(?:function|const|let|var|class)\s+([A-Z][\w$]*)`)
	reAnonymous     = regexp.MustCompile(`^(?:async\s+)?(?:function\s*\(|\([^)]*\)\s*=>|class\s*\{)`)
)

// Script turns markup into the Babel source that mounts it on #root.
func Script(markup string) string {
	markup = strings.TrimSpace(markup)
	mount := "ReactDOM.createRoot(document.getElementById('root')).render(<%s />);"
	switch {
	case strings.HasPrefix(markup, "<"):
		// a fragment allows several root elements
		return "const Preview = () => (\n<>\n" + markup + "\n</>\n);\n" + strings.Replace(mount, "%s", "Preview", 1)
	case reAnonymous.MatchString(markup):
		return "const Preview = " + markup + ";\n" + strings.Replace(mount, "%s", "Preview", 1)
	}
	if m := reComponentName.FindStringSubmatch(markup); m != nil {
		return markup + "\n" + strings.Replace(mount, "%s", m[1], 1)
	}
	return markup
}

// Render builds the preview page for one component.
func Render(title, markup, style string) (string, error) {
	frame, err := goquery.NewDocumentFromReader(strings.NewReader(frameShell))
	if err != nil {
		return "", err
	}
	frame.Find("#component-style").SetText(escapeRawText(style, "style"))
	frame.Find("#component-script").SetText(escapeRawText(Script(markup), "script"))

	var frameHTML bytes.Buffer
	if err := html.Render(&frameHTML, frame.Nodes[0]); err != nil {
		return "", err
	}

	page, err := goquery.NewDocumentFromReader(strings.NewReader(pageShell))
	if err != nil {
		return "", err
	}
	if title == "" {
		title = "Preview"
	}
	page.Find("title").SetText(title)
	page.Find("#preview").SetAttr("srcdoc", frameHTML.String())

	var out bytes.Buffer
	if err := html.Render(&out, page.Nodes[0]); err != nil {
		return "", err
	}
	return out.String(), nil
}

// escapeRawText keeps text from closing its raw-text element early.
func escapeRawText(s, tag string) string {
	closer := "</" + tag
	return caseInsensitiveReplace(s, closer, `<\/`+tag)
}

func caseInsensitiveReplace(s, old, repl string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(old))
	return re.ReplaceAllLiteralString(s, repl)
}
