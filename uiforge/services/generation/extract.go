package generation

import (
	"encoding/json"
	"regexp"
	"strings"

	"uiforge/uiforge/utils/jsonutils"
)

const strategyFallback = "fallback"

// Strategy pulls a Result out of raw model text, reporting whether it applied.
type Strategy struct {
	Name    string
	Extract func(text string) (Result, bool)
}

// Strategies are tried in order; the first that applies wins.
var Strategies = []Strategy{
	{Name: "labeled_sections", Extract: extractLabeledSections},
	{Name: "json_object", Extract: extractJSONObject},
	{Name: "fenced_blocks", Extract: extractFencedBlocks},
	{Name: "tag_like", Extract: extractTagLike},
}

// Extract runs the strategies over raw and always returns something displayable.
// The second value names the strategy that produced the result.
func Extract(raw string) (Result, string) {
	for _, s := range Strategies {
		r, ok := s.Extract(raw)
		if !ok {
			continue
		}
		r.MarkupText = Sanitize(r.MarkupText)
		if !strings.Contains(r.MarkupText, "<") {
			break
		}
		r.StyleText = stripFences(r.StyleText)
		r.ExplanationText = strings.TrimSpace(r.ExplanationText)
		return r, s.Name
	}
	return Fallback(raw), strategyFallback
}

// Labels must start their line; indented "css:" keys inside code are not labels.
var reLabel = regexp.MustCompile(`(?im)^(?:[#>*_][ \t]*)*(jsx|css|explanation)[ \t*_]*:[*_]*`)

// extractLabeledSections reads "JSX:", "CSS:" and "Explanation:" sections.
func extractLabeledSections(text string) (Result, bool) {
	var locs [][]int
	for _, loc := range reLabel.FindAllStringSubmatchIndex(text, -1) {
		// inside an open ``` fence
		if strings.Count(text[:loc[0]], "```")%2 == 1 {
			continue
		}
		locs = append(locs, loc)
	}
	sections := map[string]string{}
	for i, loc := range locs {
		label := strings.ToLower(text[loc[2]:loc[3]])
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if _, seen := sections[label]; seen {
			continue
		}
		sections[label] = strings.TrimSpace(text[loc[1]:end])
	}
	markup, ok := sections["jsx"]
	if !ok || markup == "" {
		return Result{}, false
	}
	return Result{
		MarkupText:      markup,
		StyleText:       sections["css"],
		ExplanationText: sections["explanation"],
	}, true
}

// extractJSONObject handles replies that came back as a JSON object.
func extractJSONObject(text string) (Result, bool) {
	raw, ok := jsonutils.ExtractJSON(text)
	if !ok {
		return Result{}, false
	}
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return Result{}, false
	}
	pick := func(keys ...string) string {
		for _, k := range keys {
			for fk, v := range fields {
				if s, ok := v.(string); ok && strings.EqualFold(fk, k) && s != "" {
					return s
				}
			}
		}
		return ""
	}
	markup := pick("jsx", "markup_text", "markup", "html", "component")
	if markup == "" {
		return Result{}, false
	}
	return Result{
		MarkupText:      markup,
		StyleText:       pick("css", "style_text", "style", "styles"),
		ExplanationText: pick("explanation", "explanation_text", "message"),
	}, true
}

var reFencedBlock = regexp.MustCompile("(?s)```[ \t]*([A-Za-z0-9_+-]*)[^\n]*\n(.*?)```")

var markupLangs = map[string]bool{
	"jsx": true, "tsx": true, "js": true, "javascript": true,
	"ts": true, "typescript": true, "html": true, "react": true,
}

var styleLangs = map[string]bool{"css": true, "scss": true, "less": true}

// extractFencedBlocks reads ```jsx and ```css blocks; prose outside them is the
// explanation. Tagged blocks win; an untagged block is markup only when it has
// a tag in it and nothing tagged as markup was found.
func extractFencedBlocks(text string) (Result, bool) {
	var r Result
	var untagged []string
	for _, m := range reFencedBlock.FindAllStringSubmatch(text, -1) {
		lang := strings.ToLower(m[1])
		body := strings.TrimSpace(m[2])
		switch {
		case lang == "":
			untagged = append(untagged, body)
		case styleLangs[lang]:
			if r.StyleText == "" {
				r.StyleText = body
			}
		case markupLangs[lang]:
			if r.MarkupText == "" {
				r.MarkupText = body
			}
		}
	}
	for _, body := range untagged {
		hasTag := strings.Contains(body, "<")
		switch {
		case r.MarkupText == "" && hasTag:
			r.MarkupText = body
		case r.StyleText == "" && !hasTag:
			r.StyleText = body
		}
	}
	if r.MarkupText == "" {
		return Result{}, false
	}
	prose := reFencedBlock.ReplaceAllString(text, "")
	r.ExplanationText = strings.Join(strings.Fields(prose), " ")
	return r, true
}

var reTagLike = regexp.MustCompile(`(?s)<([A-Za-z][\w.]*)\b[^>]*>.*</[A-Za-z][\w.]*\s*>|<[A-Za-z][\w.]*\b[^>]*/>`)

// extractTagLike takes the widest span that looks like markup.
func extractTagLike(text string) (Result, bool) {
	match := reTagLike.FindString(text)
	if match == "" {
		return Result{}, false
	}
	return Result{MarkupText: match}, true
}
