package jsonutils

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	reFence         = regexp.MustCompile("(?s)```(?:json|JSON)\\s*(.*?)```")
	reObject        = regexp.MustCompile(`(?s)\{.*\}`)
	reTrailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// ExtractJSON tries to pull one JSON object out of model output.
//
// Priority:
// 1. Triple-backtick fenced ```json ... ```
// 2. Any {...} span, greedy from the first { to the last }
//
// Invisible characters and trailing commas are cleaned up. The result is
// only returned when it is valid JSON.
func ExtractJSON(input string) (string, bool) {
	input = strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '\uFEFF' || r == '\u200B' || r == '\u200C' || r == '\u200D' {
			return -1
		}
		return r
	}, input))

	if match := reFence.FindStringSubmatch(input); len(match) > 1 {
		input = strings.TrimSpace(match[1])
	} else if match := reObject.FindString(input); match != "" {
		input = strings.TrimSpace(match)
	} else {
		return "", false
	}

	input = reTrailingComma.ReplaceAllString(input, "$1")
	if !json.Valid([]byte(input)) {
		return "", false
	}
	return input, true
}
