package domain

import (
	"errors"
	"regexp"
	"strings"
)

// DefaultStopMarker terminates the sounding indices block.
const DefaultStopMarker = "Precipitable water [mm] for entire sounding"

// ErrNoSounding reports a page without a complete sounding.
var ErrNoSounding = errors.New("no valid sounding")

// tagRe matches any markup tag, e.g. "<PRE>" or `<H2 align="center">`.
var tagRe = regexp.MustCompile(`<[^>]+>`)

// lineBreakRe matches CRLF, bare CR, LF and the other Unicode line boundaries.
var lineBreakRe = regexp.MustCompile(`\r\n|[\n\v\f\r\x1c-\x1e\x{85}\x{2028}\x{2029}]`)

// Clean strips markup from body and returns its trimmed non-blank lines, cut
// after the first line containing marker. The result ends with a newline.
// ok is false when no lines were kept.
//
// Clean does not require the marker to be present; callers decide whether a
// partial page is acceptable with [Validate].
func Clean(body, marker string) (text string, ok bool) {
	body = tagRe.ReplaceAllString(body, "")

	var kept []string
	for _, line := range lineBreakRe.Split(body, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, line)
		if strings.Contains(line, marker) {
			break
		}
	}

	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, "\n") + "\n", true
}

// Validate rejects cleaned text that is empty or never reached marker.
func Validate(cleaned, marker string) error {
	if cleaned == "" || !strings.Contains(cleaned, marker) {
		return ErrNoSounding
	}
	return nil
}
