package mailer

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	markdown = goldmark.New()
	policy   = bluemonday.UGCPolicy()
)

const maxDisplayNameRunes = 100

// RenderHTML renders text as Markdown and sanitizes the result for use as
// the text/html alternative of a relay.
func RenderHTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}

// DisplayName makes a submitter-supplied name safe for a From display name:
// control characters (CR and LF included) become spaces, runs of whitespace
// collapse, and the result is capped.
func DisplayName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, name)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if r := []rune(cleaned); len(r) > maxDisplayNameRunes {
		cleaned = string(r[:maxDisplayNameRunes])
	}
	return cleaned
}
