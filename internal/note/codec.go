// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

// Package note implements the versioned note codec.
//
// A note is stored as a single opaque text field. The current format is a
// fixed prefix marker followed by a JSON payload holding the title and the
// sanitized rich-text body. Notes written before the versioned format was
// introduced are plain text; Parse falls back to treating the first line
// as the title and the remainder as a plain-text body.
//
// The prefix marker and the JSON field names are a storage contract:
// changing either breaks reading previously stored notes.
package note

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Prefix is the version marker of the structured note format.
const Prefix = "__later_note_v1__:"

// Parsed is the decoded form of a stored note.
type Parsed struct {
	// Title is the trimmed note title.
	Title string

	// BodyHTML is the sanitized rich-text body markup.
	BodyHTML string

	// PlainText is the markup-stripped text of title and body joined by a
	// newline, used for search and tag indexing.
	PlainText string
}

type payload struct {
	Title    string `json:"title"`
	BodyHTML string `json:"bodyHtml"`
}

// allowedTags is the sanitizer whitelist. Anything else, including all
// attributes, is stripped.
var allowedTags = map[string]bool{
	"b": true, "strong": true,
	"i": true, "em": true,
	"u": true, "s": true,
	"br": true, "p": true,
	"ul": true, "ol": true, "li": true,
}

var (
	scriptRe  = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe   = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagRe     = regexp.MustCompile(`<[^>]*>`)
	tagNameRe = regexp.MustCompile(`(?i)^<\s*(/?)\s*([a-z0-9]+)`)

	brRe       = regexp.MustCompile(`(?i)<br\s*/?>`)
	closePRe   = regexp.MustCompile(`(?i)</p>`)
	closeLiRe  = regexp.MustCompile(`(?i)</li>`)
	newlinesRe = regexp.MustCompile(`\n{3,}`)
)

// htmlEscaper matches the escaping of the stored format exactly; the
// entity choice for quotes is part of the legacy conversion contract.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeText escapes plain text for embedding in note markup.
func EscapeText(text string) string {
	return htmlEscaper.Replace(text)
}

// TextToHTML converts plain text to body markup by escaping it and turning
// newlines into line breaks. Blank input yields an empty string.
func TextToHTML(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return strings.ReplaceAll(EscapeText(text), "\n", "<br>")
}

// Sanitize reduces markup to the fixed whitelist of inline and structural
// tags. Script and style blocks, comments and all attributes are removed;
// surviving tags are normalized to lower case without attributes.
//
// Sanitize is idempotent: Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(input string) string {
	html := scriptRe.ReplaceAllString(input, "")
	html = styleRe.ReplaceAllString(html, "")
	html = commentRe.ReplaceAllString(html, "")

	html = tagRe.ReplaceAllStringFunc(html, func(tag string) string {
		m := tagNameRe.FindStringSubmatch(tag)
		if m == nil {
			return ""
		}

		name := strings.ToLower(m[2])
		if !allowedTags[name] {
			return ""
		}

		return "<" + m[1] + name + ">"
	})

	return strings.TrimSpace(html)
}

// StripHTML converts body markup to plain text: line breaks, paragraph and
// list-item boundaries become newlines, every other tag is dropped.
func StripHTML(html string) string {
	text := brRe.ReplaceAllString(html, "\n")
	text = closePRe.ReplaceAllString(text, "\n")
	text = closeLiRe.ReplaceAllString(text, "\n")
	text = tagRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, " ", " ")
	text = newlinesRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// Serialize encodes a title and body markup into the versioned stored
// format. The title is trimmed and the body sanitized before encoding, so
// untrusted markup never reaches storage.
func Serialize(title, bodyHTML string) string {
	p := payload{
		Title:    strings.TrimSpace(title),
		BodyHTML: Sanitize(bodyHTML),
	}

	// Marshalling a struct of two strings cannot fail.
	encoded, _ := json.Marshal(p)

	return Prefix + string(encoded)
}

// Parse decodes a stored note. Input carrying the version marker is
// decoded as the structured payload; a decode failure falls through to
// legacy parsing rather than erroring. Legacy input is split into a
// first-line title and a plain-text body.
//
// The body markup is sanitized on the way out regardless of the source
// format.
func Parse(raw string) Parsed {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Parsed{}
	}

	if strings.HasPrefix(trimmed, Prefix) {
		var p payload
		if err := json.Unmarshal([]byte(trimmed[len(Prefix):]), &p); err == nil {
			title := strings.TrimSpace(p.Title)
			bodyHTML := Sanitize(p.BodyHTML)

			return Parsed{
				Title:     title,
				BodyHTML:  bodyHTML,
				PlainText: joinNonEmpty(title, StripHTML(bodyHTML)),
			}
		}
		// fall through to legacy parsing
	}

	lines := strings.Split(trimmed, "\n")
	title := strings.TrimSpace(lines[0])
	body := strings.TrimSpace(strings.Join(lines[1:], "\n"))

	return Parsed{
		Title:     title,
		BodyHTML:  TextToHTML(body),
		PlainText: joinNonEmpty(title, body),
	}
}

// Normalize re-encodes an incoming note into the versioned sanitized
// format. It is the write-path guard: whatever the client sent, the
// stored value has passed the sanitizer. Blank input stays blank.
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	parsed := Parse(raw)

	return Serialize(parsed.Title, parsed.BodyHTML)
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}
