// Package chunkbot wires htmlchunk.Split to Telegram message delivery:
// sanitizing markup down to tags Telegram's HTML parse mode accepts,
// splitting it within budget, and sending each chunk as its own message.
package chunkbot

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagRegex  = regexp.MustCompile(`<(/?)([a-zA-Z0-9-]+)([^>]*)>`)
	hrefRegex = regexp.MustCompile(`(?i)\s*href\s*=\s*["']([^"']*)["']`)
)

const emptyAnchorTag = "<a>"

// allowedTags lists the tags Telegram's HTML parse mode accepts. Anything
// else gets its tags stripped, leaving the enclosed text intact.
var allowedTags = map[string]bool{
	"b": true, "strong": true,
	"i": true, "em": true,
	"u": true, "ins": true,
	"s": true, "strike": true, "del": true,
	"code": true, "pre": true, "a": true,
	"blockquote": true, "tg-spoiler": true, "tg-emoji": true,
}

// dangerousProtocols are stripped from anchor hrefs rather than forwarded
// to Telegram.
var dangerousProtocols = []string{"javascript:", "vbscript:", "data:"}

// Sanitize drops any tag not in allowedTags (keeping its text), escapes
// stray '&'/'<'/'>' in text runs, strips unsafe anchor hrefs, and closes
// any tag left open at the end of input. It runs before htmlchunk.Split so
// the splitter never has to reason about tags Telegram would reject anyway.
func Sanitize(text string) string {
	var sb strings.Builder

	var openTags []string

	indices := tagRegex.FindAllStringIndex(text, -1)
	lastPos := 0

	for _, idx := range indices {
		if idx[0] > lastPos {
			sb.WriteString(html.EscapeString(html.UnescapeString(text[lastPos:idx[0]])))
		}

		openTags = processTag(&sb, text[idx[0]:idx[1]], openTags)
		lastPos = idx[1]
	}

	if lastPos < len(text) {
		sb.WriteString(html.EscapeString(html.UnescapeString(text[lastPos:])))
	}

	for i := len(openTags) - 1; i >= 0; i-- {
		sb.WriteString("</" + openTags[i] + ">")
	}

	return sb.String()
}

func processTag(sb *strings.Builder, tag string, openTags []string) []string {
	matches := tagRegex.FindStringSubmatch(tag)
	if len(matches) < 3 {
		return openTags
	}

	isClosing := matches[1] == "/"
	tagName := strings.ToLower(matches[2])

	if !allowedTags[tagName] {
		return openTags
	}

	if tagName == "a" && !isClosing {
		sb.WriteString(sanitizeAnchorTag(tag))
		return append(openTags, tagName)
	}

	if isClosing {
		idx := lastIndexOf(openTags, tagName)
		if idx < 0 {
			return openTags
		}

		sb.WriteString("</" + tagName + ">")

		return openTags[:idx]
	}

	sb.WriteString("<" + tagName + ">")

	return append(openTags, tagName)
}

func lastIndexOf(tags []string, name string) int {
	for i := len(tags) - 1; i >= 0; i-- {
		if tags[i] == name {
			return i
		}
	}

	return -1
}

func sanitizeAnchorTag(tag string) string {
	hrefMatch := hrefRegex.FindStringSubmatch(tag)
	if hrefMatch == nil {
		return emptyAnchorTag
	}

	hrefLower := strings.ToLower(strings.TrimSpace(hrefMatch[1]))

	for _, proto := range dangerousProtocols {
		if strings.HasPrefix(hrefLower, proto) {
			return emptyAnchorTag
		}
	}

	return `<a href="` + html.EscapeString(hrefMatch[1]) + `">`
}

// Preview strips all tags and truncates to maxRunes, for logging a short,
// human-readable summary of a send job alongside its structured fields.
func Preview(text string, maxRunes int) string {
	stripped := html.UnescapeString(tagRegex.ReplaceAllString(text, ""))
	stripped = strings.TrimSpace(stripped)

	runes := []rune(stripped)
	if len(runes) <= maxRunes {
		return stripped
	}

	return string(runes[:maxRunes]) + "…"
}
