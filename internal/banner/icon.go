package banner

import (
	"regexp"
	"strings"

	"svgbanner/internal/color"
)

var rootFill = regexp.MustCompile(`\sfill\s*=\s*("[^"]*"|'[^']*')`)

// injectFill colors an icon by setting fill on its root <svg> element, placed
// ahead of the namespace declaration. Any existing root fill is dropped so the
// element never carries the attribute twice.
func injectFill(markup string, c color.RGB) string {
	markup = stripProlog(markup)
	attr := fill(c)

	start := rootIndex(markup)
	if start < 0 {
		return `<g ` + attr + `>` + markup + `</g>`
	}
	end := strings.IndexByte(markup[start:], '>')
	if end < 0 {
		return `<g ` + attr + `>` + markup + `</g>`
	}
	end += start

	tag := rootFill.ReplaceAllString(markup[start:end], "")
	if i := strings.Index(tag, "xmlns"); i >= 0 {
		tag = tag[:i] + attr + " " + tag[i:]
	} else {
		tag = tag[:len("<svg")] + " " + attr + tag[len("<svg"):]
	}
	return markup[:start] + tag + markup[end:]
}

// rootIndex finds the first "<svg" that opens an element (not e.g. "<svgx").
func rootIndex(markup string) int {
	off := 0
	for {
		i := strings.Index(markup[off:], "<svg")
		if i < 0 {
			return -1
		}
		i += off
		next := i + len("<svg")
		if next >= len(markup) {
			return -1
		}
		switch markup[next] {
		case ' ', '\t', '\n', '\r', '>', '/':
			return i
		}
		off = next
	}
}

// stripProlog drops a leading XML declaration, DOCTYPE and comments, which
// are not allowed inside the banner document.
func stripProlog(markup string) string {
	for {
		markup = strings.TrimLeft(markup, " \t\r\n\ufeff")
		var closer string
		switch {
		case strings.HasPrefix(markup, "<?"):
			closer = "?>"
		case strings.HasPrefix(markup, "<!--"):
			closer = "-->"
		case strings.HasPrefix(markup, "<!DOCTYPE"), strings.HasPrefix(markup, "<!doctype"):
			closer = ">"
			if open := strings.IndexByte(markup, '['); open >= 0 && open < strings.IndexByte(markup, '>') {
				closer = "]>"
			}
		default:
			return markup
		}
		i := strings.Index(markup, closer)
		if i < 0 {
			return markup
		}
		markup = markup[i+len(closer):]
	}
}
