package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// maxPasses bounds the collapse loop in Text. Each pass shrinks every long
// whitespace run by at least a third, so 64 passes cover any realistic input.
const maxPasses = 64

var collapser = strings.NewReplacer(
	"  ", " ",
	" \n", "\n",
	"\n ", "\n",
	"\n\n\n", "\n\n",
)

// Text trims s, turns non-breaking spaces into plain spaces, collapses runs
// of spaces, drops spaces next to line breaks and caps blank lines at one.
// Unless keepLinebreaks is set, line breaks become spaces first. The
// ellipsis glyph is spelled out as three periods.
func Text(s string, keepLinebreaks bool) string {
	out, _ := collapse(s, keepLinebreaks)
	return out
}

// collapse is Text, also reporting the number of passes needed to reach the
// fixed point.
func collapse(s string, keepLinebreaks bool) (string, int) {
	s = trimSpace(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	if !keepLinebreaks {
		s = strings.ReplaceAll(s, "\n", " ")
	}

	passes := 0
	for passes < maxPasses {
		passes++
		next := collapser.Replace(s)
		if next == s {
			break
		}
		s = next
	}

	s = strings.ReplaceAll(s, "…", "...")
	return s, passes
}

// SpaceClass is the body of a regexp character class matching what Python's
// str.isspace accepts. RE2's \s only covers ASCII whitespace, so patterns
// that must agree with older runs use this class instead.
const SpaceClass = `\t\n\v\f\r \x{1c}-\x{1f}\x{85}\x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}`

var whitespaceRun = regexp.MustCompile(`[` + SpaceClass + `]+`)

// isSpace reports whether r is in SpaceClass. unicode.IsSpace misses the
// ASCII separators U+001C to U+001F.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

var (
	lineBreakTag     = regexp.MustCompile(`<br />`)
	paragraphEndTag  = regexp.MustCompile(`</p>`)
	anyTag           = regexp.MustCompile(`<[^>]+>`)
	annotationMarker = regexp.MustCompile(`\[Anmerkung:[^\]]+\]`)
	numericCharRef   = regexp.MustCompile(`&#(?:[xX]([0-9a-fA-F]+)|([0-9]+));?`)
)

// dropInvalidCharRefs removes numeric character references to control
// characters and noncharacters. html.UnescapeString would decode them, while
// the entity decoder older splits were built with drops them.
func dropInvalidCharRefs(s string) string {
	if !strings.Contains(s, "&#") {
		return s
	}
	return numericCharRef.ReplaceAllStringFunc(s, func(ref string) string {
		m := numericCharRef.FindStringSubmatch(ref)
		var n int64
		var err error
		if m[1] != "" {
			n, err = strconv.ParseInt(m[1], 16, 64)
		} else {
			n, err = strconv.ParseInt(m[2], 10, 64)
		}
		if err != nil || !invalidCodePoint(n) {
			return ref
		}
		return ""
	})
}

func invalidCodePoint(n int64) bool {
	switch {
	case n >= 0x01 && n <= 0x08, n == 0x0b, n >= 0x0e && n <= 0x1f, n == 0x7f:
		return true
	case n >= 0xfdd0 && n <= 0xfdef:
		return true
	case n <= 0x10ffff && n&0xfffe == 0xfffe:
		return true
	}
	return false
}

// RemoveHTML strips markup from s and decodes entities. With keepParagraphs
// set, <br /> becomes a line break and </p> a blank line. Tags are matched
// with a flat pattern, so attribute values must not contain '>'.
func RemoveHTML(s string, keepParagraphs bool) string {
	s = whitespaceRun.ReplaceAllString(s, " ")
	if keepParagraphs {
		s = lineBreakTag.ReplaceAllString(s, "\n")
		s = paragraphEndTag.ReplaceAllString(s, "\n\n")
	}
	s = anyTag.ReplaceAllString(s, "")
	s = html.UnescapeString(dropInvalidCharRefs(s))
	return trimSpace(s)
}

// RemoveAnnotations drops editorial "[Anmerkung: ...]" notes.
func RemoveAnnotations(s string) string {
	return annotationMarker.ReplaceAllString(s, "")
}
