package radioitems

import (
	"sort"
	"strings"
	"unicode"
)

// Style is an inline style object keyed by camelCase or kebab-case CSS
// property names, e.g. {"fontSize": "12px"}.
type Style map[string]string

// CSS serialises the style as a declaration list with properties sorted by
// name. An empty style yields "".
func (s Style) CSS() string {
	if len(s) == 0 {
		return ""
	}
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(hyphenate(name))
		b.WriteByte(':')
		b.WriteString(s[name])
	}
	return b.String()
}

// hyphenate turns fontSize into font-size and WebkitTransition into
// -webkit-transition. Custom properties (--x) are kept verbatim.
func hyphenate(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 || strings.HasPrefix(name, "Webkit") || strings.HasPrefix(name, "Moz") {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
