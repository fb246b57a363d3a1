// Package naming converts JSON keys into C# identifiers.
package naming

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var separatorRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// words splits s on every run of characters outside [A-Za-z0-9] and drops empty segments.
func words(s string) []string {
	parts := separatorRegex.Split(s, -1)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ToPascalCase upper-cases the first letter of every word and joins them.
// The rest of each word is kept as-is, which makes the conversion idempotent.
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		b.WriteString(upperFirst(w))
	}
	return b.String()
}

// ToCamelCase is ToPascalCase with the first word's first letter lower-cased.
func ToCamelCase(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(lowerFirst(ws[0]))
	for _, w := range ws[1:] {
		b.WriteString(upperFirst(w))
	}
	return b.String()
}

func upperFirst(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + w[size:]
}

func lowerFirst(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToLower(r)) + w[size:]
}

// csharpKeywords are the reserved words that need an @ prefix to be used as identifiers.
var csharpKeywords = map[string]struct{}{
	"abstract": {}, "as": {}, "base": {}, "bool": {}, "break": {}, "byte": {}, "case": {},
	"catch": {}, "char": {}, "checked": {}, "class": {}, "const": {}, "continue": {},
	"decimal": {}, "default": {}, "delegate": {}, "do": {}, "double": {}, "else": {},
	"enum": {}, "event": {}, "explicit": {}, "extern": {}, "false": {}, "finally": {},
	"fixed": {}, "float": {}, "for": {}, "foreach": {}, "goto": {}, "if": {},
	"implicit": {}, "in": {}, "int": {}, "interface": {}, "internal": {}, "is": {},
	"lock": {}, "long": {}, "namespace": {}, "new": {}, "null": {}, "object": {},
	"operator": {}, "out": {}, "override": {}, "params": {}, "private": {},
	"protected": {}, "public": {}, "readonly": {}, "ref": {}, "return": {}, "sbyte": {},
	"sealed": {}, "short": {}, "sizeof": {}, "stackalloc": {}, "static": {},
	"string": {}, "struct": {}, "switch": {}, "this": {}, "throw": {}, "true": {},
	"try": {}, "typeof": {}, "uint": {}, "ulong": {}, "unchecked": {}, "unsafe": {},
	"ushort": {}, "using": {}, "virtual": {}, "void": {}, "volatile": {}, "while": {},
}

// Identifier makes name usable as a C# identifier: an empty name becomes
// fallback, a leading digit gets an underscore and keywords get an @ prefix.
func Identifier(name, fallback string) string {
	if name == "" {
		return fallback
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "_" + name
	}
	if _, ok := csharpKeywords[name]; ok {
		return "@" + name
	}
	return name
}

// ClassName turns an arbitrary name into a Pascal-cased class identifier.
func ClassName(name string) string {
	return Identifier(ToPascalCase(name), "Class")
}

// Registry hands out unique names. A taken name gets the lowest free numeric
// suffix starting at 1 (Addr, Addr1, Addr2, ...).
type Registry struct {
	taken map[string]struct{}
}

// NewRegistry creates a Registry with the given names already taken.
func NewRegistry(reserved ...string) *Registry {
	r := &Registry{taken: make(map[string]struct{})}
	for _, name := range reserved {
		r.Reserve(name)
	}
	return r
}

// Taken reports whether name has been handed out or reserved.
func (r *Registry) Taken(name string) bool {
	_, ok := r.taken[name]
	return ok
}

// Reserve marks name as taken.
func (r *Registry) Reserve(name string) {
	r.taken[name] = struct{}{}
}

// Release makes a previously handed out name available again.
func (r *Registry) Release(name string) {
	delete(r.taken, name)
}

// Unique returns base if it is free, otherwise base followed by the lowest free counter.
func (r *Registry) Unique(base string) string {
	name := base
	for n := 1; r.Taken(name); n++ {
		name = fmt.Sprintf("%s%d", base, n)
	}
	r.taken[name] = struct{}{}
	return name
}

var knownSingulars = map[string]string{
	"series":    "series",
	"status":    "status",
	"analysis":  "analysis",
	"species":   "species",
	"news":      "news",
	"goods":     "goods",
	"children":  "child",
	"people":    "person",
	"men":       "man",
	"women":     "woman",
	"teeth":     "tooth",
	"feet":      "foot",
	"mice":      "mouse",
	"geese":     "goose",
	"data":      "data",
	"media":     "media",
	"addresses": "address",
}

// Singularize converts a plural English noun to its singular form using a
// handful of suffix rules. Words it does not recognise are returned unchanged.
func Singularize(plural string) string {
	if singular, ok := knownSingulars[strings.ToLower(plural)]; ok {
		if plural != "" && unicode.IsUpper(rune(plural[0])) {
			return upperFirst(singular)
		}
		return singular
	}

	lower := strings.ToLower(plural)
	switch {
	case strings.HasSuffix(lower, "ies") && len(lower) > 3:
		return plural[:len(plural)-3] + "y"
	case strings.HasSuffix(lower, "ss"),
		strings.HasSuffix(lower, "us"),
		strings.HasSuffix(lower, "is"):
		return plural
	case strings.HasSuffix(lower, "sses"), strings.HasSuffix(lower, "xes"),
		strings.HasSuffix(lower, "ches"), strings.HasSuffix(lower, "shes"):
		return plural[:len(plural)-2]
	case strings.HasSuffix(lower, "s") && len(lower) > 1:
		return plural[:len(plural)-1]
	}
	return plural
}
