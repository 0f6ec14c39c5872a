// Package defs holds the line classification shared by the override loader
// and the merge filter.
//
// A definitions file is line oriented. Each top-level entry starts with a
// line of the form "(define-<kind> <name> ..." at column 0 and ends with a
// line that is exactly ")". Nothing else about the language is understood.
package defs

import (
	"regexp"
	"sort"
	"strings"
)

const (
	KindObject    = "object"
	KindInterface = "interface"
)

var (
	entryOpenRe  = regexp.MustCompile(`^\(define-\S+ (.*?)\s`)
	objectOpenRe = regexp.MustCompile(`^\(define-object (.*?)\s`)
)

// Match is the result of testing a line against an entry pattern.
type Match struct {
	Name string
	OK   bool
}

// MatchEntryOpen reports whether line opens an entry of any kind and
// returns the entry name.
func MatchEntryOpen(line string) Match {
	return match(entryOpenRe, line)
}

// MatchObjectOpen reports whether line opens an object entry.
func MatchObjectOpen(line string) Match {
	return match(objectOpenRe, line)
}

func match(re *regexp.Regexp, line string) Match {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return Match{}
	}
	return Match{Name: m[1], OK: true}
}

// IsEntryClose reports whether line is a bare ")" followed by its line
// terminator and nothing else.
func IsEntryClose(line string) bool {
	return TrimEOL(line) == ")"
}

// PromoteToInterface rewrites the keyword of an object entry-open line.
// The name and everything after it, terminator included, are untouched.
func PromoteToInterface(line string) string {
	const from = "(define-" + KindObject + " "
	if !strings.HasPrefix(line, from) {
		return line
	}
	return "(define-" + KindInterface + " " + line[len(from):]
}

// TrimEOL strips a trailing "\n" or "\r\n".
func TrimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// NameSet is a membership-only set of entry names.
type NameSet map[string]struct{}

func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

func (s NameSet) Add(name string) { s[name] = struct{}{} }

// Has is safe on a nil set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s NameSet) Len() int { return len(s) }

// Sorted returns the names in lexical order; never nil.
func (s NameSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
