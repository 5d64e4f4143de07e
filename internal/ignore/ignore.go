package ignore

import (
	"path/filepath"
	"strings"
)

// DefaultNames are entry names excluded from every snapshot.
var DefaultNames = []string{".git"}

// Matcher decides which relative paths are exempt from litter detection.
// Bare names match any path segment; entries containing a separator or a
// glob metacharacter are matched as git-style patterns.
type Matcher struct {
	names   map[string]bool
	pattern []string
}

// New builds a Matcher from the default names plus the given entries.
func New(entries []string) *Matcher {
	m := &Matcher{names: make(map[string]bool)}

	for _, n := range DefaultNames {
		m.names[n] = true
	}

	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" || strings.HasPrefix(e, "#") {
			continue
		}
		if strings.ContainsAny(e, "*?/") {
			m.pattern = append(m.pattern, filepath.ToSlash(e))
		} else {
			m.names[e] = true
		}
	}

	return m
}

// Match returns true if the relative slash path should be ignored.
func (m *Matcher) Match(path string) bool {
	clean := filepath.ToSlash(filepath.Clean(path))

	for _, seg := range strings.Split(clean, "/") {
		if m.names[seg] {
			return true
		}
	}

	for _, pat := range m.pattern {
		if matchPattern(pat, clean) {
			return true
		}
	}

	return false
}

// matchPattern handles *, ?, and ** like Git
func matchPattern(pattern, path string) bool {
	pattern = filepath.ToSlash(pattern)
	return matchSegments(strings.Split(pattern, "/"), strings.Split(path, "/"))
}

// matchSegments matches pattern segments recursively
func matchSegments(pats, parts []string) bool {
	for len(pats) > 0 {
		p := pats[0]
		pats = pats[1:]

		if p == "**" {
			if len(pats) == 0 {
				return true // trailing ** matches anything
			}
			for i := 0; i <= len(parts); i++ {
				if matchSegments(pats, parts[i:]) {
					return true
				}
			}
			return false
		}

		if len(parts) == 0 {
			return false
		}

		ok, _ := filepath.Match(p, parts[0])
		if !ok {
			return false
		}

		parts = parts[1:]
	}

	return len(parts) == 0
}
