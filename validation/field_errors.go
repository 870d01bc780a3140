package validation

import (
	"sort"
	"strings"
)

// FieldErrors is a structured validation outcome keyed by field path
// ("email", "password", "confirmPassword", ...). A field may carry more
// than one message; order within a field follows rule order.
type FieldErrors map[string][]string

// Add appends a message to the given field path.
func (e FieldErrors) Add(path, message string) {
	e[path] = append(e[path], message)
}

// Has reports whether any message is attached to the given field path.
func (e FieldErrors) Has(path string) bool {
	return len(e[path]) > 0
}

// First returns the first message for the given field path, or "".
func (e FieldErrors) First(path string) string {
	if msgs := e[path]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Error renders the set as "path: message; path: message" with paths in
// stable order, so FieldErrors can travel as an ordinary error value.
func (e FieldErrors) Error() string {
	paths := make([]string, 0, len(e))
	for path := range e {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var parts []string
	for _, path := range paths {
		for _, msg := range e[path] {
			parts = append(parts, path+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}
