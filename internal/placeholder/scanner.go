// Package placeholder implements the {{name}} placeholder rules shared by the
// editor helpers, the reconciler and execution-time substitution. Every
// function here is pure and synchronous.
package placeholder

import (
	"regexp"
	"strings"
)

// pattern matches "{{" followed by one or more non-brace characters and "}}".
// It is a plain bracket match: nested or unbalanced braces never match as a
// whole.
var pattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Extract returns the distinct placeholder identifiers in content, trimmed of
// surrounding whitespace, in first-occurrence order. Blank identifiers such as
// "{{  }}" are skipped.
func Extract(content string) []string {
	matches := pattern.FindAllStringSubmatch(content, -1)
	names := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// ValidName reports whether name can be used as a placeholder identifier.
func ValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed != "" && trimmed == name && !strings.ContainsAny(name, "{}")
}

// replace rewrites every placeholder whose trimmed identifier satisfies fn.
// fn returns the replacement text and whether to replace at all.
func replace(content string, fn func(name string) (string, bool)) string {
	return pattern.ReplaceAllStringFunc(content, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-2])
		if name == "" {
			return match
		}
		if out, ok := fn(name); ok {
			return out
		}
		return match
	})
}
