/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"regexp"
	"strings"
)

// Sibling fields the repair scan anchors on. Scoring verdicts pair each
// "reason" with a "score"; pairwise comparisons pair it with a "preference".
const (
	FieldScore      = "score"
	FieldPreference = "preference"
)

var (
	scorePattern      = regexp.MustCompile(`"reason":\s*(.*?),\s*"score"`)
	preferencePattern = regexp.MustCompile(`"reason":\s*(.*?),\s*"preference"`)

	newlineStripper = strings.NewReplacer("\n", "", "\r", "")
)

// spanPattern returns the reason-span pattern anchored on the given sibling
// field. The two common fields use precompiled patterns.
func spanPattern(field string) *regexp.Regexp {
	switch field {
	case FieldScore:
		return scorePattern
	case FieldPreference:
		return preferencePattern
	default:
		return regexp.MustCompile(`"reason":\s*(.*?),\s*"` + regexp.QuoteMeta(field) + `"`)
	}
}

// Repair rewrites unescaped double quotes inside "reason" values as single
// quotes so the text decodes as JSON. The value span is located lazily: from
// the "reason" key up to the next comma followed by the quoted sibling
// field. Newlines are stripped first so the scan never spans broken lines.
//
// The rewrite is deliberately narrow. Text without the pattern is returned
// unchanged apart from newline stripping, and repairing an already-repaired
// string is a no-op.
func Repair(raw, field string) string {
	re := spanPattern(field)
	flat := newlineStripper.Replace(raw)

	return re.ReplaceAllStringFunc(flat, func(m string) string {
		groups := re.FindStringSubmatch(m)
		if groups == nil {
			return m
		}

		cleaned := strings.TrimSpace(groups[1])
		// The span usually carries its own outer quotes; drop them so they
		// do not get rewritten into stray single quotes.
		if len(cleaned) >= 2 && strings.HasPrefix(cleaned, `"`) && strings.HasSuffix(cleaned, `"`) {
			cleaned = cleaned[1 : len(cleaned)-1]
		}
		cleaned = strings.ReplaceAll(cleaned, `"`, `'`)

		return `"reason": "` + cleaned + `", ` + "\n        " + `"` + field + `"`
	})
}
