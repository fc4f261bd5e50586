// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package extract

import "regexp"

// phonePatterns are tried in order; the first match from any pattern
// wins (R2.5): plain digits with optional dot or dash separators, a
// parenthesized area code, then an international prefix form.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
	regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.]?\d{4}`),
	regexp.MustCompile(`\+\d{1,3}\s*\d{3}[-.]?\d{3}[-.]?\d{4}`),
}

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

// extractPhone returns the first phone-like token in text, or "".
func extractPhone(text string) string {
	for _, pattern := range phonePatterns {
		if m := pattern.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// extractEmail returns the first email-like token in text, or "".
func extractEmail(text string) string {
	return emailPattern.FindString(text)
}
