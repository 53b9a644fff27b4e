package services

import (
	"regexp"
	"strings"
)

// Name and phone acceptance rules. A full name is two to five latin
// words (first, up to three middle, last); a phone number is 7 to 12
// digits with optional leading plus, area-code parentheses and
// space/dot/dash separators.
var (
	namePattern  = regexp.MustCompile(`^[A-Za-z\-']{2,20}(\s[A-Za-z]{1,20}){0,3}\s[A-Za-z]{2,20}$`)
	phonePattern = regexp.MustCompile(`^\+?\(?\d{2,4}\)?[\s.-]?\d{3,4}[\s.-]?\d{3,4}$`)

	whitespaceRun = regexp.MustCompile(`\s+`)
	nonDigit      = regexp.MustCompile(`\D`)
)

// NormalizeFullName lowercases the name and collapses internal
// whitespace. It returns the empty string when fewer than two words
// remain, so the result is either canonical or unusable.
func NormalizeFullName(name string) string {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return ""
	}
	words := whitespaceRun.Split(trimmed, -1)
	if len(words) < 2 {
		return ""
	}
	return strings.Join(words, " ")
}

// NormalizePhone strips every non-digit character, leaving the bare
// digit string that gets persisted.
func NormalizePhone(phone string) string {
	return nonDigit.ReplaceAllString(phone, "")
}

// ValidFullName reports whether a normalized name matches the
// acceptance pattern.
func ValidFullName(name string) bool {
	return name != "" && namePattern.MatchString(name)
}

// ValidPhone reports whether the raw input looks like a phone number.
// Validation runs on the raw form so separator abuse is rejected even
// though only digits are stored.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}
