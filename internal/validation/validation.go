// Package validation holds the field syntax rules for student records.
// These rules are a contract of the persisted data: a record violating them
// must never reach the store.
package validation

import (
	"regexp"
	"strings"
)

var (
	namePattern       = regexp.MustCompile(`^[A-Za-z\s]{3,50}$`)
	idPattern         = regexp.MustCompile(`^\d{12}$`)
	majorPattern      = regexp.MustCompile(`^[A-Za-z\s]{3,50}$`)
	hobbyPattern      = regexp.MustCompile(`^[A-Za-z0-9\s]{3,30}$`)
	aspirationPattern = regexp.MustCompile(`^[A-Za-z\s]{3,50}$`)
)

// Per-field failure messages, joined by ValidateAll in field order.
const (
	msgName       = "Name must be 3-50 letters/spaces."
	msgID         = "ID must be exactly 12 digits."
	msgMajor      = "Major must be 3-50 letters/spaces."
	msgHobby      = "Hobby must be 3-30 letters/digits/spaces."
	msgAspiration = "Aspiration must be 3-50 letters/spaces."
)

// ValidateID reports whether id, after trimming, is exactly 12 decimal digits.
func ValidateID(id string) bool {
	return idPattern.MatchString(strings.TrimSpace(id))
}

// ValidateAll checks all five fields (trimmed) and collects every failing
// field's message in fixed order: name, id, major, hobby, aspiration.
// It returns (false, messages joined with newlines) when any check fails,
// otherwise (true, "").
func ValidateAll(name, id, major, hobby, aspiration string) (bool, string) {
	var errs []string
	if !namePattern.MatchString(strings.TrimSpace(name)) {
		errs = append(errs, msgName)
	}
	if !ValidateID(id) {
		errs = append(errs, msgID)
	}
	if !majorPattern.MatchString(strings.TrimSpace(major)) {
		errs = append(errs, msgMajor)
	}
	if !hobbyPattern.MatchString(strings.TrimSpace(hobby)) {
		errs = append(errs, msgHobby)
	}
	if !aspirationPattern.MatchString(strings.TrimSpace(aspiration)) {
		errs = append(errs, msgAspiration)
	}
	if len(errs) > 0 {
		return false, strings.Join(errs, "\n")
	}
	return true, ""
}
