// Package attributes models the identity claims produced by one login event
// and the cardinality checks applied to them before provisioning.
package attributes

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/agentstation/personsync/pkg/errors"
)

// Set maps an attribute name to its ordered values. A Set is owned by the
// caller; functions in this module only read it.
type Set map[string][]string

// Single returns the value of name when it holds exactly one value.
func (s Set) Single(name string) (string, bool) {
	values, ok := s[name]
	if !ok || len(values) != 1 {
		return "", false
	}
	return values[0], true
}

// Names returns the attribute names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequireSingle returns the sole value of name and checks that it is at
// least minLen characters long. maxLen <= 0 disables the upper bound.
// Any violation is a *errors.ValidationError naming the attribute.
func (s Set) RequireSingle(name string, minLen, maxLen int) (string, error) {
	values, ok := s[name]
	if !ok {
		return "", errors.NewValidationError(name, nil, "attribute is missing")
	}
	if len(values) != 1 {
		return "", errors.NewValidationError(name, values, fmt.Sprintf("expected exactly one value, got %d", len(values)))
	}

	value := values[0]
	n := utf8.RuneCountInString(value)
	if n < minLen {
		if n == 0 {
			return "", errors.NewValidationError(name, value, "value is empty")
		}
		return "", errors.NewValidationError(name, value, fmt.Sprintf("value is shorter than %d characters", minLen))
	}
	if maxLen > 0 && n > maxLen {
		return "", errors.NewValidationError(name, value, fmt.Sprintf("value is longer than %d characters", maxLen))
	}
	return value, nil
}
