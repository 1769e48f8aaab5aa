package reconciler

import (
	"unicode/utf8"

	"github.com/agentstation/personsync/pkg/attributes"
	"github.com/agentstation/personsync/pkg/constants"
	"github.com/agentstation/personsync/pkg/topdesk"
)

// BuildPerson maps validated attribute values onto the creation payload.
// Over-long values are truncated to the remote field limits.
func BuildPerson(attrs attributes.Set, mail, surname, givenName, branchID string) topdesk.Person {
	return topdesk.Person{
		SurName:      Truncate(surname, constants.MaxSurnameLength),
		FirstName:    Truncate(givenName, constants.MaxFirstNameLength),
		Email:        Truncate(mail, constants.MaxEmailLength),
		TasLoginName: Truncate(mail, constants.MaxLoginNameLength),
		Branch:       topdesk.BranchRef{ID: branchID},
		OptionalFields1: topdesk.OptionalFields{
			Text1: Truncate(DisplayName(attrs, givenName, surname), constants.MaxDisplayNameLength),
		},
	}
}

// DisplayName returns the single displayName value as is, even when empty.
// Otherwise it is synthesized from the given name and surname.
func DisplayName(attrs attributes.Set, givenName, surname string) string {
	if name, ok := attrs.Single(constants.AttrDisplayName); ok {
		return name
	}
	return givenName + " " + surname
}

// Truncate shortens s to at most maxBytes bytes without splitting a UTF-8
// sequence.
func Truncate(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	if maxBytes <= 0 {
		return ""
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
