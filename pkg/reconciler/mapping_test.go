package reconciler

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/personsync/pkg/attributes"
	"github.com/agentstation/personsync/pkg/topdesk"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		attrs attributes.Set
		want  string
	}{
		{"synthesized", attributes.Set{}, "Jane Doe"},
		{"singleton verbatim", attributes.Set{"displayName": {"J. Doe"}}, "J. Doe"},
		{"singleton empty kept", attributes.Set{"displayName": {""}}, ""},
		{"multiple values ignored", attributes.Set{"displayName": {"A", "B"}}, "Jane Doe"},
		{"no values ignored", attributes.Set{"displayName": {}}, "Jane Doe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.attrs, "Jane", "Doe"))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "Doe", 50, "Doe"},
		{"exact", "abcde", 5, "abcde"},
		{"ascii cut", "abcdef", 4, "abcd"},
		{"zero", "abc", 0, ""},
		{"two byte rune not split", "aé", 2, "a"},
		{"three byte rune not split", "ab€", 4, "ab"},
		{"rune boundary", "ab€", 5, "ab€"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestTruncateNeverSplitsRunes(t *testing.T) {
	s := strings.Repeat("Ä€😀", 40)
	for limit := 0; limit <= len(s); limit++ {
		got := Truncate(s, limit)
		assert.LessOrEqual(t, len(got), limit)
		assert.True(t, utf8.ValidString(got), "limit %d", limit)
		assert.True(t, strings.HasPrefix(s, got))
	}
}

func TestBuildPerson(t *testing.T) {
	attrs := attributes.Set{"displayName": {strings.Repeat("Ä", 60)}}
	p := BuildPerson(attrs, "jane@example.com", "Doe", strings.Repeat("Ö", 20), "b-9")

	assert.Equal(t, "Doe", p.SurName)
	assert.Equal(t, strings.Repeat("Ö", 15), p.FirstName)
	assert.Equal(t, "jane@example.com", p.Email)
	assert.Equal(t, p.Email, p.TasLoginName)
	assert.Equal(t, "b-9", p.Branch.ID)
	assert.Equal(t, strings.Repeat("Ä", 50), p.OptionalFields1.Text1)
}

func TestBuildPersonSynthesizedDisplayName(t *testing.T) {
	got := BuildPerson(attributes.Set{}, "john@example.com", "Smith", "John", "b-1")

	want := topdesk.Person{
		SurName:         "Smith",
		FirstName:       "John",
		Email:           "john@example.com",
		TasLoginName:    "john@example.com",
		Branch:          topdesk.BranchRef{ID: "b-1"},
		OptionalFields1: topdesk.OptionalFields{Text1: "John Smith"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildPerson() mismatch (-want +got):\n%s", diff)
	}
}
