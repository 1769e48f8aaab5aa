package attributes_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/personsync/pkg/attributes"
	"github.com/agentstation/personsync/pkg/errors"
)

func TestSetAccessors(t *testing.T) {
	set := attributes.Set{
		"mail":        {"jane@example.com"},
		"eduPersonAf": {"member", "staff"},
		"empty":       {},
	}

	assert.Equal(t, []string{"eduPersonAf", "empty", "mail"}, set.Names())

	v, ok := set.Single("mail")
	assert.True(t, ok)
	assert.Equal(t, "jane@example.com", v)

	_, ok = set.Single("eduPersonAf")
	assert.False(t, ok)
	_, ok = set.Single("empty")
	assert.False(t, ok)
	_, ok = set.Single("missing")
	assert.False(t, ok)
}

func TestRequireSingle(t *testing.T) {
	tests := []struct {
		name    string
		set     attributes.Set
		min     int
		max     int
		want    string
		wantErr string
	}{
		{name: "valid", set: attributes.Set{"mail": {"a@b"}}, min: 3, max: 100, want: "a@b"},
		{name: "missing", set: attributes.Set{}, min: 3, max: 100, wantErr: "attribute is missing"},
		{name: "no values", set: attributes.Set{"mail": {}}, min: 3, max: 100, wantErr: "got 0"},
		{name: "two values", set: attributes.Set{"mail": {"a@b.c", "d@e.f"}}, min: 3, max: 100, wantErr: "got 2"},
		{name: "empty", set: attributes.Set{"mail": {""}}, min: 3, max: 100, wantErr: "value is empty"},
		{name: "too short", set: attributes.Set{"mail": {"ab"}}, min: 3, max: 100, wantErr: "shorter than 3"},
		{name: "too long", set: attributes.Set{"mail": {strings.Repeat("a", 101)}}, min: 3, max: 100, wantErr: "longer than 100"},
		{name: "exactly max", set: attributes.Set{"mail": {strings.Repeat("a", 100)}}, min: 3, max: 100, want: strings.Repeat("a", 100)},
		{name: "counts characters not bytes", set: attributes.Set{"mail": {strings.Repeat("é", 100)}}, min: 3, max: 100, want: strings.Repeat("é", 100)},
		{name: "no upper bound", set: attributes.Set{"sn": {strings.Repeat("x", 500)}}, min: 1, max: 0, want: strings.Repeat("x", 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := "mail"
			if _, ok := tt.set["sn"]; ok {
				name = "sn"
			}
			got, err := tt.set.RequireSingle(name, tt.min, tt.max)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Contains(t, err.Error(), name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
