package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/personsync/pkg/attributes"
	"github.com/agentstation/personsync/pkg/errors"
)

// LoadAttributes reads an attribute file. JSON is accepted as YAML.
func LoadAttributes(path string) (attributes.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return ParseAttributes(data, path)
}

// ParseAttributes decodes a mapping of attribute names to a scalar or a list
// of scalars. A null value yields an attribute without values.
func ParseAttributes(data []byte, source string) (attributes.Set, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewParseError("yaml", source, "invalid attribute file", err)
	}

	set := make(attributes.Set, len(raw))
	for name, value := range raw {
		values, err := toValues(value)
		if err != nil {
			return nil, errors.NewParseError("yaml", source, fmt.Sprintf("attribute %q: %v", name, err), err)
		}
		set[name] = values
	}
	return set, nil
}

func toValues(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, err := scalar(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := scalar(v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

func scalar(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), nil
	default:
		return "", errors.New("values must be scalars")
	}
}

// ParseAttrFlags adds name=value pairs to set. Repeating a name appends a
// value.
func ParseAttrFlags(set attributes.Set, pairs []string) error {
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return errors.NewValidationError("attr", pair, "expected name=value")
		}
		set[name] = append(set[name], value)
	}
	return nil
}
