// Package config loads and validates the settings of a provisioning step.
//
// Two surfaces are supported: FromMap takes the option map an authentication
// pipeline hands to its filters, and Load reads a config file, .env files and
// the environment through viper for the CLI. Both apply the same rules.
package config

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/personsync/pkg/constants"
	"github.com/agentstation/personsync/pkg/errors"
)

// Option names recognized in a settings map.
const (
	KeyBaseURL     = "baseURL"
	KeyUsername    = "username"
	KeyPassword    = "password"
	KeyBranchID    = "branchId"
	KeyTimeout     = "timeout"
	KeyProbeMethod = "probeMethod"
)

const component = "personsync"

// requiredKeys lists the mandatory string options in reporting order.
var requiredKeys = []string{KeyBaseURL, KeyUsername, KeyPassword, KeyBranchID}

// Config is the immutable configuration of a provisioning step.
type Config struct {
	BaseURL  string
	Username string
	Password string
	BranchID string

	// Timeout bounds each remote call. Zero keeps the transport default.
	Timeout time.Duration

	// ProbeMethod is the HTTP method of the existence probe, HEAD or GET.
	ProbeMethod string
}

// FromMap builds a Config from a pipeline settings map. Every required key
// that is absent or not a string is reported in a single *errors.ConfigError.
func FromMap(settings map[string]any) (Config, error) {
	var (
		cfg     Config
		invalid []string
	)

	values := make(map[string]string, len(requiredKeys))
	for _, key := range requiredKeys {
		s, ok := settings[key].(string)
		if !ok {
			invalid = append(invalid, key)
			continue
		}
		values[key] = s
	}
	if len(invalid) > 0 {
		return Config{}, &errors.ConfigError{
			Component: component,
			Keys:      invalid,
			Message:   "a string value must be given for: " + strings.Join(invalid, ","),
		}
	}

	cfg.BaseURL = values[KeyBaseURL]
	cfg.Username = values[KeyUsername]
	cfg.Password = values[KeyPassword]
	cfg.BranchID = values[KeyBranchID]

	timeout, err := parseTimeout(settings[KeyTimeout])
	if err != nil {
		return Config{}, err
	}
	cfg.Timeout = timeout

	if raw, ok := settings[KeyProbeMethod]; ok && raw != nil {
		method, ok := raw.(string)
		if !ok {
			return Config{}, &errors.ConfigError{
				Component: component,
				Keys:      []string{KeyProbeMethod},
				Message:   "probeMethod must be a string",
			}
		}
		cfg.ProbeMethod = method
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that are well typed but unusable and fills defaults.
func (c *Config) Validate() error {
	var missing []string
	for i, value := range []string{c.BaseURL, c.Username, c.Password, c.BranchID} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, requiredKeys[i])
		}
	}
	if len(missing) > 0 {
		return &errors.ConfigError{
			Component: component,
			Keys:      missing,
			Message:   "a non-empty value must be given for: " + strings.Join(missing, ","),
		}
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return &errors.ConfigError{
			Component: component,
			Keys:      []string{KeyBaseURL},
			Message:   "baseURL is not a valid URL",
			Err:       err,
		}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &errors.ConfigError{
			Component: component,
			Keys:      []string{KeyBaseURL},
			Message:   fmt.Sprintf("baseURL must be an absolute http(s) URL, got %q", c.BaseURL),
		}
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.Timeout < 0 {
		return &errors.ConfigError{
			Component: component,
			Keys:      []string{KeyTimeout},
			Message:   "timeout must not be negative",
		}
	}

	switch strings.ToUpper(c.ProbeMethod) {
	case "":
		c.ProbeMethod = http.MethodHead
	case http.MethodHead, http.MethodGet:
		c.ProbeMethod = strings.ToUpper(c.ProbeMethod)
	default:
		return &errors.ConfigError{
			Component: component,
			Keys:      []string{KeyProbeMethod},
			Message:   fmt.Sprintf("probeMethod must be HEAD or GET, got %q", c.ProbeMethod),
		}
	}
	return nil
}

// Redacted returns a copy safe to log or print.
func (c Config) Redacted() Config {
	if c.Password != "" {
		c.Password = "***"
	}
	return c
}

// parseTimeout accepts a duration string, a number of seconds or a time.Duration.
func parseTimeout(raw any) (time.Duration, error) {
	switch v := raw.(type) {
	case nil:
		return constants.DefaultHTTPTimeout, nil
	case time.Duration:
		return v, nil
	case int:
		return time.Duration(v) * time.Second, nil
	case int64:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	case string:
		if v == "" {
			return constants.DefaultHTTPTimeout, nil
		}
		if secs, err := strconv.ParseFloat(v, 64); err == nil {
			return time.Duration(secs * float64(time.Second)), nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, &errors.ConfigError{
				Component: component,
				Keys:      []string{KeyTimeout},
				Message:   fmt.Sprintf("timeout %q is not a duration", v),
				Err:       err,
			}
		}
		return d, nil
	default:
		return 0, &errors.ConfigError{
			Component: component,
			Keys:      []string{KeyTimeout},
			Message:   fmt.Sprintf("timeout has unsupported type %T", raw),
		}
	}
}
