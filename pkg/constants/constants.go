// Package constants provides shared constants used throughout the personsync codebase.
// This includes remote field limits, timeouts, endpoint paths, and file permissions
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the transport timeout used when none is configured.
	// Zero leaves the Go transport default in place.
	DefaultHTTPTimeout time.Duration = 0

	// DefaultCLITimeout is the timeout the CLI applies to each remote call
	DefaultCLITimeout = 30 * time.Second

	// ShutdownTimeout bounds graceful shutdown of the mock server
	ShutdownTimeout = 5 * time.Second

	// ReadHeaderTimeout is the header read timeout of the mock server
	ReadHeaderTimeout = 10 * time.Second
)

// Person field limits, in bytes, imposed by the remote persons schema
const (
	// MaxSurnameLength is the limit of the surName field
	MaxSurnameLength = 50

	// MaxFirstNameLength is the limit of the firstName field
	MaxFirstNameLength = 30

	// MaxEmailLength is the limit of the email field
	MaxEmailLength = 100

	// MaxLoginNameLength is the limit of the tasLoginName field
	MaxLoginNameLength = 100

	// MaxDisplayNameLength is the limit of optionalFields1.text1
	MaxDisplayNameLength = 100
)

// Mail attribute bounds, in characters
const (
	// MinMailLength is the shortest accepted mail value
	MinMailLength = 3

	// MaxMailLength is the longest accepted mail value
	MaxMailLength = 100
)

// Attribute names read from the authentication event
const (
	AttrMail        = "mail"
	AttrSurname     = "sn"
	AttrGivenName   = "givenName"
	AttrDisplayName = "displayName"
)

// Remote API paths and parameters
const (
	// PersonsPath is the persons collection, relative to the base URL
	PersonsPath = "/persons"

	// LoginNameQueryParam is the query parameter carrying the email on the probe
	LoginNameQueryParam = "ssp_login_name"

	// ContentTypeJSON is the content type of the creation body
	ContentTypeJSON = "application/json"
)

// Stat marker names emitted for operational dashboards
const (
	StatUserExists       = "user exists"
	StatUserDoesNotExist = "user does not exist"
	StatCreatingUser     = "creating user"
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Environment and file names
const (
	// EnvPrefix is the prefix of environment variables read by the CLI
	EnvPrefix = "PERSONSYNC"

	// DefaultConfigName is the config file name searched for without extension
	DefaultConfigName = ".personsync"
)
