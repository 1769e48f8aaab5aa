// Package topdesk is a client for the persons endpoint of a TOPdesk
// installation. It knows two calls: an existence probe keyed on the login
// name and the creation of a person.
package topdesk

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/agentstation/personsync/internal/transport"
	"github.com/agentstation/personsync/pkg/config"
	"github.com/agentstation/personsync/pkg/constants"
	"github.com/agentstation/personsync/pkg/errors"
	"github.com/agentstation/personsync/pkg/logging"
)

const (
	opProbe  = "probe"
	opCreate = "create person"
)

// Client talks to the persons endpoint. It holds no mutable state and is
// safe for concurrent use.
type Client struct {
	transport   *transport.Client
	requests    *transport.RequestBuilder
	probeMethod string
	httpClient  *http.Client
	logger      *zerolog.Logger
}

// NewClient creates a client for cfg. cfg is expected to have passed
// config.Validate.
func NewClient(cfg config.Config, opts ...Option) *Client {
	c := &Client{
		requests:    transport.NewRequestBuilder(cfg.BaseURL),
		probeMethod: cfg.ProbeMethod,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.probeMethod == "" {
		c.probeMethod = http.MethodHead
	}

	auth := &transport.BasicAuth{Username: cfg.Username, Password: cfg.Password}
	if c.httpClient != nil {
		c.transport = transport.NewWithHTTPClient(c.httpClient, auth)
	} else {
		c.transport = transport.New(auth, cfg.Timeout)
	}
	return c
}

// ProbeURL returns the probe address for email.
func (c *Client) ProbeURL(email string) string {
	return c.requests.URL(constants.PersonsPath+"/", constants.LoginNameQueryParam, email)
}

// CreateURL returns the creation address.
func (c *Client) CreateURL() string {
	return c.requests.URL(constants.PersonsPath)
}

// ProbeExists asks whether a person with login name email exists. The
// response body is never read. Any status other than 200 or 204 yields
// Indeterminate with a RemoteError, a failed exchange Indeterminate with a
// TransportError.
func (c *Client) ProbeExists(ctx context.Context, email string) (LookupOutcome, error) {
	logger := c.log(ctx, opProbe, email)
	endpoint := c.ProbeURL(email)

	req, err := transport.NewRequest(ctx, c.probeMethod, endpoint, nil)
	if err != nil {
		return Indeterminate, err
	}

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		terr := errors.NewTransportError(opProbe, endpoint, email, err)
		logger.Error().Err(err).Str("status", errors.StatusNone).Msg("person probe failed")
		return Indeterminate, terr
	}
	defer transport.Discard(resp)

	logger.Debug().Int("status", resp.StatusCode).Msg("person probe response")

	switch resp.StatusCode {
	case http.StatusOK:
		return Exists, nil
	case http.StatusNoContent:
		return Absent, nil
	default:
		logger.Error().Int("status", resp.StatusCode).Msg("unexpected person probe status")
		return Indeterminate, errors.NewRemoteError(opProbe, endpoint, email, resp.StatusCode, "")
	}
}

// CreatePerson posts person as JSON. Only 201 counts as success; any other
// status, 200 included, is a RemoteError carrying the response body.
func (c *Client) CreatePerson(ctx context.Context, person Person) (CreateResult, error) {
	logger := c.log(ctx, opCreate, person.Email)
	endpoint := c.CreateURL()

	req, err := transport.NewJSONRequest(ctx, http.MethodPost, endpoint, person)
	if err != nil {
		return CreateResult{}, err
	}

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		logger.Error().Err(err).Str("status", errors.StatusNone).Msg("person creation failed")
		return CreateResult{}, errors.NewTransportError(opCreate, endpoint, person.Email, err)
	}

	body, readErr := transport.ReadBody(resp)
	result := CreateResult{StatusCode: resp.StatusCode, Body: string(body)}

	logger.Debug().
		Int("status", result.StatusCode).
		Str("body", result.Body).
		Msg("person creation response")

	if result.StatusCode != http.StatusCreated {
		logger.Error().
			Int("status", result.StatusCode).
			Str("body", result.Body).
			Msg("unexpected person creation status")
		return result, errors.NewRemoteError(opCreate, endpoint, person.Email, result.StatusCode, result.Body)
	}
	if readErr != nil {
		// the person exists remotely, only the diagnostic body was lost
		logger.Warn().Err(readErr).Msg("reading person creation body")
	}

	return result, nil
}

// log returns the logger for one call, tagged with op and email. The email
// is added only when the context does not already carry it.
func (c *Client) log(ctx context.Context, op, email string) *zerolog.Logger {
	if c.logger != nil {
		ctx = logging.WithSubject(logging.WithLogger(ctx, c.logger), email)
	} else if logging.Subject(ctx) != email {
		ctx = logging.WithSubject(ctx, email)
	}
	return logging.FromContext(logging.WithOperation(ctx, op))
}
