package mockdesk

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/personsync/pkg/logging"
	"github.com/agentstation/personsync/pkg/topdesk"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	desk := New("api", "pw")
	srv := httptest.NewServer(desk.Handler())
	t.Cleanup(srv.Close)
	return desk, srv
}

func do(t *testing.T, method, url, body string, auth bool) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if auth {
		req.SetBasicAuth("api", "pw")
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestProbe(t *testing.T) {
	desk, srv := newTestServer(t)
	desk.Seed(topdesk.Person{SurName: "Doe", TasLoginName: "jane@example.com", Branch: topdesk.BranchRef{ID: "b"}})

	resp := do(t, http.MethodHead, srv.URL+"/persons/?ssp_login_name=jane%40example.com", "", true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodHead, srv.URL+"/persons/?ssp_login_name=nobody%40example.com", "", true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/persons/?ssp_login_name=jane%40example.com", "", true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var found []Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&found))
	require.Len(t, found, 1)
	assert.Equal(t, "Doe", found[0].SurName)

	resp = do(t, http.MethodHead, srv.URL+"/persons/", "", true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	calls := desk.CallsTo(RouteProbe)
	require.Len(t, calls, 4)
	assert.Equal(t, "jane@example.com", calls[0].LoginName)
	assert.True(t, calls[0].Authorized)
}

func TestAuthentication(t *testing.T) {
	desk, srv := newTestServer(t)

	resp := do(t, http.MethodHead, srv.URL+"/persons/?ssp_login_name=a%40b.c", "", false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("WWW-Authenticate"))

	calls := desk.Calls()
	require.Len(t, calls, 1)
	assert.False(t, calls[0].Authorized)
}

func TestNoAuthenticationWhenUsernameEmpty(t *testing.T) {
	srv := httptest.NewServer(New("", "").Handler())
	defer srv.Close()

	resp := do(t, http.MethodHead, srv.URL+"/persons/?ssp_login_name=a%40b.c", "", false)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCreate(t *testing.T) {
	desk, srv := newTestServer(t)
	body := `{"surName":"Doe","firstName":"Jane","email":"jane@example.com","tasLoginName":"jane@example.com","branch":{"id":"b-1"},"optionalFields1":{"text1":"Jane Doe"}}`

	resp := do(t, http.MethodPost, srv.URL+"/persons", body, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var rec Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	_, err := uuid.Parse(rec.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", rec.OptionalFields1.Text1)
	assert.False(t, rec.CreationDate.IsZero())

	stored, ok := desk.Person("jane@example.com")
	require.True(t, ok)
	assert.Equal(t, rec.ID, stored.ID)
	assert.Equal(t, "b-1", stored.Branch.ID)

	resp = do(t, http.MethodGet, srv.URL+"/persons/id/"+rec.ID, "", true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/persons", body, true)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	creates := desk.CallsTo(RouteCreate)
	require.Len(t, creates, 2)
	assert.JSONEq(t, body, string(creates[0].Body))
}

func TestCreateRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing surname", `{"tasLoginName":"a@b.c","branch":{"id":"b"}}`},
		{"missing branch", `{"surName":"Doe","tasLoginName":"a@b.c"}`},
		{"surname too long", `{"surName":"` + strings.Repeat("x", 51) + `","tasLoginName":"a@b.c","branch":{"id":"b"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desk, srv := newTestServer(t)
			resp := do(t, http.MethodPost, srv.URL+"/persons", tt.body, true)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Empty(t, desk.Persons())
		})
	}
}

func TestCreateBodyReadFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   io.Reader
		status int
	}{
		{"too large", strings.NewReader(`{"surName":"` + strings.Repeat("x", MaxCreateBody) + `"}`), http.StatusRequestEntityTooLarge},
		{"cut short", io.MultiReader(strings.NewReader(`{"surName":`), iotest.ErrReader(io.ErrUnexpectedEOF)), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desk := New("api", "pw")
			req := httptest.NewRequest(http.MethodPost, "/persons", tt.body)
			req.SetBasicAuth("api", "pw")
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			desk.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.NotContains(t, rec.Body.String(), "invalid JSON")
			assert.Empty(t, desk.Persons())
			assert.Len(t, desk.CallsTo(RouteCreate), 1)
		})
	}
}

func TestForceStatus(t *testing.T) {
	desk, srv := newTestServer(t)
	desk.ForceStatus(RouteProbe, http.StatusInternalServerError)
	desk.ForceStatus(RouteCreate, http.StatusOK)

	resp := do(t, http.MethodHead, srv.URL+"/persons/?ssp_login_name=a%40b.c", "", true)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/persons", `{"surName":"Doe","tasLoginName":"a@b.c","branch":{"id":"b"}}`, true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, desk.Persons())

	desk.ForceStatus(RouteProbe, 0)
	resp = do(t, http.MethodHead, srv.URL+"/persons/?ssp_login_name=a%40b.c", "", true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestServe(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	desk := New("", "")
	go func() {
		done <- desk.Serve(ctx, listener, logging.NewNopLogger())
	}()

	resp := do(t, http.MethodHead, "http://"+listener.Addr().String()+"/persons/?ssp_login_name=a%40b.c", "", false)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
