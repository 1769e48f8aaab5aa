// Package mockdesk is an in-memory stand-in for the TOPdesk persons API. It
// backs the client tests and the mock command of the CLI.
package mockdesk

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/agentstation/utc"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/agentstation/personsync/pkg/constants"
	"github.com/agentstation/personsync/pkg/topdesk"
)

// MaxCreateBody is the largest creation request body accepted.
const MaxCreateBody = 1 << 20

// Route names a remote operation for status overrides.
type Route string

const (
	// RouteProbe is the existence probe.
	RouteProbe Route = "probe"
	// RouteCreate is person creation.
	RouteCreate Route = "create"
)

// Call records a request made to the mock service.
type Call struct {
	Route      Route
	Method     string
	Path       string
	LoginName  string
	Authorized bool
	Body       []byte
}

// Record is a stored person.
type Record struct {
	ID string `json:"id"`
	topdesk.Person
	CreationDate utc.Time `json:"creationDate"`
}

// Server implements the persons surface used by personsync.
type Server struct {
	username string
	password string

	mu        sync.Mutex
	calls     []Call
	persons   map[string]Record
	overrides map[Route]int
}

// New constructs a mock server. An empty username disables authentication.
func New(username, password string) *Server {
	return &Server{
		username:  username,
		password:  password,
		persons:   make(map[string]Record),
		overrides: make(map[Route]int),
	}
}

// Handler returns an http.Handler that serves the mock API at the root.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc(constants.PersonsPath+"/", s.handleProbe).Methods(http.MethodHead, http.MethodGet)
	r.HandleFunc(constants.PersonsPath, s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc(constants.PersonsPath+"/id/{id}", s.handleGet).Methods(http.MethodGet)
	return r
}

// ForceStatus makes every following call to route answer status without
// touching the store. A zero status removes the override.
func (s *Server) ForceStatus(route Route, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.overrides, route)
		return
	}
	s.overrides[route] = status
}

// Seed stores person as already existing and returns its record.
func (s *Server) Seed(person topdesk.Person) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store(person)
}

// Calls returns a snapshot of calls made to the server.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallsTo returns the recorded calls of route.
func (s *Server) CallsTo(route Route) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Route == route {
			out = append(out, c)
		}
	}
	return out
}

// Persons returns a snapshot of stored persons keyed by login name.
func (s *Server) Persons() map[string]Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Record, len(s.persons))
	for k, v := range s.persons {
		out[k] = v
	}
	return out
}

// Person returns the stored person with login name loginName.
func (s *Server) Person(loginName string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.persons[loginName]
	return rec, ok
}

func (s *Server) store(person topdesk.Person) Record {
	rec := Record{
		ID:           uuid.NewString(),
		Person:       person,
		CreationDate: utc.Now(),
	}
	s.persons[person.TasLoginName] = rec
	return rec
}

func (s *Server) record(route Route, r *http.Request, body []byte) (authorized bool, override int) {
	authorized = s.authorized(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{
		Route:      route,
		Method:     r.Method,
		Path:       r.URL.Path,
		LoginName:  r.URL.Query().Get(constants.LoginNameQueryParam),
		Authorized: authorized,
		Body:       body,
	})
	return authorized, s.overrides[route]
}

func (s *Server) authorized(r *http.Request) bool {
	if s.username == "" {
		return true
	}
	user, pass, ok := r.BasicAuth()
	return ok && user == s.username && pass == s.password
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	authorized, override := s.record(RouteProbe, r, nil)
	if !authorized {
		unauthorized(w)
		return
	}
	if override != 0 {
		w.WriteHeader(override)
		return
	}

	loginName := r.URL.Query().Get(constants.LoginNameQueryParam)
	if loginName == "" {
		writeError(w, http.StatusBadRequest, "missing "+constants.LoginNameQueryParam)
		return
	}

	rec, ok := s.Person(loginName)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, []Record{rec})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, readErr := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxCreateBody))

	authorized, override := s.record(RouteCreate, r, body)
	if !authorized {
		unauthorized(w)
		return
	}
	if override != 0 {
		writeError(w, override, "forced status")
		return
	}
	if readErr != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(readErr, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "reading request body: "+readErr.Error())
		return
	}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), constants.ContentTypeJSON) {
		writeError(w, http.StatusUnsupportedMediaType, "expected "+constants.ContentTypeJSON)
		return
	}

	var person topdesk.Person
	if err := json.Unmarshal(body, &person); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validate(person); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	s.mu.Lock()
	if _, exists := s.persons[person.TasLoginName]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "login name already in use")
		return
	}
	rec := s.store(person)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	authorized, _ := s.record(Route("get"), r, nil)
	if !authorized {
		unauthorized(w)
		return
	}

	id := mux.Vars(r)["id"]
	for _, rec := range s.Persons() {
		if rec.ID == id {
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeError(w, http.StatusNotFound, "person not found")
}

// validate applies the field limits of the remote schema.
func validate(p topdesk.Person) string {
	limits := []struct {
		name  string
		value string
		max   int
	}{
		{"surName", p.SurName, constants.MaxSurnameLength},
		{"firstName", p.FirstName, constants.MaxFirstNameLength},
		{"email", p.Email, constants.MaxEmailLength},
		{"tasLoginName", p.TasLoginName, constants.MaxLoginNameLength},
		{"optionalFields1.text1", p.OptionalFields1.Text1, constants.MaxDisplayNameLength},
	}
	for _, l := range limits {
		if len(l.value) > l.max {
			return l.name + " exceeds maximum length"
		}
		if !utf8.ValidString(l.value) {
			return l.name + " is not valid UTF-8"
		}
	}
	switch {
	case p.SurName == "":
		return "surName is required"
	case p.TasLoginName == "":
		return "tasLoginName is required"
	case p.Branch.ID == "":
		return "branch.id is required"
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="mockdesk"`)
	writeError(w, http.StatusUnauthorized, "unauthorized")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", constants.ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, []map[string]string{{"message": message}})
}
