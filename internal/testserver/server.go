// Package testserver runs an in-process fake of the Avidbase API for tests.
package testserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/avidbase/avidbase-go/internal/constants"
)

// Behavior controls how the fake answers. The zero value of a status field
// means 200.
type Behavior struct {
	// MachineToken is returned by the token endpoint and required on the
	// user endpoints. Empty means the token response has no Access-Token
	// header.
	MachineToken string
	// APIKey, when set, must match the api_key of token requests; others get 401.
	APIKey      string
	TokenStatus int

	// UserToken is returned by the login endpoint. Empty means no header.
	UserToken   string
	LoginStatus int
	// LoginBody is written as the raw login response body.
	LoginBody string

	ListStatus int
	// ListBody, when set, replaces the JSON encoding of Users.
	ListBody string
	Users    []map[string]interface{}

	SaveStatus int
}

// Request is a request received by the fake.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// JSON decodes the request body into a generic map.
func (r Request) JSON() map[string]interface{} {
	var body map[string]interface{}

	_ = json.Unmarshal(r.Body, &body)

	return body
}

// Server is a fake Avidbase API.
type Server struct {
	*httptest.Server

	mutex    sync.Mutex
	behavior Behavior
	requests []Request
}

// New starts a fake with the given behavior.
func New(behavior Behavior) *Server {
	server := &Server{behavior: behavior}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/account/{account}/token", server.handleToken)
	mux.HandleFunc("POST /v1/auth", server.handleLogin)
	mux.HandleFunc("GET /v1/user", server.handleListUsers)
	mux.HandleFunc("POST /v1/user", server.handleSaveUser)
	mux.HandleFunc("POST /v1/user/{id}", server.handleSaveUser)

	server.Server = httptest.NewServer(server.record(mux))

	return server
}

// Update changes the behavior for subsequent requests.
func (s *Server) Update(fn func(*Behavior)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	fn(&s.behavior)
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return append([]Request(nil), s.requests...)
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	count := 0

	for _, req := range s.Requests() {
		if req.Method == method && req.Path == path {
			count++
		}
	}

	return count
}

// Last returns the most recent request matching method and path.
func (s *Server) Last(method, path string) (Request, bool) {
	requests := s.Requests()

	for i := len(requests) - 1; i >= 0; i-- {
		if requests[i].Method == method && requests[i].Path == path {
			return requests[i], true
		}
	}

	return Request{}, false
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)

		s.mutex.Lock()
		s.requests = append(s.requests, Request{
			Method: request.Method,
			Path:   request.URL.EscapedPath(),
			Header: request.Header.Clone(),
			Body:   body,
		})
		s.mutex.Unlock()

		request.Body = io.NopCloser(bytes.NewReader(body))

		next.ServeHTTP(writer, request)
	})
}

func (s *Server) current() Behavior {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.behavior
}

func (s *Server) handleToken(writer http.ResponseWriter, request *http.Request) {
	behavior := s.current()

	if behavior.APIKey != "" {
		var body struct {
			APIKey string `json:"api_key"`
		}

		_ = json.NewDecoder(request.Body).Decode(&body)

		if body.APIKey != behavior.APIKey {
			writeJSON(writer, http.StatusUnauthorized, map[string]string{"error": "invalid api key"})

			return
		}
	}

	if behavior.MachineToken != "" {
		writer.Header().Set(constants.HeaderAccessToken, behavior.MachineToken)
	}

	writeJSON(writer, statusOr(behavior.TokenStatus), map[string]string{})
}

func (s *Server) handleLogin(writer http.ResponseWriter, request *http.Request) {
	behavior := s.current()

	if behavior.UserToken != "" {
		writer.Header().Set(constants.HeaderAccessToken, behavior.UserToken)
	}

	writer.Header().Set("Content-Type", constants.ContentTypeJSON)
	writer.WriteHeader(statusOr(behavior.LoginStatus))
	_, _ = io.WriteString(writer, behavior.LoginBody)
}

func (s *Server) handleListUsers(writer http.ResponseWriter, request *http.Request) {
	behavior := s.current()

	if !authorized(behavior, request) {
		writeJSON(writer, http.StatusUnauthorized, map[string]string{"error": "invalid access token"})

		return
	}

	if behavior.ListBody != "" {
		writer.Header().Set("Content-Type", constants.ContentTypeJSON)
		writer.WriteHeader(statusOr(behavior.ListStatus))
		_, _ = io.WriteString(writer, behavior.ListBody)

		return
	}

	users := behavior.Users
	if users == nil {
		users = []map[string]interface{}{}
	}

	writeJSON(writer, statusOr(behavior.ListStatus), users)
}

func (s *Server) handleSaveUser(writer http.ResponseWriter, request *http.Request) {
	behavior := s.current()

	if !authorized(behavior, request) {
		writeJSON(writer, http.StatusUnauthorized, map[string]string{"error": "invalid access token"})

		return
	}

	writeJSON(writer, statusOr(behavior.SaveStatus), map[string]string{})
}

func authorized(behavior Behavior, request *http.Request) bool {
	return behavior.MachineToken != "" && request.Header.Get(constants.HeaderAccessToken) == behavior.MachineToken
}

func statusOr(status int) int {
	if status == 0 {
		return http.StatusOK
	}

	return status
}

func writeJSON(writer http.ResponseWriter, status int, body interface{}) {
	writer.Header().Set("Content-Type", constants.ContentTypeJSON)
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(body)
}
