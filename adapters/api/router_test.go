package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"reglookup/app"
	"reglookup/domain/lookup"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSource struct {
	table lookup.Table
	err   error
	calls int
}

func (s *stubSource) Fetch(ctx context.Context) (lookup.Table, error) {
	s.calls++
	return s.table, s.err
}

func (s *stubSource) Describe() string { return "stub:employees" }

func newTestServer(source *stubSource) *Server {
	return NewServer(app.NewLookupService(source), source)
}

func serve(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

var employees = lookup.Table{
	{"RegNo", "Name", "Department"},
	{"101", "Jane Doe", "Engineering"},
	{"102", "Sam Lee", "Sales"},
	{"A/7", "Slash Key", ""},
}

func TestServer_Lookup(t *testing.T) {
	srv := newTestServer(&stubSource{table: employees})

	tests := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{
			name:   "found",
			path:   "/api/user/102",
			status: http.StatusOK,
			body:   `{"found":true,"data":{"RegNo":"102","Name":"Sam Lee","Department":"Sales"}}`,
		},
		{name: "missing", path: "/api/user/999", status: http.StatusNotFound, body: `{"found":false}`},
		{name: "empty key", path: "/api/user/", status: http.StatusNotFound, body: `{"found":false}`},
		{
			name:   "encoded slash",
			path:   "/api/user/A%2F7",
			status: http.StatusOK,
			body:   `{"found":true,"data":{"RegNo":"A/7","Name":"Slash Key","Department":""}}`,
		},
		{name: "case sensitive", path: "/api/user/a%2F7", status: http.StatusNotFound, body: `{"found":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, srv, tt.path)
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestServer_LookupPreservesFieldOrder(t *testing.T) {
	srv := newTestServer(&stubSource{table: employees})

	rec := serve(t, srv, "/api/user/101")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"found":true,"data":{"RegNo":"101","Name":"Jane Doe","Department":"Engineering"}}`, rec.Body.String())
}

func TestServer_SourceFailure(t *testing.T) {
	source := &stubSource{err: fmt.Errorf("permission denied")}
	srv := newTestServer(source)

	rec := serve(t, srv, "/api/user/101")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t,
		`{"error":"Internal Server Error","detail":"table source stub:employees unavailable: permission denied"}`,
		rec.Body.String())
	assert.Equal(t, 1, source.calls)
}

func TestServer_RequestID(t *testing.T) {
	srv := newTestServer(&stubSource{table: employees})

	rec := serve(t, srv, "/api/user/101")
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/user/101", nil)
	req.Header.Set(RequestIDHeader, "caller-supplied")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "caller-supplied", rec.Header().Get(RequestIDHeader))
}

func TestServer_Health(t *testing.T) {
	source := &stubSource{table: employees}
	srv := newTestServer(source)

	rec := serve(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","source":"stub:employees"}`, rec.Body.String())
	assert.Equal(t, 0, source.calls)
}
