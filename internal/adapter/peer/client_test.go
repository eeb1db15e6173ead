package peer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestHello_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [{"id":1},{"id":2}],
			"pagination": {"currentPage":10,"totalItems":42,"totalPages":1,"hasNext":false,"hasPrevious":true,"pageSize":1000}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zaptest.NewLogger(t))

	greeting := c.Hello(context.Background())

	assert.Equal(t, "Hello from demo2! Fetched users from demo1. Total items: 42", greeting)
	assert.Equal(t, "/api/users?page=10&size=1000", gotPath)
}

func TestHello_PeerUnreachable(t *testing.T) {
	// Point at a server that has already been torn down
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, zaptest.NewLogger(t))

	greeting := c.Hello(context.Background())

	assert.Contains(t, greeting, "Hello from demo2! Error fetching users from demo1:")
}

func TestHello_PeerErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zaptest.NewLogger(t))

	greeting := c.Hello(context.Background())

	assert.Contains(t, greeting, "Error fetching users from demo1")
	assert.Contains(t, greeting, "peer returned status 500")
}

func TestHello_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": tru`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zaptest.NewLogger(t))

	greeting := c.Hello(context.Background())

	assert.Contains(t, greeting, "malformed peer response")
}
