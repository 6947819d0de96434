package planner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestGeneration(t *testing.T) {
	t.Run("A 2xx response is success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/generate_plan", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		err := NewClient(srv.URL).RequestGeneration(context.Background(), "user1")
		assert.NoError(t, err)
	})

	t.Run("An error body's message is surfaced verbatim", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "quota exceeded"}`))
		}))
		defer srv.Close()

		err := NewClient(srv.URL).RequestGeneration(context.Background(), "user1")
		assert.Error(t, err)
		assert.Equal(t, "quota exceeded", err.Error())
	})

	t.Run("A bodyless failure falls back to the status code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := NewClient(srv.URL).RequestGeneration(context.Background(), "user1")
		assert.Error(t, err)
		assert.Equal(t, "plan service returned status 503", err.Error())
	})
}
