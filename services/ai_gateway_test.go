package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiBody(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + jsonString(text) + `}]}}]}`
}

func jsonString(s string) string {
	out := `"`
	for _, r := range s {
		switch r {
		case '"':
			out += `\"`
		case '\\':
			out += `\\`
		case '\n':
			out += `\n`
		default:
			out += string(r)
		}
	}
	return out + `"`
}

func newTestGemini(url string) *GeminiClient {
	g := NewGeminiClient("test-key", "")
	g.baseURL = url
	return g
}

func TestGeminiCompleteReturnsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(geminiBody("Detected: Toast (120 kcal, 4g protein).")))
	}))
	defer srv.Close()

	text, err := newTestGemini(srv.URL).Complete(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Equal(t, "Detected: Toast (120 kcal, 4g protein).", text)
}

func TestGeminiCompleteEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	text, err := newTestGemini(srv.URL).Complete(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestGeminiRetriesServerErrors(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(geminiBody("recovered")))
	}))
	defer srv.Close()

	text, err := newTestGemini(srv.URL).Complete(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestGeminiRetryBudgetExhausted(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestGemini(srv.URL).Complete(context.Background(), "analyze")
	require.Error(t, err)
	// initial attempt plus two retries
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestGeminiClientErrorsAreNotRetried(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestGemini(srv.URL).Complete(context.Background(), "analyze")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}
