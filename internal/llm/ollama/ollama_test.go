package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "phi3", body["model"])
		assert.Equal(t, false, body["stream"])

		w.Write([]byte(`{"model": "phi3", "response": "The outlook is steady.\n", "done": true}`))
	}))
	defer srv.Close()

	p := New(srv.URL, "phi3")

	out, err := p.Generate(context.Background(), "summarize")
	require.NoError(t, err)
	assert.Equal(t, "The outlook is steady.", out)
}

func TestGenerateEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"model": "phi3", "response": "", "done": true}`))
	}))
	defer srv.Close()

	p := New(srv.URL, "phi3")

	_, err := p.Generate(context.Background(), "summarize")
	require.Error(t, err)
}

func TestGenerateServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := New(srv.URL, "phi3")

	_, err := p.Generate(context.Background(), "summarize")
	require.Error(t, err)
}
