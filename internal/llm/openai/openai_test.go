package openai

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
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])

		w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "  72  "}}]
		}`))
	}))
	defer srv.Close()

	p := New("sk-test", "gpt-4o-mini", 256, 0.2, WithEndpoint(srv.URL))

	out, err := p.Generate(context.Background(), "rate this")
	require.NoError(t, err)
	assert.Equal(t, "72", out)
}

func TestGenerateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	p := New("sk-test", "gpt-4o-mini", 256, 0.2, WithEndpoint(srv.URL))

	_, err := p.Generate(context.Background(), "rate this")
	require.Error(t, err)
}

func TestGenerateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "invalid key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := New("sk-bad", "gpt-4o-mini", 256, 0.2, WithEndpoint(srv.URL))

	_, err := p.Generate(context.Background(), "rate this")
	require.Error(t, err)
}
