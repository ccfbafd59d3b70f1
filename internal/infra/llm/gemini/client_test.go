package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", "", "gemini-2.5-flash")
	require.Error(t, err)

	_, err = NewClient("key", "", "  ")
	require.Error(t, err)

	client, err := NewClient("key", "", "gemini-2.5-flash")
	require.NoError(t, err)
	require.Equal(t, defaultBaseURL, client.baseURL)
}

func TestGenerateContentSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody GenerateContentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello "},{"text":"farmer"}]}}]}`))
	}))
	defer server.Close()

	client, err := NewClient("secret", server.URL, "gemini-2.5-flash")
	require.NoError(t, err)

	resp, err := client.GenerateContent(context.Background(), GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: "hi"}}}},
		GenerationConfig: &GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   &Schema{Type: TypeObject},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "hello farmer", resp.Text())

	require.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	require.Equal(t, "secret", gotKey)
	require.NotNil(t, gotBody.GenerationConfig)
	require.Equal(t, "application/json", gotBody.GenerationConfig.ResponseMIMEType)
}

func TestGenerateContentErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	client, err := NewClient("secret", server.URL, "gemini-2.5-flash")
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(), GenerateContentRequest{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateContentBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient("secret", server.URL, "gemini-2.5-flash")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err = client.GenerateContent(context.Background(), GenerateContentRequest{})
		require.Error(t, err)
	}

	_, err = client.GenerateContent(context.Background(), GenerateContentRequest{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "temporarily unavailable")
}

func TestResponseTextEmpty(t *testing.T) {
	require.Empty(t, GenerateContentResponse{}.Text())
}
