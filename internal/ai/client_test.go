package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/mrlokans/studyhub/internal/config"
	"github.com/mrlokans/studyhub/internal/logging"
)

type capturedRequest struct {
	Path string
	Body map[string]any
}

func newGeminiServer(t *testing.T, reply string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if captured != nil {
			captured.Path = r.URL.Path
			_ = json.Unmarshal(raw, &captured.Body)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": reply}},
					},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) config.AI {
	return config.AI{
		APIKey:        "test-key",
		BaseURL:       baseURL,
		TutorModel:    "tutor-model",
		QuestionModel: "question-model",
		Timeout:       5 * time.Second,
	}
}

func TestClient_Generate(t *testing.T) {
	var captured capturedRequest
	srv := newGeminiServer(t, "Hello, what shall we study?", &captured)
	client := NewClient(testConfig(srv.URL), logging.Discard())

	text, err := client.Generate(context.Background(), "prompt body")

	require.NoError(t, err)
	assert.Equal(t, "Hello, what shall we study?", text)
	assert.True(t, strings.Contains(captured.Path, "tutor-model"), captured.Path)

	raw, err := json.Marshal(captured.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "prompt body")
}

func TestClient_GenerateJSON(t *testing.T) {
	var captured capturedRequest
	srv := newGeminiServer(t, `{"questions":[]}`, &captured)
	client := NewClient(testConfig(srv.URL), logging.Discard())

	schema := &genai.Schema{Type: genai.TypeObject}
	text, err := client.GenerateJSON(context.Background(), "make questions", schema)

	require.NoError(t, err)
	assert.JSONEq(t, `{"questions":[]}`, text)
	assert.True(t, strings.Contains(captured.Path, "question-model"), captured.Path)

	gc, ok := captured.Body["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing from request")
	assert.Equal(t, "application/json", gc["responseMimeType"])
	assert.InDelta(t, 0.3, gc["temperature"], 0.0001)
}

func TestClient_EmptyResponse(t *testing.T) {
	srv := newGeminiServer(t, "", nil)
	client := NewClient(testConfig(srv.URL), logging.Discard())

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestClient_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":401,"message":"API key not valid","status":"UNAUTHENTICATED"}}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), logging.Discard())
	_, err := client.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}
