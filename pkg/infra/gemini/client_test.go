package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kforge/pkg/domain/types"
	"github.com/m-mizutani/kforge/pkg/infra/gemini"
)

func TestGenerateContent(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"generated suite"}]}}]}`))
	}))
	defer ts.Close()

	client := gemini.New(ts.URL, "gemini-2.5-flash", "test-key", 5*time.Second)

	text, err := client.GenerateContent(context.Background(), "convert this collection")
	gt.NoError(t, err)
	gt.V(t, text).Equal("generated suite")

	gt.V(t, gotPath).Equal("/models/gemini-2.5-flash:generateContent")
	gt.V(t, gotKey).Equal("test-key")

	// Payload carries the prompt and fixed sampling parameters
	contents := gotBody["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	gt.V(t, parts[0].(map[string]any)["text"].(string)).Equal("convert this collection")

	genCfg := gotBody["generationConfig"].(map[string]any)
	gt.V(t, genCfg["temperature"].(float64)).Equal(0.7)
	gt.V(t, genCfg["topK"].(float64)).Equal(40)
	gt.V(t, genCfg["topP"].(float64)).Equal(0.95)
	gt.V(t, genCfg["maxOutputTokens"].(float64)).Equal(8192)
}

func TestGenerateContent_Non200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := gemini.New(ts.URL, "gemini-2.5-flash", "test-key", 5*time.Second)

	_, err := client.GenerateContent(context.Background(), "prompt")
	gt.Error(t, err)
	gt.V(t, goerr.HasTag(err, types.TagUpstream)).Equal(true)
}

func TestGenerateContent_MalformedEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Not JSON", `<html>gateway error</html>`},
		{"No candidates", `{"candidates":[]}`},
		{"Candidate without parts", `{"candidates":[{"content":{"parts":[]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			client := gemini.New(ts.URL, "gemini-2.5-flash", "test-key", 5*time.Second)

			_, err := client.GenerateContent(context.Background(), "prompt")
			gt.Error(t, err)
			gt.V(t, goerr.HasTag(err, types.TagUpstream)).Equal(true)
		})
	}
}

func TestGenerateContent_ConnectionRefused(t *testing.T) {
	// Server closed before the call: transport failure, not retried
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := gemini.New(ts.URL, "gemini-2.5-flash", "test-key", time.Second)

	_, err := client.GenerateContent(context.Background(), "prompt")
	gt.Error(t, err)
	gt.V(t, goerr.HasTag(err, types.TagUpstream)).Equal(true)
}
