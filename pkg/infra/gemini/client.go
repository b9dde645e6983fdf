package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kforge/pkg/domain/interfaces"
	"github.com/m-mizutani/kforge/pkg/domain/types"
)

// DefaultEndpoint is the public generative-language API base URL
const DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// Fixed sampling parameters sent with every generation request
const (
	temperature     = 0.7
	topK            = 40
	topP            = 0.95
	maxOutputTokens = 8192
)

type client struct {
	httpClient *http.Client
	endpoint   string
	model      string
	apiKey     string
}

// New creates a client for the generative-language REST endpoint. The API
// key is passed as a query parameter on each request, per the upstream
// API contract.
func New(endpoint, model, apiKey string, timeout time.Duration) interfaces.GenAIClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		model:      model,
		apiKey:     apiKey,
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends the prompt and extracts the first text completion
// from the response envelope. A single attempt; failures are not retried.
func (c *client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			TopK:            topK,
			TopP:            topP,
			MaxOutputTokens: maxOutputTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal generation request", goerr.T(types.TagUpstream))
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent?%s",
		c.endpoint, c.model, url.Values{"key": {c.apiKey}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create generation request", goerr.T(types.TagUpstream))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to call generative language API", goerr.T(types.TagUpstream))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read generation response", goerr.T(types.TagUpstream))
	}

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("unexpected status from generative language API",
			goerr.T(types.TagUpstream),
			goerr.V("status", resp.StatusCode),
			goerr.V("model", c.model),
		)
	}

	var envelope generateResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", goerr.Wrap(err, "failed to parse generation response envelope", goerr.T(types.TagUpstream))
	}

	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return "", goerr.New("generation response has no candidates", goerr.T(types.TagUpstream))
	}

	return envelope.Candidates[0].Content.Parts[0].Text, nil
}
