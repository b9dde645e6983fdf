package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"text/template"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kforge/pkg/domain/interfaces"
	"github.com/m-mizutani/kforge/pkg/domain/model"
)

//go:embed prompts/generate_suite.md
var generatePromptTemplate string

// mode selects the generation strategy once at construction time
type mode int

const (
	modeDegraded mode = iota
	modeConfigured
)

type convertUseCase struct {
	llmClient interfaces.GenAIClient
	tmpl      *template.Template
	mode      mode
}

// NewConvert creates a ConvertUseCase. A nil client selects degraded mode:
// every conversion yields the deterministic fallback bundle without any
// network call.
func NewConvert(llmClient interfaces.GenAIClient) (interfaces.ConvertUseCase, error) {
	tmpl, err := template.New("generate").Parse(generatePromptTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse generation prompt template")
	}

	m := modeConfigured
	if llmClient == nil {
		m = modeDegraded
	}

	return &convertUseCase{
		llmClient: llmClient,
		tmpl:      tmpl,
		mode:      m,
	}, nil
}

// GenerateSuite produces the Karate bundle for a collection. Any problem
// below the HTTP layer of the model call (no JSON in the reply, malformed
// JSON, wrong shape) degrades to the fallback bundle rather than failing
// the conversion.
func (uc *convertUseCase) GenerateSuite(ctx context.Context, col *model.Collection) (*model.Bundle, error) {
	logger := ctxlog.From(ctx)

	if uc.mode == modeDegraded {
		logger.Info("Generating fallback suite (no LLM configured)",
			"collection", col.Name(),
		)
		return model.FallbackBundle(col.Name()), nil
	}

	prompt, err := uc.buildPrompt(col)
	if err != nil {
		return nil, err
	}

	logger.Debug("Calling LLM for suite generation",
		"collection", col.Name(),
		"prompt_length", len(prompt),
	)

	reply, err := uc.llmClient.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate test suite content")
	}

	bundle, ok := parseBundle(reply)
	if !ok {
		logger.Warn("Could not parse LLM reply, using fallback bundle",
			"collection", col.Name(),
			"reply_length", len(reply),
		)
		return model.FallbackBundle(col.Name()), nil
	}

	logger.Info("Generated Karate test suite",
		"collection", col.Name(),
		"features", len(bundle.Features),
	)

	return bundle, nil
}

// buildPrompt renders the generation prompt with the JSON-encoded
// collection summary. Deterministic for identical input.
func (uc *convertUseCase) buildPrompt(col *model.Collection) (string, error) {
	summary, err := json.MarshalIndent(model.Summarize(col), "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode collection summary")
	}

	var buf bytes.Buffer
	if err := uc.tmpl.Execute(&buf, map[string]string{
		"Summary": string(summary),
	}); err != nil {
		return "", goerr.Wrap(err, "failed to execute generation prompt template")
	}

	return buf.String(), nil
}

// parseBundle extracts and decodes the bundle object from a freeform model
// reply. Returns false whenever the reply holds no usable bundle.
func parseBundle(reply string) (*model.Bundle, bool) {
	span, found := extractJSONObject(reply)
	if !found {
		return nil, false
	}

	var bundle model.Bundle
	if err := json.Unmarshal([]byte(span), &bundle); err != nil {
		return nil, false
	}
	if !bundle.IsComplete() {
		return nil, false
	}

	return &bundle, true
}
