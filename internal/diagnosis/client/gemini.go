// Package client provides the Gemini generateContent client used for crop
// diagnosis.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"kisan_backend/platform/config"
	"kisan_backend/platform/logger"

	"google.golang.org/genai"
)

// GenerateRequest is one multimodal prompt: an image followed by text.
type GenerateRequest struct {
	Image    []byte
	MIMEType string
	Prompt   string
}

// GenerateResult carries the first candidate's text and the raw response body.
type GenerateResult struct {
	Text string
	Raw  string
}

// ShapeError reports a response that decoded but lacked the expected
// candidates/content/parts structure.
type ShapeError struct {
	Reason string
	Raw    string
}

func (e *ShapeError) Error() string {
	return e.Reason
}

// Gemini is the generative model client.
type Gemini struct {
	client *genai.Client
	model  string
	log    *logger.Logger
}

// New creates a Gemini client for cfg. httpClient may be nil.
func New(ctx context.Context, cfg config.GeminiConfig, httpClient *http.Client, log *logger.Logger) (*Gemini, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.GetGeminiAPIKey(),
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if base := cfg.GetGeminiBaseURL(); base != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{client: client, model: cfg.GetGeminiModel(), log: log}, nil
}

// Generate sends the image as inline data followed by the prompt text and
// returns the first text part of the first candidate.
func (g *Gemini) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: req.MIMEType, Data: req.Image}},
			genai.NewPartFromText(req.Prompt),
		},
	}}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	g.log.WithContext(ctx).UpstreamCall("gemini", "generateContent", time.Since(start), err)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("generate content: %w", err)
	}

	raw := rawBody(resp)
	text, reason := firstText(resp)
	if reason != "" {
		return GenerateResult{}, &ShapeError{Reason: reason, Raw: raw}
	}

	return GenerateResult{Text: text, Raw: raw}, nil
}

func firstText(resp *genai.GenerateContentResponse) (string, string) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", "'candidates' not found in response"
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return "", "'content' not found in first candidate"
	}
	if len(candidate.Content.Parts) == 0 || candidate.Content.Parts[0] == nil {
		return "", "'parts' not found in candidate content"
	}
	return candidate.Content.Parts[0].Text, ""
}

func rawBody(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	body, err := json.Marshal(resp)
	if err != nil {
		return ""
	}
	return string(body)
}
