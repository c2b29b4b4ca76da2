// Package genai wraps the Gemini generateContent REST endpoint used to
// draft medical notes.
package genai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Fallback strings returned to the client instead of an error, so a
// failed draft never blocks the charting workflow.
const (
	FallbackError = "生成發生錯誤，請稍後再試。"
	FallbackEmpty = "生成失敗。"
)

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	http   *resty.Client
	cfg    Config
	logger zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:   client,
		cfg:    cfg,
		logger: logger,
	}
}

// Generate sends the prompt and returns the generated text. The model
// runs a single attempt; callers decide how to surface failure.
func (c *Client) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	req := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{Temperature: c.cfg.Temperature},
	}
	if systemInstruction != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: systemInstruction}}}
	}

	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.cfg.APIKey).
		SetBody(req).
		SetResult(&out).
		SetError(&out).
		// Decode the body even when the endpoint mislabels its content
		// type, so the failure surfaces instead of reading as empty text.
		ForceContentType("application/json").
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.cfg.Model))
	if err != nil {
		c.logger.Error().Err(err).Str("model", c.cfg.Model).Msg("genai request failed")
		return "", fmt.Errorf("call generateContent: %w", err)
	}

	if resp.IsError() {
		msg := resp.Status()
		if out.Error != nil {
			msg = out.Error.Message
		}
		c.logger.Error().
			Int("status_code", resp.StatusCode()).
			Str("model", c.cfg.Model).
			Str("message", msg).
			Msg("genai returned error")
		return "", fmt.Errorf("generateContent status %d: %s", resp.StatusCode(), msg)
	}

	text := extractText(&out)
	c.logger.Debug().
		Str("model", c.cfg.Model).
		Int("chars", len(text)).
		Dur("latency", resp.Time()).
		Msg("genai response")

	return text, nil
}

// GenerateOrFallback never returns an error. Transport or API failure
// yields the error fallback, an empty candidate the empty fallback.
func (c *Client) GenerateOrFallback(ctx context.Context, prompt, systemInstruction string) string {
	text, err := c.Generate(ctx, prompt, systemInstruction)
	if err != nil {
		return FallbackError
	}
	if strings.TrimSpace(text) == "" {
		return FallbackEmpty
	}
	return text
}

func extractText(out *generateResponse) string {
	if len(out.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
