package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"care-companion/internal/platform/httpclient"
	"care-companion/internal/ports/assistant"
)

var (
	ErrNotConfigured = errors.New("gemini client not configured")
	ErrUpstream      = errors.New("gemini upstream error")
	ErrBadReply      = errors.New("gemini reply not parseable")
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-1.5-flash"
)

// Config del cliente. APIKey normalmente viene de env.
type Config struct {
	BaseURL string // default API pública
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client implementa assistant.Assistant contra la Generative Language API.
type Client struct {
	http   *httpclient.Client
	apiKey string
	model  string
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:   hc,
		apiKey: strings.TrimSpace(cfg.APIKey),
		model:  model,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Interpret manda el prompt y decodifica el JSON que el modelo promete
// devolver ({"response","action"}), tolerando los fences ```json que
// suele envolver alrededor.
func (c *Client) Interpret(ctx context.Context, prompt string) (assistant.Reply, error) {
	if !c.IsConfigured() {
		return assistant.Reply{}, ErrNotConfigured
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent?key=%s", c.model, c.apiKey)

	var out generateResponse
	err := c.http.DoJSON(ctx, http.MethodPost, path, nil, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}, &out)
	if err != nil {
		return assistant.Reply{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return assistant.Reply{}, ErrBadReply
	}

	raw := out.Candidates[0].Content.Parts[0].Text
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var parsed struct {
		Response string `json:"response"`
		Action   string `json:"action"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return assistant.Reply{}, fmt.Errorf("%w: %v", ErrBadReply, err)
	}

	action := assistant.ActionNone
	if strings.EqualFold(strings.TrimSpace(parsed.Action), string(assistant.ActionDispense)) {
		action = assistant.ActionDispense
	}

	return assistant.Reply{
		Message: parsed.Response,
		Action:  action,
	}, nil
}
