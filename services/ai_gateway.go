package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Completer is the boundary to the external completion model. The contract
// is deliberately weak: implementations return best-effort text that may be
// empty or malformed, and callers must parse defensively.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithImage(ctx context.Context, prompt, imageBase64, mimeType string) (string, error)
}

const (
	defaultGeminiModel   = "gemini-1.5-flash"
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	completionTimeout    = 20 * time.Second
	maxCompletionRetries = 2
)

// GeminiClient calls the Generative Language REST API. Every call runs under
// a per-attempt timeout and a bounded exponential backoff; transport errors
// and 5xx/429 responses are retried, other statuses are not.
type GeminiClient struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{
		client:  &http.Client{Timeout: completionTimeout},
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBaseURL,
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, []geminiPart{{Text: prompt}})
}

func (g *GeminiClient) CompleteWithImage(ctx context.Context, prompt, imageBase64, mimeType string) (string, error) {
	return g.generate(ctx, []geminiPart{
		{Text: prompt},
		{InlineData: &geminiInlineData{MimeType: mimeType, Data: imageBase64}},
	})
}

func (g *GeminiClient) generate(ctx context.Context, parts []geminiPart) (string, error) {
	var req geminiRequest
	req.Contents = make([]struct {
		Parts []geminiPart `json:"parts"`
	}, 1)
	req.Contents[0].Parts = parts

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion payload: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	var text string
	operation := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := g.client.Do(httpReq)
		if err != nil {
			return fmt.Errorf("completion request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read completion response: %w", err)
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("completion API error %d: %s", resp.StatusCode, string(body))
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("completion API error %d: %s", resp.StatusCode, string(body)))
		}

		var gr geminiResponse
		if err := json.Unmarshal(body, &gr); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to parse completion JSON: %w", err))
		}

		// An empty candidate list is a valid (if useless) completion; the
		// parsers downstream degrade on empty text.
		text = ""
		if len(gr.Candidates) > 0 && len(gr.Candidates[0].Content.Parts) > 0 {
			text = gr.Candidates[0].Content.Parts[0].Text
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxCompletionRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return text, nil
}
