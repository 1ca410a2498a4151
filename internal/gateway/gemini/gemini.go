// Package gemini runs completions against the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"iter"
	"os"
	"time"

	"google.golang.org/genai"

	"github.com/jorge-barreto/sitegen/internal/gateway"
)

const defaultModel = "gemini-2.5-flash"

type streamFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]

// Client streams completions from Gemini.
type Client struct {
	stream  streamFunc
	model   string
	timeout time.Duration
}

// New creates a client using the API key found in apiKeyEnv.
func New(ctx context.Context, model, apiKeyEnv string, timeout time.Duration) (*Client, error) {
	if apiKeyEnv == "" {
		apiKeyEnv = "GEMINI_API_KEY"
	}
	key := os.Getenv(apiKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("gemini: missing api key (set %s)", apiKeyEnv)
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Client{stream: client.Models.GenerateContentStream, model: model, timeout: timeout}, nil
}

func buildConfig(req gateway.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	return cfg
}

// Complete implements gateway.Gateway.
func (c *Client) Complete(ctx context.Context, req gateway.Request, fn gateway.DeltaFunc) (gateway.StopReason, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	stop := gateway.StopUnknown
	for resp, err := range c.stream(ctx, c.model, contents, buildConfig(req)) {
		if err != nil {
			return gateway.StopUnknown, fmt.Errorf("gemini stream: %w", err)
		}
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return gateway.StopRefusal, nil
		}
		if text := resp.Text(); text != "" && fn != nil {
			fn(text)
		}
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != "" {
			stop = mapFinishReason(resp.Candidates[0].FinishReason)
		}
	}
	return stop, nil
}

func mapFinishReason(r genai.FinishReason) gateway.StopReason {
	switch r {
	case genai.FinishReasonStop:
		return gateway.StopEndTurn
	case genai.FinishReasonMaxTokens:
		return gateway.StopMaxTokens
	case genai.FinishReasonSafety, genai.FinishReasonProhibitedContent,
		genai.FinishReasonBlocklist, genai.FinishReasonSPII, genai.FinishReasonRecitation:
		return gateway.StopRefusal
	default:
		return gateway.StopUnknown
	}
}
