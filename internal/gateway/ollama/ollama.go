// Package ollama runs completions against an Ollama server.
package ollama

import (
	"context"
	"fmt"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/jorge-barreto/sitegen/internal/gateway"
)

type chatter interface {
	Chat(ctx context.Context, req *api.ChatRequest, fn api.ChatResponseFunc) error
}

// Client streams chat completions from Ollama. The server address comes from
// OLLAMA_HOST, as with the ollama CLI.
type Client struct {
	chat    chatter
	model   string
	timeout time.Duration
}

// New connects to the Ollama server configured in the environment.
func New(model string, timeout time.Duration) (*Client, error) {
	if model == "" {
		return nil, fmt.Errorf("ollama: model is required")
	}
	c, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("could not create ollama client: %w", err)
	}
	return &Client{chat: c, model: model, timeout: timeout}, nil
}

func (c *Client) buildRequest(req gateway.Request) *api.ChatRequest {
	stream := true
	var msgs []api.Message
	if req.System != "" {
		msgs = append(msgs, api.Message{Role: "system", Content: req.System})
	}
	msgs = append(msgs, api.Message{Role: "user", Content: req.Prompt})

	opts := map[string]any{"temperature": req.Temperature}
	if req.MaxTokens > 0 {
		opts["num_predict"] = req.MaxTokens
	}
	return &api.ChatRequest{
		Model:    c.model,
		Messages: msgs,
		Stream:   &stream,
		Options:  opts,
	}
}

// Complete implements gateway.Gateway.
func (c *Client) Complete(ctx context.Context, req gateway.Request, fn gateway.DeltaFunc) (gateway.StopReason, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	stop := gateway.StopUnknown
	err := c.chat.Chat(ctx, c.buildRequest(req), func(res api.ChatResponse) error {
		if res.Message.Content != "" && fn != nil {
			fn(res.Message.Content)
		}
		if res.Done {
			stop = mapDoneReason(res.DoneReason)
		}
		return nil
	})
	if err != nil {
		return gateway.StopUnknown, fmt.Errorf("ollama chat failed: %w", err)
	}
	return stop, nil
}

// Ollama has no refusal signal; a declined answer arrives as ordinary text.
func mapDoneReason(reason string) gateway.StopReason {
	switch reason {
	case "stop", "":
		return gateway.StopEndTurn
	case "length":
		return gateway.StopMaxTokens
	default:
		return gateway.StopUnknown
	}
}
