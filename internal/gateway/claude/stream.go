package claude

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jorge-barreto/sitegen/internal/gateway"
)

// streamResult holds what processStream learned from the event stream.
type streamResult struct {
	Stop       gateway.StopReason
	ResultText string
	IsError    bool
	CostUSD    float64
	streamed   bool
}

// streamEvent is the top-level JSON structure from stream-json output.
type streamEvent struct {
	Type    string          `json:"type"`
	Event   json.RawMessage `json:"event"`
	Result  json.RawMessage `json:"result"`
	IsError bool            `json:"is_error"`
	CostUSD float64         `json:"total_cost_usd"`
}

// nestedEvent is the inner event of a stream_event line.
type nestedEvent struct {
	Type  string      `json:"type"`
	Delta *deltaBlock `json:"delta"`
}

type deltaBlock struct {
	Type       string `json:"type"`
	Text       string `json:"text"`
	StopReason string `json:"stop_reason"`
}

// processStream reads stream-json lines, forwards text deltas to fn and
// records the stop reason from message_delta events.
func processStream(ctx context.Context, stdout io.Reader, fn gateway.DeltaFunc) (*streamResult, error) {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 256*1024), 4*1024*1024)

	res := &streamResult{Stop: gateway.StopUnknown}
	for scanner.Scan() {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event streamEvent
		if err := json.Unmarshal(line, &event); err != nil {
			// Skip malformed lines
			continue
		}

		switch event.Type {
		case "stream_event":
			handleStreamEvent(&event, res, fn)
		case "result":
			handleResultEvent(&event, res, fn)
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("reading stream: %w", err)
	}
	return res, nil
}

func handleStreamEvent(event *streamEvent, res *streamResult, fn gateway.DeltaFunc) {
	if event.Event == nil {
		return
	}
	var nested nestedEvent
	if err := json.Unmarshal(event.Event, &nested); err != nil || nested.Delta == nil {
		return
	}
	switch nested.Type {
	case "content_block_delta":
		if nested.Delta.Type == "text_delta" && nested.Delta.Text != "" {
			res.streamed = true
			if fn != nil {
				fn(nested.Delta.Text)
			}
		}
	case "message_delta":
		if nested.Delta.StopReason != "" {
			res.Stop = mapStopReason(nested.Delta.StopReason)
		}
	}
}

func handleResultEvent(event *streamEvent, res *streamResult, fn gateway.DeltaFunc) {
	res.IsError = event.IsError
	res.CostUSD = event.CostUSD
	var text string
	if event.Result != nil && json.Unmarshal(event.Result, &text) == nil {
		res.ResultText = text
	}
	// Older CLIs emit no partial messages; the final text arrives here.
	if !res.streamed && text != "" && !event.IsError {
		res.streamed = true
		if fn != nil {
			fn(text)
		}
	}
	if res.Stop == gateway.StopUnknown && !event.IsError {
		res.Stop = gateway.StopEndTurn
	}
}

func mapStopReason(s string) gateway.StopReason {
	switch s {
	case "end_turn", "stop_sequence":
		return gateway.StopEndTurn
	case "max_tokens":
		return gateway.StopMaxTokens
	case "refusal":
		return gateway.StopRefusal
	default:
		return gateway.StopUnknown
	}
}
