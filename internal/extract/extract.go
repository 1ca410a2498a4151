// Package extract turns a streamed model response into a validated JSON object.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jorge-barreto/sitegen/internal/gateway"
)

// ErrRefused reports that the model declined to answer for policy reasons.
// It is never retryable.
var ErrRefused = errors.New("model refused the request")

// ParseError reports that no usable JSON object could be read from a response.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse response: " + e.Reason
}

// Collect drains a completion, concatenating deltas in arrival order.
func Collect(ctx context.Context, gw gateway.Gateway, req gateway.Request) (string, gateway.StopReason, error) {
	var buf strings.Builder
	stop, err := gw.Complete(ctx, req, func(text string) {
		buf.WriteString(text)
	})
	if err != nil {
		return buf.String(), stop, fmt.Errorf("model call: %w", err)
	}
	return buf.String(), stop, nil
}

// Complete runs req and extracts the JSON object from the response.
// It returns ErrRefused for a refusal stop reason and *ParseError when the
// text holds no valid object. The raw text is returned in every case.
func Complete(ctx context.Context, gw gateway.Gateway, req gateway.Request) (json.RawMessage, string, error) {
	text, stop, err := Collect(ctx, gw, req)
	if err != nil {
		return nil, text, err
	}
	if stop == gateway.StopRefusal {
		return nil, text, ErrRefused
	}
	obj, err := Object(text)
	return obj, text, err
}

// Object locates the outermost {...} span in text, after trimming and
// stripping a surrounding code fence, and validates it as a JSON object.
// Malformed objects are not repaired.
func Object(text string) (json.RawMessage, error) {
	text = stripFence(strings.TrimSpace(text))

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, &ParseError{Reason: "no object found"}
	}
	end := strings.LastIndexByte(text, '}')
	if end < start {
		return nil, &ParseError{Reason: "unterminated object"}
	}
	candidate := text[start : end+1]

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	return json.RawMessage(candidate), nil
}

// Decode extracts the object from text and unmarshals it into v.
func Decode(text string, v any) error {
	obj, err := Object(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(obj, v); err != nil {
		return &ParseError{Reason: err.Error()}
	}
	return nil
}

// stripFence removes a leading ``` line (with any language tag) and a
// trailing ``` if present.
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimLeft(text, "`")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
