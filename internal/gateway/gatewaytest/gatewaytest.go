// Package gatewaytest provides a scripted gateway for engine tests.
package gatewaytest

import (
	"context"
	"fmt"
	"sync"

	"github.com/jorge-barreto/sitegen/internal/gateway"
)

// Reply is one scripted model response.
type Reply struct {
	Text string
	Stop gateway.StopReason // defaults to StopEndTurn
	Err  error
}

// Fake records calls and answers them with Handler. Text is streamed to the
// caller in small chunks so consumers exercise delta concatenation.
type Fake struct {
	Handler func(req gateway.Request) Reply

	mu    sync.Mutex
	calls []gateway.Request
}

// Queue returns a Fake that answers calls in order with replies.
// Calls beyond the end of the queue fail.
func Queue(replies ...Reply) *Fake {
	var mu sync.Mutex
	next := 0
	return &Fake{Handler: func(req gateway.Request) Reply {
		mu.Lock()
		defer mu.Unlock()
		if next >= len(replies) {
			return Reply{Err: fmt.Errorf("gatewaytest: unexpected call %d", next+1)}
		}
		r := replies[next]
		next++
		return r
	}}
}

// Complete implements gateway.Gateway.
func (f *Fake) Complete(ctx context.Context, req gateway.Request, fn gateway.DeltaFunc) (gateway.StopReason, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return gateway.StopUnknown, err
	}
	r := f.Handler(req)
	if fn != nil {
		for _, chunk := range chunks(r.Text, 7) {
			fn(chunk)
		}
	}
	if r.Err != nil {
		return gateway.StopUnknown, r.Err
	}
	if r.Stop == "" {
		return gateway.StopEndTurn, nil
	}
	return r.Stop, nil
}

// Calls returns a copy of the requests received so far.
func (f *Fake) Calls() []gateway.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := make([]gateway.Request, len(f.calls))
	copy(c, f.calls)
	return c
}

func chunks(s string, size int) []string {
	var out []string
	r := []rune(s)
	for len(r) > 0 {
		n := size
		if n > len(r) {
			n = len(r)
		}
		out = append(out, string(r[:n]))
		r = r[n:]
	}
	return out
}
