package salesforce

import (
	"context"

	"github.com/google/uuid"
)

// Pending is the handle returned by APIRequest. It resolves once the request
// completes, after the callback has run.
type Pending struct {
	ID   uuid.UUID
	done chan struct{}
	resp *Response
	err  error
}

func newPending() *Pending {
	return &Pending{
		ID:   uuid.New(),
		done: make(chan struct{}),
	}
}

func (p *Pending) resolve(resp *Response, err error) {
	p.resp = resp
	p.err = err
	close(p.done)
}

// Done is closed when the request has completed.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the request completes or ctx is done.
func (p *Pending) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-p.done:
		return p.resp, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
