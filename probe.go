package readygate

import (
	"context"
	"time"
)

const (
	DefaultInterval = 2 * time.Second
	DefaultTimeout  = 5 * time.Second
)

// Probe checks whether a single dependency is able to accept traffic.
//
// Validate is expected to be called once before the first Probe call;
// it fills in option defaults and rejects configs that could never succeed.
// Probe itself returns an error for anything that isn't readiness: the
// caller treats all of those the same way and retries.
type Probe interface {
	ID() string
	Type() string
	Validate() error
	Probe(ctx context.Context) error
}
