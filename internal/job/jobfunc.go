// Package job adapts plain closures to the shard executor's Job interface
// and provides the shard-label helper used by mutation metrics and logs.
package job

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilJobFunc reports a nil closure handed to the executor.
var ErrNilJobFunc = errors.New("nil JobFunc")

// jobFunc wraps a mutation closure so it can be queued per shard key.
type jobFunc func(context.Context) error

func (f jobFunc) Run(ctx context.Context) error {
	if f == nil {
		return fmt.Errorf("jobfunc: %w", ErrNilJobFunc)
	}
	return f(ctx)
}

// New wraps fn as a queueable job.
func New(fn func(context.Context) error) jobFunc {
	return jobFunc(fn)
}
