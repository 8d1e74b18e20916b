// Package reqid tags each diff run with a correlation id so concurrent
// runs' spans and logs can be told apart.
package reqid

import (
	"context"

	"github.com/google/uuid"
)

// key is the context key for the run id.
type key struct{}

// NewContext returns a copy of parent with a new run id stored, and the
// generated id itself.
func NewContext(parent context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the run id from ctx, and whether it was present.
func FromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(key{})
	id, ok := v.(string)
	return id, ok
}
