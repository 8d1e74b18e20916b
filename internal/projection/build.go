// Package projection orchestrates the shape and endpoint projections over a
// deterministically ordered sequence of spec chunks.
package projection

import (
	"context"

	"github.com/driftcheck/specdiff/internal/chunk"
	"github.com/driftcheck/specdiff/internal/endpoint"
	"github.com/driftcheck/specdiff/internal/shape"
)

// Result is the pair of projections folded from an ordered event stream,
// along with every chunk's classification and every precondition warning
// observed while folding.
type Result struct {
	Shape    *shape.Projection
	Endpoint *endpoint.Projection
	Chunks   []chunk.Chunk

	ShapeWarnings    []*shape.Warning
	EndpointWarnings []*endpoint.Warning
}

// Build orders the given chunks and folds their events, in order, into the
// shape and endpoint projections.
func Build(ctx context.Context, chunks []chunk.Chunk) (*Result, error) {
	ordered, err := chunk.Order(chunks)
	if err != nil {
		return nil, err
	}

	shapeProjection := shape.NewProjection()
	endpointProjection := endpoint.NewProjection()

	for _, c := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, evt := range c.Events() {
			shapeProjection.Apply(evt)
			endpointProjection.Apply(evt)
		}
	}

	return &Result{
		Shape:            shapeProjection,
		Endpoint:         endpointProjection,
		Chunks:           ordered,
		ShapeWarnings:    shapeProjection.Warnings(),
		EndpointWarnings: endpointProjection.Warnings(),
	}, nil
}
