package endpoint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftcheck/specdiff/internal/endpoint"
	"github.com/driftcheck/specdiff/internal/specevent"
)

func pathComponentAdded(pathID, parentID, name string) specevent.SpecEvent {
	return specevent.SpecEvent{
		Kind: specevent.KindPathComponentAdded,
		PathComponentAdded: &specevent.PathComponentAdded{
			PathID: pathID, ParentPathID: parentID, Name: name,
		},
	}
}

func buildS1Endpoint() *endpoint.Projection {
	p := endpoint.NewProjection()
	p.Apply(pathComponentAdded("path_1", "root", "todos"))
	p.Apply(specevent.SpecEvent{Kind: specevent.KindRequestAdded, RequestAdded: &specevent.RequestAdded{
		RequestID: "request_1", PathID: "path_1", HTTPMethod: "GET",
	}})
	p.Apply(specevent.SpecEvent{Kind: specevent.KindResponseAddedByPathAndMethod, ResponseAddedByPathAndMethod: &specevent.ResponseAddedByPathAndMethod{
		ResponseID: "response_1", PathID: "path_1", HTTPMethod: "GET", HTTPStatusCode: 200,
	}})
	p.Apply(specevent.SpecEvent{Kind: specevent.KindResponseBodySet, ResponseBodySet: &specevent.ResponseBodySet{
		ResponseID: "response_1",
		BodyDescriptor: specevent.BodyDescriptor{
			HTTPContentType: "application/json", ShapeID: "object_shape_1",
		},
	}})
	return p
}

func TestResolvePathMatchesLiteralSegment(t *testing.T) {
	p := buildS1Endpoint()
	require.Empty(t, p.Warnings())

	pathID, ok := p.ResolvePath([]string{"todos"})
	require.True(t, ok)
	require.Equal(t, endpoint.PathID("path_1"), pathID)

	_, ok = p.ResolvePath([]string{"unknown"})
	require.False(t, ok)
}

func TestResponseBodyAttachedToResponse(t *testing.T) {
	p := buildS1Endpoint()
	responses := p.ResponsesFor("path_1", "GET")
	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Body)
	require.Equal(t, "application/json", responses[0].Body.HTTPContentType)
	require.Equal(t, "object_shape_1", string(responses[0].Body.RootShapeID))
}

func TestResolvePathFallsBackToParameterChild(t *testing.T) {
	p := endpoint.NewProjection()
	p.Apply(pathComponentAdded("path_1", "root", "todos"))
	p.Apply(specevent.SpecEvent{
		Kind: specevent.KindPathParameterAdded,
		PathParameterAdded: &specevent.PathParameterAdded{
			PathID: "path_2", ParentPathID: "path_1", Name: "todoId",
		},
	})

	pathID, ok := p.ResolvePath([]string{"todos", "abc-123"})
	require.True(t, ok)
	require.Equal(t, endpoint.PathID("path_2"), pathID)
}

func TestApplyRequestAddedWarnsOnMissingPath(t *testing.T) {
	p := endpoint.NewProjection()
	p.Apply(specevent.SpecEvent{Kind: specevent.KindRequestAdded, RequestAdded: &specevent.RequestAdded{
		RequestID: "request_1", PathID: "missing_path", HTTPMethod: "GET",
	}})
	require.Len(t, p.Warnings(), 1)
	require.Empty(t, p.Requests)
}
