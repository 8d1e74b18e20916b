// Package endpoint folds spec events into the endpoint graph: the path
// tree, and the requests, responses, and query-parameter descriptors
// attached to (path, method) pairs.
package endpoint

import "github.com/driftcheck/specdiff/internal/shape"

type PathID string
type RequestID string
type ResponseID string
type QueryParametersID string

// PathNodeKind distinguishes a literal path segment from a named parameter
// segment (e.g. "todos" vs. "{id}").
type PathNodeKind string

const (
	PathNodeLiteral   PathNodeKind = "Literal"
	PathNodeParameter PathNodeKind = "Parameter"
)

// PathNode is one segment of the path tree, rooted at RootPathID.
type PathNode struct {
	ID       PathID
	ParentID PathID
	Name     string
	Kind     PathNodeKind
	Children []PathID
}

// RootPathID is the fixed id of the path tree's root node.
const RootPathID PathID = "root"

// BodyDescriptor is a content-typed body attached to a request or response.
type BodyDescriptor struct {
	HTTPContentType string
	RootShapeID     shape.ShapeID
	IsRemoved       bool
}

// Request is an HTTP method declared on a path, with an optional body.
type Request struct {
	ID         RequestID
	PathID     PathID
	HTTPMethod string
	Body       *BodyDescriptor
}

// Response is a status code declared for a method on a path, with an
// optional body.
type Response struct {
	ID             ResponseID
	PathID         PathID
	HTTPMethod     string
	HTTPStatusCode int
	Body           *BodyDescriptor
}

// QueryParameters is the query-parameter descriptor attached to a
// (path, method) pair, with an optional bound shape.
type QueryParameters struct {
	ID         QueryParametersID
	PathID     PathID
	HTTPMethod string
	ShapeID    *shape.ShapeID
}
