package endpoint

import (
	"fmt"

	"github.com/driftcheck/specdiff/internal/shape"
	"github.com/driftcheck/specdiff/internal/specevent"
)

// Warning is a non-fatal endpoint projection precondition violation.
type Warning struct {
	Message string
}

func (w *Warning) String() string { return w.Message }

// Projection is the endpoint graph folded from a spec event stream: the
// path tree, and the requests, responses, and query parameters declared
// against it.
type Projection struct {
	Paths           map[PathID]*PathNode
	Requests        map[RequestID]*Request
	Responses       map[ResponseID]*Response
	QueryParameters map[QueryParametersID]*QueryParameters

	requestsByPathMethod        map[pathMethodKey][]RequestID
	responsesByPathMethod       map[pathMethodKey][]ResponseID
	queryParametersByPathMethod map[pathMethodKey]QueryParametersID

	warnings []*Warning
}

type pathMethodKey struct {
	PathID PathID
	Method string
}

// NewProjection returns an empty endpoint projection, seeded with the
// implicit root path node.
func NewProjection() *Projection {
	p := &Projection{
		Paths:                       make(map[PathID]*PathNode),
		Requests:                    make(map[RequestID]*Request),
		Responses:                   make(map[ResponseID]*Response),
		QueryParameters:             make(map[QueryParametersID]*QueryParameters),
		requestsByPathMethod:        make(map[pathMethodKey][]RequestID),
		responsesByPathMethod:       make(map[pathMethodKey][]ResponseID),
		queryParametersByPathMethod: make(map[pathMethodKey]QueryParametersID),
	}
	p.Paths[RootPathID] = &PathNode{ID: RootPathID, Kind: PathNodeLiteral}
	return p
}

func (p *Projection) Warnings() []*Warning { return p.warnings }

func (p *Projection) warn(format string, args ...any) {
	p.warnings = append(p.warnings, &Warning{Message: fmt.Sprintf(format, args...)})
}

// Apply folds a single spec event into the projection. Event kinds this
// projection doesn't own (shape-graph events) are silently ignored.
func (p *Projection) Apply(evt specevent.SpecEvent) {
	switch evt.Kind {
	case specevent.KindPathComponentAdded:
		p.applyPathAdded(evt.PathComponentAdded.PathID, evt.PathComponentAdded.ParentPathID, evt.PathComponentAdded.Name, PathNodeLiteral)
	case specevent.KindPathParameterAdded:
		p.applyPathAdded(evt.PathParameterAdded.PathID, evt.PathParameterAdded.ParentPathID, evt.PathParameterAdded.Name, PathNodeParameter)
	case specevent.KindRequestAdded:
		p.applyRequestAdded(evt.RequestAdded)
	case specevent.KindResponseAddedByPathAndMethod:
		p.applyResponseAdded(evt.ResponseAddedByPathAndMethod)
	case specevent.KindRequestBodySet:
		p.applyRequestBodySet(evt.RequestBodySet)
	case specevent.KindResponseBodySet:
		p.applyResponseBodySet(evt.ResponseBodySet)
	case specevent.KindQueryParametersAdded:
		p.applyQueryParametersAdded(evt.QueryParametersAdded)
	case specevent.KindQueryParametersShapeSet:
		p.applyQueryParametersShapeSet(evt.QueryParametersShapeSet)
	}
}

func (p *Projection) applyPathAdded(rawID, rawParentID, name string, kind PathNodeKind) {
	id := PathID(rawID)
	if _, exists := p.Paths[id]; exists {
		p.warn("PathComponentAdded: path %q already exists", id)
		return
	}
	parentID := PathID(rawParentID)
	parent, ok := p.Paths[parentID]
	if !ok {
		p.warn("PathComponentAdded: parent path %q does not exist", parentID)
		return
	}
	p.Paths[id] = &PathNode{ID: id, ParentID: parentID, Name: name, Kind: kind}
	parent.Children = append(parent.Children, id)
}

func (p *Projection) applyRequestAdded(e *specevent.RequestAdded) {
	if e == nil {
		return
	}
	id := RequestID(e.RequestID)
	if _, exists := p.Requests[id]; exists {
		p.warn("RequestAdded: request %q already exists", id)
		return
	}
	pathID := PathID(e.PathID)
	if _, ok := p.Paths[pathID]; !ok {
		p.warn("RequestAdded: path %q does not exist", pathID)
		return
	}
	p.Requests[id] = &Request{ID: id, PathID: pathID, HTTPMethod: e.HTTPMethod}
	key := pathMethodKey{PathID: pathID, Method: e.HTTPMethod}
	p.requestsByPathMethod[key] = append(p.requestsByPathMethod[key], id)
}

func (p *Projection) applyResponseAdded(e *specevent.ResponseAddedByPathAndMethod) {
	if e == nil {
		return
	}
	id := ResponseID(e.ResponseID)
	if _, exists := p.Responses[id]; exists {
		p.warn("ResponseAddedByPathAndMethod: response %q already exists", id)
		return
	}
	pathID := PathID(e.PathID)
	if _, ok := p.Paths[pathID]; !ok {
		p.warn("ResponseAddedByPathAndMethod: path %q does not exist", pathID)
		return
	}
	p.Responses[id] = &Response{ID: id, PathID: pathID, HTTPMethod: e.HTTPMethod, HTTPStatusCode: e.HTTPStatusCode}
	key := pathMethodKey{PathID: pathID, Method: e.HTTPMethod}
	p.responsesByPathMethod[key] = append(p.responsesByPathMethod[key], id)
}

func toBodyDescriptor(d specevent.BodyDescriptor) *BodyDescriptor {
	return &BodyDescriptor{
		HTTPContentType: d.HTTPContentType,
		RootShapeID:     shape.ShapeID(d.ShapeID),
		IsRemoved:       d.IsRemoved,
	}
}

func (p *Projection) applyRequestBodySet(e *specevent.RequestBodySet) {
	if e == nil {
		return
	}
	r, ok := p.Requests[RequestID(e.RequestID)]
	if !ok {
		p.warn("RequestBodySet: request %q does not exist", e.RequestID)
		return
	}
	r.Body = toBodyDescriptor(e.BodyDescriptor)
}

func (p *Projection) applyResponseBodySet(e *specevent.ResponseBodySet) {
	if e == nil {
		return
	}
	r, ok := p.Responses[ResponseID(e.ResponseID)]
	if !ok {
		p.warn("ResponseBodySet: response %q does not exist", e.ResponseID)
		return
	}
	r.Body = toBodyDescriptor(e.BodyDescriptor)
}

func (p *Projection) applyQueryParametersAdded(e *specevent.QueryParametersAdded) {
	if e == nil {
		return
	}
	id := QueryParametersID(e.QueryParametersID)
	if _, exists := p.QueryParameters[id]; exists {
		p.warn("QueryParametersAdded: query parameters %q already exists", id)
		return
	}
	pathID := PathID(e.PathID)
	if _, ok := p.Paths[pathID]; !ok {
		p.warn("QueryParametersAdded: path %q does not exist", pathID)
		return
	}
	p.QueryParameters[id] = &QueryParameters{ID: id, PathID: pathID, HTTPMethod: e.HTTPMethod}
	p.queryParametersByPathMethod[pathMethodKey{PathID: pathID, Method: e.HTTPMethod}] = id
}

func (p *Projection) applyQueryParametersShapeSet(e *specevent.QueryParametersShapeSet) {
	if e == nil {
		return
	}
	qp, ok := p.QueryParameters[QueryParametersID(e.QueryParametersID)]
	if !ok {
		p.warn("QueryParametersShapeSet: query parameters %q does not exist", e.QueryParametersID)
		return
	}
	sid := shape.ShapeID(e.ShapeID)
	qp.ShapeID = &sid
}

// RequestsFor returns the requests declared for a (path, method) pair.
func (p *Projection) RequestsFor(pathID PathID, method string) []*Request {
	ids := p.requestsByPathMethod[pathMethodKey{PathID: pathID, Method: method}]
	out := make([]*Request, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.Requests[id])
	}
	return out
}

// ResponsesFor returns the responses declared for a (path, method) pair.
func (p *Projection) ResponsesFor(pathID PathID, method string) []*Response {
	ids := p.responsesByPathMethod[pathMethodKey{PathID: pathID, Method: method}]
	out := make([]*Response, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.Responses[id])
	}
	return out
}

// QueryParametersFor returns the query-parameters descriptor declared for a
// (path, method) pair, if any.
func (p *Projection) QueryParametersFor(pathID PathID, method string) (*QueryParameters, bool) {
	id, ok := p.queryParametersByPathMethod[pathMethodKey{PathID: pathID, Method: method}]
	if !ok {
		return nil, false
	}
	return p.QueryParameters[id], true
}

// ResolvePath walks the path tree against URL segments, preferring a
// literal child match at each level and falling back to a single parameter
// child. It returns (RootPathID, true) when the root itself is requested
// with no segments, and ("", false) when no path template matches.
func (p *Projection) ResolvePath(segments []string) (PathID, bool) {
	current := RootPathID
	for _, segment := range segments {
		node, ok := p.Paths[current]
		if !ok {
			return "", false
		}
		next, ok := p.matchChild(node, segment)
		if !ok {
			return "", false
		}
		current = next
	}
	return current, true
}

func (p *Projection) matchChild(node *PathNode, segment string) (PathID, bool) {
	var parameterChild PathID
	hasParameterChild := false
	for _, childID := range node.Children {
		child, ok := p.Paths[childID]
		if !ok {
			continue
		}
		if child.Kind == PathNodeLiteral && child.Name == segment {
			return child.ID, true
		}
		if child.Kind == PathNodeParameter {
			parameterChild = child.ID
			hasParameterChild = true
		}
	}
	if hasParameterChild {
		return parameterChild, true
	}
	return "", false
}
