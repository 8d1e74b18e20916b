package diff

import (
	"encoding/json"

	"github.com/driftcheck/specdiff/internal/endpoint"
)

// HTTPInteraction is a concrete HTTP request/response pair to diff against a
// projected spec.
type HTTPInteraction struct {
	Request  InteractionRequest  `json:"request"`
	Response InteractionResponse `json:"response"`
}

type InteractionRequest struct {
	Path   string          `json:"path"`
	Method string          `json:"method"`
	Query  string          `json:"query,omitempty"` // raw query string; "" means no query params on the wire
	Body   InteractionBody `json:"body"`
}

type InteractionResponse struct {
	StatusCode int             `json:"statusCode"`
	Body       InteractionBody `json:"body"`
}

// InteractionBody carries the observed content type and a structural value
// tree (object/array/primitive nodes), the concrete counterpart of
// shapechoice.ShapeChoice. ContentType "" and a nil Value each independently
// mean "absent" — a request can carry a content type with no body value, or
// vice versa.
type InteractionBody struct {
	ContentType string     `json:"contentType,omitempty"`
	Value       *BodyValue `json:"value,omitempty"`
}

// BodyValueKind is the discriminant of a structural body value node.
type BodyValueKind string

const (
	BodyValueObject  BodyValueKind = "Object"
	BodyValueArray   BodyValueKind = "Array"
	BodyValueString  BodyValueKind = "String"
	BodyValueNumber  BodyValueKind = "Number"
	BodyValueBoolean BodyValueKind = "Boolean"
	BodyValueNull    BodyValueKind = "Null"
)

// BodyValue is a node of an interaction body's structural tree.
type BodyValue struct {
	Kind Kind `json:"kind"`

	Fields  map[string]BodyValue `json:"fields,omitempty"` // Object
	Items   []BodyValue          `json:"items,omitempty"`  // Array
	String  string               `json:"string,omitempty"`
	Number  float64              `json:"number,omitempty"`
	Boolean bool                 `json:"boolean,omitempty"`
}

type Kind = BodyValueKind

// InteractionTrailPathComponent is one step of an InteractionTrail.
type InteractionTrailPathComponent struct {
	Kind InteractionTrailKind

	URL         string
	Method      string
	ContentType string // RequestBody, ResponseBody
	StatusCode  int    // ResponseStatusCode, ResponseBody
}

type InteractionTrailKind string

const (
	TrailURL               InteractionTrailKind = "Url"
	TrailMethod             InteractionTrailKind = "Method"
	TrailQueryParameters    InteractionTrailKind = "QueryParameters"
	TrailRequestBody        InteractionTrailKind = "RequestBody"
	TrailResponseStatusCode InteractionTrailKind = "ResponseStatusCode"
	TrailResponseBody       InteractionTrailKind = "ResponseBody"
)

func URLComponent(path string) InteractionTrailPathComponent {
	return InteractionTrailPathComponent{Kind: TrailURL, URL: path}
}

func MethodComponent(method string) InteractionTrailPathComponent {
	return InteractionTrailPathComponent{Kind: TrailMethod, Method: method}
}

func QueryParametersComponent() InteractionTrailPathComponent {
	return InteractionTrailPathComponent{Kind: TrailQueryParameters}
}

func RequestBodyComponent(contentType string) InteractionTrailPathComponent {
	return InteractionTrailPathComponent{Kind: TrailRequestBody, ContentType: contentType}
}

func ResponseStatusCodeComponent(statusCode int) InteractionTrailPathComponent {
	return InteractionTrailPathComponent{Kind: TrailResponseStatusCode, StatusCode: statusCode}
}

func ResponseBodyComponent(contentType string, statusCode int) InteractionTrailPathComponent {
	return InteractionTrailPathComponent{Kind: TrailResponseBody, ContentType: contentType, StatusCode: statusCode}
}

// MarshalJSON renders only the fields relevant to the component's kind,
// camelCased, rather than every InteractionTrailPathComponent field flattened
// onto one object.
func (c InteractionTrailPathComponent) MarshalJSON() ([]byte, error) {
	out := map[string]any{"kind": c.Kind}
	switch c.Kind {
	case TrailURL:
		out["url"] = c.URL
	case TrailMethod:
		out["method"] = c.Method
	case TrailQueryParameters:
		// no payload
	case TrailRequestBody:
		out["contentType"] = c.ContentType
	case TrailResponseStatusCode:
		out["statusCode"] = c.StatusCode
	case TrailResponseBody:
		out["contentType"] = c.ContentType
		out["statusCode"] = c.StatusCode
	}
	return json.Marshal(out)
}

// InteractionTrail is the ordered list of path components describing where
// in an interaction a diff result was observed.
type InteractionTrail []InteractionTrailPathComponent

// RequestSpecTrailKind is the discriminant of a RequestSpecTrail.
type RequestSpecTrailKind string

const (
	SpecTrailRoot            RequestSpecTrailKind = "SpecRoot"
	SpecTrailPath            RequestSpecTrailKind = "SpecPath"
	SpecTrailQueryParameters RequestSpecTrailKind = "SpecQueryParameters"
	SpecTrailRequestBody     RequestSpecTrailKind = "SpecRequestBody"
	SpecTrailResponseBody    RequestSpecTrailKind = "SpecResponseBody"
)

// RequestSpecTrail points at the spec entity a diff result was compared
// against.
type RequestSpecTrail struct {
	Kind RequestSpecTrailKind

	PathID            endpoint.PathID
	QueryParametersID endpoint.QueryParametersID
	RequestID         endpoint.RequestID
	ResponseID        endpoint.ResponseID
}

func SpecRoot() RequestSpecTrail { return RequestSpecTrail{Kind: SpecTrailRoot} }

func SpecPath(pathID endpoint.PathID) RequestSpecTrail {
	return RequestSpecTrail{Kind: SpecTrailPath, PathID: pathID}
}

func SpecQueryParameters(id endpoint.QueryParametersID) RequestSpecTrail {
	return RequestSpecTrail{Kind: SpecTrailQueryParameters, QueryParametersID: id}
}

func SpecRequestBody(id endpoint.RequestID) RequestSpecTrail {
	return RequestSpecTrail{Kind: SpecTrailRequestBody, RequestID: id}
}

func SpecResponseBody(id endpoint.ResponseID) RequestSpecTrail {
	return RequestSpecTrail{Kind: SpecTrailResponseBody, ResponseID: id}
}

// MarshalJSON renders only the fields relevant to the trail's kind,
// camelCased, rather than every RequestSpecTrail field flattened onto one
// object.
func (t RequestSpecTrail) MarshalJSON() ([]byte, error) {
	out := map[string]any{"kind": t.Kind}
	switch t.Kind {
	case SpecTrailRoot:
		// no payload
	case SpecTrailPath:
		out["pathId"] = t.PathID
	case SpecTrailQueryParameters:
		out["queryParametersId"] = t.QueryParametersID
	case SpecTrailRequestBody:
		out["requestId"] = t.RequestID
	case SpecTrailResponseBody:
		out["responseId"] = t.ResponseID
	}
	return json.Marshal(out)
}
