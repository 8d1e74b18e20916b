// Package specevent defines the tagged spec-event stream that drives the
// shape and endpoint projections: every mutation to an API contract is a
// single discriminated JSON record, decoded here and replayed by
// internal/projection in insertion order.
package specevent

import (
	"encoding/json"
	"fmt"
)

// Kind is the wire discriminant carried by every spec event.
type Kind string

const (
	KindPathComponentAdded         Kind = "PathComponentAdded"
	KindPathParameterAdded         Kind = "PathParameterAdded"
	KindContributionAdded          Kind = "ContributionAdded"
	KindShapeAdded                 Kind = "ShapeAdded"
	KindFieldAdded                 Kind = "FieldAdded"
	KindRequestAdded               Kind = "RequestAdded"
	KindResponseAddedByPathAndMethod Kind = "ResponseAddedByPathAndMethod"
	KindResponseBodySet             Kind = "ResponseBodySet"
	KindRequestBodySet               Kind = "RequestBodySet"
	KindQueryParametersAdded          Kind = "QueryParametersAdded"
	KindQueryParametersShapeSet       Kind = "QueryParametersShapeSet"
	KindShapeParameterBindingSet      Kind = "ShapeParameterBindingSet"
	KindBatchCommitStarted            Kind = "BatchCommitStarted"
	KindBatchCommitEnded               Kind = "BatchCommitEnded"
)

// SpecEvent is a single tagged mutation to the spec. Exactly one of the
// payload fields is non-nil, selected by Kind.
type SpecEvent struct {
	Kind Kind

	PathComponentAdded         *PathComponentAdded
	PathParameterAdded         *PathParameterAdded
	ContributionAdded          *ContributionAdded
	ShapeAdded                 *ShapeAdded
	FieldAdded                 *FieldAdded
	RequestAdded               *RequestAdded
	ResponseAddedByPathAndMethod *ResponseAddedByPathAndMethod
	ResponseBodySet             *ResponseBodySet
	RequestBodySet               *RequestBodySet
	QueryParametersAdded          *QueryParametersAdded
	QueryParametersShapeSet       *QueryParametersShapeSet
	ShapeParameterBindingSet       *ShapeParameterBindingSet
	BatchCommitStarted            *BatchCommitStarted
	BatchCommitEnded               *BatchCommitEnded
}

type PathComponentAdded struct {
	PathID       string `json:"pathId"`
	ParentPathID string `json:"parentPathId"`
	Name         string `json:"name"`
}

type PathParameterAdded struct {
	PathID       string `json:"pathId"`
	ParentPathID string `json:"parentPathId"`
	Name         string `json:"name"`
}

type ContributionAdded struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ShapeAdded struct {
	ShapeID    string                     `json:"shapeId"`
	BaseShapeID string                    `json:"baseShapeId"`
	Parameters ShapeParametersDescriptor  `json:"parameters"`
	Name       string                     `json:"name"`
}

type FieldAdded struct {
	FieldID        string               `json:"fieldId"`
	ShapeID        string               `json:"shapeId"`
	Name           string               `json:"name"`
	ShapeDescriptor FieldShapeDescriptor `json:"shapeDescriptor"`
}

type RequestAdded struct {
	RequestID  string `json:"requestId"`
	PathID     string `json:"pathId"`
	HTTPMethod string `json:"httpMethod"`
}

type ResponseAddedByPathAndMethod struct {
	ResponseID     string `json:"responseId"`
	PathID         string `json:"pathId"`
	HTTPMethod     string `json:"httpMethod"`
	HTTPStatusCode int    `json:"httpStatusCode"`
}

type BodyDescriptor struct {
	HTTPContentType string `json:"httpContentType"`
	ShapeID         string `json:"shapeId"`
	IsRemoved       bool   `json:"isRemoved"`
}

type ResponseBodySet struct {
	ResponseID     string         `json:"responseId"`
	BodyDescriptor BodyDescriptor `json:"bodyDescriptor"`
}

type RequestBodySet struct {
	RequestID      string         `json:"requestId"`
	BodyDescriptor BodyDescriptor `json:"bodyDescriptor"`
}

type QueryParametersAdded struct {
	QueryParametersID string `json:"queryParametersId"`
	PathID            string `json:"pathId"`
	HTTPMethod        string `json:"httpMethod"`
}

type QueryParametersShapeSet struct {
	QueryParametersID string `json:"queryParametersId"`
	ShapeID           string `json:"shapeId"`
}

// ShapeParameterBindingSet binds a shape parameter to a provider. ShapeID is
// the shape that owns the consuming parameter (e.g. a $listItem binding names
// the list shape itself).
type ShapeParameterBindingSet struct {
	ShapeID              string             `json:"shapeId"`
	ConsumingParameterID string             `json:"consumingParameterId"`
	ProviderDescriptor   ProviderDescriptor `json:"providerDescriptor"`
}

type BatchCommitStarted struct {
	BatchID       string `json:"batchId"`
	ParentID      string `json:"parentId"`
	CommitMessage string `json:"commitMessage"`
}

type BatchCommitEnded struct {
	BatchID string `json:"batchId"`
}

// UnmarshalJSON decodes the single-key tagged-union wire form, e.g.
// {"ShapeAdded": {...}}.
func (e *SpecEvent) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid spec event: %w", err)
	}
	if len(raw) != 1 {
		return fmt.Errorf("invalid spec event: expected exactly one tag, got %d", len(raw))
	}
	for k, v := range raw {
		e.Kind = Kind(k)
		var err error
		switch e.Kind {
		case KindPathComponentAdded:
			e.PathComponentAdded = new(PathComponentAdded)
			err = json.Unmarshal(v, e.PathComponentAdded)
		case KindPathParameterAdded:
			e.PathParameterAdded = new(PathParameterAdded)
			err = json.Unmarshal(v, e.PathParameterAdded)
		case KindContributionAdded:
			e.ContributionAdded = new(ContributionAdded)
			err = json.Unmarshal(v, e.ContributionAdded)
		case KindShapeAdded:
			e.ShapeAdded = new(ShapeAdded)
			err = json.Unmarshal(v, e.ShapeAdded)
		case KindFieldAdded:
			e.FieldAdded = new(FieldAdded)
			err = json.Unmarshal(v, e.FieldAdded)
		case KindRequestAdded:
			e.RequestAdded = new(RequestAdded)
			err = json.Unmarshal(v, e.RequestAdded)
		case KindResponseAddedByPathAndMethod:
			e.ResponseAddedByPathAndMethod = new(ResponseAddedByPathAndMethod)
			err = json.Unmarshal(v, e.ResponseAddedByPathAndMethod)
		case KindResponseBodySet:
			e.ResponseBodySet = new(ResponseBodySet)
			err = json.Unmarshal(v, e.ResponseBodySet)
		case KindRequestBodySet:
			e.RequestBodySet = new(RequestBodySet)
			err = json.Unmarshal(v, e.RequestBodySet)
		case KindQueryParametersAdded:
			e.QueryParametersAdded = new(QueryParametersAdded)
			err = json.Unmarshal(v, e.QueryParametersAdded)
		case KindQueryParametersShapeSet:
			e.QueryParametersShapeSet = new(QueryParametersShapeSet)
			err = json.Unmarshal(v, e.QueryParametersShapeSet)
		case KindShapeParameterBindingSet:
			e.ShapeParameterBindingSet = new(ShapeParameterBindingSet)
			err = json.Unmarshal(v, e.ShapeParameterBindingSet)
		case KindBatchCommitStarted:
			e.BatchCommitStarted = new(BatchCommitStarted)
			err = json.Unmarshal(v, e.BatchCommitStarted)
		case KindBatchCommitEnded:
			e.BatchCommitEnded = new(BatchCommitEnded)
			err = json.Unmarshal(v, e.BatchCommitEnded)
		default:
			return fmt.Errorf("invalid spec event: unknown kind %q", k)
		}
		if err != nil {
			return fmt.Errorf("invalid spec event %q: %w", k, err)
		}
	}
	return nil
}

// MarshalJSON re-encodes the event in the same single-key tagged form.
func (e SpecEvent) MarshalJSON() ([]byte, error) {
	var payload any
	switch e.Kind {
	case KindPathComponentAdded:
		payload = e.PathComponentAdded
	case KindPathParameterAdded:
		payload = e.PathParameterAdded
	case KindContributionAdded:
		payload = e.ContributionAdded
	case KindShapeAdded:
		payload = e.ShapeAdded
	case KindFieldAdded:
		payload = e.FieldAdded
	case KindRequestAdded:
		payload = e.RequestAdded
	case KindResponseAddedByPathAndMethod:
		payload = e.ResponseAddedByPathAndMethod
	case KindResponseBodySet:
		payload = e.ResponseBodySet
	case KindRequestBodySet:
		payload = e.RequestBodySet
	case KindQueryParametersAdded:
		payload = e.QueryParametersAdded
	case KindQueryParametersShapeSet:
		payload = e.QueryParametersShapeSet
	case KindShapeParameterBindingSet:
		payload = e.ShapeParameterBindingSet
	case KindBatchCommitStarted:
		payload = e.BatchCommitStarted
	case KindBatchCommitEnded:
		payload = e.BatchCommitEnded
	default:
		return nil, fmt.Errorf("invalid spec event: unknown kind %q", e.Kind)
	}
	return json.Marshal(map[string]any{string(e.Kind): payload})
}
