package diff

import (
	"encoding/json"

	"github.com/driftcheck/specdiff/internal/endpoint"
	"github.com/driftcheck/specdiff/internal/shape"
)

// ResultKind is the discriminant of an InteractionDiffResult.
type ResultKind string

const (
	KindUnmatchedRequestURL              ResultKind = "UnmatchedRequestUrl"
	KindMatchedQueryParameters           ResultKind = "MatchedQueryParameters"
	KindUnmatchedQueryParameters         ResultKind = "UnmatchedQueryParameters"
	KindMatchedRequestBodyContentType    ResultKind = "MatchedRequestBodyContentType"
	KindUnmatchedRequestBodyContentType  ResultKind = "UnmatchedRequestBodyContentType"
	KindMatchedResponseBodyContentType   ResultKind = "MatchedResponseBodyContentType"
	KindUnmatchedResponseBodyContentType ResultKind = "UnmatchedResponseBodyContentType"
)

// InteractionDiffResult is a single tagged diff observation produced while
// walking an interaction against a projected spec.
type InteractionDiffResult struct {
	Kind             ResultKind
	InteractionTrail InteractionTrail
	RequestsTrail    RequestSpecTrail

	ShapeID  shape.ShapeID // Matched{Request,Response}BodyContentType, MatchedQueryParameters
	HadQuery bool          // UnmatchedQueryParameters
}

func UnmatchedRequestURL(trail InteractionTrail) InteractionDiffResult {
	return InteractionDiffResult{Kind: KindUnmatchedRequestURL, InteractionTrail: trail, RequestsTrail: SpecRoot()}
}

func MatchedQueryParameters(trail InteractionTrail, id endpoint.QueryParametersID, shapeID shape.ShapeID) InteractionDiffResult {
	return InteractionDiffResult{
		Kind:             KindMatchedQueryParameters,
		InteractionTrail: trail,
		RequestsTrail:    SpecQueryParameters(id),
		ShapeID:          shapeID,
	}
}

func UnmatchedQueryParameters(trail InteractionTrail, pathID endpoint.PathID, hadQuery bool) InteractionDiffResult {
	return InteractionDiffResult{
		Kind:             KindUnmatchedQueryParameters,
		InteractionTrail: trail,
		RequestsTrail:    SpecPath(pathID),
		HadQuery:         hadQuery,
	}
}

func MatchedRequestBodyContentType(trail InteractionTrail, requestID endpoint.RequestID, rootShapeID shape.ShapeID) InteractionDiffResult {
	return InteractionDiffResult{
		Kind:             KindMatchedRequestBodyContentType,
		InteractionTrail: trail,
		RequestsTrail:    SpecRequestBody(requestID),
		ShapeID:          rootShapeID,
	}
}

func UnmatchedRequestBodyContentType(trail InteractionTrail, pathID endpoint.PathID) InteractionDiffResult {
	return InteractionDiffResult{Kind: KindUnmatchedRequestBodyContentType, InteractionTrail: trail, RequestsTrail: SpecPath(pathID)}
}

func MatchedResponseBodyContentType(trail InteractionTrail, responseID endpoint.ResponseID, rootShapeID shape.ShapeID) InteractionDiffResult {
	return InteractionDiffResult{
		Kind:             KindMatchedResponseBodyContentType,
		InteractionTrail: trail,
		RequestsTrail:    SpecResponseBody(responseID),
		ShapeID:          rootShapeID,
	}
}

func UnmatchedResponseBodyContentType(trail InteractionTrail, pathID endpoint.PathID) InteractionDiffResult {
	return InteractionDiffResult{Kind: KindUnmatchedResponseBodyContentType, InteractionTrail: trail, RequestsTrail: SpecPath(pathID)}
}

// MarshalJSON renders only the fields relevant to the result's kind,
// camelCased: shapeId only accompanies a Matched* kind, hadQuery only
// UnmatchedQueryParameters, rather than every field flattened onto one
// object regardless of kind.
func (r InteractionDiffResult) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"kind":             r.Kind,
		"interactionTrail": r.InteractionTrail,
		"requestsTrail":    r.RequestsTrail,
	}
	switch r.Kind {
	case KindMatchedQueryParameters, KindMatchedRequestBodyContentType, KindMatchedResponseBodyContentType:
		out["shapeId"] = r.ShapeID
	case KindUnmatchedQueryParameters:
		out["hadQuery"] = r.HadQuery
	}
	return json.Marshal(out)
}
