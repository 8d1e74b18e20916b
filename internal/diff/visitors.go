package diff

import (
	"context"

	"github.com/driftcheck/specdiff/internal/endpoint"
	"github.com/driftcheck/specdiff/internal/projection"
)

// VisitorResults is the shared diff-result buffer the four pipeline stages
// append to. It is per-interaction, per-thread state: never reused across
// interactions without a fresh VisitorResults.
type VisitorResults struct {
	results []InteractionDiffResult
}

func (r *VisitorResults) push(result InteractionDiffResult) {
	r.results = append(r.results, result)
}

// Results returns the diffs collected so far, in emission order.
func (r *VisitorResults) Results() []InteractionDiffResult { return r.results }

// pathVisitor resolves whether the interaction's URL matches any known path
// template.
type pathVisitor struct {
	results *VisitorResults
}

func (v *pathVisitor) visit(interaction HTTPInteraction, pathID endpoint.PathID, resolved bool) {
	if resolved {
		return
	}
	trail := InteractionTrail{
		URLComponent(interaction.Request.Path),
		MethodComponent(interaction.Request.Method),
	}
	v.results.push(UnmatchedRequestURL(trail))
}

// queryParametersVisitor compares the interaction's query string against the
// path+method's declared QueryParameters descriptor.
type queryParametersVisitor struct {
	results *VisitorResults
}

func (v *queryParametersVisitor) visit(interaction HTTPInteraction, pathID endpoint.PathID, qp *endpoint.QueryParameters) {
	hadQuery := interaction.Request.Query != ""

	if qp != nil && qp.ShapeID != nil {
		trail := InteractionTrail{QueryParametersComponent()}
		v.results.push(MatchedQueryParameters(trail, qp.ID, *qp.ShapeID))
		return
	}

	trail := InteractionTrail{
		URLComponent(interaction.Request.Path),
		MethodComponent(interaction.Request.Method),
	}
	v.results.push(UnmatchedQueryParameters(trail, pathID, hadQuery))
}

// requestBodyVisitor compares the interaction's request body content type
// against each candidate Request descriptor's declared body, tracking which
// content types matched across possibly-multiple visits.
type requestBodyVisitor struct {
	results *VisitorResults
	matched map[string]bool
}

func newRequestBodyVisitor(results *VisitorResults) *requestBodyVisitor {
	return &requestBodyVisitor{results: results, matched: make(map[string]bool)}
}

func (v *requestBodyVisitor) visit(interaction HTTPInteraction, request *endpoint.Request) {
	body := interaction.Request.Body
	if bodyContentTypeMatches(request.Body, body) {
		v.matched[body.ContentType] = true
		if request.Body != nil {
			trail := InteractionTrail{RequestBodyComponent(body.ContentType)}
			v.results.push(MatchedRequestBodyContentType(trail, request.ID, request.Body.RootShapeID))
		}
	}
}

func (v *requestBodyVisitor) end(interaction HTTPInteraction, pathID endpoint.PathID, pathResolved bool) {
	if !pathResolved || len(v.matched) > 0 {
		return
	}
	trail := InteractionTrail{URLComponent(interaction.Request.Path), MethodComponent(interaction.Request.Method)}
	if ct := interaction.Request.Body.ContentType; ct != "" {
		trail = append(trail, RequestBodyComponent(ct))
	}
	v.results.push(UnmatchedRequestBodyContentType(trail, pathID))
}

// responseBodyVisitor is the response-side counterpart of requestBodyVisitor.
type responseBodyVisitor struct {
	results *VisitorResults
	matched map[string]bool
}

func newResponseBodyVisitor(results *VisitorResults) *responseBodyVisitor {
	return &responseBodyVisitor{results: results, matched: make(map[string]bool)}
}

func (v *responseBodyVisitor) visit(interaction HTTPInteraction, response *endpoint.Response) {
	body := interaction.Response.Body
	if bodyContentTypeMatches(response.Body, body) {
		v.matched[body.ContentType] = true
		if response.Body != nil {
			trail := InteractionTrail{ResponseBodyComponent(body.ContentType, interaction.Response.StatusCode)}
			v.results.push(MatchedResponseBodyContentType(trail, response.ID, response.Body.RootShapeID))
		}
	}
}

func (v *responseBodyVisitor) end(interaction HTTPInteraction, pathID endpoint.PathID, pathResolved bool) {
	if !pathResolved || len(v.matched) > 0 {
		return
	}
	var trail InteractionTrail
	if ct := interaction.Response.Body.ContentType; ct != "" {
		trail = InteractionTrail{MethodComponent(interaction.Request.Method), ResponseBodyComponent(ct, interaction.Response.StatusCode)}
	} else {
		trail = InteractionTrail{MethodComponent(interaction.Request.Method), ResponseStatusCodeComponent(interaction.Response.StatusCode)}
	}
	v.results.push(UnmatchedResponseBodyContentType(trail, pathID))
}

// bodyContentTypeMatches applies the shared Request/ResponseBody decision
// table: no spec body expectation is satisfied unless the actual body carries
// both a content type and a value; a spec body expectation is satisfied only
// by a matching content type.
func bodyContentTypeMatches(specBody *endpoint.BodyDescriptor, actual InteractionBody) bool {
	switch {
	case specBody == nil && actual.ContentType == "":
		return true
	case specBody == nil && actual.ContentType != "" && actual.Value == nil:
		return true
	case specBody == nil:
		return false
	case actual.ContentType == "":
		return false
	default:
		return specBody.HTTPContentType == actual.ContentType
	}
}

// Run drives the four-stage visitor pipeline — Path, QueryParameters,
// RequestBody, ResponseBody, in that fixed order — against a single
// interaction and returns every diff observed. ctx is checked once up
// front so a cancelled run doesn't walk a stale projection.
func Run(ctx context.Context, interaction HTTPInteraction, proj *projection.Result) []InteractionDiffResult {
	results := &VisitorResults{}
	if err := ctx.Err(); err != nil {
		return results.Results()
	}

	endpointProjection := proj.Endpoint
	segments := splitPathSegments(interaction.Request.Path)
	pathID, resolved := endpointProjection.ResolvePath(segments)

	(&pathVisitor{results: results}).visit(interaction, pathID, resolved)
	if !resolved {
		return results.Results()
	}

	qp, hasQP := endpointProjection.QueryParametersFor(pathID, interaction.Request.Method)
	var qpArg *endpoint.QueryParameters
	if hasQP {
		qpArg = qp
	}
	(&queryParametersVisitor{results: results}).visit(interaction, pathID, qpArg)

	requestVisitor := newRequestBodyVisitor(results)
	requests := endpointProjection.RequestsFor(pathID, interaction.Request.Method)
	for _, r := range requests {
		requestVisitor.visit(interaction, r)
	}
	requestVisitor.end(interaction, pathID, resolved)

	responseVisitor := newResponseBodyVisitor(results)
	responses := endpointProjection.ResponsesFor(pathID, interaction.Request.Method)
	for _, r := range responses {
		if r.HTTPStatusCode != interaction.Response.StatusCode {
			continue
		}
		responseVisitor.visit(interaction, r)
	}
	responseVisitor.end(interaction, pathID, resolved)

	return results.Results()
}
