package shape

import "fmt"

// NotImplementedError is returned when a query traverses a shape kind this
// engine does not yet support: Map, Identifier, Reference.
type NotImplementedError struct {
	Kind Kind
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("shape query: %s is not implemented", e.Kind)
}

// UnreachableError is returned when a OneOf shape survives choice expansion
// to a trail tip, or when branch resolution cycles back on itself. Either
// case indicates a projection bug, not a caller error.
type UnreachableError struct {
	ShapeID ShapeID
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("shape query: shape %q is unreachable as a trail tip", e.ShapeID)
}

// StepKind is the discriminant of a single ShapeTrail step.
type StepKind string

const (
	StepObjectField    StepKind = "ObjectField"
	StepListItem       StepKind = "ListItem"
	StepOneOfBranch    StepKind = "OneOfBranch"
	StepNullableUnwrap StepKind = "NullableUnwrap"
	StepOptionalUnwrap StepKind = "OptionalUnwrap"
)

// TrailStep is one hop in a ShapeTrail.
type TrailStep struct {
	Kind StepKind

	FieldID       FieldID // ObjectField
	BranchShapeID ShapeID // OneOfBranch
}

// ShapeTrail is an ordered path from a root shape: object-field descent,
// list-item descent, oneOf-branch selection, nullable/optional unwrap.
type ShapeTrail struct {
	RootShapeID ShapeID
	Steps       []TrailStep
}

func ObjectFieldStep(fieldID FieldID) TrailStep {
	return TrailStep{Kind: StepObjectField, FieldID: fieldID}
}

func ListItemStep() TrailStep { return TrailStep{Kind: StepListItem} }

func OneOfBranchStep(branchShapeID ShapeID) TrailStep {
	return TrailStep{Kind: StepOneOfBranch, BranchShapeID: branchShapeID}
}

func NullableUnwrapStep() TrailStep { return TrailStep{Kind: StepNullableUnwrap} }

func OptionalUnwrapStep() TrailStep { return TrailStep{Kind: StepOptionalUnwrap} }

// Choice is a concrete shape reached at a trail tip, paired with the kind
// that determines how trail_choices renders it.
type Choice struct {
	ShapeID       ShapeID
	CoreShapeKind Kind
}

// Queries is read-only navigation over a built Projection: resolving field
// shapes, parameter bindings, and trail choices.
type Queries struct {
	p *Projection
}

// NewQueries wraps a built projection for querying.
func NewQueries(p *Projection) *Queries { return &Queries{p: p} }

// ResolveShapeFieldIDAndNames returns an object shape's fields in
// declaration order as (fieldId, name) pairs.
func (q *Queries) ResolveShapeFieldIDAndNames(shapeID ShapeID) []FieldIDAndName {
	s, ok := q.p.Shapes[shapeID]
	if !ok {
		return nil
	}
	out := make([]FieldIDAndName, 0, len(s.Fields))
	for _, fid := range s.Fields {
		if f, ok := q.p.Fields[fid]; ok {
			out = append(out, FieldIDAndName{FieldID: fid, Name: f.Name})
		}
	}
	return out
}

// FieldIDAndName is a single result row of ResolveShapeFieldIDAndNames.
type FieldIDAndName struct {
	FieldID FieldID
	Name    string
}

// ResolveFieldShapeNode resolves the shape a field ultimately points at,
// following a FromParameter descriptor through the enclosing shape's
// parameter binding when necessary.
func (q *Queries) ResolveFieldShapeNode(fieldID FieldID) (ShapeID, bool) {
	f, ok := q.p.Fields[fieldID]
	if !ok {
		return "", false
	}
	switch {
	case f.Descriptor.FromShape != nil:
		return *f.Descriptor.FromShape, true
	case f.Descriptor.FromParameter != nil:
		return q.ResolveParameterToShape(f.ShapeID, *f.Descriptor.FromParameter)
	default:
		return "", false
	}
}

// ResolveParameterToShape resolves a shape parameter to the concrete shape
// bound to it. Parameters bound InField, left unbound, or bound through a
// deferred ParameterProvider resolve to (_, false): the binding defers to a
// context this read-only query has no way to recover on its own.
func (q *Queries) ResolveParameterToShape(shapeID ShapeID, paramID ParameterID) (ShapeID, bool) {
	param, ok := q.p.Parameters[ParamKey{ShapeID: shapeID, ParamID: paramID}]
	if !ok || param.Binding == nil || param.Binding.InShape == nil {
		return "", false
	}
	provider := param.Binding.InShape.Provider
	if provider.Shape == nil {
		return "", false
	}
	return *provider.Shape, true
}

// resolveTrail walks a ShapeTrail from its root and returns the shape id at
// its tip.
func (q *Queries) resolveTrail(trail ShapeTrail) (ShapeID, error) {
	current := trail.RootShapeID
	for _, step := range trail.Steps {
		s, ok := q.p.Shapes[current]
		if !ok {
			return "", &UnreachableError{ShapeID: current}
		}
		switch step.Kind {
		case StepObjectField:
			shapeID, ok := q.ResolveFieldShapeNode(step.FieldID)
			if !ok {
				return "", &UnreachableError{ShapeID: current}
			}
			current = shapeID
		case StepListItem:
			shapeID, ok := q.resolveSoleParameter(s)
			if !ok {
				return "", &UnreachableError{ShapeID: current}
			}
			current = shapeID
		case StepOneOfBranch:
			current = step.BranchShapeID
		case StepNullableUnwrap, StepOptionalUnwrap:
			shapeID, ok := q.resolveSoleParameter(s)
			if !ok {
				return "", &UnreachableError{ShapeID: current}
			}
			current = shapeID
		}
	}
	return current, nil
}

func (q *Queries) resolveSoleParameter(s *Shape) (ShapeID, bool) {
	if len(s.Parameters) == 0 {
		return "", false
	}
	return q.ResolveParameterToShape(s.ID, s.Parameters[0])
}

// ListTrailChoices lists the concrete choices reachable at a trail's tip,
// expanding OneOf into one choice per branch so OneOf itself is never
// returned. Cyclic OneOf expansion fails with UnreachableError.
func (q *Queries) ListTrailChoices(trail ShapeTrail) ([]Choice, error) {
	tip, err := q.resolveTrail(trail)
	if err != nil {
		return nil, err
	}
	return q.expandChoices(tip, make(map[ShapeID]bool))
}

func (q *Queries) expandChoices(shapeID ShapeID, visiting map[ShapeID]bool) ([]Choice, error) {
	s, ok := q.p.Shapes[shapeID]
	if !ok {
		return nil, &UnreachableError{ShapeID: shapeID}
	}
	if s.Kind != KindOneOf {
		return []Choice{{ShapeID: shapeID, CoreShapeKind: s.Kind}}, nil
	}

	if visiting[shapeID] {
		return nil, &UnreachableError{ShapeID: shapeID}
	}
	visiting[shapeID] = true
	defer delete(visiting, shapeID)

	var out []Choice
	for _, branchParamID := range s.Parameters {
		branchShapeID, ok := q.ResolveParameterToShape(shapeID, branchParamID)
		if !ok {
			return nil, &UnreachableError{ShapeID: shapeID}
		}
		branchChoices, err := q.expandChoices(branchShapeID, visiting)
		if err != nil {
			return nil, err
		}
		out = append(out, branchChoices...)
	}
	return out, nil
}
