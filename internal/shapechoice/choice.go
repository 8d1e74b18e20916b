// Package shapechoice maps raw shape.Choice values reached at a ShapeTrail's
// tip to the caller-facing tagged records used throughout diff: the concrete
// surface a shape presents for matching against JSON.
package shapechoice

import (
	"github.com/driftcheck/specdiff/internal/shape"
)

// JSONType is the JSON value kind a choice presents.
type JSONType string

const (
	JSONString    JSONType = "String"
	JSONNumber    JSONType = "Number"
	JSONBoolean   JSONType = "Boolean"
	JSONArray     JSONType = "Array"
	JSONObject    JSONType = "Object"
	JSONNull      JSONType = "Null"
	JSONUndefined JSONType = "Undefined"
)

// ShapeChoice is the tagged render of a shape.Choice. Exactly one of the
// payload fields is non-nil, selected by Kind.
type ShapeChoice struct {
	Kind ShapeChoiceKind

	Primitive *Primitive
	Object    *Object
	Array     *Array
}

type ShapeChoiceKind string

const (
	KindPrimitive ShapeChoiceKind = "Primitive"
	KindObject    ShapeChoiceKind = "Object"
	KindArray     ShapeChoiceKind = "Array"
	KindAny       ShapeChoiceKind = "Any"
	KindUnknown   ShapeChoiceKind = "Unknown"
)

type Primitive struct {
	ShapeID  shape.ShapeID
	JSONType JSONType
}

type ObjectField struct {
	Name    string
	FieldID shape.FieldID
	ShapeID shape.ShapeID
}

type Object struct {
	ShapeID  shape.ShapeID
	JSONType JSONType
	Fields   []ObjectField
}

type Array struct {
	ShapeID     shape.ShapeID
	JSONType    JSONType
	ItemShapeID shape.ShapeID
}

func newPrimitive(shapeID shape.ShapeID, jsonType JSONType) ShapeChoice {
	return ShapeChoice{Kind: KindPrimitive, Primitive: &Primitive{ShapeID: shapeID, JSONType: jsonType}}
}

// Queries renders a built shape projection's trail choices into tagged
// ShapeChoice records.
type Queries struct {
	shapeQueries *shape.Queries
}

// New wraps shape queries for choice rendering.
func New(shapeQueries *shape.Queries) *Queries {
	return &Queries{shapeQueries: shapeQueries}
}

// TrailChoices resolves a trail's tip and renders each raw choice reached
// there as a tagged ShapeChoice. Map, Identifier and Reference choices fail
// with *shape.NotImplementedError; a OneOf surviving choice expansion fails
// with *shape.UnreachableError.
func (q *Queries) TrailChoices(trail shape.ShapeTrail) ([]ShapeChoice, error) {
	choices, err := q.shapeQueries.ListTrailChoices(trail)
	if err != nil {
		return nil, err
	}

	out := make([]ShapeChoice, 0, len(choices))
	for _, c := range choices {
		rendered, err := q.render(c)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
	}
	return out, nil
}

func (q *Queries) render(c shape.Choice) (ShapeChoice, error) {
	switch c.CoreShapeKind {
	case shape.KindObject:
		fieldRows := q.shapeQueries.ResolveShapeFieldIDAndNames(c.ShapeID)
		fields := make([]ObjectField, 0, len(fieldRows))
		for _, row := range fieldRows {
			fieldShapeID, ok := q.shapeQueries.ResolveFieldShapeNode(row.FieldID)
			if !ok {
				return ShapeChoice{}, &shape.UnreachableError{ShapeID: c.ShapeID}
			}
			fields = append(fields, ObjectField{Name: row.Name, FieldID: row.FieldID, ShapeID: fieldShapeID})
		}
		return ShapeChoice{Kind: KindObject, Object: &Object{ShapeID: c.ShapeID, JSONType: JSONObject, Fields: fields}}, nil

	case shape.KindList:
		paramID, ok := c.CoreShapeKind.GetParameterDescriptor()
		if !ok {
			return ShapeChoice{}, &shape.UnreachableError{ShapeID: c.ShapeID}
		}
		itemShapeID, ok := q.shapeQueries.ResolveParameterToShape(c.ShapeID, shape.ParameterID(paramID))
		if !ok {
			return ShapeChoice{}, &shape.UnreachableError{ShapeID: c.ShapeID}
		}
		return ShapeChoice{Kind: KindArray, Array: &Array{ShapeID: c.ShapeID, JSONType: JSONArray, ItemShapeID: itemShapeID}}, nil

	case shape.KindMap, shape.KindIdentifier, shape.KindReference:
		return ShapeChoice{}, &shape.NotImplementedError{Kind: c.CoreShapeKind}

	case shape.KindOneOf:
		return ShapeChoice{}, &shape.UnreachableError{ShapeID: c.ShapeID}

	case shape.KindAny:
		return ShapeChoice{Kind: KindAny}, nil

	case shape.KindUnknown:
		return ShapeChoice{Kind: KindUnknown}, nil

	case shape.KindString:
		return newPrimitive(c.ShapeID, JSONString), nil
	case shape.KindNumber:
		return newPrimitive(c.ShapeID, JSONNumber), nil
	case shape.KindBoolean:
		return newPrimitive(c.ShapeID, JSONBoolean), nil
	case shape.KindNullable:
		return newPrimitive(c.ShapeID, JSONNull), nil
	case shape.KindOptional:
		return newPrimitive(c.ShapeID, JSONUndefined), nil

	default:
		return ShapeChoice{}, &shape.UnreachableError{ShapeID: c.ShapeID}
	}
}
