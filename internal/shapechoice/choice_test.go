package shapechoice_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftcheck/specdiff/internal/shape"
	"github.com/driftcheck/specdiff/internal/shapechoice"
	"github.com/driftcheck/specdiff/internal/specevent"
)

func buildS1() *shape.Projection {
	p := shape.NewProjection()
	p.Apply(specevent.SpecEvent{Kind: specevent.KindShapeAdded, ShapeAdded: &specevent.ShapeAdded{
		ShapeID: "object_shape_1", BaseShapeID: "$object",
		Parameters: specevent.ShapeParametersDescriptor{NoParameterList: true},
	}})
	p.Apply(specevent.SpecEvent{Kind: specevent.KindShapeAdded, ShapeAdded: &specevent.ShapeAdded{
		ShapeID: "boolean_shape_1", BaseShapeID: "$boolean",
		Parameters: specevent.ShapeParametersDescriptor{NoParameterList: true},
	}})
	p.Apply(specevent.SpecEvent{Kind: specevent.KindFieldAdded, FieldAdded: &specevent.FieldAdded{
		FieldID: "field_1", ShapeID: "object_shape_1", Name: "isDone",
		ShapeDescriptor: specevent.FieldShapeDescriptor{
			FromShape: &specevent.FieldShapeFromShape{FieldID: "field_1", ShapeID: "boolean_shape_1"},
		},
	}})
	return p
}

func TestTrailChoicesForObjectShape(t *testing.T) {
	p := buildS1()
	q := shapechoice.New(shape.NewQueries(p))

	choices, err := q.TrailChoices(shape.ShapeTrail{RootShapeID: "object_shape_1"})
	require.NoError(t, err)
	require.Len(t, choices, 1)

	obj := choices[0]
	require.Equal(t, shapechoice.KindObject, obj.Kind)
	require.Equal(t, shapechoice.JSONObject, obj.Object.JSONType)
	require.Equal(t, []shapechoice.ObjectField{
		{Name: "isDone", FieldID: "field_1", ShapeID: "boolean_shape_1"},
	}, obj.Object.Fields)
}

func TestTrailChoicesMapIsNotImplemented(t *testing.T) {
	p := shape.NewProjection()
	p.Apply(specevent.SpecEvent{Kind: specevent.KindShapeAdded, ShapeAdded: &specevent.ShapeAdded{
		ShapeID: "map_shape_1", BaseShapeID: "$map",
		Parameters: specevent.ShapeParametersDescriptor{NoParameterList: true},
	}})
	q := shapechoice.New(shape.NewQueries(p))

	_, err := q.TrailChoices(shape.ShapeTrail{RootShapeID: "map_shape_1"})
	require.Error(t, err)
	require.IsType(t, &shape.NotImplementedError{}, err)
}
