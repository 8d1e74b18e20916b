package shape_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftcheck/specdiff/internal/shape"
	"github.com/driftcheck/specdiff/internal/specevent"
)

func shapeAdded(id, baseShapeID, name string) specevent.SpecEvent {
	return specevent.SpecEvent{
		Kind: specevent.KindShapeAdded,
		ShapeAdded: &specevent.ShapeAdded{
			ShapeID:     id,
			BaseShapeID: baseShapeID,
			Name:        name,
			Parameters:  specevent.ShapeParametersDescriptor{NoParameterList: true},
		},
	}
}

func fieldAddedFromShape(fieldID, shapeID, name, targetShapeID string) specevent.SpecEvent {
	return specevent.SpecEvent{
		Kind: specevent.KindFieldAdded,
		FieldAdded: &specevent.FieldAdded{
			FieldID: fieldID,
			ShapeID: shapeID,
			Name:    name,
			ShapeDescriptor: specevent.FieldShapeDescriptor{
				FromShape: &specevent.FieldShapeFromShape{FieldID: fieldID, ShapeID: targetShapeID},
			},
		},
	}
}

func TestApplyShapeAddedDeclaresListItemParameter(t *testing.T) {
	p := shape.NewProjection()
	p.Apply(shapeAdded("list_shape_1", "$list", ""))

	s := p.Shapes[shape.ShapeID("list_shape_1")]
	require.NotNil(t, s)
	require.Equal(t, shape.KindList, s.Kind)
	require.Equal(t, []shape.ParameterID{"$listItem"}, s.Parameters)

	key := shape.ParamKey{ShapeID: "list_shape_1", ParamID: "$listItem"}
	require.Contains(t, p.Parameters, key)
}

func TestTwoListShapesDoNotCollideOnListItem(t *testing.T) {
	p := shape.NewProjection()
	p.Apply(shapeAdded("list_shape_1", "$list", ""))
	p.Apply(shapeAdded("list_shape_2", "$list", ""))

	p.Apply(specevent.SpecEvent{
		Kind: specevent.KindShapeParameterBindingSet,
		ShapeParameterBindingSet: &specevent.ShapeParameterBindingSet{
			ShapeID:              "list_shape_1",
			ConsumingParameterID: "$listItem",
			ProviderDescriptor:   specevent.ProviderDescriptor{ShapeProvider: &specevent.ShapeProvider{ShapeID: "string_shape_1"}},
		},
	})
	p.Apply(shapeAdded("string_shape_1", "$string", ""))
	p.Apply(shapeAdded("boolean_shape_1", "$boolean", ""))
	p.Apply(specevent.SpecEvent{
		Kind: specevent.KindShapeParameterBindingSet,
		ShapeParameterBindingSet: &specevent.ShapeParameterBindingSet{
			ShapeID:              "list_shape_2",
			ConsumingParameterID: "$listItem",
			ProviderDescriptor:   specevent.ProviderDescriptor{ShapeProvider: &specevent.ShapeProvider{ShapeID: "boolean_shape_1"}},
		},
	})

	q := shape.NewQueries(p)
	item1, ok := q.ResolveParameterToShape("list_shape_1", "$listItem")
	require.True(t, ok)
	require.Equal(t, shape.ShapeID("string_shape_1"), item1)

	item2, ok := q.ResolveParameterToShape("list_shape_2", "$listItem")
	require.True(t, ok)
	require.Equal(t, shape.ShapeID("boolean_shape_1"), item2)
}

func TestApplyFieldAddedWarnsOnMissingShape(t *testing.T) {
	p := shape.NewProjection()
	p.Apply(fieldAddedFromShape("field_1", "object_shape_1", "isDone", "boolean_shape_1"))

	require.Empty(t, p.Fields)
	require.Len(t, p.Warnings(), 1)
}

func TestApplyShapeAddedWarnsOnDuplicate(t *testing.T) {
	p := shape.NewProjection()
	p.Apply(shapeAdded("object_shape_1", "$object", ""))
	p.Apply(shapeAdded("object_shape_1", "$object", ""))

	require.Len(t, p.Warnings(), 1)
}

func TestS1Fixture(t *testing.T) {
	p := shape.NewProjection()
	p.Apply(shapeAdded("object_shape_1", "$object", ""))
	p.Apply(shapeAdded("boolean_shape_1", "$boolean", ""))
	p.Apply(fieldAddedFromShape("field_1", "object_shape_1", "isDone", "boolean_shape_1"))

	require.Empty(t, p.Warnings())

	q := shape.NewQueries(p)
	rows := q.ResolveShapeFieldIDAndNames("object_shape_1")
	require.Len(t, rows, 1)
	require.Equal(t, "isDone", rows[0].Name)

	fieldShapeID, ok := q.ResolveFieldShapeNode(rows[0].FieldID)
	require.True(t, ok)
	require.Equal(t, shape.ShapeID("boolean_shape_1"), fieldShapeID)
}
