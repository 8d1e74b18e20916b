package specevent_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftcheck/specdiff/internal/specevent"
)

func TestDecodeShapeAddedWithDynamicParameterList(t *testing.T) {
	raw := []byte(`{"ShapeAdded": {"shapeId": "object_shape_1", "baseShapeId": "$object", "parameters": {"DynamicParameterList": {"shapeParameterIds": []}}, "name": ""}}`)

	var evt specevent.SpecEvent
	require.NoError(t, json.Unmarshal(raw, &evt))

	require.Equal(t, specevent.KindShapeAdded, evt.Kind)
	require.NotNil(t, evt.ShapeAdded)
	require.Equal(t, "object_shape_1", evt.ShapeAdded.ShapeID)
	require.NotNil(t, evt.ShapeAdded.Parameters.DynamicParameterList)
	require.Empty(t, evt.ShapeAdded.Parameters.DynamicParameterList.ShapeParameterIDs)
}

func TestDecodeFieldAddedFromShape(t *testing.T) {
	raw := []byte(`{"FieldAdded": {"fieldId": "field_1", "shapeId": "object_shape_1", "name": "isDone", "shapeDescriptor": {"FieldShapeFromShape": {"fieldId": "field_1", "shapeId": "boolean_shape_1"}}}}`)

	var evt specevent.SpecEvent
	require.NoError(t, json.Unmarshal(raw, &evt))

	require.Equal(t, specevent.KindFieldAdded, evt.Kind)
	require.NotNil(t, evt.FieldAdded.ShapeDescriptor.FromShape)
	require.Equal(t, "boolean_shape_1", evt.FieldAdded.ShapeDescriptor.FromShape.ShapeID)
}

func TestDecodeBatchCommitStarted(t *testing.T) {
	raw := []byte(`{"BatchCommitStarted": {"batchId": "batch-1", "parentId": "root", "commitMessage": "hi"}}`)

	var evt specevent.SpecEvent
	require.NoError(t, json.Unmarshal(raw, &evt))

	require.Equal(t, "batch-1", evt.BatchCommitStarted.BatchID)
	require.Equal(t, "root", evt.BatchCommitStarted.ParentID)
}

func TestDecodeUnknownKindFails(t *testing.T) {
	raw := []byte(`{"SomethingElse": {}}`)

	var evt specevent.SpecEvent
	require.Error(t, json.Unmarshal(raw, &evt))
}

func TestDecodeFailsOnAmbiguousTag(t *testing.T) {
	raw := []byte(`{"ShapeAdded": {}, "FieldAdded": {}}`)

	var evt specevent.SpecEvent
	require.Error(t, json.Unmarshal(raw, &evt))
}

func TestRoundTripMarshal(t *testing.T) {
	raw := []byte(`{"RequestAdded": {"requestId": "request_1", "pathId": "path_1", "httpMethod": "GET"}}`)

	var evt specevent.SpecEvent
	require.NoError(t, json.Unmarshal(raw, &evt))

	out, err := json.Marshal(evt)
	require.NoError(t, err)

	var roundTripped specevent.SpecEvent
	require.NoError(t, json.Unmarshal(out, &roundTripped))
	require.Equal(t, evt, roundTripped)
}
