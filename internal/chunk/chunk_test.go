package chunk_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftcheck/specdiff/internal/chunk"
	"github.com/driftcheck/specdiff/internal/specevent"
)

func mustParseEvents(t *testing.T, raw string) []specevent.SpecEvent {
	t.Helper()
	var events []specevent.SpecEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &events))
	return events
}

func TestClassifyRoot(t *testing.T) {
	events := mustParseEvents(t, `[
		{"PathComponentAdded": {"pathId": "path_1","parentPathId": "root","name": "todos"}},
		{"ContributionAdded": {"id": "path_1.GET","key": "purpose","value": "todos"}}
	]`)

	c := chunk.Classify("specification.json", true, events)
	require.Equal(t, chunk.KindRoot, c.Kind)
	require.Equal(t, "root", c.ID)
	require.Len(t, c.Events(), 2)
}

func TestClassifyBatch(t *testing.T) {
	events := mustParseEvents(t, `[
		{"BatchCommitStarted": {"batchId": "batch-1", "parentId": "root", "commitMessage": "Add Request and Response for GET /todos"}},
		{"RequestAdded": {"requestId": "request_1","pathId": "path_1","httpMethod": "GET"}},
		{"ResponseAddedByPathAndMethod": {"responseId": "response_1", "pathId": "path_1", "httpMethod": "GET", "httpStatusCode": 200}},
		{"BatchCommitEnded": {"batchId": "batch-1"}}
	]`)

	c := chunk.Classify("0001.json", false, events)
	require.Equal(t, chunk.KindBatch, c.Kind)
	require.Equal(t, "batch-1", c.ID)
	require.Equal(t, "root", c.ParentID)
}

func TestClassifyUnknown(t *testing.T) {
	events := mustParseEvents(t, `[
		{"ContributionAdded": {"id": "path_1.GET","key": "purpose","value": "todos"}}
	]`)

	c := chunk.Classify("stray.json", false, events)
	require.Equal(t, chunk.KindUnknown, c.Kind)
	require.NotEmpty(t, c.Reason)
}

func TestClassifyEventCountPreservesOrder(t *testing.T) {
	events := mustParseEvents(t, `[
		{"PathComponentAdded": {"pathId": "path_1","parentPathId": "root","name": "todos"}},
		{"ContributionAdded": {"id": "path_1.GET","key": "purpose","value": "todos"}}
	]`)

	c := chunk.Classify("specification.json", true, events)
	require.Len(t, c.Events(), len(events))
	require.Equal(t, events, c.Events())
}

func TestOrderS1RootAndTwoBatches(t *testing.T) {
	rootEvents := mustParseEvents(t, `[
		{"PathComponentAdded": {"pathId": "path_1","parentPathId": "root","name": "todos"}},
		{"ContributionAdded": {"id": "path_1.GET","key": "purpose","value": "todos"}}
	]`)
	batch1Events := mustParseEvents(t, `[
		{"BatchCommitStarted": {"batchId": "batch-1", "parentId": "root", "commitMessage": "Add Request and Response for GET /todos"}},
		{"RequestAdded": {"requestId": "request_1","pathId": "path_1","httpMethod": "GET"}},
		{"ResponseAddedByPathAndMethod": {"responseId": "response_1", "pathId": "path_1", "httpMethod": "GET", "httpStatusCode": 200}},
		{"BatchCommitEnded": {"batchId": "batch-1"}}
	]`)
	batch2Events := mustParseEvents(t, `[
		{"BatchCommitStarted": {"batchId": "batch-2", "parentId": "batch-1", "commitMessage": "dsasa"}},
		{"ShapeAdded": {"shapeId": "object_shape_1", "baseShapeId": "$object", "parameters": {"DynamicParameterList": {"shapeParameterIds": []}}, "name": ""}},
		{"ShapeAdded": {"shapeId": "boolean_shape_1","baseShapeId": "$boolean","parameters": {"DynamicParameterList": {"shapeParameterIds": []}},"name": ""}},
		{"FieldAdded": {"fieldId": "field_1","shapeId": "object_shape_1","name": "isDone","shapeDescriptor": {"FieldShapeFromShape": {"fieldId": "field_1","shapeId": "boolean_shape_1"}}}},
		{"ResponseBodySet": {"responseId": "response_1","bodyDescriptor": {"httpContentType": "application/json","shapeId": "object_shape_1","isRemoved": false}}},
		{"BatchCommitEnded": {"batchId": "batch-2"}}
	]`)

	// Supplied out of dependency order: 0002.json before 0001.json.
	chunks := []chunk.Chunk{
		chunk.Classify("0002.json", false, batch2Events),
		chunk.Classify("specification.json", true, rootEvents),
		chunk.Classify("0001.json", false, batch1Events),
	}

	ordered, err := chunk.Order(chunks)
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	require.Equal(t, chunk.KindRoot, ordered[0].Kind)
	require.Equal(t, "batch-1", ordered[1].ID)
	require.Equal(t, "batch-2", ordered[2].ID)
	require.Equal(t, "batch-1", ordered[2].ParentID)
}

func TestOrderErrorsOnOrphanedBatch(t *testing.T) {
	rootEvents := mustParseEvents(t, `[
		{"PathComponentAdded": {"pathId": "path_1","parentPathId": "root","name": "todos"}}
	]`)
	orphanEvents := mustParseEvents(t, `[
		{"BatchCommitStarted": {"batchId": "batch-9", "parentId": "batch-missing", "commitMessage": "orphan"}},
		{"BatchCommitEnded": {"batchId": "batch-9"}}
	]`)

	chunks := []chunk.Chunk{
		chunk.Classify("specification.json", true, rootEvents),
		chunk.Classify("0009.json", false, orphanEvents),
	}

	_, err := chunk.Order(chunks)
	require.Error(t, err)
	require.Contains(t, err.Error(), "batch-9")
}
