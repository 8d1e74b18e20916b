// Package chunk classifies named bags of spec events into root, batch, or
// unknown chunks, and orders them into a deterministic replay sequence.
package chunk

import "github.com/driftcheck/specdiff/internal/specevent"

// Kind is the discriminant of a classified chunk.
type Kind string

const (
	KindRoot    Kind = "Root"
	KindBatch   Kind = "Batch"
	KindUnknown Kind = "Unknown"
)

// RootChunkID is the fixed id assigned to the bootstrap chunk.
const RootChunkID = "root"

// Chunk is a named, ordered sequence of spec events, classified as Root,
// Batch, or Unknown.
type Chunk struct {
	Kind Kind

	ID       string // "root" for Root, batch_id for Batch, "" for Unknown
	Name     string
	ParentID string // only meaningful for Batch
	Reason   string // only set for Unknown

	events []specevent.SpecEvent
}

// Classify turns a named bag of events into a classified Chunk. is_root
// forces Root regardless of the events' contents; otherwise a chunk is a
// Batch only if its first event is BatchCommitStarted carrying both a
// batch id and a parent id, and Unknown otherwise.
func Classify(name string, isRoot bool, events []specevent.SpecEvent) Chunk {
	if isRoot {
		return Chunk{Kind: KindRoot, ID: RootChunkID, Name: name, events: events}
	}

	if len(events) > 0 && events[0].Kind == specevent.KindBatchCommitStarted {
		started := events[0].BatchCommitStarted
		if started.BatchID != "" && started.ParentID != "" {
			return Chunk{
				Kind:     KindBatch,
				ID:       started.BatchID,
				Name:     name,
				ParentID: started.ParentID,
				events:   events,
			}
		}
	}

	return Chunk{
		Kind:   KindUnknown,
		Name:   name,
		Reason: "Chunk does not start with a BatchCommitStarted with batchId and parentId",
		events: events,
	}
}

// Events returns the chunk's events in insertion order.
func (c Chunk) Events() []specevent.SpecEvent { return c.events }
