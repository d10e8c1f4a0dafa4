package workspaceindex

import "github.com/jbearak/rlsp/location"

// boundedQueue is a FIFO of pending (not-yet-started) files with
// set-based deduplication and a fixed maximum size, per spec.md §4.I:
// "the indexer enforces a queue with set-based deduplication and a
// configurable max size; when the max is exceeded, the oldest
// non-started entries are dropped."
//
// Every entry held in pending is by definition non-started — a worker
// removes an entry from the queue at the moment it starts processing it
// — so "drop the oldest non-started entry" is simply "drop the front of
// the FIFO".
type boundedQueue struct {
	maxSize int
	pending []location.FileID
	queued  map[location.FileID]bool
	dropped []location.FileID
}

func newBoundedQueue(maxSize int) *boundedQueue {
	if maxSize < 1 {
		maxSize = 1
	}
	return &boundedQueue{
		maxSize: maxSize,
		queued:  make(map[location.FileID]bool),
	}
}

// enqueue adds file to the back of the queue unless it is already
// queued. Returns the file dropped to stay within maxSize, if any, so
// the caller can log it.
func (q *boundedQueue) enqueue(file location.FileID) (dropped location.FileID, didDrop bool) {
	if q.queued[file] {
		return location.FileID{}, false
	}
	q.pending = append(q.pending, file)
	q.queued[file] = true

	if len(q.pending) <= q.maxSize {
		return location.FileID{}, false
	}

	oldest := q.pending[0]
	q.pending = q.pending[1:]
	delete(q.queued, oldest)
	return oldest, true
}

// dequeue removes and returns the file at the front of the queue.
func (q *boundedQueue) dequeue() (location.FileID, bool) {
	if len(q.pending) == 0 {
		return location.FileID{}, false
	}
	file := q.pending[0]
	q.pending = q.pending[1:]
	delete(q.queued, file)
	return file, true
}

func (q *boundedQueue) len() int {
	return len(q.pending)
}
