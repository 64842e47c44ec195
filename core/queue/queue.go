package queue

import "time"

// TransferJob moves one document's bytes from the source document store to
// the destination store. Jobs are re-enqueued on failure, never dropped.
type TransferJob struct {
	// GetURL is the source document url.
	GetURL string
	// UploadURL is the destination upload url.
	UploadURL string
}

// Queue is the transfer-job queue shared between the processing pipeline and
// the document bridge. Push and Pop are safe for concurrent use.
type Queue struct {
	jobs chan TransferJob
}

// DefaultCapacity bounds the number of queued jobs before Push blocks.
const DefaultCapacity = 1024

// New creates a queue with the given capacity; capacity <= 0 uses the
// default.
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{jobs: make(chan TransferJob, capacity)}
}

// Push enqueues a job. When the queue is full it blocks until the bridge
// drains; backpressure instead of loss.
func (q *Queue) Push(job TransferJob) {
	q.jobs <- job
}

// Pop dequeues a job, waiting up to timeout. The second return value is
// false when the wait expired with an empty queue.
func (q *Queue) Pop(timeout time.Duration) (TransferJob, bool) {
	select {
	case job := <-q.jobs:
		return job, true
	case <-time.After(timeout):
		return TransferJob{}, false
	}
}

// Len returns the number of queued jobs.
func (q *Queue) Len() int {
	return len(q.jobs)
}
