package testutil

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"sync"
	"time"

	"github.com/google/uuid"
)

type SlotReleaseQueue struct {
	mu      sync.Mutex
	ready   []contracts.QueuedSlotRelease
	unacked map[uint64]models.SlotReleaseJob
	dead    []models.SlotReleaseJob
	nextTag uint64

	// EnqueueErr makes every publish fail while set.
	EnqueueErr error
}

var (
	_ contracts.SlotReleaseQueue = (*SlotReleaseQueue)(nil)
	_ contracts.SlotReleaser     = (*SlotReleaseQueue)(nil)
)

func NewSlotReleaseQueue() *SlotReleaseQueue {
	return &SlotReleaseQueue{unacked: map[uint64]models.SlotReleaseJob{}}
}

// Pending returns jobs waiting to be fetched.
func (q *SlotReleaseQueue) Pending() []models.SlotReleaseJob {
	q.mu.Lock()
	defer q.mu.Unlock()

	jobs := make([]models.SlotReleaseJob, 0, len(q.ready))
	for _, item := range q.ready {
		jobs = append(jobs, item.Job)
	}
	return jobs
}

func (q *SlotReleaseQueue) Dead() []models.SlotReleaseJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.SlotReleaseJob(nil), q.dead...)
}

func (q *SlotReleaseQueue) Unacked() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.unacked)
}

func (q *SlotReleaseQueue) EnqueueRelease(ctx context.Context, testID, reason string) error {
	return q.Enqueue(ctx, models.SlotReleaseJob{
		ID:        uuid.NewString(),
		TestID:    testID,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	})
}

func (q *SlotReleaseQueue) Enqueue(ctx context.Context, job models.SlotReleaseJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.EnqueueErr != nil {
		return q.EnqueueErr
	}
	q.nextTag++
	q.ready = append(q.ready, contracts.QueuedSlotRelease{DeliveryTag: q.nextTag, Job: job})
	return nil
}

func (q *SlotReleaseQueue) Reenqueue(ctx context.Context, job models.SlotReleaseJob) error {
	return q.Enqueue(ctx, job)
}

func (q *SlotReleaseQueue) EnqueueToDeadQueue(ctx context.Context, job models.SlotReleaseJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.EnqueueErr != nil {
		return q.EnqueueErr
	}
	q.dead = append(q.dead, job)
	return nil
}

func (q *SlotReleaseQueue) FetchN(ctx context.Context, max int) ([]contracts.QueuedSlotRelease, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if max <= 0 {
		max = 1
	}
	if max > len(q.ready) {
		max = len(q.ready)
	}
	items := append([]contracts.QueuedSlotRelease(nil), q.ready[:max]...)
	q.ready = q.ready[max:]
	for _, item := range items {
		q.unacked[item.DeliveryTag] = item.Job
	}
	return items, nil
}

func (q *SlotReleaseQueue) Ack(ctx context.Context, deliveryTag uint64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.unacked, deliveryTag)
	return nil
}
