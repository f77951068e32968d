package contracts

import (
	"context"
	"mediscan-service/internal/app/models"
)

// QueuedSlotRelease is a fetched delivery and its decoded job.
type QueuedSlotRelease struct {
	DeliveryTag uint64
	Job         models.SlotReleaseJob
}

type SlotReleaseQueue interface {
	Enqueue(ctx context.Context, job models.SlotReleaseJob) error
	Reenqueue(ctx context.Context, job models.SlotReleaseJob) error
	EnqueueToDeadQueue(ctx context.Context, job models.SlotReleaseJob) error
	FetchN(ctx context.Context, max int) ([]QueuedSlotRelease, error)
	Ack(ctx context.Context, deliveryTag uint64) error
}
