package bookings

import (
	"context"
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// SlotReleaseWorker applies slot releases that the reservation saga could
// not apply in line.
type SlotReleaseWorker struct {
	log         *zap.Logger
	cfg         *config.InternalConfig
	queue       contracts.SlotReleaseQueue
	testUsecase contracts.TestUsecase
}

func NewSlotReleaseWorker(log *zap.Logger, cfg *config.InternalConfig, queue contracts.SlotReleaseQueue, testUsecase contracts.TestUsecase) *SlotReleaseWorker {
	return &SlotReleaseWorker{log: log, cfg: cfg, queue: queue, testUsecase: testUsecase}
}

// ProcessBatch drains up to the configured batch size and returns how many
// slots were restored.
func (w *SlotReleaseWorker) ProcessBatch(ctx context.Context) int {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	max := w.cfg.Worker.ReleaseMaxBatch
	if max <= 0 {
		max = 1
	}
	items, err := w.queue.FetchN(ctx, max)
	if err != nil {
		w.log.Warn("SlotReleaseWorker.ProcessBatch fetch failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0
	}

	restored := 0
	for _, item := range items {
		if w.processItem(ctx, item) {
			restored++
		}
	}

	if len(items) > 0 {
		w.log.Info("SlotReleaseWorker.ProcessBatch done",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingCountKey, len(items)),
			zap.Int("restored", restored),
		)
	}
	return restored
}

func (w *SlotReleaseWorker) processItem(ctx context.Context, item contracts.QueuedSlotRelease) bool {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	job := item.Job

	_, err := w.testUsecase.ReleaseSlot(ctx, job.TestID)
	switch {
	case err == nil:
		w.ack(ctx, item)
		return true
	case exceptions.HasErrorCode(err, constvars.ErrCodeNotFound):
		// the test is gone, there is no capacity left to restore
		w.log.Warn("SlotReleaseWorker.processItem test deleted, dropping release",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMessageIDKey, job.ID),
			zap.String(constvars.LoggingTestIDKey, job.TestID),
		)
		w.ack(ctx, item)
		return false
	}

	job.FailedCount++
	if job.FailedCount >= w.cfg.Worker.ReleaseMaxRetry {
		if e := w.queue.EnqueueToDeadQueue(ctx, job); e != nil {
			w.log.Error("SlotReleaseWorker.processItem enqueue to dead letter queue failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingMessageIDKey, job.ID),
				zap.Error(e),
			)
			return false
		}
		w.ack(ctx, item)
		w.log.Error("SlotReleaseWorker.processItem release moved to dead letter queue",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMessageIDKey, job.ID),
			zap.String(constvars.LoggingTestIDKey, job.TestID),
			zap.Int(constvars.LoggingFailedCountKey, job.FailedCount),
			zap.Error(err),
		)
		return false
	}

	if e := w.queue.Reenqueue(ctx, job); e != nil {
		w.log.Error("SlotReleaseWorker.processItem reenqueue failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMessageIDKey, job.ID),
			zap.Error(e),
		)
		return false
	}
	w.ack(ctx, item)
	w.log.Warn("SlotReleaseWorker.processItem release requeued",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMessageIDKey, job.ID),
		zap.Int(constvars.LoggingFailedCountKey, job.FailedCount),
		zap.Error(err),
	)
	return false
}

func (w *SlotReleaseWorker) ack(ctx context.Context, item contracts.QueuedSlotRelease) {
	if err := w.queue.Ack(ctx, item.DeliveryTag); err != nil {
		w.log.Error("SlotReleaseWorker.ack failed",
			zap.String(constvars.LoggingMessageIDKey, item.Job.ID),
			zap.Error(err),
		)
	}
}
