package releasequeue

import (
	"context"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/testutil"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pendingConfirm resolves once the broker answers for one publish.
type pendingConfirm struct {
	answer chan bool
}

func newPendingConfirm() *pendingConfirm {
	return &pendingConfirm{answer: make(chan bool, 1)}
}

func (c *pendingConfirm) WaitContext(ctx context.Context) (bool, error) {
	select {
	case acked := <-c.answer:
		return acked, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

type published struct {
	queue string
	body  []byte
}

type fakeBroker struct {
	mu         sync.Mutex
	confirms   []*pendingConfirm
	published  []published
	deliveries []amqp.Delivery
	acked      []uint64
	rejected   []uint64
	publishErr error
}

func (b *fakeBroker) publish(ctx context.Context, queue string, msg amqp.Publishing) (confirmation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.publishErr != nil {
		return nil, b.publishErr
	}
	b.published = append(b.published, published{queue: queue, body: msg.Body})
	if len(b.confirms) == 0 {
		confirm := newPendingConfirm()
		confirm.answer <- true
		return confirm, nil
	}
	confirm := b.confirms[0]
	b.confirms = b.confirms[1:]
	return confirm, nil
}

func (b *fakeBroker) get(queue string) (amqp.Delivery, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.deliveries) == 0 {
		return amqp.Delivery{}, false, nil
	}
	d := b.deliveries[0]
	b.deliveries = b.deliveries[1:]
	return d, true, nil
}

func (b *fakeBroker) ack(deliveryTag uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.acked = append(b.acked, deliveryTag)
	return nil
}

func (b *fakeBroker) reject(deliveryTag uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejected = append(b.rejected, deliveryTag)
	return nil
}

func TestPublish_LateConfirmDoesNotSatisfyNextPublish(t *testing.T) {
	first, second := newPendingConfirm(), newPendingConfirm()
	b := &fakeBroker{confirms: []*pendingConfirm{first, second}}
	s := newService(b, zap.NewNop(), "slot-release")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := s.EnqueueRelease(ctx, "65f1c0de1111111111111111", "booking_insert_failed")
	require.Error(t, err)

	// the first message is acked after its caller gave up, the second is nacked
	first.answer <- true
	second.answer <- false

	err = s.EnqueueRelease(context.Background(), "65f1c0de2222222222222222", "booking_cancelled")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slot-release")
}

func TestPublish_ConfirmedRelease(t *testing.T) {
	b := &fakeBroker{}
	s := newService(b, zap.NewNop(), "slot-release")

	err := s.EnqueueRelease(context.Background(), "65f1c0de1111111111111111", "booking_cancelled")
	require.NoError(t, err)

	require.Len(t, b.published, 1)
	assert.Equal(t, "slot-release", b.published[0].queue)

	var job models.SlotReleaseJob
	require.NoError(t, json.Unmarshal(b.published[0].body, &job))
	assert.Equal(t, "65f1c0de1111111111111111", job.TestID)
	assert.NotEmpty(t, job.ID)
}

func TestFetchN_PoisonMessage(t *testing.T) {
	valid, err := json.Marshal(models.SlotReleaseJob{ID: "job-1", TestID: "65f1c0de1111111111111111"})
	require.NoError(t, err)

	newBroker := func() *fakeBroker {
		return &fakeBroker{deliveries: []amqp.Delivery{
			{DeliveryTag: 1, Body: []byte("{not json")},
			{DeliveryTag: 2, Body: valid},
		}}
	}

	t.Run("dead lettered then acked", func(t *testing.T) {
		b := newBroker()
		s := newService(b, zap.NewNop(), "slot-release")

		items, err := s.FetchN(context.Background(), 5)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, uint64(2), items[0].DeliveryTag)
		assert.Equal(t, "job-1", items[0].Job.ID)

		require.Len(t, b.published, 1)
		assert.Equal(t, "slot-release.dlq", b.published[0].queue)
		assert.Equal(t, []byte("{not json"), b.published[0].body)
		assert.Equal(t, []uint64{1}, b.acked)
		assert.Empty(t, b.rejected)
	})

	t.Run("dead letter publish fails", func(t *testing.T) {
		b := newBroker()
		b.publishErr = testutil.ErrInjected
		s := newService(b, zap.NewNop(), "slot-release")

		items, err := s.FetchN(context.Background(), 5)
		require.NoError(t, err)
		require.Len(t, items, 1)

		assert.Empty(t, b.acked, "poison message is never acked without a dead letter copy")
		assert.Equal(t, []uint64{1}, b.rejected)
	})

	t.Run("dead letter nacked by broker", func(t *testing.T) {
		nacked := newPendingConfirm()
		nacked.answer <- false
		b := newBroker()
		b.confirms = []*pendingConfirm{nacked}
		s := newService(b, zap.NewNop(), "slot-release")

		_, err := s.FetchN(context.Background(), 5)
		require.NoError(t, err)

		assert.Empty(t, b.acked)
		assert.Equal(t, []uint64{1}, b.rejected)
	})
}
