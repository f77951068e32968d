package releasequeue

import (
	"context"
	"fmt"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const deadLetterSuffix = ".dlq"

// Service keeps slot releases that could not be applied in line. Messages
// are persistent and every publish waits for its own broker confirm, so a
// nil error means the release survives a broker restart.
type Service struct {
	broker    broker
	log       *zap.Logger
	queueName string
	dlqName   string
}

type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

// broker is the slice of an AMQP channel the queue needs.
type broker interface {
	publish(ctx context.Context, queue string, msg amqp.Publishing) (confirmation, error)
	get(queue string) (amqp.Delivery, bool, error)
	ack(deliveryTag uint64) error
	reject(deliveryTag uint64) error
}

type amqpBroker struct {
	ch *amqp.Channel
}

func (b amqpBroker) publish(ctx context.Context, queue string, msg amqp.Publishing) (confirmation, error) {
	dc, err := b.ch.PublishWithDeferredConfirmWithContext(ctx, "", queue, false, false, msg)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, fmt.Errorf("channel is not in confirm mode")
	}
	return dc, nil
}

func (b amqpBroker) get(queue string) (amqp.Delivery, bool, error) {
	return b.ch.Get(queue, false)
}

func (b amqpBroker) ack(deliveryTag uint64) error {
	return b.ch.Ack(deliveryTag, false)
}

func (b amqpBroker) reject(deliveryTag uint64) error {
	return b.ch.Nack(deliveryTag, false, false)
}

var (
	_ contracts.SlotReleaseQueue = (*Service)(nil)
	_ contracts.SlotReleaser     = (*Service)(nil)
)

func NewService(conn *amqp.Connection, log *zap.Logger, queueName string, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	dlqName := queueName + deadLetterSuffix
	for _, name := range []string{queueName, dlqName} {
		_, err = ch.QueueDeclare(
			name,  // name
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		)
		if err != nil {
			return nil, err
		}
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return newService(amqpBroker{ch: ch}, log, queueName), nil
}

func newService(b broker, log *zap.Logger, queueName string) *Service {
	return &Service{
		broker:    b,
		log:       log,
		queueName: queueName,
		dlqName:   queueName + deadLetterSuffix,
	}
}

// EnqueueRelease records that testID owes one slot back.
func (s *Service) EnqueueRelease(ctx context.Context, testID, reason string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("releasequeue.Service.EnqueueRelease called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTestIDKey, testID),
	)

	return s.Enqueue(ctx, models.SlotReleaseJob{
		ID:        uuid.NewString(),
		TestID:    testID,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *Service) Enqueue(ctx context.Context, job models.SlotReleaseJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publish(ctx, s.queueName, body)
}

// Reenqueue puts a job with an updated failure count at the tail of the queue.
func (s *Service) Reenqueue(ctx context.Context, job models.SlotReleaseJob) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("releasequeue.Service.Reenqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMessageIDKey, job.ID),
		zap.Int(constvars.LoggingFailedCountKey, job.FailedCount),
	)

	body, err := json.Marshal(job)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publish(ctx, s.queueName, body)
}

func (s *Service) EnqueueToDeadQueue(ctx context.Context, job models.SlotReleaseJob) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Warn("releasequeue.Service.EnqueueToDeadQueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMessageIDKey, job.ID),
		zap.String(constvars.LoggingTestIDKey, job.TestID),
	)

	body, err := json.Marshal(job)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publish(ctx, s.dlqName, body)
}

// FetchN pulls up to max jobs without auto-ack. Undecodable bodies are moved
// to the dead letter queue instead of being returned, and are only acked
// once the dead letter copy is confirmed.
func (s *Service) FetchN(ctx context.Context, max int) ([]contracts.QueuedSlotRelease, error) {
	if max <= 0 {
		max = 1
	}
	items := make([]contracts.QueuedSlotRelease, 0, max)

	for i := 0; i < max; i++ {
		d, ok, err := s.broker.get(s.queueName)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		var job models.SlotReleaseJob
		if err := json.Unmarshal(d.Body, &job); err != nil {
			s.deadLetterPoison(ctx, d, err)
			continue
		}
		items = append(items, contracts.QueuedSlotRelease{DeliveryTag: d.DeliveryTag, Job: job})
	}

	return items, nil
}

func (s *Service) Ack(ctx context.Context, deliveryTag uint64) error {
	return s.broker.ack(deliveryTag)
}

func (s *Service) deadLetterPoison(ctx context.Context, d amqp.Delivery, decodeErr error) {
	s.log.Error("releasequeue.Service.FetchN poison message",
		zap.String(constvars.LoggingQueueNameKey, s.queueName),
		zap.Error(decodeErr),
	)

	if err := s.publish(ctx, s.dlqName, d.Body); err != nil {
		// dropped rather than requeued, it would come straight back
		s.log.Error("releasequeue.Service.FetchN error dead lettering poison message, rejecting it",
			zap.String(constvars.LoggingQueueNameKey, s.dlqName),
			zap.Error(err),
		)
		if err := s.broker.reject(d.DeliveryTag); err != nil {
			s.log.Error("releasequeue.Service.FetchN error rejecting poison message",
				zap.String(constvars.LoggingQueueNameKey, s.queueName),
				zap.Error(err),
			)
		}
		return
	}

	if err := s.broker.ack(d.DeliveryTag); err != nil {
		s.log.Error("releasequeue.Service.FetchN error acking dead lettered message",
			zap.String(constvars.LoggingQueueNameKey, s.queueName),
			zap.Error(err),
		)
	}
}

func (s *Service) publish(ctx context.Context, queue string, body []byte) error {
	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	confirm, err := s.broker.publish(ctx, queue, msg)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}
	if !acked {
		return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), queue)
	}
	return nil
}
