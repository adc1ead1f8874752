package produce

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventExchange = "uploadhub.events"

	ArchiveQueue = "uploadhub.archive"

	UploadStoredRoutingKey  = "upload.stored"
	UploadRemovedRoutingKey = "upload.removed"
)

// UploadStoredMessage tells the archive worker that a file landed on disk.
type UploadStoredMessage struct {
	UploadID    uint   `json:"upload_id"`
	File        string `json:"file"`
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Timestamp   int64  `json:"timestamp"`
}

// UploadRemovedMessage tells the archive worker that an upload was
// permanently removed and its mirror copy can be dropped.
type UploadRemovedMessage struct {
	UploadID  uint   `json:"upload_id"`
	File      string `json:"file"`
	Timestamp int64  `json:"timestamp"`
}

// EntityEventMessage is the generic lifecycle notification published for
// every successful mutation (folder.created, folder_upload.removed, ...).
type EntityEventMessage struct {
	Entity    string      `json:"entity"`
	Action    string      `json:"action"`
	Actor     string      `json:"actor,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// EventService publishes lifecycle events to the event exchange.
type EventService struct {
	channel *amqp.Channel
}

func InitEventService(channel *amqp.Channel) *EventService {
	err := channel.ExchangeDeclare(
		EventExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare event exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		ArchiveQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare archive queue: " + err.Error())
	}

	for _, key := range []string{UploadStoredRoutingKey, UploadRemovedRoutingKey} {
		if err := channel.QueueBind(ArchiveQueue, key, EventExchange, false, nil); err != nil {
			panic("Failed to bind archive queue: " + err.Error())
		}
	}

	return NewEventService(channel)
}

// NewEventService wraps an already-declared channel. A nil channel yields a
// service whose publishes fail with an error instead of reaching a broker.
func NewEventService(channel *amqp.Channel) *EventService {
	return &EventService{channel: channel}
}

func (s *EventService) PublishUploadStored(ctx context.Context, msg UploadStoredMessage) error {
	msg.Timestamp = time.Now().Unix()
	return s.publish(ctx, UploadStoredRoutingKey, msg)
}

func (s *EventService) PublishUploadRemoved(ctx context.Context, msg UploadRemovedMessage) error {
	msg.Timestamp = time.Now().Unix()
	return s.publish(ctx, UploadRemovedRoutingKey, msg)
}

func (s *EventService) PublishEntityEvent(ctx context.Context, msg EntityEventMessage) error {
	msg.Timestamp = time.Now().Unix()
	return s.publish(ctx, msg.Entity+"."+msg.Action, msg)
}

func (s *EventService) publish(ctx context.Context, routingKey string, message interface{}) error {
	if s.channel == nil {
		return fmt.Errorf("event channel not initialized")
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal event message: %w", err)
	}

	err = s.channel.PublishWithContext(
		ctx,
		EventExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event message: %w", err)
	}

	return nil
}
