package worker

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/uploadhub/uploadhub/infra"
	"github.com/uploadhub/uploadhub/infra/produce"
)

// ArchiveConsumer mirrors stored uploads into the archive bucket and drops
// the mirror copy when an upload is permanently removed.
type ArchiveConsumer struct {
	channel *amqp.Channel
	infra   *infra.Infra
}

func NewArchiveConsumer(channel *amqp.Channel, infra *infra.Infra) *ArchiveConsumer {
	return &ArchiveConsumer{
		channel: channel,
		infra:   infra,
	}
}

func (c *ArchiveConsumer) Start(ctx context.Context) error {
	if err := c.infra.Minio.EnsureArchiveBucket(ctx); err != nil {
		return fmt.Errorf("failed to ensure archive bucket: %w", err)
	}

	msgs, err := c.channel.Consume(
		produce.ArchiveQueue,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register archive consumer: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Archive Consumer] Started listening on queue: %s", produce.ArchiveQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[Archive Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[Archive Consumer] Channel closed")
					return
				}
				c.handle(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *ArchiveConsumer) handle(ctx context.Context, msg amqp.Delivery) {
	switch msg.RoutingKey {
	case produce.UploadStoredRoutingKey:
		c.handleStored(ctx, msg)
	case produce.UploadRemovedRoutingKey:
		c.handleRemoved(ctx, msg)
	default:
		// Not an archive-relevant event, drop it.
		_ = msg.Ack(false)
	}
}

func (c *ArchiveConsumer) handleStored(ctx context.Context, msg amqp.Delivery) {
	var payload produce.UploadStoredMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Archive Consumer] Failed to unmarshal stored message")
		_ = msg.Nack(false, false)
		return
	}

	if err := c.infra.Minio.ArchiveFile(ctx, payload.File, payload.Path, payload.ContentType); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Archive Consumer] Failed to archive %s", payload.File)
		_ = msg.Nack(false, true)
		return
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Archive Consumer] Archived %s (%d bytes)", payload.File, payload.Size)
	_ = msg.Ack(false)
}

func (c *ArchiveConsumer) handleRemoved(ctx context.Context, msg amqp.Delivery) {
	var payload produce.UploadRemovedMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Archive Consumer] Failed to unmarshal removed message")
		_ = msg.Nack(false, false)
		return
	}

	if err := c.infra.Minio.RemoveArchivedFile(ctx, payload.File); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Archive Consumer] Failed to remove archived %s", payload.File)
		_ = msg.Nack(false, true)
		return
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Archive Consumer] Removed archived copy of %s", payload.File)
	_ = msg.Ack(false)
}
