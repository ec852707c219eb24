package service

import (
	"context"
	"encoding/json"

	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/internal/index"
	"ai-coursechat-be/internal/pkg/logger"
	"ai-coursechat-be/pkg/events"
	"ai-coursechat-be/pkg/ingest"
	pktNats "ai-coursechat-be/pkg/nats"
	"ai-coursechat-be/pkg/state"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	indexStore     *index.Store
	coordinator    *state.Coordinator
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	indexStore *index.Store,
	coordinator *state.Coordinator,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		indexStore:     indexStore,
		coordinator:    coordinator,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage embeds one uploaded document. Failures are logged and
// surfaced as lifecycle events; they never crash the worker, and the
// processing counter is decremented no matter what.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedMaterialMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal embed message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads are never retriable
		return
	}

	scope := state.Scope{User: payload.Username, Course: payload.Course}
	defer cs.coordinator.MarkDone(scope)

	cs.logger.Info("consumer", "Processing material embedding", map[string]interface{}{
		"scope":  scope.String(),
		"file":   payload.Filename,
		"chunks": len(payload.Chunks),
	})

	if payload.Overwrite {
		if err := cs.indexStore.RemoveBySource(ctx, scope, payload.Filename); err != nil {
			cs.fail(ctx, payload, "failed to remove replaced chunks", err)
			msg.Ack()
			return
		}
	}

	chunks := make([]ingest.Chunk, len(payload.Chunks))
	for i, text := range payload.Chunks {
		chunks[i] = ingest.NewChunk(text, payload.Filename)
	}

	if err := cs.indexStore.Add(ctx, scope, chunks); err != nil {
		cs.fail(ctx, payload, "failed to embed material", err)
		msg.Ack()
		return
	}

	if err := cs.eventPublisher.Publish(ctx, events.NewMaterialIndexed(payload.Username, payload.Course, payload.Filename, len(chunks))); err != nil {
		cs.logger.Warn("consumer", "Failed to publish material indexed event", map[string]interface{}{"error": err.Error()})
	}

	msg.Ack()
}

func (cs *consumerService) fail(ctx context.Context, payload dto.PublishEmbedMaterialMessage, message string, err error) {
	cs.logger.Error("consumer", message, map[string]interface{}{
		"user":   payload.Username,
		"course": payload.Course,
		"file":   payload.Filename,
		"error":  err.Error(),
	})
	if pubErr := cs.eventPublisher.Publish(ctx, events.NewMaterialFailed(payload.Username, payload.Course, payload.Filename, err.Error())); pubErr != nil {
		cs.logger.Warn("consumer", "Failed to publish material failed event", map[string]interface{}{"error": pubErr.Error()})
	}
}
