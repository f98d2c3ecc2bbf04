package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tevez07b9/notebooklm/internal/dto"
	"github.com/tevez07b9/notebooklm/internal/repository/memory"
	"github.com/tevez07b9/notebooklm/pkg/events"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	documentCache *memory.DocumentCache
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	documentCache *memory.DocumentCache,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		documentCache: documentCache,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var envelope dto.EventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		log.Printf("[ERROR] Failed to unmarshal event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	switch envelope.Type {
	case events.TypeDocumentIngested, events.TypeDocumentDeleted:
		cs.documentCache.Invalidate()
		log.Printf("[INFO] Document list cache invalidated (%s, document_id: %v)", envelope.Type, envelope.Data["document_id"])
	default:
		log.Printf("[WARN] Unknown event type: %s", envelope.Type)
	}

	msg.Ack()
}
