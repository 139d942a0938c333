package service

import (
	"context"
	"encoding/json"

	"rag-docsync-be/internal/dto"
	"rag-docsync-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	statusService IDocumentStatusService
	logger        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	statusService IDocumentStatusService,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		statusService: statusService,
		logger:        sysLogger,
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

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.RefreshDocumentStatusMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		if cs.logger != nil {
			cs.logger.Warn("consumer", "dropping malformed refresh message", map[string]interface{}{
				"error": err.Error(),
			})
		}
		// Ack malformed messages to prevent infinite redelivery.
		msg.Ack()
		return
	}

	// The refresh path swallows its own failures, so the message is always
	// acked. A transient poll failure is picked up by a later refresh.
	cs.statusService.RefreshFromRemote(ctx, payload.DocumentId)
	msg.Ack()
}
