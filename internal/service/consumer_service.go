package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"followdiff-be/internal/dto"
	"followdiff-be/internal/entity"
	"followdiff-be/internal/pkg/logger"
)

// DiffNotifier delivers a completed-diff notification to a user's open
// connections. Implemented by the websocket hub.
type DiffNotifier interface {
	NotifyDiffCompleted(userID uuid.UUID, notification entity.DiffNotification)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	notifier  DiffNotifier
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	notifier DiffNotifier,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		notifier:  notifier,
		logger:    logger,
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
	var payload dto.PublishDiffCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal diff event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("ConsumerService", "Diff completed", map[string]interface{}{
		"user_id":   payload.UserId.String(),
		"following": payload.Following,
		"followers": payload.Followers,
		"mutual":    payload.Mutual,
	})

	if cs.notifier != nil {
		cs.notifier.NotifyDiffCompleted(payload.UserId, entity.DiffNotification{
			Type:       entity.NotificationTypeDiffCompleted,
			Following:  payload.Following,
			Followers:  payload.Followers,
			Mutual:     payload.Mutual,
			FirstRun:   payload.FirstRun,
			OccurredAt: payload.OccurredAt,
		})
	}

	msg.Ack()
}
