package pubsub

import (
	"context"

	"social-hub/infrastructure/logger"

	"cloud.google.com/go/pubsub"
)

// SyncEventPublisher pushes sync-completed events to a Pub/Sub topic so
// downstream consumers (dashboards, alerting) can react without polling.
type SyncEventPublisher struct {
	client *pubsub.Client
	topic  string
}

func NewSyncEventPublisher(client *pubsub.Client, topic string) *SyncEventPublisher {
	if topic == "" {
		topic = "post-sync-events"
	}
	return &SyncEventPublisher{client: client, topic: topic}
}

func (p *SyncEventPublisher) PublishSyncEvent(ctx context.Context, payload []byte) error {
	if p == nil || p.client == nil {
		return nil
	}
	topic := p.client.Topic(p.topic)

	exists, err := topic.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		logger.GetLogger().WithField("topic", p.topic).Info("Topic doesn't exist - creating it")
		if _, err := p.client.CreateTopic(ctx, p.topic); err != nil {
			return err
		}
	}

	serverID, err := topic.Publish(ctx, &pubsub.Message{Data: payload}).Get(ctx)
	if err != nil {
		return err
	}
	logger.GetLogger().WithField("serverID", serverID).Info("Sync event published")
	return nil
}
