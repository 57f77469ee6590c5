package servicebus

import (
	"context"

	"social-hub/infrastructure/logger"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
)

// SyncEventPublisher pushes sync-completed events to a Service Bus queue,
// the Azure twin of the Pub/Sub publisher.
type SyncEventPublisher struct {
	client *azservicebus.Client
	queue  string
}

func NewSyncEventPublisher(client *azservicebus.Client, queue string) *SyncEventPublisher {
	if queue == "" {
		queue = "post-sync-events"
	}
	return &SyncEventPublisher{client: client, queue: queue}
}

func (p *SyncEventPublisher) PublishSyncEvent(ctx context.Context, payload []byte) error {
	if p == nil || p.client == nil {
		return nil
	}
	sender, err := p.client.NewSender(p.queue, nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while making new sender service bus.")
		return err
	}
	defer func() {
		if err := sender.Close(context.Background()); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing sender.")
		}
	}()

	if err := sender.SendMessage(ctx, &azservicebus.Message{Body: payload}, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while sending message.")
		return err
	}
	return nil
}
