package pubsub

import (
	"context"
	"log"

	"cloud.google.com/go/pubsub"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/logger"
)

// IRunEvents publishes discovery run summaries for downstream consumers
// (the dashboard's live feed, external schedulers).
type IRunEvents interface {
	Publish(ctx context.Context, topic string, payload []byte) (string, error)
}

type RunEvents struct {
	PubSubClient *pubsub.Client
}

func NewRunEvents(pubSubClient *pubsub.Client) IRunEvents {
	return &RunEvents{
		PubSubClient: pubSubClient,
	}
}

func (p *RunEvents) Publish(
	ctx context.Context,
	topicName string,
	payload []byte,
) (string, error) {
	msg := &pubsub.Message{
		Data: payload,
	}

	topic := p.PubSubClient.Topic(topicName)

	// Create the topic if it doesn't exist.
	exists, err := topic.Exists(ctx)
	if err != nil {
		return "", err
	}
	if !exists {
		log.Printf("Topic %v doesn't exist - creating it", topicName)
		_, err = p.PubSubClient.CreateTopic(ctx, topicName)
		if err != nil {
			return "", err
		}
	}

	serverId, err := topic.Publish(ctx, msg).Get(ctx)
	if err != nil {
		return "", err
	}

	logger.GetLogger().WithField("server ID", serverId).Info("Run event published")
	return serverId, nil
}

// NewPubSub instantiates the Pub/Sub client.
func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return client, nil
}
