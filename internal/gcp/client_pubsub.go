package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// GCPPublisher publishes inventory messages to a single Pub/Sub topic.
type GCPPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewPublisher creates a publisher for topicID in the given project.
func NewPublisher(ctx context.Context, project, topicID string, opts ...option.ClientOption) (*GCPPublisher, error) {
	client, err := pubsub.NewClient(ctx, project, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client for %s: %w", project, err)
	}
	return &GCPPublisher{client: client, topic: client.Topic(topicID)}, nil
}

// Publish sends one message and blocks until the server acknowledges it.
func (p *GCPPublisher) Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error) {
	res := p.topic.Publish(ctx, &pubsub.Message{Data: data, Attributes: attributes})
	id, err := res.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("publish to %s: %w", p.topic.ID(), err)
	}
	return id, nil
}

// Close flushes pending messages and releases the client.
func (p *GCPPublisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
