package output

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ppiankov/gcpinventory/internal/inventory"
)

// Publisher publishes one message and waits for the server to accept it.
type Publisher interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error)
}

// PubSubSink publishes every envelope as its own message. Each Write blocks
// until the message is acknowledged by the server.
type PubSubSink struct {
	pub   Publisher
	count int
}

func NewPubSubSink(pub Publisher) *PubSubSink {
	return &PubSubSink{pub: pub}
}

func (s *PubSubSink) Write(ctx context.Context, resp *inventory.Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", resp.Resource.CloudServiceType, resp.Resource.Name, err)
	}
	id, err := s.pub.Publish(ctx, data, map[string]string{
		"cloud_service_type": resp.Resource.CloudServiceType,
		"region_code":        resp.Resource.RegionCode,
	})
	if err != nil {
		return fmt.Errorf("publish %s %s: %w", resp.Resource.CloudServiceType, resp.Resource.Name, err)
	}
	s.count++
	slog.Debug("Published resource", "name", resp.Resource.Name, "message_id", id)
	return nil
}

func (s *PubSubSink) Close(summary *Summary) error {
	slog.Info("Pub/Sub publishing finished", "messages", s.count, "resources", summary.TotalResources)
	return nil
}
