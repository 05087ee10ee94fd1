package output

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/ppiankov/gcpinventory/internal/inventory"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Sink receives collected resources as they are produced.
type Sink interface {
	Write(ctx context.Context, resp *inventory.Response) error
	// Close flushes the sink. The summary covers everything written.
	Close(summary *Summary) error
}

// RunInfo identifies a collection run in file outputs.
type RunInfo struct {
	Tool      string    `json:"tool"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Project   string    `json:"project"`
	Zones     []string  `json:"zones"`
}

const (
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatText   = "text"
)

// Formats lists the file output formats.
var Formats = []string{FormatJSON, FormatNDJSON, FormatText}

// MultiSink fans every call out to all sinks, stopping at the first error.
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, resp *inventory.Response) error {
	for _, s := range m {
		if err := s.Write(ctx, resp); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) Close(summary *Summary) error {
	var first error
	for _, s := range m {
		if err := s.Close(summary); err != nil && first == nil {
			first = err
		}
	}
	return first
}
