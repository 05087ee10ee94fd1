package output

import (
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/ppiankov/gcpinventory/internal/inventory"
)

// JSONSink streams one JSON document: the run info, the resources array and
// the summary. Resources are written as they arrive.
type JSONSink struct {
	w       io.Writer
	run     RunInfo
	started bool
	count   int
}

func NewJSONSink(w io.Writer, run RunInfo) *JSONSink {
	return &JSONSink{w: w, run: run}
}

func (s *JSONSink) start() error {
	if s.started {
		return nil
	}
	s.started = true
	run, err := json.Marshal(s.run)
	if err != nil {
		return fmt.Errorf("encode run info: %w", err)
	}
	_, err = fmt.Fprintf(s.w, `{"run":%s,"resources":[`, run)
	return err
}

func (s *JSONSink) Write(_ context.Context, resp *inventory.Response) error {
	if err := s.start(); err != nil {
		return err
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", resp.Resource.CloudServiceType, resp.Resource.Name, err)
	}
	if s.count > 0 {
		if _, err := io.WriteString(s.w, ","); err != nil {
			return err
		}
	}
	s.count++
	_, err = s.w.Write(data)
	return err
}

func (s *JSONSink) Close(summary *Summary) error {
	if err := s.start(); err != nil {
		return err
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	_, err = fmt.Fprintf(s.w, "],\"summary\":%s}\n", data)
	return err
}

// NDJSONSink writes one JSON envelope per line.
type NDJSONSink struct {
	enc *jsoniter.Encoder
}

func NewNDJSONSink(w io.Writer) *NDJSONSink {
	return &NDJSONSink{enc: json.NewEncoder(w)}
}

func (s *NDJSONSink) Write(_ context.Context, resp *inventory.Response) error {
	if err := s.enc.Encode(resp); err != nil {
		return fmt.Errorf("encode %s %s: %w", resp.Resource.CloudServiceType, resp.Resource.Name, err)
	}
	return nil
}

func (s *NDJSONSink) Close(*Summary) error {
	return nil
}
