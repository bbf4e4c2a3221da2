/*
Copyright 2025 The Tempora Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// jsonlRecord is the wire form of a record in a JSON-lines input file.
type jsonlRecord struct {
	Key         string `json:"key"`
	Payload     string `json:"payload,omitempty"`
	EventTimeMs int64  `json:"event_time_ms"`
}

// JSONLSource reads records from a JSON-lines file, one record object per
// line. The whole file is decoded eagerly on the first Read since the
// engine operates on bounded input anyway.
type JSONLSource struct {
	path   string
	loaded bool
	inner  *InMemorySource
	lock   sync.Mutex
}

var _ Source = (*JSONLSource)(nil)

// NewJSONLSource returns a source reading from the given file path.
func NewJSONLSource(path string) *JSONLSource {
	return &JSONLSource{
		path: path,
	}
}

// Read returns the next batch of up to count records.
func (s *JSONLSource) Read(ctx context.Context, count int64) ([]*Record, error) {
	s.lock.Lock()
	if !s.loaded {
		records, err := s.load()
		if err != nil {
			s.lock.Unlock()
			return nil, fmt.Errorf("failed to load records from %s: %w", s.path, err)
		}
		s.inner = NewInMemorySource(records)
		s.loaded = true
	}
	s.lock.Unlock()

	return s.inner.Read(ctx, count)
}

func (s *JSONLSource) load() ([]*Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	records := make([]*Record, 0)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var jr jsonlRecord
		if err := json.Unmarshal(raw, &jr); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, &Record{
			Key:       jr.Key,
			Payload:   []byte(jr.Payload),
			EventTime: time.UnixMilli(jr.EventTimeMs),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// PrinterSink writes results to an io.Writer, one line per (window, key)
// aggregate, in the form "key <k> count <n> [window timestamp <ms>]".
type PrinterSink struct {
	w    io.Writer
	lock sync.Mutex
}

var _ Sink = (*PrinterSink)(nil)

// NewPrinterSink returns a sink printing to the given writer.
func NewPrinterSink(w io.Writer) *PrinterSink {
	return &PrinterSink{w: w}
}

// Write prints each result on its own line.
func (s *PrinterSink) Write(ctx context.Context, results []*Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	for _, r := range results {
		if _, err := fmt.Fprintln(s.w, r.String()); err != nil {
			return err
		}
	}
	return nil
}
