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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tempora-io/tempora/pkg/window"
)

func TestInMemorySource_Read(t *testing.T) {
	ctx := context.Background()
	records := []*Record{
		{Key: "a", EventTime: time.UnixMilli(1)},
		{Key: "b", EventTime: time.UnixMilli(2)},
		{Key: "c", EventTime: time.UnixMilli(3)},
	}
	source := NewInMemorySource(records)

	batch, err := source.Read(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, batch, 2)

	batch, err = source.Read(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, batch, 1)

	// exhausted
	batch, err = source.Read(ctx, 2)
	assert.NoError(t, err)
	assert.Empty(t, batch)
}

func TestInMemorySink_Write(t *testing.T) {
	ctx := context.Background()
	sink := NewInMemorySink()

	w := &window.IntervalWindow{Start: time.UnixMilli(0), End: time.UnixMilli(30000)}
	assert.NoError(t, sink.Write(ctx, []*Result{
		{Window: w, Key: "abc", Value: 2, Timestamp: time.UnixMilli(29999)},
	}))
	assert.Len(t, sink.Results(), 1)
}

func TestJSONLSource_Read(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "records.jsonl")
	content := `{"key":"abc","event_time_ms":1000000}
{"key":"abc","payload":"x","event_time_ms":1030001}

{"key":"def","event_time_ms":1059999}
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0600))

	source := NewJSONLSource(path)
	batch, err := source.Read(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, batch, 3)
	assert.Equal(t, "abc", batch[0].Key)
	assert.Equal(t, int64(1000000), batch[0].EventTime.UnixMilli())
	assert.Equal(t, []byte("x"), batch[1].Payload)
	assert.Equal(t, "def", batch[2].Key)

	batch, err = source.Read(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, batch)
}

func TestJSONLSource_Errors(t *testing.T) {
	ctx := context.Background()

	source := NewJSONLSource(filepath.Join(t.TempDir(), "missing.jsonl"))
	_, err := source.Read(ctx, 10)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.jsonl")
	assert.NoError(t, os.WriteFile(path, []byte("not json\n"), 0600))
	source = NewJSONLSource(path)
	_, err = source.Read(ctx, 10)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestPrinterSink_Write(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	sink := NewPrinterSink(&buf)

	w := &window.IntervalWindow{Start: time.UnixMilli(990000), End: time.UnixMilli(1020000)}
	assert.NoError(t, sink.Write(ctx, []*Result{
		{Window: w, Key: "abc", Value: 2, Timestamp: time.UnixMilli(1019999)},
	}))
	assert.Equal(t, "key abc count 2 [window timestamp 1019999]\n", buf.String())
}
