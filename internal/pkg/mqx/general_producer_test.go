// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mqx

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ecodeclub/mq-api/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type starEvent struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

func TestGeneralProducer(t *testing.T) {
	const topic = "star_events"
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	q := memory.NewMQ()
	require.NoError(t, q.CreateTopic(context.Background(), topic, 1))
	tq := NewTraceMqWithTracer(q, tp.Tracer("test"))

	consumer, err := tq.Consumer(topic, "star_group")
	require.NoError(t, err)
	producer, err := NewGeneralProducer[starEvent](tq, topic, WithKeyFunc(func(evt starEvent) string {
		return evt.Key
	}))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	want := starEvent{Key: "u1_1704164645_sky_jpg", Name: "Orion"}
	require.NoError(t, producer.Produce(ctx, want))

	msg, err := consumer.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Key, string(msg.Key))
	var got starEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, want, got)

	names := make([]string, 0, 2)
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	assert.ElementsMatch(t, []string{"mq.produce", "mq.consume"}, names)
}
