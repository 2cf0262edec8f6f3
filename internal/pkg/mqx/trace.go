package mqx

import (
	"context"

	"github.com/ecodeclub/mq-api"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/ecodeclub/stargazer/internal/pkg/mqx"

// TraceMq 给收发消息打点
type TraceMq struct {
	mq.MQ
	tracer trace.Tracer
}

func NewTraceMq(q mq.MQ) *TraceMq {
	return NewTraceMqWithTracer(q, otel.GetTracerProvider().Tracer(instrumentationName))
}

func NewTraceMqWithTracer(q mq.MQ, tracer trace.Tracer) *TraceMq {
	return &TraceMq{MQ: q, tracer: tracer}
}

func (t *TraceMq) Producer(topic string) (mq.Producer, error) {
	p, err := t.MQ.Producer(topic)
	if err != nil {
		return nil, err
	}
	return &TraceProducer{Producer: p, topic: topic, tracer: t.tracer}, nil
}

func (t *TraceMq) Consumer(topic, id string) (mq.Consumer, error) {
	c, err := t.MQ.Consumer(topic, id)
	if err != nil {
		return nil, err
	}
	return &TraceConsumer{Consumer: c, topic: topic, group: id, tracer: t.tracer}, nil
}

type TraceProducer struct {
	mq.Producer
	topic  string
	tracer trace.Tracer
}

func (t *TraceProducer) Produce(ctx context.Context, m *mq.Message) (*mq.ProducerResult, error) {
	ctx, span := t.tracer.Start(ctx, "mq.produce", trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()
	span.SetAttributes(messageAttributes(t.topic, "produce", m)...)
	res, err := t.Producer.Produce(ctx, m)
	endSpan(span, err)
	return res, err
}

func (t *TraceProducer) ProduceWithPartition(ctx context.Context, m *mq.Message, partition int) (*mq.ProducerResult, error) {
	ctx, span := t.tracer.Start(ctx, "mq.produce", trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()
	span.SetAttributes(messageAttributes(t.topic, "produce", m)...)
	span.SetAttributes(attribute.Int("messaging.partition", partition))
	res, err := t.Producer.ProduceWithPartition(ctx, m, partition)
	endSpan(span, err)
	return res, err
}

// TraceConsumer 只给 Consume 打点，ConsumeChan 的消息拿不到调用方的 ctx
type TraceConsumer struct {
	mq.Consumer
	topic  string
	group  string
	tracer trace.Tracer
}

func (t *TraceConsumer) Consume(ctx context.Context) (*mq.Message, error) {
	ctx, span := t.tracer.Start(ctx, "mq.consume", trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()
	msg, err := t.Consumer.Consume(ctx)
	span.SetAttributes(attribute.String("messaging.consumer_group", t.group))
	span.SetAttributes(messageAttributes(t.topic, "consume", msg)...)
	endSpan(span, err)
	return msg, err
}

func messageAttributes(topic, operation string, m *mq.Message) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("messaging.system", "mq"),
		attribute.String("messaging.operation", operation),
		attribute.String("messaging.topic", topic),
	}
	if m != nil {
		attrs = append(attrs, attribute.Int("messaging.message_length", len(m.Value)))
		if len(m.Key) > 0 {
			attrs = append(attrs, attribute.String("messaging.key", string(m.Key)))
		}
	}
	return attrs
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
