package producer

import (
	"context"

	"hr-service/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is the part of *kafkago.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPublisher sends lifecycle events with segmentio/kafka-go. The writer
// must be built without a Topic; the publisher sets it per message.
type KafkaPublisher struct {
	writer MessageWriter
	topic  string
	logger *zap.Logger
}

func NewKafkaPublisher(writer MessageWriter, topic string, logger ...*zap.Logger) *KafkaPublisher {
	l := zap.L().Named("kafka.producer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer")
	}
	if topic == "" {
		topic = events.FuncionarioLifecycleTopic
	}
	return &KafkaPublisher{writer: writer, topic: topic, logger: l}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event events.FuncionarioEvent) error {
	enc, err := encodeEvent(event)
	if err != nil {
		return publishError(event, err)
	}

	headers := make([]kafkago.Header, 0, len(headerOrder))
	for _, k := range headerOrder {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(enc.headers[k])})
	}

	msg := kafkago.Message{
		Topic:   p.topic,
		Key:     enc.key,
		Value:   enc.value,
		Headers: headers,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return publishError(event, err)
	}

	p.logger.Debug("funcionario event handed to kafka",
		zap.String("topic", p.topic),
		zap.String("event_type", string(event.Type)),
		zap.String("pessoa_id", event.PessoaID),
		zap.String("deduplication_id", enc.headers[HeaderDeduplicationID]),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
