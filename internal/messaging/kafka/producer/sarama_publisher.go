package producer

import (
	"context"

	"hr-service/internal/events"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// SaramaPublisher sends lifecycle events through a sarama SyncProducer and
// waits for the broker ack.
type SaramaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

func NewSaramaPublisher(producer sarama.SyncProducer, topic string, logger ...*zap.Logger) *SaramaPublisher {
	l := zap.L().Named("sarama.producer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sarama.producer")
	}
	if topic == "" {
		topic = events.FuncionarioLifecycleTopic
	}
	return &SaramaPublisher{producer: producer, topic: topic, logger: l}
}

// Publish ignores ctx: SyncProducer has no per-call cancellation and is
// bounded by its own Producer.Timeout.
func (p *SaramaPublisher) Publish(_ context.Context, event events.FuncionarioEvent) error {
	enc, err := encodeEvent(event)
	if err != nil {
		return publishError(event, err)
	}

	headers := make([]sarama.RecordHeader, 0, len(headerOrder))
	for _, k := range headerOrder {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(enc.headers[k])})
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.ByteEncoder(enc.key),
		Value:   sarama.ByteEncoder(enc.value),
		Headers: headers,
	})
	if err != nil {
		return publishError(event, err)
	}

	p.logger.Debug("funcionario event acknowledged",
		zap.String("topic", p.topic),
		zap.String("event_type", string(event.Type)),
		zap.String("pessoa_id", event.PessoaID),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

func (p *SaramaPublisher) Close() error {
	return p.producer.Close()
}
