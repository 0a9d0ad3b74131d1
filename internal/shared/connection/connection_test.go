package connection

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := PostgresConfig{Host: "db", User: "hr", Password: "secret", DBName: "hr", Port: "5432"}

	assert.Equal(t, "host=db user=hr password=secret dbname=hr port=5432 sslmode=disable", cfg.DSN())

	cfg.SSLMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}

func TestNewKafkaWriter(t *testing.T) {
	t.Run("sync writer has no completion hook", func(t *testing.T) {
		w := NewKafkaWriter([]string{"localhost:9092"}, false, nil)

		assert.False(t, w.Async)
		assert.Nil(t, w.Completion)
		assert.Empty(t, w.Topic)
		assert.Equal(t, kafkago.RequireAll, w.RequiredAcks)
		assert.IsType(t, &kafkago.Hash{}, w.Balancer)
	})

	t.Run("async writer logs failures", func(t *testing.T) {
		w := NewKafkaWriter([]string{"a:9092", "b:9092"}, true, nil)

		assert.True(t, w.Async)
		if assert.NotNil(t, w.Completion) {
			assert.NotPanics(t, func() {
				w.Completion([]kafkago.Message{{Topic: "t", Key: []byte("k")}}, assert.AnError)
			})
		}
		assert.Contains(t, w.Addr.String(), "b:9092")
	})
}

func TestConnectRedisWithRetry_GivesUp(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = old })

	_, err := ConnectRedisWithRetry("127.0.0.1:1", 2, nil)

	assert.Error(t, err)
}
