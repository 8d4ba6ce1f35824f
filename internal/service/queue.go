package service

import (
	"encoding/json"
	"time"

	cb "github.com/Astemirdum/ebook-service/pkg/circuit_breaker"
	"github.com/IBM/sarama"
)

type Enqueuer interface {
	Enqueue(topic string, v any) error
}

func NewEnqueuer(producer sarama.SyncProducer) Enqueuer {
	const (
		recordLength     = 20
		timeout          = 10 * time.Second
		percentile       = 0.5
		recoveryRequests = 5
	)
	return &enqueuerImpl{
		producer: producer,
		cb:       cb.New(recordLength, timeout, percentile, recoveryRequests),
	}
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
	cb       cb.CircuitBreaker
}

// Enqueue publishes behind a circuit breaker so a broker outage does not
// stall every request on producer timeouts.
func (q *enqueuerImpl) Enqueue(topic string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: topic, Value: sarama.StringEncoder(data)}
	return q.cb.Call(func() error {
		_, _, err := q.producer.SendMessage(msg)
		return err
	})
}
