package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter часть *kafka.Writer, нужная наблюдателю
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaObserver публикует события в топик Kafka
// Ключ сообщения - ID пользователя, чтобы события одного пользователя шли в одну партицию
type KafkaObserver struct {
	writer       MessageWriter
	writeTimeout time.Duration
}

// NewKafkaObserver создает наблюдателя с writer'ом на указанные брокеры и топик
func NewKafkaObserver(brokers []string, topic string, writeTimeout time.Duration) *KafkaObserver {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireOne,
	}
	return NewKafkaObserverWithWriter(writer, writeTimeout)
}

// NewKafkaObserverWithWriter создает наблюдателя с готовым writer'ом
func NewKafkaObserverWithWriter(writer MessageWriter, writeTimeout time.Duration) *KafkaObserver {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &KafkaObserver{writer: writer, writeTimeout: writeTimeout}
}

func (o *KafkaObserver) Name() string {
	return "kafka"
}

// Handle отправляет событие в Kafka
func (o *KafkaObserver) Handle(ctx context.Context, event Event) error {
	msg, err := toKafkaMessage(event)
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, o.writeTimeout)
	defer cancel()

	if err := o.writer.WriteMessages(writeCtx, msg); err != nil {
		return fmt.Errorf("kafka: write event id=%s: %w", event.ID, err)
	}
	return nil
}

// Close закрывает writer
func (o *KafkaObserver) Close() error {
	return o.writer.Close()
}

func toKafkaMessage(event Event) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: marshal event id=%s: %w", event.ID, err)
	}

	return kafka.Message{
		Key:   []byte(event.UserID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil
}
