package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaNotifier publishes each notification as a JSON event so downstream
// consumers can react to finished runs.
type KafkaNotifier struct {
	writer kafkaMessageWriter
}

type notificationEvent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	SentAt  int64  `json:"sent_at"`
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}}
}

func (n *KafkaNotifier) Notify(ctx context.Context, subject, body string) error {
	payload, err := json.Marshal(notificationEvent{Subject: subject, Body: body, SentAt: time.Now().Unix()})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := n.writer.WriteMessages(ctx, kafka.Message{Key: []byte(subject), Value: payload}); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	if c, ok := n.writer.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
