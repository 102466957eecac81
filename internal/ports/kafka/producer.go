package kafka

import "context"

// IKafkaProducer интерфейс для отправки сообщений в Kafka
type IKafkaProducer interface {
	// Send отправляет сообщение с заголовками в топик producer'а
	Send(ctx context.Context, key string, value []byte, headers map[string]string) error
	// Close закрывает producer
	Close() error
}
