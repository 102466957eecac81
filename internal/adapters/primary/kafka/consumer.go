package kafka

import (
	"context"
	"errors"
	"fmt"

	"log/slog"

	"github.com/IBM/sarama"

	kafkaAdapter "github.com/admin/astro/kundali-engine/internal/adapters/secondary/kafka"
	"github.com/admin/astro/kundali-engine/internal/domain"
	kafkaPorts "github.com/admin/astro/kundali-engine/internal/ports/kafka"
)

// Consumer реализация Kafka consumer
type Consumer struct {
	consumer sarama.ConsumerGroup
	cfg      *kafkaAdapter.Config
	handler  kafkaPorts.MessageHandler
	log      *slog.Logger
}

// NewConsumer создаёт новый Kafka consumer
func NewConsumer(cfg *kafkaAdapter.Config, handler kafkaPorts.MessageHandler, log *slog.Logger) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.ApplySecurity(config)

	consumer, err := sarama.NewConsumerGroup(cfg.GetBrokers(), cfg.ConsumerGroup, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}

	log.Info("kafka consumer created",
		"brokers", cfg.Brokers,
		"topic", cfg.Topic,
		"consumer_group", cfg.ConsumerGroup,
	)

	return &Consumer{
		consumer: consumer,
		cfg:      cfg,
		handler:  handler,
		log:      log,
	}, nil
}

// Start читает топик, пока не отменён ctx. Consume возвращается при каждом ребалансе.
func (c *Consumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{
		handler: c.handler,
		log:     c.log,
		topic:   c.cfg.Topic,
	}

	for {
		if err := c.consumer.Consume(ctx, []string{c.cfg.Topic}, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.log.Error("error from consumer",
				"error", err,
				"topic", c.cfg.Topic,
			)
			return fmt.Errorf("consumer error: %w", err)
		}
		if ctx.Err() != nil {
			c.log.Info("kafka consumer stopping", "topic", c.cfg.Topic)
			return nil
		}
	}
}

// Close закрывает consumer
func (c *Consumer) Close() error {
	if err := c.consumer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka consumer: %w", err)
	}
	c.log.Info("kafka consumer closed", "topic", c.cfg.Topic)
	return nil
}

// consumerGroupHandler реализует sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	handler kafkaPorts.MessageHandler
	log     *slog.Logger
	topic   string
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	h.log.Info("kafka consumer group session setup", "topic", h.topic)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	h.log.Info("kafka consumer group session cleanup", "topic", h.topic)
	return nil
}

// ConsumeClaim обрабатывает сообщения из Kafka.
// Бизнес-ошибки уже залогированы и повторно не обрабатываются: offset коммитится.
// На прочей ошибке чтение партиции останавливается без MarkMessage, иначе следующий
// offset закоммитил бы и упавшее сообщение. После ребаланса оно придёт снова.
func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case <-session.Context().Done():
			return nil
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if message == nil {
				continue
			}

			key := string(message.Key)
			headers := make(map[string]string, len(message.Headers))
			for _, header := range message.Headers {
				if header != nil {
					headers[string(header.Key)] = string(header.Value)
				}
			}

			if err := h.handler.HandleMessage(session.Context(), key, message.Value, headers); err != nil {
				if !domain.IsBusinessError(err) {
					h.log.Error("failed to handle kafka message",
						"error", err,
						"topic", message.Topic,
						"key", key,
						"partition", message.Partition,
						"offset", message.Offset,
					)
					//todo DLQ
					return fmt.Errorf("partition %d stopped at offset %d: %w", message.Partition, message.Offset, err)
				}
			}

			session.MarkMessage(message, "")
		}
	}
}
