package kafka

import (
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"github.com/kelseyhightower/envconfig"
)

// Имена подключений, которые понимает приложение
const (
	ChartRequests = "chart_requests"
	ChartResults  = "chart_results"
)

// Config конфигурация для Kafka producer/consumer
type Config struct {
	Brokers          string `envconfig:"BROKERS"`           // "broker1:9092,broker2:9092"
	Topic            string `envconfig:"TOPIC"`             // название топика
	ConsumerGroup    string `envconfig:"CONSUMER_GROUP"`    // consumer group (только для consumer)
	SecurityProtocol string `envconfig:"SECURITY_PROTOCOL"` // "SASL_SSL", "PLAINTEXT"
	SASLMechanism    string `envconfig:"SASL_MECHANISM"`    // "PLAIN", "SCRAM-SHA-256"
	SASLUsername     string `envconfig:"SASL_USERNAME"`
	SASLPassword     string `envconfig:"SASL_PASSWORD"`
}

// GetBrokers возвращает список брокеров из строки
func (c *Config) GetBrokers() []string {
	if c.Brokers == "" {
		return []string{"localhost:9092"}
	}
	brokers := strings.Split(c.Brokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	return brokers
}

// IsConsumer подключение с consumer group читает топик, без неё - пишет
func (c *Config) IsConsumer() bool {
	return c.ConsumerGroup != ""
}

// ApplySecurity настройки SASL/TLS, общие для producer и consumer
func (c *Config) ApplySecurity(config *sarama.Config) {
	if c.SecurityProtocol != "SASL_SSL" && c.SecurityProtocol != "SASL_PLAINTEXT" {
		return
	}
	config.Net.SASL.Enable = true
	config.Net.SASL.Mechanism = sarama.SASLTypePlaintext
	if c.SASLMechanism == "SCRAM-SHA-256" {
		config.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
	}
	config.Net.SASL.User = c.SASLUsername
	config.Net.SASL.Password = c.SASLPassword
	// TLS только для SASL_SSL
	if c.SecurityProtocol == "SASL_SSL" {
		config.Net.TLS.Enable = true
	}
}

// KafkaConfigs конфигурация для нескольких Kafka кластеров/топиков
type KafkaConfigs struct {
	Count int           `envconfig:"COUNT" default:"0"`
	List  []KafkaConfig `envconfig:"-"`
}

// KafkaConfig конфигурация одного Kafka подключения
type KafkaConfig struct {
	Name   string  `envconfig:"NAME"` // "chart_requests", "chart_results"
	Config *Config `envconfig:"CONFIG"`
}

// Load загружает конфигурацию Kafka из переменных окружения
func (kc *KafkaConfigs) Load(envPrefix string) error {
	kc.List = make([]KafkaConfig, kc.Count)
	for i := 0; i < kc.Count; i++ {
		prefix := fmt.Sprintf("%s_KAFKA_%d", envPrefix, i) // KUNDALI_ENGINE_KAFKA_0, KUNDALI_ENGINE_KAFKA_1, ...
		var kafkaCfg KafkaConfig
		if err := envconfig.Process(prefix, &kafkaCfg); err != nil {
			return fmt.Errorf("failed to load kafka config %d: %w", i, err)
		}
		if kafkaCfg.Config == nil || kafkaCfg.Config.Topic == "" {
			return fmt.Errorf("kafka config %d (%s): topic is required", i, kafkaCfg.Name)
		}
		kc.List[i] = kafkaCfg
	}
	return nil
}

// Find подключение по имени
func (kc *KafkaConfigs) Find(name string) (*Config, bool) {
	for _, item := range kc.List {
		if item.Name == name {
			return item.Config, true
		}
	}
	return nil, false
}
