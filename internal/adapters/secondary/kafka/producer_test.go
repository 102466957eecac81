package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
)

func TestProducerSend(t *testing.T) {
	mock := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if string(val) != `{"ok":true}` {
			return errors.New("unexpected value " + string(val))
		}
		return nil
	})
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducerFrom(mock, &Config{Topic: "kundali.results"}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := p.Send(context.Background(), "req-1", []byte(`{"ok":true}`), map[string]string{"status": "ok"}); err != nil {
		t.Fatalf("first send: %v", err)
	}

	err := p.Send(context.Background(), "req-2", []byte(`{}`), nil)
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Errorf("expected wrapped ErrOutOfBrokers, got %v", err)
	}

	if err := p.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestRecordHeaders(t *testing.T) {
	if got := recordHeaders(nil); got != nil {
		t.Errorf("expected nil headers, got %v", got)
	}

	got := recordHeaders(map[string]string{"request_id": "abc"})
	if len(got) != 1 || string(got[0].Key) != "request_id" || string(got[0].Value) != "abc" {
		t.Errorf("got %+v", got)
	}
}

func TestConfig(t *testing.T) {
	cfg := &Config{Brokers: "a:9092, b:9092"}
	brokers := cfg.GetBrokers()
	if len(brokers) != 2 || brokers[1] != "b:9092" {
		t.Errorf("brokers = %v", brokers)
	}
	if (&Config{}).GetBrokers()[0] != "localhost:9092" {
		t.Error("expected localhost default")
	}

	sc := sarama.NewConfig()
	(&Config{SecurityProtocol: "SASL_SSL", SASLMechanism: "SCRAM-SHA-256", SASLUsername: "u"}).ApplySecurity(sc)
	if !sc.Net.SASL.Enable || !sc.Net.TLS.Enable || sc.Net.SASL.Mechanism != sarama.SASLTypeSCRAMSHA256 {
		t.Errorf("unexpected security config: %+v", sc.Net.SASL)
	}

	plain := sarama.NewConfig()
	(&Config{SecurityProtocol: "PLAINTEXT"}).ApplySecurity(plain)
	if plain.Net.SASL.Enable {
		t.Error("PLAINTEXT must not enable SASL")
	}
}

func TestKafkaConfigsLoad(t *testing.T) {
	t.Setenv("KT_KAFKA_0_NAME", ChartRequests)
	t.Setenv("KT_KAFKA_0_CONFIG_TOPIC", "kundali.requests")
	t.Setenv("KT_KAFKA_0_CONFIG_CONSUMER_GROUP", "kundali-engine")
	t.Setenv("KT_KAFKA_1_NAME", ChartResults)
	t.Setenv("KT_KAFKA_1_CONFIG_TOPIC", "kundali.results")

	kc := KafkaConfigs{Count: 2}
	if err := kc.Load("KT"); err != nil {
		t.Fatalf("load: %v", err)
	}

	req, ok := kc.Find(ChartRequests)
	if !ok || req.Topic != "kundali.requests" || !req.IsConsumer() {
		t.Errorf("requests config = %+v", req)
	}
	res, ok := kc.Find(ChartResults)
	if !ok || res.IsConsumer() {
		t.Errorf("results config = %+v", res)
	}
	if _, ok := kc.Find("other"); ok {
		t.Error("unexpected config found")
	}
}

func TestKafkaConfigsLoadRequiresTopic(t *testing.T) {
	t.Setenv("KT2_KAFKA_0_NAME", ChartResults)

	kc := KafkaConfigs{Count: 1}
	if err := kc.Load("KT2"); err == nil {
		t.Error("expected error for missing topic")
	}
}
