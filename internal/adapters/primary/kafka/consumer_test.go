package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/IBM/sarama"

	"github.com/admin/astro/kundali-engine/internal/domain"
)

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Context() context.Context { return s.ctx }
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

type scriptedHandler struct {
	errs    map[string]error
	headers []map[string]string
}

func (h *scriptedHandler) HandleMessage(_ context.Context, key string, _ []byte, headers map[string]string) error {
	h.headers = append(h.headers, headers)
	return h.errs[key]
}

func TestConsumeClaim(t *testing.T) {
	handler := &scriptedHandler{errs: map[string]error{
		"business": domain.WrapBusinessError(errors.New("bad input")),
		"broken":   errors.New("broker down"),
	}}
	h := &consumerGroupHandler{handler: handler, log: slog.New(slog.NewTextHandler(io.Discard, nil)), topic: "t"}

	messages := make(chan *sarama.ConsumerMessage, 2)
	messages <- &sarama.ConsumerMessage{Key: []byte("ok"), Offset: 1, Headers: []*sarama.RecordHeader{{Key: []byte("request_id"), Value: []byte("r1")}}}
	messages <- &sarama.ConsumerMessage{Key: []byte("business"), Offset: 2}
	close(messages)

	session := &fakeSession{ctx: context.Background()}
	if err := h.ConsumeClaim(session, &fakeClaim{messages: messages}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int64{1, 2}
	if len(session.marked) != len(want) {
		t.Fatalf("marked %v, want %v", session.marked, want)
	}
	for i := range want {
		if session.marked[i] != want[i] {
			t.Errorf("marked %v, want %v", session.marked, want)
		}
	}
	if handler.headers[0]["request_id"] != "r1" {
		t.Errorf("headers = %v", handler.headers[0])
	}
}

func TestConsumeClaimStopsOnInternalError(t *testing.T) {
	brokerDown := errors.New("broker down")
	handler := &scriptedHandler{errs: map[string]error{"broken": brokerDown}}
	h := &consumerGroupHandler{handler: handler, log: slog.New(slog.NewTextHandler(io.Discard, nil)), topic: "t"}

	messages := make(chan *sarama.ConsumerMessage, 3)
	messages <- &sarama.ConsumerMessage{Key: []byte("ok"), Offset: 1}
	messages <- &sarama.ConsumerMessage{Key: []byte("broken"), Offset: 2}
	messages <- &sarama.ConsumerMessage{Key: []byte("after"), Offset: 3}
	close(messages)

	session := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(session, &fakeClaim{messages: messages})
	if !errors.Is(err, brokerDown) {
		t.Fatalf("err = %v, want %v", err, brokerDown)
	}

	if len(session.marked) != 1 || session.marked[0] != 1 {
		t.Errorf("marked %v, want [1]", session.marked)
	}
	if len(handler.headers) != 2 {
		t.Errorf("handled %d messages, want 2", len(handler.headers))
	}
}

func TestConsumeClaimStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := &consumerGroupHandler{handler: &scriptedHandler{}, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	err := h.ConsumeClaim(&fakeSession{ctx: ctx}, &fakeClaim{messages: make(chan *sarama.ConsumerMessage)})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
