package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/admin/astro/kundali-engine/internal/domain"
)

type fakeKundali struct {
	err error
	got domain.ChartRequest
}

func (f *fakeKundali) Calculate(_ context.Context, req domain.ChartRequest) (*domain.Chart, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Chart{Birth: req.Birth, Ephemeris: "fake"}, nil
}

func (f *fakeKundali) Dasha(context.Context, domain.ChartRequest) ([]domain.DashaPeriod, error) {
	return nil, nil
}

func (f *fakeKundali) Match(context.Context, domain.MatchRequest) (*domain.MatchResult, error) {
	return nil, nil
}

func (f *fakeKundali) CurrentPositions(context.Context) (*domain.PositionsSnapshot, error) {
	return nil, nil
}

type sent struct {
	key     string
	value   []byte
	headers map[string]string
}

type fakeProducer struct {
	err  error
	sent []sent
}

func (p *fakeProducer) Send(_ context.Context, key string, value []byte, headers map[string]string) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, sent{key, value, headers})
	return nil
}

func (p *fakeProducer) Close() error { return nil }

func newHandler(uc *fakeKundali, producer *fakeProducer) *ChartRequestHandler {
	h := NewChartRequestHandler(uc, producer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return h.(*ChartRequestHandler)
}

const requestID = "0c5e3f4e-8a1b-4c1e-9d55-6b9c1a2f3e4d"

const ajmerMessage = `{
	"request_id": "` + requestID + `",
	"birth": {"year": 2005, "month": 11, "day": 27, "hour": 7, "minute": 30, "utc_offset_hours": 5.5},
	"location": {"latitude": 26.4499, "longitude": 74.6399},
	"antardashas": true
}`

func decodeResult(t *testing.T, s sent) ChartResultMessage {
	t.Helper()
	var res ChartResultMessage
	if err := json.Unmarshal(s.value, &res); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	return res
}

func TestHandleMessage(t *testing.T) {
	uc := &fakeKundali{}
	producer := &fakeProducer{}

	if err := newHandler(uc, producer).HandleMessage(context.Background(), "", []byte(ajmerMessage), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if uc.got.Birth.Year != 2005 || uc.got.Location.Latitude != 26.4499 || !uc.got.WithAntardashas {
		t.Errorf("request = %+v", uc.got)
	}
	if len(producer.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(producer.sent))
	}

	msg := producer.sent[0]
	if msg.key != requestID || msg.headers[headerRequestID] != requestID || msg.headers[headerStatus] != StatusOK {
		t.Errorf("key %q headers %v", msg.key, msg.headers)
	}
	if msg.headers[headerEventID] == "" {
		t.Error("expected event id header")
	}

	res := decodeResult(t, msg)
	if res.Status != StatusOK || res.Chart == nil || res.Chart.Ephemeris != "fake" {
		t.Errorf("result = %+v", res)
	}
}

func TestHandleMessageRequestIDFallback(t *testing.T) {
	body := `{"birth": {"year": 2005, "month": 11, "day": 27}, "location": {"latitude": 1, "longitude": 2}}`

	tests := []struct {
		name    string
		key     string
		headers map[string]string
		want    string
	}{
		{"header", "key-1", map[string]string{headerRequestID: "hdr-1"}, "hdr-1"},
		{"key", "key-1", nil, "key-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			producer := &fakeProducer{}
			if err := newHandler(&fakeKundali{}, producer).HandleMessage(context.Background(), tt.key, []byte(body), tt.headers); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if producer.sent[0].key != tt.want {
				t.Errorf("key = %q, want %q", producer.sent[0].key, tt.want)
			}
		})
	}
}

func TestHandleMessageErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		ucErr     error
		published bool
		kind      string
		business  bool
	}{
		{
			name:     "malformed json",
			body:     `{"birth":`,
			business: true,
		},
		{
			name:      "invalid zodiac",
			body:      `{"request_id":"` + requestID + `","zodiac":"draconic"}`,
			published: true,
			kind:      "validation",
			business:  true,
		},
		{
			name:      "invalid request id",
			body:      `{"request_id":"nope"}`,
			published: true,
			kind:      "validation",
			business:  true,
		},
		{
			name:      "validation from use case",
			body:      ajmerMessage,
			ucErr:     fmt.Errorf("%w: month 13", domain.ErrInvalidBirthMoment),
			published: true,
			kind:      "validation",
			business:  true,
		},
		{
			name:      "calculation",
			body:      ajmerMessage,
			ucErr:     domain.WrapBusinessError(domain.ErrAscendantUndefined),
			published: true,
			kind:      "calculation",
			business:  true,
		},
		{
			name:      "internal",
			body:      ajmerMessage,
			ucErr:     errors.New("boom"),
			published: true,
			kind:      "internal",
			business:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			producer := &fakeProducer{}
			err := newHandler(&fakeKundali{err: tt.ucErr}, producer).HandleMessage(context.Background(), "", []byte(tt.body), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if domain.IsBusinessError(err) != tt.business {
				t.Errorf("business = %v, want %v (%v)", domain.IsBusinessError(err), tt.business, err)
			}

			if !tt.published {
				if len(producer.sent) != 0 {
					t.Errorf("unexpected publish")
				}
				return
			}
			if len(producer.sent) != 1 {
				t.Fatalf("sent %d, want 1", len(producer.sent))
			}
			res := decodeResult(t, producer.sent[0])
			if res.Status != StatusError || res.ErrorKind != tt.kind || res.Error == "" {
				t.Errorf("result = %+v", res)
			}
		})
	}
}

func TestHandleMessagePublishFailure(t *testing.T) {
	producer := &fakeProducer{err: errors.New("broker down")}
	err := newHandler(&fakeKundali{}, producer).HandleMessage(context.Background(), "", []byte(ajmerMessage), nil)
	if err == nil || domain.IsBusinessError(err) {
		t.Errorf("expected plain publish error, got %v", err)
	}
}

func TestHandleMessageWithoutProducer(t *testing.T) {
	h := &ChartRequestHandler{
		Kundali:   &fakeKundali{},
		Validator: validator.New(),
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if err := h.HandleMessage(context.Background(), "", []byte(ajmerMessage), nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
