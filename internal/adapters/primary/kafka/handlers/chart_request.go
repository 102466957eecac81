package handlers

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/admin/astro/kundali-engine/internal/domain"
	kafkaPorts "github.com/admin/astro/kundali-engine/internal/ports/kafka"
	"github.com/admin/astro/kundali-engine/internal/ports/usecase"
)

const (
	StatusOK    = "ok"
	StatusError = "error"

	headerRequestID = "request_id"
	headerEventID   = "event_id"
	headerStatus    = "status"
)

// ChartRequestMessage запрос на расчёт карты из топика
type ChartRequestMessage struct {
	RequestID   string               `json:"request_id" validate:"omitempty,uuid"`
	Birth       domain.BirthMoment   `json:"birth"`
	Location    domain.GeoCoordinate `json:"location"`
	Zodiac      string               `json:"zodiac" validate:"omitempty,oneof=sidereal tropical"`
	HouseSystem string               `json:"house_system" validate:"omitempty,oneof=whole_sign equal"`
	DashaYears  float64              `json:"dasha_years" validate:"gte=0,lte=1000"`
	Antardashas bool                 `json:"antardashas"`
}

// ChartResultMessage ответ в топик результатов, ключ - request_id
type ChartResultMessage struct {
	RequestID string        `json:"request_id"`
	Status    string        `json:"status"`
	Chart     *domain.Chart `json:"chart,omitempty"`
	Error     string        `json:"error,omitempty"`
	ErrorKind string        `json:"error_kind,omitempty"` // validation | calculation | internal
}

// ChartRequestHandler считает карту и публикует результат
type ChartRequestHandler struct {
	Kundali   usecase.IKundaliUsecase
	Results   kafkaPorts.IKafkaProducer // может быть nil, тогда результат только логируется
	Validator *validator.Validate
	Log       *slog.Logger
}

// NewChartRequestHandler создаёт handler для запросов на расчёт
func NewChartRequestHandler(kundali usecase.IKundaliUsecase, results kafkaPorts.IKafkaProducer, log *slog.Logger) kafkaPorts.MessageHandler {
	return &ChartRequestHandler{
		Kundali:   kundali,
		Results:   results,
		Validator: validator.New(),
		Log:       log,
	}
}

// HandleMessage разбирает запрос, считает карту и отвечает в топик результатов.
// Ошибки входных данных и расчёта отправляются как результат со статусом error.
func (h *ChartRequestHandler) HandleMessage(ctx context.Context, key string, value []byte, headers map[string]string) error {
	var msg ChartRequestMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		h.Log.Warn("malformed chart request", "key", key, "error", err)
		return domain.WrapBusinessError(fmt.Errorf("failed to unmarshal chart request: %w", err))
	}

	requestID := resolveRequestID(msg.RequestID, headers, key)
	if err := h.Validator.Struct(msg); err != nil {
		h.Log.Warn("invalid chart request", "request_id", requestID, "error", err)
		if pubErr := h.publish(ctx, failure(requestID, "validation", err)); pubErr != nil {
			return pubErr
		}
		return domain.WrapBusinessError(err)
	}

	h.Log.Debug("processing chart request",
		"request_id", requestID,
		"birth", msg.Birth.String(),
	)

	chart, err := h.Kundali.Calculate(ctx, msg.toDomain())
	if err != nil {
		if pubErr := h.publish(ctx, failure(requestID, errorKind(err), err)); pubErr != nil {
			return pubErr
		}
		if domain.IsValidationError(err) {
			return domain.WrapBusinessError(err)
		}
		return err
	}

	return h.publish(ctx, ChartResultMessage{RequestID: requestID, Status: StatusOK, Chart: chart})
}

func (h *ChartRequestHandler) publish(ctx context.Context, result ChartResultMessage) error {
	if h.Results == nil {
		h.Log.Info("chart result not published, producer is not configured",
			"request_id", result.RequestID,
			"status", result.Status,
		)
		return nil
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal chart result: %w", err)
	}

	headers := map[string]string{
		headerRequestID: result.RequestID,
		headerEventID:   uuid.NewString(),
		headerStatus:    result.Status,
	}
	if err := h.Results.Send(ctx, result.RequestID, raw, headers); err != nil {
		return fmt.Errorf("failed to publish chart result: %w", err)
	}
	return nil
}

func (m ChartRequestMessage) toDomain() domain.ChartRequest {
	return domain.ChartRequest{
		Birth:           m.Birth,
		Location:        m.Location,
		Zodiac:          domain.ZodiacType(m.Zodiac),
		HouseSystem:     domain.HouseSystem(m.HouseSystem),
		DashaYears:      m.DashaYears,
		WithAntardashas: m.Antardashas,
	}
}

// resolveRequestID: тело, затем заголовок, затем ключ сообщения, иначе новый uuid
func resolveRequestID(fromBody string, headers map[string]string, key string) string {
	for _, candidate := range []string{fromBody, headers[headerRequestID], key} {
		if candidate != "" {
			return candidate
		}
	}
	return uuid.NewString()
}

func failure(requestID, kind string, err error) ChartResultMessage {
	return ChartResultMessage{
		RequestID: requestID,
		Status:    StatusError,
		Error:     err.Error(),
		ErrorKind: kind,
	}
}

func errorKind(err error) string {
	switch {
	case domain.IsValidationError(err):
		return "validation"
	case domain.IsCalculationError(err):
		return "calculation"
	default:
		return "internal"
	}
}
