package events

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler accepts domain events posted by the records system and publishes
// them onto the bus. This is the in-process replacement for the signal
// receivers that previously ran inside the records application.
type Handler struct {
	bus    *Bus
	logger zerolog.Logger
}

func NewHandler(bus *Bus, logger zerolog.Logger) *Handler {
	return &Handler{bus: bus, logger: logger.With().Str("component", "events").Logger()}
}

// Register mounts the intake route.
func (h *Handler) Register(e *echo.Echo) {
	e.POST("/events", h.Receive)
}

type eventPayload struct {
	Kind  string `json:"kind"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
	OTP   string `json:"otp"`
}

var validKinds = map[Kind]bool{
	KindOtpIssued:              true,
	KindQuestionnaireCompleted: true,
	KindProcedureRecorded:      true,
	KindPatientRegistered:      true,
	KindTokenBooked:            true,
}

// Receive validates and enqueues one event. Acceptance means the event is
// queued, not that any message was sent; sends happen asynchronously on the
// subscriber loop and failures there are logged, not reported back.
func (h *Handler) Receive(c echo.Context) error {
	var payload eventPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"status":  "error",
			"message": "invalid event payload",
		})
	}

	kind := Kind(payload.Kind)
	if !validKinds[kind] {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"status":  "error",
			"message": "unknown event kind",
		})
	}
	if payload.Phone == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"status":  "error",
			"message": "phone is required",
		})
	}

	evt := Event{Kind: kind, Phone: payload.Phone, Name: payload.Name, OTP: payload.OTP}
	if err := h.bus.Publish(c.Request().Context(), evt); err != nil {
		h.logger.Error().Err(err).Str("kind", payload.Kind).Msg("failed to enqueue event")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "error",
			"message": "event intake unavailable",
		})
	}

	h.logger.Info().Str("kind", payload.Kind).Msg("event accepted")
	return c.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
}
