package messaging

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ohcnetwork/care-im/internal/platform/whatsapp"
)

// TokenVerifier checks the verify token Meta sends with a webhook
// subscription challenge. whatsapp.Client satisfies it.
type TokenVerifier interface {
	VerifyToken(token string) bool
}

// WebhookHandler terminates the channel provider's webhook: the GET
// subscription challenge and the POST message intake.
type WebhookHandler struct {
	verifier TokenVerifier
	router   *Router
	logger   zerolog.Logger
}

func NewWebhookHandler(verifier TokenVerifier, router *Router, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifier: verifier,
		router:   router,
		logger:   logger.With().Str("component", "webhook").Logger(),
	}
}

func (h *WebhookHandler) Register(e *echo.Echo) {
	e.GET("/webhook", h.Verify)
	e.POST("/webhook", h.Receive)
}

// Verify answers the subscription challenge: echo the challenge when
// the mode is "subscribe" and the verify token matches, 403 otherwise.
func (h *WebhookHandler) Verify(c echo.Context) error {
	mode := c.QueryParam("hub.mode")
	token := c.QueryParam("hub.verify_token")
	challenge := c.QueryParam("hub.challenge")

	h.logger.Info().Str("mode", mode).Msg("webhook verification request")

	if mode == "subscribe" && h.verifier.VerifyToken(token) {
		return c.String(http.StatusOK, challenge)
	}

	h.logger.Error().Str("mode", mode).Msg("webhook verification failed")
	return c.String(http.StatusForbidden, "Forbidden")
}

// Receive parses an inbound event and routes its message. Malformed
// payloads get a 400; everything else is acknowledged with a success
// body whether or not the event carried a routable message.
func (h *WebhookHandler) Receive(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"status": "error", "message": "unreadable body"})
	}

	msg, err := whatsapp.ParseWebhookEvent(body)
	if err != nil {
		h.logger.Error().Err(err).Msg("malformed webhook event")
		return c.JSON(http.StatusBadRequest, map[string]string{"status": "error", "message": err.Error()})
	}

	if msg != nil {
		h.router.OnInboundMessage(c.Request().Context(), msg)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}
