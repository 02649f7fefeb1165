// Package handlers implements the domain operations reachable from an
// inbound message: patient records, medications, procedures, token
// bookings, staff schedules, asset status, and resource requests.
//
// Every handler converts its own failures into a user-safe reply; the
// router never sees an error from this package. Permission denials and
// invalid selections are ordinary replies, not errors.
package handlers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ohcnetwork/care-im/internal/platform/whatsapp"
)

// Sender is the outbound channel surface handlers use. It is satisfied
// by whatsapp.Client.
type Sender interface {
	SendText(ctx context.Context, to, body string) (*whatsapp.SendResponse, error)
	SendTemplate(ctx context.Context, to, templateName, language string, params whatsapp.TemplateParams) (*whatsapp.SendResponse, error)
}

// errorReply logs the failure with the operation being attempted and
// returns the generic user-safe message for it.
func errorReply(logger zerolog.Logger, err error, operation string) string {
	logger.Error().Err(err).Str("operation", operation).Msg("handler failed")
	return fmt.Sprintf("Sorry, I couldn't complete the %s. Please try again later.", operation)
}
