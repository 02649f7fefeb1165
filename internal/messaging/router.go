// Package messaging ties the inbound pipeline together: identity
// resolution, intent classification, handler dispatch, and the
// trigger entry points fired by the records system's domain events.
package messaging

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ohcnetwork/care-im/internal/identity"
	"github.com/ohcnetwork/care-im/internal/messaging/handlers"
	"github.com/ohcnetwork/care-im/internal/platform/lock"
	"github.com/ohcnetwork/care-im/internal/platform/whatsapp"
)

// Router routes an inbound message to the handler its sender and text
// select. Handlers deliver their own replies; the returned string is a
// processing status (or, for unregistered senders and fallbacks, the
// reply text itself).
type Router struct {
	resolver  *identity.Resolver
	templates *Templates
	sender    handlers.Sender
	guard     lock.Guard

	patientRecords *handlers.PatientRecordHandler
	medications    *handlers.MedicationHandler
	procedures     *handlers.ProceduresHandler
	token          *handlers.TokenHandler
	staffSchedule  *handlers.StaffScheduleHandler
	assetStatus    *handlers.AssetStatusHandler
	resourceStatus *handlers.ResourceStatusHandler

	logger zerolog.Logger
}

// RouterDeps carries the collaborators a Router needs.
type RouterDeps struct {
	Resolver  *identity.Resolver
	Templates *Templates
	Sender    handlers.Sender
	Guard     lock.Guard

	PatientRecords *handlers.PatientRecordHandler
	Medications    *handlers.MedicationHandler
	Procedures     *handlers.ProceduresHandler
	Token          *handlers.TokenHandler
	StaffSchedule  *handlers.StaffScheduleHandler
	AssetStatus    *handlers.AssetStatusHandler
	ResourceStatus *handlers.ResourceStatusHandler
}

func NewRouter(deps RouterDeps, logger zerolog.Logger) *Router {
	return &Router{
		resolver:       deps.Resolver,
		templates:      deps.Templates,
		sender:         deps.Sender,
		guard:          deps.Guard,
		patientRecords: deps.PatientRecords,
		medications:    deps.Medications,
		procedures:     deps.Procedures,
		token:          deps.Token,
		staffSchedule:  deps.StaffSchedule,
		assetStatus:    deps.AssetStatus,
		resourceStatus: deps.ResourceStatus,
		logger:         logger.With().Str("component", "router").Logger(),
	}
}

// HandleMessage resolves the sender, classifies the message, and
// dispatches. from is the raw sender number as the channel reports it.
func (r *Router) HandleMessage(ctx context.Context, from, text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	id := r.resolver.Resolve(ctx, from)
	intent := ClassifyIntent(id, text)

	switch intent.Kind {
	case IntentUnregistered:
		return r.templates.UnregisteredUser()
	case IntentHelp:
		return r.sendHelp(ctx, from, id)
	case IntentPatientRecords:
		return r.patientRecords.Handle(ctx, from, id.Patient)
	case IntentMedications:
		return r.medications.Handle(ctx, from, id.Patient)
	case IntentProcedures:
		return r.procedures.Handle(ctx, from, id.Patient)
	case IntentTokenBooking:
		return r.token.Handle(ctx, from, id.Patient)
	case IntentStaffSchedule:
		if intent.Malformed {
			return "Invalid command. Use '/s <facility_number>'"
		}
		return r.staffSchedule.Handle(ctx, from, id.User, intent.Selection)
	case IntentAssetStatus:
		if intent.Malformed {
			return "Invalid command. Use '/a <facility_number>'"
		}
		return r.assetStatus.Handle(ctx, from, id.User, intent.Selection)
	case IntentResourceStatus:
		if intent.Malformed {
			return "Invalid command. Use '/r <facility_number>'"
		}
		return r.resourceStatus.Handle(ctx, from, id.User, intent.Selection)
	case IntentPatientFallback:
		return r.templates.HelpText(true)
	case IntentStaffFallback:
		return r.templates.HelpText(false)
	default:
		return r.templates.HelpText(id.PatientLike())
	}
}

func (r *Router) sendHelp(ctx context.Context, from string, id identity.Identity) string {
	name := TemplateHelpStaff
	if id.PatientLike() {
		name = TemplateHelpPatient
	}
	if _, err := r.sender.SendTemplate(ctx, from, name, "", whatsapp.TemplateParams{}); err != nil {
		r.logger.Error().Err(err).Str("template", name).Msg("help send failed")
		return fmt.Sprintf("Sorry, I couldn't complete the %s. Please try again later.", "help request")
	}
	return "Help message sent"
}
