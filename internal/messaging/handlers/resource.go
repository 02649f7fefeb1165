package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ohcnetwork/care-im/internal/domain/directory"
	"github.com/ohcnetwork/care-im/internal/domain/facility"
	"github.com/ohcnetwork/care-im/internal/domain/resource"
)

// resourceListCap bounds how many requests are rendered per direction.
const resourceListCap = 20

// ResourceStatusHandler renders the incoming and outgoing resource
// requests of a selected facility and delivers the view as a plain
// text send. A diagnostic footer with total/visible/deleted counts is
// part of the view; it is an operational aid for facility admins.
type ResourceStatusHandler struct {
	facilities facility.Repository
	resources  resource.Repository
	sender     Sender
	logger     zerolog.Logger
}

func NewResourceStatusHandler(facilities facility.Repository, resources resource.Repository, sender Sender, logger zerolog.Logger) *ResourceStatusHandler {
	return &ResourceStatusHandler{facilities: facilities, resources: resources, sender: sender, logger: logger}
}

func (h *ResourceStatusHandler) Handle(ctx context.Context, from string, user *directory.StaffUser, selection string) string {
	if user == nil {
		return "Error: You don't have permission to view resource status."
	}

	facilities, err := h.facilities.ListByUser(ctx, user.ID)
	if err != nil {
		return errorReply(h.logger, err, "retrieving resource status")
	}

	if len(facilities) == 0 {
		h.send(ctx, from, noFacilitiesMessage)
		return noFacilitiesMessage
	}

	if selection == "" {
		list := formatFacilityList(facilities, "resources", "/r")
		h.send(ctx, from, list)
		return list
	}

	target, ok := selectFacility(facilities, selection)
	if !ok {
		h.send(ctx, from, invalidFacilityMessage)
		return invalidFacilityMessage
	}

	view, err := h.renderFacilityResources(ctx, target)
	if err != nil {
		return errorReply(h.logger, err, "retrieving resource status")
	}
	h.send(ctx, from, view)
	return "Resource status sent successfully"
}

func (h *ResourceStatusHandler) send(ctx context.Context, to, body string) {
	if _, err := h.sender.SendText(ctx, to, body); err != nil {
		h.logger.Error().Err(err).Msg("resource status send failed")
	}
}

func (h *ResourceStatusHandler) renderFacilityResources(ctx context.Context, f *facility.Facility) (string, error) {
	incoming, err := h.resources.ListIncoming(ctx, f.ID, resourceListCap)
	if err != nil {
		return "", err
	}
	outgoing, err := h.resources.ListOutgoing(ctx, f.ID, resourceListCap)
	if err != nil {
		return "", err
	}
	incomingCounts, err := h.resources.CountIncoming(ctx, f.ID)
	if err != nil {
		return "", err
	}
	outgoingCounts, err := h.resources.CountOutgoing(ctx, f.ID)
	if err != nil {
		return "", err
	}

	footer := formatResourceFooter(f, incomingCounts, outgoingCounts)

	if len(incoming) == 0 && len(outgoing) == 0 {
		return fmt.Sprintf("No active resource requests found for %s. %s", f.Name, footer), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Resource Requests at %s*\n\n", f.Name)
	if len(incoming) > 0 {
		b.WriteString(formatRequestList("*Incoming Requests:*", "From", incoming, requestCounterparty(true)))
	}
	if len(outgoing) > 0 {
		b.WriteString(formatRequestList("*Outgoing Requests:*", "To", outgoing, requestCounterparty(false)))
	}
	b.WriteString(footer)

	b.WriteString("\n*Bed Availability:*\n")
	fmt.Fprintf(&b, " • Total Beds: %d\n", intOrZero(f.TotalBedCapacity))
	fmt.Fprintf(&b, " • Available Beds: %d\n\n", intOrZero(f.CurrentBedCapacity))

	b.WriteString("📝 *To view another facility:*\n")
	b.WriteString("Type 'resource' to see your facilities")
	return b.String(), nil
}

// requestCounterparty picks the facility on the other side of the
// request: origin for incoming, assigned for outgoing.
func requestCounterparty(incoming bool) func(*resource.Request) string {
	return func(req *resource.Request) string {
		if incoming {
			if req.OriginFacility != nil && *req.OriginFacility != "" {
				return *req.OriginFacility
			}
			return "Unknown"
		}
		if req.AssignedFacility != nil && *req.AssignedFacility != "" {
			return *req.AssignedFacility
		}
		return "Unassigned"
	}
}

func formatRequestList(header, direction string, requests []*resource.Request, counterparty func(*resource.Request) string) string {
	var b strings.Builder
	b.WriteString(header + "\n\n")
	for _, req := range requests {
		assignee := "Unassigned"
		if req.AssignedTo != nil && *req.AssignedTo != "" {
			assignee = *req.AssignedTo
		}
		fmt.Fprintf(&b, " • %s (%s)\n", req.Title, req.CategoryDisplay())
		fmt.Fprintf(&b, "   - %s: %s\n", direction, counterparty(req))
		fmt.Fprintf(&b, "   - Status: %s\n", req.StatusDisplay())
		if req.Emergency {
			b.WriteString("   - 🚨 EMERGENCY\n")
		}
		fmt.Fprintf(&b, "   - Date: %s\n", req.CreatedAt.Format("02-01-2006"))
		fmt.Fprintf(&b, "   - Assigned to: %s\n\n", assignee)
	}
	return b.String()
}

func formatResourceFooter(f *facility.Facility, in, out resource.Counts) string {
	total := in.Total + out.Total
	visible := in.Visible + out.Visible
	return fmt.Sprintf(
		"\n*Debug Information:*\n"+
			"- Facility ID: %s, Name: %s\n"+
			"- Total requests found (including deleted): %d\n"+
			"- Active requests: %d\n"+
			"- Deleted requests: %d\n"+
			"- Incoming requests (visible/total): %d/%d\n"+
			"- Outgoing requests (visible/total): %d/%d\n",
		f.ID, f.Name, total, visible, total-visible,
		in.Visible, in.Total, out.Visible, out.Total)
}
