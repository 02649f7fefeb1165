package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ohcnetwork/care-im/internal/domain/directory"
	"github.com/ohcnetwork/care-im/internal/domain/facility"
)

// AssetStatusHandler renders the monitored assets of a selected
// facility grouped by their latest availability status and delivers
// the view as a plain text send.
type AssetStatusHandler struct {
	facilities facility.Repository
	sender     Sender
	logger     zerolog.Logger
}

func NewAssetStatusHandler(facilities facility.Repository, sender Sender, logger zerolog.Logger) *AssetStatusHandler {
	return &AssetStatusHandler{facilities: facilities, sender: sender, logger: logger}
}

func (h *AssetStatusHandler) Handle(ctx context.Context, from string, user *directory.StaffUser, selection string) string {
	if user == nil {
		return "Error: You don't have permission to view asset status."
	}

	facilities, err := h.facilities.ListByUser(ctx, user.ID)
	if err != nil {
		return errorReply(h.logger, err, "retrieving asset status")
	}

	if len(facilities) == 0 {
		h.send(ctx, from, noFacilitiesMessage)
		return noFacilitiesMessage
	}

	if selection == "" {
		list := formatFacilityList(facilities, "assets", "/a")
		h.send(ctx, from, list)
		return list
	}

	target, ok := selectFacility(facilities, selection)
	if !ok {
		return invalidFacilityMessage
	}

	view, err := h.renderFacilityAssets(ctx, target)
	if err != nil {
		return errorReply(h.logger, err, "retrieving asset status")
	}
	h.send(ctx, from, view)
	return "Asset status sent successfully"
}

func (h *AssetStatusHandler) send(ctx context.Context, to, body string) {
	if _, err := h.sender.SendText(ctx, to, body); err != nil {
		h.logger.Error().Err(err).Msg("asset status send failed")
	}
}

type assetLine struct {
	name     string
	class    string
	location string
	lastSeen string
}

func (h *AssetStatusHandler) renderFacilityAssets(ctx context.Context, f *facility.Facility) (string, error) {
	assets, err := h.facilities.ListAssets(ctx, f.ID)
	if err != nil {
		return "", err
	}
	if len(assets) == 0 {
		return "No monitored assets found at " + f.Name, nil
	}

	groups := map[facility.AvailabilityStatus][]assetLine{}
	for _, asset := range assets {
		latest, err := h.facilities.LatestAvailability(ctx, asset.ID)
		if err != nil {
			return "", err
		}
		status := facility.StatusNotMonitored
		lastSeen := "Never"
		if latest != nil {
			status = latest.Status
			lastSeen = latest.RecordedAt.Format("02-01-2006 15:04")
		}
		location := asset.Location
		if location == "" {
			location = "Unknown"
		}
		groups[status] = append(groups[status], assetLine{
			name:     asset.Name,
			class:    asset.Class,
			location: location,
			lastSeen: lastSeen,
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Asset Status at %s*\n\n", f.Name)
	b.WriteString(formatAssetGroup("✅ *Operational Assets:*", groups[facility.StatusOperational], false))
	b.WriteString(formatAssetGroup("❌ *Down Assets:*", groups[facility.StatusDown], true))
	b.WriteString(formatAssetGroup("🔧 *Under Maintenance:*", groups[facility.StatusUnderMaintenance], false))

	if f.TotalBedCapacity != nil || f.CurrentBedCapacity != nil {
		b.WriteString("*Bed Availability:*\n")
		fmt.Fprintf(&b, " • Total Beds: %d\n", intOrZero(f.TotalBedCapacity))
		fmt.Fprintf(&b, " • Available Beds: %d\n", intOrZero(f.CurrentBedCapacity))
	}

	b.WriteString("\n📝 *To view another facility:*\n")
	b.WriteString("Type 'asset' to see your facilities")
	return b.String(), nil
}

func formatAssetGroup(header string, lines []assetLine, withLastSeen bool) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(header + "\n")
	for _, line := range lines {
		fmt.Fprintf(&b, " • %s (%s)\n", line.name, line.class)
		fmt.Fprintf(&b, "   - Location: %s\n", line.location)
		if withLastSeen {
			fmt.Fprintf(&b, "   - Last Seen: %s\n", line.lastSeen)
		}
	}
	b.WriteString("\n")
	return b.String()
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
