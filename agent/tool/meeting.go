package tool

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/openai/openai-go/shared"

	promptx "github.com/maticstudio/chat-agent/agent/prompt"
	calendlyx "github.com/maticstudio/chat-agent/pkg/calendly"
)

const ToolScheduleConsultationMeeting = "schedule_consultation_meeting"

// availableSlots is the fallback list used when the caller gives no preferred
// date and time.
var availableSlots = []string{
	"Monday 10:00 AM EST",
	"Monday 2:00 PM EST",
	"Tuesday 11:00 AM EST",
	"Tuesday 3:00 PM EST",
	"Wednesday 10:00 AM EST",
	"Wednesday 2:00 PM EST",
	"Thursday 11:00 AM EST",
	"Thursday 3:00 PM EST",
	"Friday 10:00 AM EST",
	"Friday 2:00 PM EST",
}

// SchedulingLinker mints a real booking link for an invitee. Optional; when
// nil the tool returns the mock meeting record only.
type SchedulingLinker interface {
	CreateSchedulingLink(ctx context.Context, inviteeName, inviteeEmail string) (*calendlyx.SchedulingLink, error)
}

type meetingTool struct {
	linker  SchedulingLinker
	pickInt func(n int) int
}

// MeetingOption customizes the scheduling tool.
type MeetingOption func(*meetingTool)

// WithSchedulingLinker enables the external booking-link integration.
func WithSchedulingLinker(l SchedulingLinker) MeetingOption {
	return func(m *meetingTool) {
		m.linker = l
	}
}

// WithSlotPicker overrides the random slot selection. Tests use this for
// determinism.
func WithSlotPicker(pick func(n int) int) MeetingOption {
	return func(m *meetingTool) {
		if pick != nil {
			m.pickInt = pick
		}
	}
}

// NewMeetingTool builds the consultation scheduler.
func NewMeetingTool(opts ...MeetingOption) *Tool {
	m := &meetingTool{
		pickInt: rand.IntN,
	}
	for _, opt := range opts {
		opt(m)
	}

	return &Tool{
		Name:        ToolScheduleConsultationMeeting,
		Description: "Schedule a consultation meeting with MATIC Studio's lead architect",
		Parameters: shared.FunctionParameters{
			"type": "object",
			"properties": map[string]any{
				"client_name":      map[string]any{"type": "string", "description": "Client's full name"},
				"company_name":     map[string]any{"type": "string", "description": "Client's company name"},
				"preferred_date":   map[string]any{"type": "string", "description": "Preferred meeting date"},
				"preferred_time":   map[string]any{"type": "string", "description": "Preferred meeting time"},
				"contact_email":    map[string]any{"type": "string", "description": "Client's email address"},
				"project_type":     map[string]any{"type": "string", "description": "Type of project to discuss (optional)"},
				"meeting_duration": map[string]any{"type": "string", "description": "Preferred meeting duration (e.g., 30 minutes) (optional)"},
				"contact_phone":    map[string]any{"type": "string", "description": "Client's phone number (optional)"},
			},
			"required": []string{"client_name", "company_name", "preferred_date", "preferred_time", "contact_email"},
		},
		Run: m.run,
	}
}

func (m *meetingTool) run(ctx context.Context, args map[string]any) (any, error) {
	clientName, err := requiredString(args, "client_name")
	if err != nil {
		return nil, err
	}
	companyName, err := requiredString(args, "company_name")
	if err != nil {
		return nil, err
	}
	contactEmail, err := requiredString(args, "contact_email")
	if err != nil {
		return nil, err
	}

	preferredDate := optionalString(args, "preferred_date")
	preferredTime := optionalString(args, "preferred_time")
	projectType := optionalString(args, "project_type")
	contactPhone := optionalString(args, "contact_phone")
	duration := optionalString(args, "meeting_duration")
	if duration == "" {
		duration = "30 minutes"
	}

	// Free-text date/time is accepted verbatim; slot selection is only the
	// fallback when either part is missing.
	var selectedSlot string
	if preferredDate != "" && preferredTime != "" {
		selectedSlot = preferredDate + " " + preferredTime
	} else {
		selectedSlot = availableSlots[m.pickInt(len(availableSlots))]
	}

	company := promptx.MaticStudio

	inviteSubject := "Consultation Meeting"
	if projectType != "" {
		inviteSubject = fmt.Sprintf("Consultation Meeting - %s Project", projectType)
	}

	var desc strings.Builder
	fmt.Fprintf(&desc, "Meeting with %s from %s", clientName, companyName)
	if projectType != "" {
		fmt.Fprintf(&desc, " to discuss %s project", projectType)
	}
	desc.WriteString(".\n\nAgenda:\n- Project/process overview and goals\n- Service capabilities and approach\n- Timeline and budget considerations\n- Next steps\n\n")
	fmt.Fprintf(&desc, "Duration: %s\nFormat: Video Call (Zoom/Teams)\n\nContact: %s", duration, contactEmail)
	if contactPhone != "" {
		fmt.Fprintf(&desc, " | %s", contactPhone)
	}

	calendarInvite := map[string]any{
		"subject":     inviteSubject,
		"description": desc.String(),
		"status":      "invite_prepared",
	}

	meeting := map[string]any{
		"meeting_type": "Initial Consultation",
		"duration":     duration,
		"date_time":    selectedSlot,
		"format":       "Video Call (Zoom/Teams)",
		"attendees": []string{
			fmt.Sprintf("%s (%s)", clientName, companyName),
			fmt.Sprintf("%s (MATIC Studio)", company.LeadArchitect),
		},
		"agenda": []string{
			"Project/Process overview and goals",
			"Service capabilities and approach",
			"Timeline and budget considerations",
			"Next steps and proposal process",
		},
		"calendar_invite": calendarInvite,
	}

	// Best-effort booking link: a failed remote call is embedded as an error
	// field, never a tool failure.
	if m.linker != nil {
		link, err := m.linker.CreateSchedulingLink(ctx, clientName, contactEmail)
		if err != nil {
			meeting["calendly"] = map[string]any{"error": err.Error()}
		} else {
			meeting["calendly"] = map[string]any{"scheduling_url": link.BookingURL}
			if link.BookingURL != "" {
				calendarInvite["status"] = "calendly_link_created"
				calendarInvite["scheduling_url"] = link.BookingURL
			}
		}
	}

	return meeting, nil
}
