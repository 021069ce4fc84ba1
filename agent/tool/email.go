package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/shared"

	promptx "github.com/maticstudio/chat-agent/agent/prompt"
)

const ToolComposeInquiryEmail = "compose_inquiry_email"

// InquiryEmail is the structured result of the email composition tool.
type InquiryEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	To      string `json:"to"`
	From    string `json:"from"`
	Status  string `json:"status"`
}

// NewEmailTool builds the inquiry-email composer. Pure string templating, no
// side effects.
func NewEmailTool() *Tool {
	return &Tool{
		Name:        ToolComposeInquiryEmail,
		Description: "Compose a professional inquiry email to MATIC Studio",
		Parameters: shared.FunctionParameters{
			"type": "object",
			"properties": map[string]any{
				"client_name":         map[string]any{"type": "string", "description": "Client's full name"},
				"company_name":        map[string]any{"type": "string", "description": "Client's company name"},
				"project_type":        map[string]any{"type": "string", "description": "Type of project (web development, mobile development, UI/UX design, consulting)"},
				"project_description": map[string]any{"type": "string", "description": "Brief description of the project"},
				"timeline":            map[string]any{"type": "string", "description": "Expected project timeline"},
				"budget_range":        map[string]any{"type": "string", "description": "Budget range for the project"},
				"contact_email":       map[string]any{"type": "string", "description": "Client's email address"},
				"contact_phone":       map[string]any{"type": "string", "description": "Client's phone number"},
			},
			"required": []string{"client_name", "company_name", "project_type", "project_description", "contact_email"},
		},
		Run: composeInquiryEmail,
	}
}

func composeInquiryEmail(_ context.Context, args map[string]any) (any, error) {
	clientName, err := requiredString(args, "client_name")
	if err != nil {
		return nil, err
	}
	companyName, err := requiredString(args, "company_name")
	if err != nil {
		return nil, err
	}
	projectType, err := requiredString(args, "project_type")
	if err != nil {
		return nil, err
	}
	projectDescription, err := requiredString(args, "project_description")
	if err != nil {
		return nil, err
	}
	contactEmail, err := requiredString(args, "contact_email")
	if err != nil {
		return nil, err
	}
	timeline := optionalString(args, "timeline")
	budgetRange := optionalString(args, "budget_range")
	contactPhone := optionalString(args, "contact_phone")

	company := promptx.MaticStudio

	body := fmt.Sprintf(`Dear %s,

I hope this email finds you well. I'm reaching out to inquire about MATIC Studio's %s services for our company.

**About Our Project:**
%s

**Project Details:**
- Project Type: %s
- Timeline: %s
- Budget Range: %s

**Why MATIC Studio:**
I was impressed by your portfolio and approach to digital product development, particularly your expertise in %s.

**Next Steps:**
I would appreciate the opportunity to discuss our project in detail. Would you be available for a 30-minute consultation call next week? I'm flexible with timing and can work around your schedule.

**Contact Information:**
- Name: %s
- Company: %s
- Email: %s
- Phone: %s

Thank you for your time and consideration. I look forward to hearing from you.

Best regards,
%s
%s

---
*This email will be sent to: %s*`,
		company.LeadArchitect,
		strings.ToLower(projectType),
		projectDescription,
		projectType,
		timeline,
		budgetRange,
		strings.ToLower(projectType),
		clientName,
		companyName,
		contactEmail,
		contactPhone,
		clientName,
		companyName,
		company.Email,
	)

	return InquiryEmail{
		Subject: fmt.Sprintf("Inquiry - %s Services", projectType),
		Body:    body,
		To:      company.Email,
		From:    contactEmail,
		Status:  "ready_to_send",
	}, nil
}

func requiredString(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return s, nil
}

func optionalString(args map[string]any, key string) string {
	if raw, ok := args[key]; ok {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}
