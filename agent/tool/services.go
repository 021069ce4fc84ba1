package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/shared"
)

const ToolGetServiceDetails = "get_service_details"

// ServiceDetail is the fixed metadata for one offered service.
type ServiceDetail struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Technologies  []string `json:"technologies,omitempty"`
	Deliverables  []string `json:"deliverables,omitempty"`
	Services      []string `json:"services,omitempty"`
	Process       []string `json:"process"`
	Timeline      string   `json:"timeline"`
	StartingPrice string   `json:"starting_price"`
}

// serviceKeys preserves the catalog order for the not-found listing.
var serviceKeys = []string{"web_development", "mobile_development", "ui_ux_design", "consulting"}

var serviceCatalog = map[string]ServiceDetail{
	"web_development": {
		Name:         "Web Development",
		Description:  "Custom web applications, e-commerce platforms, and responsive websites",
		Technologies: []string{"React", "Vue.js", "Node.js", "Python", "PHP", "WordPress"},
		Process: []string{
			"Requirements gathering and planning",
			"UI/UX design and wireframing",
			"Frontend and backend development",
			"Testing and quality assurance",
			"Deployment and launch",
			"Ongoing maintenance and support",
		},
		Timeline:      "4-12 weeks depending on complexity",
		StartingPrice: "$15,000",
	},
	"mobile_development": {
		Name:         "Mobile Development",
		Description:  "Native and cross-platform mobile applications for iOS and Android",
		Technologies: []string{"React Native", "Flutter", "Swift", "Kotlin", "Xamarin"},
		Process: []string{
			"App concept and requirements",
			"UI/UX design and prototyping",
			"Development and testing",
			"App store submission",
			"Launch and maintenance",
		},
		Timeline:      "8-16 weeks depending on complexity",
		StartingPrice: "$25,000",
	},
	"ui_ux_design": {
		Name:         "UI/UX Design",
		Description:  "User-centered design solutions with focus on usability and aesthetics",
		Deliverables: []string{"Wireframes", "Prototypes", "Design systems", "User research", "Usability testing"},
		Process: []string{
			"User research and analysis",
			"Information architecture",
			"Wireframing and prototyping",
			"Visual design and branding",
			"Usability testing and iteration",
		},
		Timeline:      "3-8 weeks depending on scope",
		StartingPrice: "$8,000",
	},
	"consulting": {
		Name:        "Digital Strategy Consulting",
		Description: "Strategic guidance for digital transformation and product development",
		Services:    []string{"Product strategy", "Technology consulting", "Digital transformation", "Market analysis"},
		Process: []string{
			"Current state assessment",
			"Strategy development",
			"Technology recommendations",
			"Implementation roadmap",
			"Ongoing guidance and support",
		},
		Timeline:      "2-6 weeks depending on scope",
		StartingPrice: "$5,000",
	},
}

// NewServiceTool builds the service catalog lookup. An unknown service name
// yields a not-found payload with the available keys, not an error.
func NewServiceTool() *Tool {
	return &Tool{
		Name:        ToolGetServiceDetails,
		Description: "Get detailed information about MATIC Studio services",
		Parameters: shared.FunctionParameters{
			"type": "object",
			"properties": map[string]any{
				"service_name": map[string]any{"type": "string", "description": "Name of the service (web_development, mobile_development, ui_ux_design, consulting)"},
			},
			"required": []string{"service_name"},
		},
		Run: getServiceDetails,
	}
}

func getServiceDetails(_ context.Context, args map[string]any) (any, error) {
	serviceName, err := requiredString(args, "service_name")
	if err != nil {
		return nil, err
	}

	detail, ok := serviceCatalog[strings.ToLower(strings.TrimSpace(serviceName))]
	if !ok {
		return map[string]any{
			"error": fmt.Sprintf("Service '%s' not found. Available services: %s",
				serviceName, strings.Join(serviceKeys, ", ")),
		}, nil
	}
	return detail, nil
}
