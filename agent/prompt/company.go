package prompt

// Company holds the MATIC Studio metadata interpolated into prompts, tool
// output, and the canned overview.
type Company struct {
	Name          string
	Website       string
	Email         string
	Address       string
	Industry      string
	LeadArchitect string
	LinkedIn      string
}

// MaticStudio is the fixed company record this deployment serves.
var MaticStudio = Company{
	Name:          "MATIC Studio",
	Website:       "https://www.maticstudio.net",
	Email:         "inquire@maticstudio.net",
	Address:       "Taguig City, Metro Manila, Philippines",
	Industry:      "Business Process Automation",
	LeadArchitect: "Neil Zoleta",
	LinkedIn:      "https://www.linkedin.com/company/maticstudio",
}
