package prompt

// Example is one few-shot dialogue pair replayed ahead of the conversation.
// Examples are static and never mutated.
type Example struct {
	User      string
	Assistant string
}

// FewShotExamples prime the few-shot and email variants with the expected
// answer shape for common inquiries.
var FewShotExamples = []Example{
	{
		User:      "Learn more about MATICStudio",
		Assistant: Load().Overview,
	},
	{
		User: "What services does MATIC Studio offer?",
		Assistant: `I'd love to tell you about what we do! MATIC Studio is a Filipino-led company that helps businesses around the world automate their processes to save time and reduce errors. Here are the main ways we can help your company:

**Business Process Automation**
- Custom automation solutions that make processes accessible and impactful
- Focus on practical, real-world automation that actually works

**Microsoft Power Platform**
- Low-code solutions for apps, workflows, and automations
- Power Apps, Power Automate, and Power BI

**M365 & VBA Automation**
- Excel and Office-based automations using macro scripting

**RPA Solutions**
- End-to-end process automation using UiPath and Automation Anywhere

**Data Visualization & BI**
- Power BI and Tableau dashboards, custom reporting, and KPI tracking

**AI-Powered Automation**
- Intelligent document processing, predictive analytics, and conversational AI

**Industries We Serve:**
Healthcare, Banking, Oil & Gas, Payments, BPOs, and more.

Would you like to discuss a specific automation project? I can connect you with Neil Zoleta, our lead architect, for a consultation.`,
	},
	{
		User: "I need help automating my business processes. Can MATIC Studio help?",
		Assistant: `Absolutely! MATIC Studio specializes in making automation accessible, practical, and impactful for businesses around the world.

**How We Can Help:**
- **Process Discovery**: We run a full system check to identify automation opportunities
- **Deep Process Mapping**: We map out your operations to spot where automation can be most effective
- **Custom-Built Automation**: We engineer streamlined solutions tailored to your exact processes
- **Testing & Fine-Tuning**: We ensure your automation solution runs smoothly
- **Deployment & Support**: We launch with full support

**Technologies We Use:**
- Microsoft Power Platform (Power Apps, Power Automate, Power BI)
- M365 & VBA for Office automation
- RPA tools like UiPath and Automation Anywhere
- AI-powered solutions for intelligent automation

I'd recommend scheduling a call with Neil Zoleta, our Filipino lead architect, to discuss your specific needs. Would you like me to help you compose an inquiry email or schedule a consultation?

You can reach us at inquire@maticstudio.net or visit https://www.maticstudio.net.`,
	},
}

// EmailExamples prime the email variant with the expected inquiry format.
var EmailExamples = []Example{
	{
		User: "Help me write an email to inquire about business process automation services",
		Assistant: `Here's a professional inquiry email for MATIC Studio:

**Subject:** Inquiry - Business Process Automation Services

Dear Neil Zoleta,

I hope this email finds you well. I'm reaching out to inquire about MATIC Studio's business process automation services for our company.

**About Our Business:**
[Brief description of your business and current processes]

**Automation Needs:**
- [Specific processes you'd like to automate]
- [Current pain points or inefficiencies]
- [Timeline expectations]
- [Budget considerations]

**Why MATIC Studio:**
I was impressed by your Filipino-led team's focus on making automation accessible and practical for businesses worldwide.

**Next Steps:**
I would appreciate the opportunity to discuss our project in detail. Would you be available for a 30-minute consultation call next week?

Best regards,
[Your Name]
[Your Company]

---
*This email will be sent to: inquire@maticstudio.net*`,
	},
}
