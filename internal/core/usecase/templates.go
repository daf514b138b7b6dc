package usecase

import "github.com/jobtrackd/jobtrackd/internal/core/domain"

// DefaultChecklistTemplates returns the built-in template bundles. Deployments
// can replace them with a YAML file, see infrastructure/templates.
func DefaultChecklistTemplates() []domain.ChecklistTemplate {
	return []domain.ChecklistTemplate{
		{
			ID:          "template-standard",
			Name:        "Standard application",
			Description: "Checklist for a typical posted-position application",
			Category:    "standard",
			IsDefault:   true,
			Items: []domain.TemplateItem{
				{Task: "Analyze the posting and mark keywords", Category: "Preparation", Position: 1, Priority: domain.PriorityHigh},
				{Task: "Research the company (products, culture, news)", Category: "Preparation", Position: 2, Priority: domain.PriorityHigh},
				{Task: "Match own qualifications against requirements", Category: "Preparation", Position: 3, Priority: domain.PriorityMedium},
				{Task: "Research salary range", Category: "Preparation", Position: 4, Priority: domain.PriorityMedium},
				{Task: "Identify contact person", Category: "Preparation", Position: 5, Priority: domain.PriorityMedium},
				{Task: "Update and tailor resume", Category: "Documents", Position: 6, Priority: domain.PriorityHigh},
				{Task: "Write cover letter tailored to the position", Category: "Documents", Position: 7, Priority: domain.PriorityHigh},
				{Task: "Collect references and certificates", Category: "Documents", Position: 8, Priority: domain.PriorityMedium},
				{Task: "Proofread everything", Category: "Documents", Position: 9, Priority: domain.PriorityHigh},
				{Task: "Convert documents to PDF", Category: "Documents", Position: 10, Priority: domain.PriorityHigh},
				{Task: "Send the application", Category: "Process", Position: 11, Priority: domain.PriorityHigh},
				{Task: "Set a follow-up reminder", Category: "Process", Position: 12, Priority: domain.PriorityMedium},
				{Task: "Follow up after one week without a reply", Category: "Follow-up", Position: 13, Priority: domain.PriorityMedium},
				{Task: "Prepare for phone screening", Category: "Follow-up", Position: 14, Priority: domain.PriorityHigh},
				{Task: "Prepare for on-site interview", Category: "Interview", Position: 15, Priority: domain.PriorityHigh},
				{Task: "Plan route or test the meeting tool", Category: "Interview", Position: 16, Priority: domain.PriorityHigh},
				{Task: "Prepare own questions", Category: "Interview", Position: 17, Priority: domain.PriorityHigh},
				{Task: "Prepare salary negotiation", Category: "Interview", Position: 18, Priority: domain.PriorityHigh},
				{Task: "Send thank-you note after the interview", Category: "Interview", Position: 19, Priority: domain.PriorityMedium},
				{Task: "Review the offer", Category: "Closing", Position: 20, Priority: domain.PriorityHigh},
				{Task: "Review and sign the contract", Category: "Closing", Position: 21, Priority: domain.PriorityHigh},
			},
		},
		{
			ID:          "template-speculative",
			Name:        "Speculative application",
			Description: "Checklist for unsolicited applications",
			Category:    "speculative",
			IsDefault:   true,
			Items: []domain.TemplateItem{
				{Task: "Identify target companies", Category: "Preparation", Position: 1, Priority: domain.PriorityHigh},
				{Task: "Research the company in depth", Category: "Preparation", Position: 2, Priority: domain.PriorityHigh},
				{Task: "Find the relevant contact person", Category: "Preparation", Position: 3, Priority: domain.PriorityHigh},
				{Task: "Work out specific strengths to pitch", Category: "Preparation", Position: 4, Priority: domain.PriorityHigh},
				{Task: "Tailor resume to the company", Category: "Documents", Position: 5, Priority: domain.PriorityHigh},
				{Task: "Write a convincing cover letter", Category: "Documents", Position: 6, Priority: domain.PriorityHigh},
				{Task: "Plan the follow-up", Category: "Follow-up", Position: 7, Priority: domain.PriorityMedium},
			},
		},
		{
			ID:          "template-internship",
			Name:        "Internship application",
			Description: "Checklist for internship applications",
			Category:    "internship",
			IsDefault:   true,
			Items: []domain.TemplateItem{
				{Task: "Define learning goals", Category: "Preparation", Position: 1, Priority: domain.PriorityHigh},
				{Task: "Check university requirements", Category: "Preparation", Position: 2, Priority: domain.PriorityHigh},
				{Task: "Fix the timeline", Category: "Preparation", Position: 3, Priority: domain.PriorityMedium},
				{Task: "Prepare a student resume", Category: "Documents", Position: 4, Priority: domain.PriorityHigh},
				{Task: "Emphasize motivation in the cover letter", Category: "Documents", Position: 5, Priority: domain.PriorityHigh},
				{Task: "Plan the internship report", Category: "Closing", Position: 6, Priority: domain.PriorityLow},
			},
		},
		{
			ID:          "template-international",
			Name:        "International application",
			Description: "Checklist for applications abroad",
			Category:    "international",
			IsDefault:   true,
			Items: []domain.TemplateItem{
				{Task: "Research country-specific application standards", Category: "Preparation", Position: 1, Priority: domain.PriorityHigh},
				{Task: "Adapt resume to the local format (CV vs resume)", Category: "Documents", Position: 2, Priority: domain.PriorityHigh},
				{Task: "Have documents translated", Category: "Documents", Position: 3, Priority: domain.PriorityHigh},
				{Task: "Provide language certificates", Category: "Documents", Position: 4, Priority: domain.PriorityHigh},
				{Task: "Check visa requirements", Category: "Preparation", Position: 5, Priority: domain.PriorityHigh},
				{Task: "Prepare for remote interviews", Category: "Interview", Position: 6, Priority: domain.PriorityMedium},
			},
		},
	}
}
