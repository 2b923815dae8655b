package catalog

import "maturity/pkg/domain"

// dimensions is the fixed catalog. Ids and order are part of the persisted
// format: stored and exported assessments are matched against them.
var dimensions = []domain.DimensionTemplate{
	{
		ID:          "communications",
		Name:        "Communications",
		Description: "Information as it relates to an organization's accessibility, as well as accessibility of all internal/external communications.",
		ProofPoints: []domain.ProofPointTemplate{
			{ID: "comm-1", Category: "Foundation for Accessible Communication", Description: "Accessible corporate document templates"},
			{ID: "comm-2", Category: "Foundation for Accessible Communication", Description: "Documented HTML or PDF conversion procedures to support accessibility features"},
			{ID: "comm-3", Category: "Foundation for Accessible Communication", Description: "Processes, procedures, and requirements for creating accessible communications documented and available"},
			{ID: "comm-4", Category: "Foundation for Accessible Communication", Description: "Accessible collaboration tools available (e-meeting, webinar, conferencing, chat)"},
			{ID: "comm-5", Category: "Accessible Direct Communications", Description: "Accessible templates for marketing and sales materials"},
			{ID: "comm-6", Category: "Accessible Direct Communications", Description: "Internal and external websites are accessible per regional requirements (WCAG)"},
			{ID: "comm-7", Category: "Accessible Direct Communications", Description: "Website has accessibility statement"},
			{ID: "comm-8", Category: "Accessible Direct Communications", Description: "Accessibility Conformance Reports (ACR) available and accessible"},
			{ID: "comm-9", Category: "Accessible Direct Communications", Description: "Multimedia includes captions, transcripts, and described audio"},
			{ID: "comm-10", Category: "Accessible Direct Communications", Description: "Feedback mechanism for handling accessibility questions and complaints"},
			{ID: "comm-11", Category: "Accessible Communications Training", Description: "Training in place to build accessible communications skills"},
			{ID: "comm-12", Category: "Dimension Goals and Metrics", Description: "Goals established, metrics defined, and progress tracked"},
		},
	},
	{
		ID:          "ict-lifecycle",
		Name:        "ICT Development Lifecycle",
		Description: "Incorporation of web, software and hardware accessibility considerations in development processes.",
		ProofPoints: []domain.ProofPointTemplate{
			{ID: "ict-1", Category: "User Research", Description: "User research includes people with disabilities"},
			{ID: "ict-2", Category: "User Research", Description: "Research participants provided with accommodations (AT, time, virtual options)"},
			{ID: "ict-3", Category: "User Research", Description: "Personas and journey maps include people with disabilities"},
			{ID: "ict-4", Category: "Planning and Design", Description: "Digital accessibility standards integrated into planning and design phases"},
			{ID: "ict-5", Category: "Planning and Design", Description: "Designers have access to accessibility checklists and guidelines"},
			{ID: "ict-6", Category: "Planning and Design", Description: "Accessibility reviews part of design process"},
			{ID: "ict-7", Category: "Planning and Design", Description: "Design deliverables include accessibility annotations"},
			{ID: "ict-8", Category: "Development", Description: "Accessible developer implementation resources available"},
			{ID: "ict-9", Category: "Development", Description: "Developer accessibility checklists available"},
			{ID: "ict-10", Category: "Development", Description: "Process to triage and prioritize fixing accessibility issues"},
			{ID: "ict-11", Category: "Quality Review", Description: "Manual accessibility testing with assistive technology"},
			{ID: "ict-12", Category: "Quality Review", Description: "Automated accessibility testing implemented"},
			{ID: "ict-13", Category: "Quality Review", Description: "Accessibility identified as product release gate"},
			{ID: "ict-14", Category: "Quality Review", Description: "ACRs created for COTS offerings"},
			{ID: "ict-15", Category: "Training", Description: "ICT development and test training in place"},
			{ID: "ict-16", Category: "Goals and Metrics", Description: "Goals established, metrics defined, progress tracked"},
		},
	},
	{
		ID:          "knowledge-skills",
		Name:        "Knowledge and Skills",
		Description: "Ongoing education and practices to fill gaps for accessibility operations.",
		ProofPoints: []domain.ProofPointTemplate{
			{ID: "ks-1", Category: "Assessing Skills", Description: "Organizational surveys identify current skill levels and gaps"},
			{ID: "ks-2", Category: "Assessing Skills", Description: "Employee training for ICT accessibility skills tracked"},
			{ID: "ks-3", Category: "Assessing Skills", Description: "Certification or competency reviews and programs"},
			{ID: "ks-4", Category: "Assessing Skills", Description: "Accessibility criteria in employee performance measurements"},
			{ID: "ks-5", Category: "Building Capacity", Description: "Role-based training plans and curricula implemented"},
			{ID: "ks-6", Category: "Building Capacity", Description: "External training resources procured as needed"},
			{ID: "ks-7", Category: "Building Capacity", Description: "Accessibility training in organizational learning management systems"},
			{ID: "ks-8", Category: "Building Capacity", Description: "Accessibility training when onboarding new employees"},
			{ID: "ks-9", Category: "Building Capacity", Description: "Subject matter experts (SMEs) positioned to provide training"},
			{ID: "ks-10", Category: "Building Capacity", Description: "Digital accessibility events organized or attended"},
			{ID: "ks-11", Category: "Goals and Metrics", Description: "Goals established, metrics defined, progress tracked"},
		},
	},
	{
		ID:          "oversight-culture",
		Name:        "Oversight and Culture",
		Description: "Attitudes, sensitivity, and behaviors around accessibility, including perception and decision-making.",
		ProofPoints: []domain.ProofPointTemplate{
			{ID: "oc-1", Category: "Organizational Culture", Description: "Executive sponsor in place for digital accessibility"},
			{ID: "oc-2", Category: "Organizational Culture", Description: "Executive-level digital accessibility program leadership"},
			{ID: "oc-3", Category: "Organizational Culture", Description: "Executive statement of commitment to digital accessibility"},
			{ID: "oc-4", Category: "Financial Commitment", Description: "Financial plan developed for activities to advance maturity"},
			{ID: "oc-5", Category: "Financial Commitment", Description: "Funding committed for activities to advance maturity"},
			{ID: "oc-6", Category: "ICT Accessibility Policy", Description: "Business strategy includes digital accessibility"},
			{ID: "oc-7", Category: "ICT Accessibility Policy", Description: "Digital accessibility included in core values"},
			{ID: "oc-8", Category: "ICT Accessibility Policy", Description: "Digital accessibility in code of conduct"},
			{ID: "oc-9", Category: "ICT Accessibility Policy", Description: "ICT accessibility in employee performance objectives"},
			{ID: "oc-10", Category: "ICT Accessibility Policy", Description: "Exception/risk acceptance process with executive approval"},
			{ID: "oc-11", Category: "Training", Description: "Accessibility-related training in place"},
			{ID: "oc-12", Category: "Goals and Metrics", Description: "Goals established, metrics defined, progress tracked"},
		},
	},
	{
		ID:          "personnel",
		Name:        "Personnel",
		Description: "Job descriptions, recruiting, and disability-related employee resource groups.",
		ProofPoints: []domain.ProofPointTemplate{
			{ID: "pers-1", Category: "Targeted Recruiting", Description: "Established goals for recruiting employees with disabilities"},
			{ID: "pers-2", Category: "Targeted Recruiting", Description: "Recruiting needs assessment/gap analysis completed"},
			{ID: "pers-3", Category: "Targeted Recruiting", Description: "Initiatives to recruit employees with disabilities"},
			{ID: "pers-4", Category: "Accessible Job Application", Description: "Hiring tools and job boards meet accessibility standards"},
			{ID: "pers-5", Category: "Accessible Job Application", Description: "Recruiting communications meet accessibility standards"},
			{ID: "pers-6", Category: "Accessible Job Application", Description: "Accessibility audit of jobs website completed"},
			{ID: "pers-7", Category: "Strategic Engagement", Description: "Employee resource group (ERG) for employees with disabilities"},
			{ID: "pers-8", Category: "Strategic Engagement", Description: "Product and project focus groups of employees with disabilities"},
			{ID: "pers-9", Category: "Strategic Engagement", Description: "Mentoring program for employees with disabilities"},
			{ID: "pers-10", Category: "Strategic Engagement", Description: "Employee performance evaluated against accessibility responsibilities"},
			{ID: "pers-11", Category: "Training", Description: "Accessibility training in place"},
			{ID: "pers-12", Category: "Goals and Metrics", Description: "Goals established, metrics defined, progress tracked"},
		},
	},
	{
		ID:          "procurement",
		Name:        "Procurement",
		Description: "Strategic process for finding and acquiring accessible products and services.",
		ProofPoints: []domain.ProofPointTemplate{
			{ID: "proc-1", Category: "Policy Documentation", Description: "Published ICT Accessibility Procurement Policy"},
			{ID: "proc-2", Category: "Policy Documentation", Description: "Accessibility requirements communicated to vendors"},
			{ID: "proc-3", Category: "Procurement Language", Description: "Standardized solicitation language includes accessibility"},
			{ID: "proc-4", Category: "Procurement Language", Description: "Standardized contract language includes accessibility"},
			{ID: "proc-5", Category: "Evaluation Process", Description: "Accessibility evaluations performed on solicitation responses"},
			{ID: "proc-6", Category: "Evaluation Process", Description: "Documented evaluation methodology"},
			{ID: "proc-7", Category: "Contract Language", Description: "Vendor accessibility testing requirements"},
			{ID: "proc-8", Category: "Contract Language", Description: "Warranties and remedies section includes accessibility"},
			{ID: "proc-9", Category: "Contract Language", Description: "Vendor corrective actions and remediation plans"},
			{ID: "proc-10", Category: "Program Management", Description: "Contract lifecycle management includes accessibility"},
			{ID: "proc-11", Category: "Program Management", Description: "Process for addressing user accessibility complaints with vendors"},
			{ID: "proc-12", Category: "Training", Description: "Procurement training in place"},
			{ID: "proc-13", Category: "Goals and Metrics", Description: "Goals established, metrics defined, progress tracked"},
		},
	},
	{
		ID:          "support",
		Name:        "Support",
		Description: "Accessibility assistance provided to internal employees and external customers with disabilities.",
		ProofPoints: []domain.ProofPointTemplate{
			{ID: "supp-1", Category: "Employee Support", Description: "Written policy on requesting and providing employee accommodations"},
			{ID: "supp-2", Category: "Employee Support", Description: "Disability-focused employee resource group (ERG) with executive sponsorship"},
			{ID: "supp-3", Category: "Employee Support", Description: "Support for use of assistive technology"},
			{ID: "supp-4", Category: "Organizational Support", Description: "Policies and procedures for providing accessible service"},
			{ID: "supp-5", Category: "Organizational Support", Description: "Information presented in plain language"},
			{ID: "supp-6", Category: "Organizational Support", Description: "Support mechanisms are accessible"},
			{ID: "supp-7", Category: "Organizational Support", Description: "Accessibility knowledge base within internal resources"},
			{ID: "supp-8", Category: "Organizational Support", Description: "Mechanism to capture accessibility feedback"},
			{ID: "supp-9", Category: "External Support", Description: "Publicly available accessible digital accessibility statement"},
			{ID: "supp-10", Category: "External Support", Description: "Written policy on customer accommodations"},
			{ID: "supp-11", Category: "External Support", Description: "Accessibility documentation for external use"},
			{ID: "supp-12", Category: "Training", Description: "Accessibility training in place"},
			{ID: "supp-13", Category: "Goals and Metrics", Description: "Goals established, metrics defined, progress tracked"},
		},
	},
}

var maturityLevels = []domain.MaturityLevelInfo{
	{
		Level:       domain.MaturityInactive,
		Label:       "Inactive",
		Description: "Little to no awareness, activity, or recognition of need.",
	},
	{
		Level:       domain.MaturityLaunch,
		Label:       "Launch",
		Description: "Recognized need in the organization. Planning initiated, but activities not well organized.",
	},
	{
		Level:       domain.MaturityIntegrate,
		Label:       "Integrate",
		Description: "Roadmap in place, overall organizational approach defined and well organized.",
	},
	{
		Level:       domain.MaturityOptimize,
		Label:       "Optimize",
		Description: "Incorporated into the whole organization, consistently evaluated, and actions taken on assessment outcomes.",
	},
}
