package submissionvalidator

import (
	"kedilabs/internal/core/domain/submission"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	MinGraduationYear = 2024
	MaxGraduationYear = 2030
)

var (
	emailPattern = regexp.MustCompile(
		"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?" +
			`(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`,
	)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	urlPattern   = regexp.MustCompile(
		`^https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_+.~#?&/=]*)$`,
	)
)

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(raw map[string]any) submission.ValidationResult {
	data, _ := Sanitize(raw).(map[string]any)
	f := newFields(data)

	t, ok := stakeholderType(f)
	if !ok {
		return submission.ValidationResult{Errors: f.errors}
	}

	base := submission.Base{
		Email: f.text(
			"email",
			"Email is required",
			validation.RuneLength(0, 255).Error("Email is too long"),
			is.Email.Error("Please enter a valid email address"),
			validation.Match(emailPattern).Error("Please enter a valid email address"),
		),
		Message: f.text(
			"message",
			"",
			validation.RuneLength(10, 2000).Error("Message must be between 10 and 2000 characters"),
		),
	}

	var form submission.Form
	switch t {
	case submission.StartupFounder:
		form = startupFounder(f, base)
	case submission.Researcher:
		form = researcher(f, base)
	case submission.Investor:
		form = investor(f, base)
	case submission.Mentor:
		form = mentor(f, base)
	case submission.Student:
		form = student(f, base)
	case submission.Partner:
		form = partner(f, base)
	}

	if len(f.errors) > 0 {
		return submission.ValidationResult{Errors: f.errors}
	}
	return submission.ValidationResult{Form: form}
}

func stakeholderType(f *fields) (submission.StakeholderType, bool) {
	raw, ok := f.lookup("stakeholderType")
	if !ok {
		f.fail("stakeholderType", "Stakeholder type is required", submission.CodeRequired)
		return submission.StakeholderUnknown, false
	}
	s, _ := raw.(string)
	t, err := submission.ParseStakeholderType(s)
	if err != nil {
		f.fail("stakeholderType", "Invalid stakeholder type", submission.CodeInvalidValue)
		return submission.StakeholderUnknown, false
	}
	return t, true
}

func name(label string, max int) validation.Rule {
	return validation.RuneLength(0, max).Error(label + " is too long")
}

func website(message string) validation.Rule {
	return validation.Match(urlPattern).Error(message)
}

func phone() validation.Rule {
	return validation.Match(phonePattern).Error("Please enter a valid phone number")
}

func startupFounder(f *fields, base submission.Base) submission.Form {
	return submission.StartupFounderForm{
		Base:          base,
		CompanyName:   f.text("companyName", "Company name is required", name("Company name", 100)),
		FounderName:   f.text("founderName", "Founder name is required", name("Founder name", 100)),
		IndustryFocus: f.choice("industryFocus", "Please select an industry focus", startupIndustries),
		FundingStage:  f.choice("fundingStage", "Please select your funding stage", fundingStages),
		TeamSize:      f.choice("teamSize", "Please select your team size", teamSizes),
		Website:       f.text("website", "", website("Please enter a valid website URL")),
		PhoneNumber:   f.text("phoneNumber", "", phone()),
	}
}

func researcher(f *fields, base submission.Base) submission.Form {
	return submission.ResearcherForm{
		Base:              base,
		FullName:          f.text("fullName", "Full name is required", name("Name", 100)),
		Institution:       f.text("institution", "Institution is required", name("Institution name", 150)),
		ResearchArea:      f.choices("researchArea", "Please select at least one research area", researchAreas),
		AcademicLevel:     f.choice("academicLevel", "Please select your academic level", academicLevels),
		CollaborationType: f.choice("collaborationType", "Please select collaboration type", collaborationTypes),
		Website:           f.text("website", "", website("Please enter a valid website URL")),
	}
}

func investor(f *fields, base submission.Base) submission.Form {
	return submission.InvestorForm{
		Base:               base,
		FullName:           f.text("fullName", "Full name is required", name("Name", 100)),
		Organization:       f.text("organization", "Organization is required", name("Organization name", 150)),
		InvestorType:       f.choice("investorType", "Please select investor type", investorTypes),
		InvestmentRange:    f.choice("investmentRange", "Please select investment range", investmentRanges),
		IndustryPreference: f.choices("industryPreference", "Please select at least one industry preference", industries),
		Website:            f.text("website", "", website("Please enter a valid website URL")),
		PhoneNumber:        f.text("phoneNumber", "", phone()),
	}
}

func mentor(f *fields, base submission.Base) submission.Form {
	return submission.MentorForm{
		Base:                 base,
		FullName:             f.text("fullName", "Full name is required", name("Name", 100)),
		CurrentRole:          f.text("currentRole", "Current role is required", name("Role", 150)),
		Company:              f.text("company", "Company is required", name("Company name", 150)),
		ExperienceYears:      f.choice("experienceYears", "Please select your experience level", experienceBands),
		ExpertiseAreas:       f.choices("expertiseAreas", "Please select at least one expertise area", expertiseAreas),
		MentorshipExperience: f.choice("mentorshipExperience", "Please select your mentorship experience", mentorshipExperience),
		AvailableTime:        f.choice("availableTime", "Please select your available time commitment", availableTimes),
		LinkedinProfile:      f.text("linkedinProfile", "", website("Please enter a valid LinkedIn profile URL")),
	}
}

func student(f *fields, base submission.Base) submission.Form {
	return submission.StudentForm{
		Base:         base,
		FullName:     f.text("fullName", "Full name is required", name("Name", 100)),
		Institution:  f.text("institution", "Institution is required", name("Institution name", 150)),
		StudyLevel:   f.choice("studyLevel", "Please select your study level", studyLevels),
		FieldOfStudy: f.text("fieldOfStudy", "Field of study is required", name("Field of study", 100)),
		GraduationYear: f.integer(
			"graduationYear",
			"Graduation year is required",
			validation.Min(MinGraduationYear).Error("Graduation year must be 2024 or later"),
			validation.Max(MaxGraduationYear).Error("Graduation year seems too far in the future"),
		),
		InterestedPrograms: f.choices("interestedPrograms", "Please select at least one program of interest", interestedPrograms),
		Skills:             f.choices("skills", "Please select at least one skill area", skills),
		PortfolioWebsite:   f.text("portfolioWebsite", "", website("Please enter a valid portfolio URL")),
	}
}

func partner(f *fields, base submission.Base) submission.Form {
	return submission.PartnerForm{
		Base:             base,
		OrganizationName: f.text("organizationName", "Organization name is required", name("Organization name", 150)),
		ContactPerson:    f.text("contactName", "Contact name is required", name("Contact name", 100)),
		OrganizationType: f.choice("organizationType", "Please select organization type", organizationTypes),
		PartnershipType:  f.choice("partnershipType", "Please select partnership type", partnershipTypes),
		IndustryFocus:    f.choices("industryFocus", "Please select at least one industry focus", industries),
		OrganizationSize: f.choice("organizationSize", "Please select organization size", organizationSizes),
		Website:          f.text("website", "Website is required", website("Please enter a valid website URL")),
		PhoneNumber:      f.text("phoneNumber", "", phone()),
	}
}
