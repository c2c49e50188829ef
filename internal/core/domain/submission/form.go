package submission

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Form is the stakeholder specific part of a submission. Every variant
// carries exactly the fields its stakeholder type requires.
type Form interface {
	StakeholderType() StakeholderType
	ContactEmail() string
	ContactName() string
	Fields() []Field
}

// Field is a labelled non-empty value of a form, in display order.
type Field struct {
	Key   string
	Label string
	Value string
}

type Base struct {
	Email   string `json:"email"`
	Message string `json:"message,omitempty"`
}

func (b Base) ContactEmail() string {
	return b.Email
}

type StartupFounderForm struct {
	Base
	CompanyName   string `json:"companyName"`
	FounderName   string `json:"founderName"`
	IndustryFocus string `json:"industryFocus"`
	FundingStage  string `json:"fundingStage"`
	TeamSize      string `json:"teamSize"`
	Website       string `json:"website,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
}

func (StartupFounderForm) StakeholderType() StakeholderType { return StartupFounder }

func (f StartupFounderForm) ContactName() string { return f.FounderName }

func (f StartupFounderForm) Fields() []Field {
	return newFields(f.Base).
		add("companyName", "Company Name", f.CompanyName).
		add("founderName", "Founder Name", f.FounderName).
		add("industryFocus", "Industry Focus", f.IndustryFocus).
		add("fundingStage", "Funding Stage", f.FundingStage).
		add("teamSize", "Team Size", f.TeamSize).
		add("website", "Website", f.Website).
		add("phoneNumber", "Phone Number", f.PhoneNumber).
		withMessage(f.Base)
}

type ResearcherForm struct {
	Base
	FullName          string   `json:"fullName"`
	Institution       string   `json:"institution"`
	ResearchArea      []string `json:"researchArea"`
	AcademicLevel     string   `json:"academicLevel"`
	CollaborationType string   `json:"collaborationType"`
	Website           string   `json:"website,omitempty"`
}

func (ResearcherForm) StakeholderType() StakeholderType { return Researcher }

func (f ResearcherForm) ContactName() string { return f.FullName }

func (f ResearcherForm) Fields() []Field {
	return newFields(f.Base).
		add("fullName", "Full Name", f.FullName).
		add("institution", "Institution", f.Institution).
		addList("researchArea", "Research Area", f.ResearchArea).
		add("academicLevel", "Academic Level", f.AcademicLevel).
		add("collaborationType", "Collaboration Type", f.CollaborationType).
		add("website", "Website", f.Website).
		withMessage(f.Base)
}

type InvestorForm struct {
	Base
	FullName           string   `json:"fullName"`
	Organization       string   `json:"organization"`
	InvestorType       string   `json:"investorType"`
	InvestmentRange    string   `json:"investmentRange"`
	IndustryPreference []string `json:"industryPreference"`
	Website            string   `json:"website,omitempty"`
	PhoneNumber        string   `json:"phoneNumber,omitempty"`
}

func (InvestorForm) StakeholderType() StakeholderType { return Investor }

func (f InvestorForm) ContactName() string { return f.FullName }

func (f InvestorForm) Fields() []Field {
	return newFields(f.Base).
		add("fullName", "Full Name", f.FullName).
		add("organization", "Organization", f.Organization).
		add("investorType", "Investor Type", f.InvestorType).
		add("investmentRange", "Investment Range", f.InvestmentRange).
		addList("industryPreference", "Industry Preference", f.IndustryPreference).
		add("website", "Website", f.Website).
		add("phoneNumber", "Phone Number", f.PhoneNumber).
		withMessage(f.Base)
}

type MentorForm struct {
	Base
	FullName             string   `json:"fullName"`
	CurrentRole          string   `json:"currentRole"`
	Company              string   `json:"company"`
	ExperienceYears      string   `json:"experienceYears"`
	ExpertiseAreas       []string `json:"expertiseAreas"`
	MentorshipExperience string   `json:"mentorshipExperience"`
	AvailableTime        string   `json:"availableTime"`
	LinkedinProfile      string   `json:"linkedinProfile,omitempty"`
}

func (MentorForm) StakeholderType() StakeholderType { return Mentor }

func (f MentorForm) ContactName() string { return f.FullName }

func (f MentorForm) Fields() []Field {
	return newFields(f.Base).
		add("fullName", "Full Name", f.FullName).
		add("currentRole", "Current Role", f.CurrentRole).
		add("company", "Company", f.Company).
		add("experienceYears", "Experience", f.ExperienceYears).
		addList("expertiseAreas", "Expertise Areas", f.ExpertiseAreas).
		add("mentorshipExperience", "Mentorship Experience", f.MentorshipExperience).
		add("availableTime", "Available Time", f.AvailableTime).
		add("linkedinProfile", "LinkedIn Profile", f.LinkedinProfile).
		withMessage(f.Base)
}

type StudentForm struct {
	Base
	FullName           string   `json:"fullName"`
	Institution        string   `json:"institution"`
	StudyLevel         string   `json:"studyLevel"`
	FieldOfStudy       string   `json:"fieldOfStudy"`
	GraduationYear     int      `json:"graduationYear"`
	InterestedPrograms []string `json:"interestedPrograms"`
	Skills             []string `json:"skills"`
	PortfolioWebsite   string   `json:"portfolioWebsite,omitempty"`
}

func (StudentForm) StakeholderType() StakeholderType { return Student }

func (f StudentForm) ContactName() string { return f.FullName }

func (f StudentForm) Fields() []Field {
	return newFields(f.Base).
		add("fullName", "Full Name", f.FullName).
		add("institution", "Institution", f.Institution).
		add("studyLevel", "Study Level", f.StudyLevel).
		add("fieldOfStudy", "Field of Study", f.FieldOfStudy).
		add("graduationYear", "Graduation Year", strconv.Itoa(f.GraduationYear)).
		addList("interestedPrograms", "Interested Programs", f.InterestedPrograms).
		addList("skills", "Skills", f.Skills).
		add("portfolioWebsite", "Portfolio Website", f.PortfolioWebsite).
		withMessage(f.Base)
}

type PartnerForm struct {
	Base
	OrganizationName string   `json:"organizationName"`
	ContactPerson    string   `json:"contactName"`
	OrganizationType string   `json:"organizationType"`
	PartnershipType  string   `json:"partnershipType"`
	IndustryFocus    []string `json:"industryFocus"`
	OrganizationSize string   `json:"organizationSize"`
	Website          string   `json:"website"`
	PhoneNumber      string   `json:"phoneNumber,omitempty"`
}

func (PartnerForm) StakeholderType() StakeholderType { return Partner }

func (f PartnerForm) ContactName() string { return f.ContactPerson }

func (f PartnerForm) Fields() []Field {
	return newFields(f.Base).
		add("organizationName", "Organization Name", f.OrganizationName).
		add("contactName", "Contact Name", f.ContactPerson).
		add("organizationType", "Organization Type", f.OrganizationType).
		add("partnershipType", "Partnership Type", f.PartnershipType).
		addList("industryFocus", "Industry Focus", f.IndustryFocus).
		add("organizationSize", "Organization Size", f.OrganizationSize).
		add("website", "Website", f.Website).
		add("phoneNumber", "Phone Number", f.PhoneNumber).
		withMessage(f.Base)
}

// DecodeForm restores the variant selected by t from its JSON form data.
func DecodeForm(t StakeholderType, data []byte) (Form, error) {
	switch t {
	case StartupFounder:
		f := StartupFounderForm{}
		err := json.Unmarshal(data, &f)
		return f, err
	case Researcher:
		f := ResearcherForm{}
		err := json.Unmarshal(data, &f)
		return f, err
	case Investor:
		f := InvestorForm{}
		err := json.Unmarshal(data, &f)
		return f, err
	case Mentor:
		f := MentorForm{}
		err := json.Unmarshal(data, &f)
		return f, err
	case Student:
		f := StudentForm{}
		err := json.Unmarshal(data, &f)
		return f, err
	case Partner:
		f := PartnerForm{}
		err := json.Unmarshal(data, &f)
		return f, err
	default:
		return nil, ErrInvalidStakeholderType
	}
}

type fields []Field

func newFields(b Base) fields {
	return fields{{Key: "email", Label: "Email", Value: b.Email}}
}

func (fs fields) add(key, label, value string) fields {
	if value == "" {
		return fs
	}
	return append(fs, Field{Key: key, Label: label, Value: value})
}

func (fs fields) addList(key, label string, values []string) fields {
	return fs.add(key, label, strings.Join(values, ", "))
}

func (fs fields) withMessage(b Base) []Field {
	return fs.add("message", "Message", b.Message)
}
