package submission

import "errors"

var ErrInvalidStakeholderType = errors.New("invalid stakeholder type")

type StakeholderType struct {
	v string
}

func (t StakeholderType) String() string {
	return t.v
}

func ParseStakeholderType(value string) (StakeholderType, error) {
	for _, t := range StakeholderTypes {
		if t.v == value {
			return t, nil
		}
	}
	return StakeholderUnknown, ErrInvalidStakeholderType
}

// Label is the human readable name used in notification emails.
func (t StakeholderType) Label() string {
	switch t {
	case StartupFounder:
		return "Startup Founder"
	case Researcher:
		return "Researcher"
	case Investor:
		return "Investor"
	case Mentor:
		return "Mentor"
	case Student:
		return "Student"
	case Partner:
		return "Partner"
	default:
		return "Unknown"
	}
}

var (
	StakeholderUnknown = StakeholderType{}
	StartupFounder     = StakeholderType{v: "startup_founder"}
	Researcher         = StakeholderType{v: "researcher"}
	Investor           = StakeholderType{v: "investor"}
	Mentor             = StakeholderType{v: "mentor"}
	Student            = StakeholderType{v: "student"}
	Partner            = StakeholderType{v: "partner"}
)

var StakeholderTypes = []StakeholderType{StartupFounder, Researcher, Investor, Mentor, Student, Partner}
