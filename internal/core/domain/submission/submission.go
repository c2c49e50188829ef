package submission

import (
	c "kedilabs/internal/core/domain/common"
	e "kedilabs/internal/core/domain/errors"
	"time"
)

type ID string

const SourceWebsite = "website"

type Metadata struct {
	IPAddress string
	UserAgent string
	Timestamp time.Time
	Source    string
}

type Submission struct {
	ID        ID
	Form      Form
	Status    Status
	Metadata  Metadata
	CreatedAt time.Time
	UpdatedAt c.Optional[time.Time]
}

func (s Submission) Email() string {
	if s.Form == nil {
		return ""
	}
	return s.Form.ContactEmail()
}

func (s Submission) StakeholderType() StakeholderType {
	if s.Form == nil {
		return StakeholderUnknown
	}
	return s.Form.StakeholderType()
}

func (s Submission) Validate() error {
	if s.Form == nil {
		return e.NewInvalidStateError("submission form must be set")
	}
	if s.Status == StatusUnknown {
		return e.NewInvalidStateError("submission status must be set")
	}
	return nil
}
