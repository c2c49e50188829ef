package submission

import "errors"

var ErrInvalidStatus = errors.New("status must be one of: new, read, archived")

type Status struct {
	v string
}

func (s Status) String() string {
	return s.v
}

func ParseStatus(value string) (Status, error) {
	switch value {
	case "new":
		return StatusNew, nil
	case "read":
		return StatusRead, nil
	case "archived":
		return StatusArchived, nil
	default:
		return StatusUnknown, ErrInvalidStatus
	}
}

var (
	StatusUnknown  = Status{}
	StatusNew      = Status{v: "new"}
	StatusRead     = Status{v: "read"}
	StatusArchived = Status{v: "archived"}
)

var Statuses = []Status{StatusNew, StatusRead, StatusArchived}
