package schema

import "errors"

var ErrMissingSubmissionID = errors.New("notification has no submission id")
