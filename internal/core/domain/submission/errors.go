package submission

import "errors"

var ErrSubmissionDoesNotExist = errors.New("submission does not exist")
