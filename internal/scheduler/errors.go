package scheduler

import (
	"errors"
	"fmt"
)

// ErrInvalidTriggerSpec is matched by InvalidTriggerSpecError via errors.Is.
var ErrInvalidTriggerSpec = errors.New("invalid trigger spec")

// InvalidTriggerSpecError reports a trigger that is not a 24-hour HH:MM time.
type InvalidTriggerSpecError struct {
	JobID string
	Spec  string
	Err   error
}

func (e *InvalidTriggerSpecError) Error() string {
	return fmt.Sprintf("job %q: trigger %q is not HH:MM: %v", e.JobID, e.Spec, e.Err)
}

func (e *InvalidTriggerSpecError) Is(target error) bool { return target == ErrInvalidTriggerSpec }

func (e *InvalidTriggerSpecError) Unwrap() error { return e.Err }
