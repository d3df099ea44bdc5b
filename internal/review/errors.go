package review

// The review layer reports expected business conditions as typed errors with
// reasons suitable for direct display. Only unexpected faults bubble up as
// wrapped internal errors.

// ConflictError reports a duplicate reviewer or an already-full submission.
// The caller may resubmit with different input.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// ExpiredError reports a submission past its review window. Terminal, no
// retry.
type ExpiredError struct {
	Reason string
}

func (e *ExpiredError) Error() string { return e.Reason }

// NotFoundError reports an unknown submission or mission.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string { return e.Reason }

// RequestError reports a malformed review or submission request.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string { return e.Reason }
