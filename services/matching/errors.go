package matching

import "fmt"

// WorkflowError is a typed failure surfaced by the aid-matching workflow so
// handlers can map it onto a precise HTTP status.
type WorkflowError struct {
	Code    string
	Message string
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	// ErrCaseNotFound signals the referenced case does not exist.
	ErrCaseNotFound = &WorkflowError{Code: "caseNotFound", Message: "case not found"}
	// ErrNotCaseOwner signals the caller does not own the case.
	ErrNotCaseOwner = &WorkflowError{Code: "notCaseOwner", Message: "caller did not submit this case"}
	// ErrAlreadyRequested signals the case already has an active aid request.
	ErrAlreadyRequested = &WorkflowError{Code: "alreadyRequested", Message: "case already has an active aid request"}
	// ErrRequestNotFound signals the referenced request does not exist.
	ErrRequestNotFound = &WorkflowError{Code: "requestNotFound", Message: "aid request not found"}
	// ErrNotRequestProvider signals the caller is not the provider the request
	// was addressed to.
	ErrNotRequestProvider = &WorkflowError{Code: "notRequestProvider", Message: "request is addressed to a different provider"}
	// ErrRequestNotPending signals the request was already accepted or declined.
	ErrRequestNotPending = &WorkflowError{Code: "requestNotPending", Message: "request is no longer pending"}
	// ErrNoFamilyEmail signals the prisoner has no family contact on record.
	// The case and request are already Accepted when this is returned.
	ErrNoFamilyEmail = &WorkflowError{Code: "noFamilyEmail", Message: "prisoner has no family email on record"}
	// ErrNotificationFailed signals the family mail could not be sent. The
	// case and request are already Accepted when this is returned.
	ErrNotificationFailed = &WorkflowError{Code: "notificationFailed", Message: "failed to notify family contact"}
)
