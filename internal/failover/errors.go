package failover

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingContact marks an identity without a usable email. It is a
	// skip condition, never a failure.
	ErrMissingContact = errors.New("identity has no contact address")

	// ErrInvalidEntries is returned when the entry set is malformed.
	ErrInvalidEntries = errors.New("invalid parameter entries")
)

// PropagationError reports the parameter that could not be written.
type PropagationError struct {
	EntryName string
	Cause     error
}

func (e *PropagationError) Error() string {
	return fmt.Sprintf("propagate parameter %q: %v", e.EntryName, e.Cause)
}

func (e *PropagationError) Unwrap() error {
	return e.Cause
}

// DirectoryFetchError reports a page that could not be fetched. Page is the
// 1-based index of the failed request.
type DirectoryFetchError struct {
	Page  int
	Cause error
}

func (e *DirectoryFetchError) Error() string {
	return fmt.Sprintf("fetch directory page %d: %v", e.Page, e.Cause)
}

func (e *DirectoryFetchError) Unwrap() error {
	return e.Cause
}

// NotifyStage names the step of a dispatch that failed.
type NotifyStage string

const (
	StagePublish   NotifyStage = "publish"
	StageSubscribe NotifyStage = "subscribe"
)

// NotifyError reports a failed dispatch for one address.
type NotifyError struct {
	Address string
	Stage   NotifyStage
	Cause   error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("notify %s: %s: %v", e.Address, e.Stage, e.Cause)
}

func (e *NotifyError) Unwrap() error {
	return e.Cause
}
