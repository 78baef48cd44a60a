// Package failover contains the region-failover run: propagating the
// configuration of the newly active region into the parameter store and
// notifying every directory identity that a password reset is required.
package failover

import "strings"

// EmailAttribute is the directory attribute holding an identity's contact address.
const EmailAttribute = "email"

// FilterAttribute is the message attribute carrying the target address. The
// secondary topic subscriptions filter on it.
const FilterAttribute = "endpointEmail"

// IdentityRecord is one identity read from the directory.
type IdentityRecord struct {
	Username   string
	Attributes map[string]string
}

// ContactAddress returns the identity's email, or false when the attribute
// is absent or blank.
func (r IdentityRecord) ContactAddress() (string, bool) {
	v, ok := r.Attributes[EmailAttribute]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

// Page is a single listing page. NextCursor is opaque; an empty value ends the walk.
type Page struct {
	Identities []IdentityRecord
	NextCursor string
}

// Sensitivity selects how a parameter is stored.
type Sensitivity string

const (
	SensitivityPlain  Sensitivity = "PLAIN"
	SensitivitySecret Sensitivity = "SECRET"
)

// ParameterEntry is one configuration item to propagate.
type ParameterEntry struct {
	Name        string
	Value       string
	Sensitivity Sensitivity
	Description string
}

// NotificationTarget pairs an address with the topic it is registered against.
type NotificationTarget struct {
	Address  string
	TopicRef string
}

// RunOutcome is the aggregate of one directory walk.
type RunOutcome struct {
	Processed int
	Skipped   int
	Failed    int

	// Pages counts successfully fetched pages.
	Pages int

	// Terminated is set when enumeration stopped before the last page;
	// FetchErr holds the reason.
	Terminated bool
	FetchErr   error

	// ConfigPropagated is filled in by the orchestrator after the
	// propagation step; ConfigErr holds its failure.
	ConfigPropagated bool
	ConfigErr        error
}

// Total returns the number of identities seen during the walk.
func (o RunOutcome) Total() int {
	return o.Processed + o.Skipped + o.Failed
}
