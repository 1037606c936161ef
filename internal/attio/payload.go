package attio

import "github.com/leadpipe/leadpipe/internal/schema"

// Payload is one object-creation request for the CRM: the target object
// type, the attribute values in the CRM's own vocabulary, and the list the
// created record should join. Payloads are built fresh per submission and
// not retained afterwards.
type Payload struct {
	ObjectType schema.ObjectType
	Attributes map[string]any
	List       string
}

// Outcome classifies what the CRM did with one payload.
type Outcome string

const (
	// OutcomeCreated means the record was newly created.
	OutcomeCreated Outcome = "created"
	// OutcomeDuplicate means the CRM already held a matching record; its
	// id is returned and this is not an error.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeRejected means the request itself was invalid and was not
	// retried.
	OutcomeRejected Outcome = "rejected"
	// OutcomeTransient means network or 5xx failures persisted through
	// every retry.
	OutcomeTransient Outcome = "transient_error"
)

// SubmissionResult is the per-payload outcome. RecordID is set only for
// created and duplicate outcomes. Detail is a human-readable diagnostic and
// never contains the API credential.
type SubmissionResult struct {
	ObjectType schema.ObjectType
	Outcome    Outcome
	RecordID   string
	Detail     string
}

// objectSlugs maps each object type to its plural REST path segment.
var objectSlugs = map[schema.ObjectType]string{
	schema.ObjectPerson:  "people",
	schema.ObjectCompany: "companies",
	schema.ObjectDeal:    "deals",
	schema.ObjectUser:    "users",
}

// Slug returns the CRM's REST path segment for an object type.
func Slug(t schema.ObjectType) string {
	return objectSlugs[t]
}
