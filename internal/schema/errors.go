package schema

import "fmt"

// Reason identifies why validation rejected a mapping.
type Reason string

const (
	// ReasonMissingRequired means neither full_name nor company_name
	// survived coercion.
	ReasonMissingRequired Reason = "missing_required"
	// ReasonMalformedField means an identity field was present but
	// structurally unusable.
	ReasonMalformedField Reason = "malformed_field"
)

// ValidationError rejects a mapping that cannot become a LeadRecord.
// Malformed optional fields never produce one; they are dropped instead.
type ValidationError struct {
	Reason Reason
	Field  string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema: %s: %s", e.Reason, e.Field)
	}
	return fmt.Sprintf("schema: %s", e.Reason)
}
