package extract

import "fmt"

// Kind classifies why extraction never produced a usable record.
type Kind string

const (
	// KindEmptyInput means the inbound message was empty or whitespace;
	// no network call was made.
	KindEmptyInput Kind = "empty_input"
	// KindBackendRejected means the model backend returned a client
	// error; the attempt is fatal and not retried.
	KindBackendRejected Kind = "backend_rejected"
	// KindValidation means the model responded but its output did not
	// survive parsing or schema validation.
	KindValidation Kind = "validation"
	// KindExhaustedRetries means transient backend failures persisted
	// through every retry.
	KindExhaustedRetries Kind = "exhausted_retries"
)

// Error is the typed failure the extraction engine returns. It wraps the
// underlying cause where one exists.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("extract: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }
