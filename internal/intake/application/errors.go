package application

import "fmt"

// Kind classifies where in the intake pipeline a submission failed.
type Kind int

const (
	// KindValidation covers missing or malformed required input. No side
	// effect has occurred when this is returned.
	KindValidation Kind = iota + 1
	// KindListFieldDecode is the validation subset for encoded list fields
	// that fail to decode.
	KindListFieldDecode
	// KindStorage means the file stage could not write the upload; the
	// submission was aborted before persistence.
	KindStorage
	// KindPersistence means the record store rejected the insert; no
	// notification was attempted.
	KindPersistence
	// KindNotification means the mail send failed after the record was
	// persisted. The record survives.
	KindNotification
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindListFieldDecode:
		return "list-decode"
	case KindStorage:
		return "storage"
	case KindPersistence:
		return "persistence"
	case KindNotification:
		return "notification"
	default:
		return "unknown"
	}
}

// IntakeError reports a pipeline failure together with the stage it
// occurred in, so the HTTP layer can pick a status without parsing
// messages.
type IntakeError struct {
	Kind Kind
	Err  error
}

func (e *IntakeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *IntakeError) Unwrap() error {
	return e.Err
}
