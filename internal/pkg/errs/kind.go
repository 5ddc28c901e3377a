package errs

import "errors"

// Kind is the coarse failure category reported to callers of the order engine.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindInvalidInput
	KindItemUnavailable
	KindInvalidTransition
	KindPartnerUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	case KindInvalidInput:
		return "InvalidInput"
	case KindItemUnavailable:
		return "ItemUnavailable"
	case KindInvalidTransition:
		return "InvalidTransition"
	case KindPartnerUnavailable:
		return "PartnerUnavailable"
	default:
		return "Internal"
	}
}

// KindOf classifies err. A nil error has no kind and reports KindInternal;
// callers are expected to check for nil first.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrItemUnavailable):
		return KindItemUnavailable
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrPartnerUnavailable):
		return KindPartnerUnavailable
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindInvalidInput
	default:
		return KindInternal
	}
}
