package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrConflict           = errors.New("conflict")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrItemUnavailable    = errors.New("item is unavailable")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrPartnerUnavailable = errors.New("delivery partner is unavailable")
)

// sanitize keeps user supplied values on a single log line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports a lookup on an id that does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return withCause(
			fmt.Sprintf("%s: param is: %s, ID is: %v", ErrObjectNotFound, e.ParamName, e.ID),
			e.Cause,
		)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ConflictError reports a violated uniqueness rule.
type ConflictError struct {
	Entity string
	Field  string
	Value  any
	Cause  error
}

func NewConflictError(entity, field string, value any) *ConflictError {
	return &ConflictError{Entity: entity, Field: field, Value: value}
}

func NewConflictErrorWithCause(entity, field string, value any, cause error) *ConflictError {
	return &ConflictError{Entity: entity, Field: field, Value: value, Cause: cause}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s already exists", ErrConflict, e.Entity)
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s with %s %s already exists", ErrConflict, e.Entity, e.Field, sanitize(e.Value))
	}
	return withCause(msg, e.Cause)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid,
		sanitize(e.Value),
		e.ParamName,
		sanitize(e.Min),
		sanitize(e.Max),
	), e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ItemUnavailableError reports a menu item that cannot be ordered right now,
// either because it is switched off or because its category window is closed.
type ItemUnavailableError struct {
	ItemID any
	Reason string
}

func NewItemUnavailableError(itemID any, reason string) *ItemUnavailableError {
	return &ItemUnavailableError{ItemID: itemID, Reason: reason}
}

func (e *ItemUnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", ErrItemUnavailable, e.ItemID)
	}
	return fmt.Sprintf("%s: %v (%s)", ErrItemUnavailable, e.ItemID, e.Reason)
}

func (e *ItemUnavailableError) Unwrap() error {
	return ErrItemUnavailable
}

type InvalidTransitionError struct {
	From   string
	To     string
	Reason string
}

func NewInvalidTransitionError(from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), To: to.String()}
}

func NewInvalidTransitionErrorWithReason(from, to fmt.Stringer, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), To: to.String(), Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

type PartnerUnavailableError struct {
	PartnerID any
}

func NewPartnerUnavailableError(partnerID any) *PartnerUnavailableError {
	return &PartnerUnavailableError{PartnerID: partnerID}
}

func (e *PartnerUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPartnerUnavailable, e.PartnerID)
}

func (e *PartnerUnavailableError) Unwrap() error {
	return ErrPartnerUnavailable
}
