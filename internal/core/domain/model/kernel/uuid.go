package kernel

import (
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// UUID is the identifier value object shared by every aggregate. It wraps
// github.com/google/uuid so the domain never handles the nil UUID.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	parsed, err := kernel.UUIDFromString(orderID.String())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(parsed.IsEqual(orderID)) // true
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical textual form. Malformed input and the
// nil UUID are reported as invalid values.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return UUIDFromRaw(id)
}

// UUIDFromRaw adopts an already parsed uuid.UUID, typically read from storage.
func UUIDFromRaw(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Raw exposes the wrapped uuid.UUID for persistence and transport mapping.
func (u UUID) Raw() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

func (u UUID) Validate() error {
	if u.IsZero() {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText lets read models carrying UUIDs serialize as plain strings.
func (u UUID) MarshalText() ([]byte, error) {
	return u.id.MarshalText()
}

func (u *UUID) UnmarshalText(data []byte) error {
	parsed, err := UUIDFromString(string(data))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
