package identity

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is a customer. The address in its contact is the delivery address.
type User struct {
	id        kernel.UUID
	contact   kernel.Contact
	createdAt time.Time
	guard     guard.ConstructorGuard
}

func NewUser(id kernel.UUID, contact kernel.Contact, createdAt time.Time) (*User, error) {
	if err := errors.Join(id.Validate(), contact.Validate()); err != nil {
		return nil, err
	}
	return &User{id: id, contact: contact, createdAt: createdAt, guard: guard.NewConstructorGuard()}, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID         { return u.id }
func (u *User) Contact() kernel.Contact { return u.contact }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
