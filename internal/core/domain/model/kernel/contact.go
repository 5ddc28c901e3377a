package kernel

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrContactIsNotConstructed = errors.New("Contact must be created via NewContact constructor")

// Contact is the profile block shared by customers, restaurants and delivery
// partners. Email is stored trimmed and lower-cased, which is also the form
// used for the uniqueness check.
type Contact struct {
	name    string
	email   string
	mobile  string
	address string
	guard   guard.ConstructorGuard
}

func NewContact(name, email, mobile, address string) (Contact, error) {
	name = strings.TrimSpace(name)
	mobile = strings.TrimSpace(mobile)
	address = strings.TrimSpace(address)

	normalized, emailErr := NormalizeEmail(email)

	var errList []error
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if mobile == "" {
		errList = append(errList, errs.NewValueIsRequiredError("mobile"))
	}
	if err := errors.Join(append(errList, emailErr)...); err != nil {
		return Contact{}, err
	}

	return Contact{
		name:    name,
		email:   normalized,
		mobile:  mobile,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NormalizeEmail validates a bare address ("a@b.c", no display name) and
// returns its canonical lower-case form.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	if addr.Address != email {
		return "", errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a bare address", email))
	}
	return email, nil
}

func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

func (c Contact) Name() string    { return c.name }
func (c Contact) Email() string   { return c.email }
func (c Contact) Mobile() string  { return c.mobile }
func (c Contact) Address() string { return c.address }
