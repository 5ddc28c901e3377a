package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLinesAreRequired = errs.NewValueIsRequiredError("lines")
)

// LineRequest asks for quantity units of one menu item.
type LineRequest struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// PaymentProof is an uploaded artifact attached to the order. Content is
// read once, by the handler.
type PaymentProof struct {
	Filename string
	Content  io.Reader
}

// CreateOrderCommand places an order for one customer at one restaurant.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(userID, restaurantID, []LineRequest{
//	    {MenuItemID: idliID, Quantity: 3},
//	}, nil, r.Header.Get("Idempotency-Key"))
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID         kernel.UUID
	restaurantID   kernel.UUID
	lines          []LineRequest
	paymentProof   *PaymentProof
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape: ids, at least one line
// and a quantity between 1 and order.MaxLineQuantity on every line. Menu
// state is checked by the handler.
// paymentProof and idempotencyKey are optional.
func NewCreateOrderCommand(
	userID, restaurantID kernel.UUID,
	lines []LineRequest,
	paymentProof *PaymentProof,
	idempotencyKey string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		paymentProof:   paymentProof,
		idempotencyKey: strings.TrimSpace(idempotencyKey),
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParties(userID, restaurantID),
		cmd.setLines(lines),
		validatePaymentProof(paymentProof),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) UserID() kernel.UUID         { return c.userID }
func (c CreateOrderCommand) RestaurantID() kernel.UUID   { return c.restaurantID }
func (c CreateOrderCommand) PaymentProof() *PaymentProof { return c.paymentProof }
func (c CreateOrderCommand) IdempotencyKey() string      { return c.idempotencyKey }

func (c CreateOrderCommand) Lines() []LineRequest {
	out := make([]LineRequest, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *CreateOrderCommand) setParties(userID, restaurantID kernel.UUID) error {
	if err := errors.Join(userID.Validate(), restaurantID.Validate()); err != nil {
		return err
	}
	c.userID, c.restaurantID = userID, restaurantID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []LineRequest) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	var errList []error
	for i, l := range lines {
		if err := l.MenuItemID.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("line %d: %w", i, err))
		}
		switch {
		case l.Quantity < 1:
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"quantity", fmt.Errorf("line %d: %d is less than 1", i, l.Quantity),
			))
		case l.Quantity > order.MaxLineQuantity:
			errList = append(errList, errs.NewValueIsOutOfRangeErrorWithCause(
				"quantity", l.Quantity, 1, order.MaxLineQuantity, fmt.Errorf("line %d", i),
			))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.lines = make([]LineRequest, len(lines))
	copy(c.lines, lines)
	return nil
}

func validatePaymentProof(p *PaymentProof) error {
	if p != nil && p.Content == nil {
		return errs.NewValueIsRequiredError("payment proof content")
	}
	return nil
}
