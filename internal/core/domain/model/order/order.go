package order

import (
	"errors"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const MaxIdempotencyKeyLength = 128

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Timestamps records when the order entered each status after PLACED.
// A nil field means the order has not (yet) reached that status.
type Timestamps struct {
	PreparingAt      *time.Time
	OutForDeliveryAt *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
}

// Order is the aggregate root of the order lifecycle. It owns its lines, the
// snapshotted total and the status machine; it references the customer, the
// restaurant and optionally a delivery partner by id.
//
// Order follows these invariants:
//   - It has at least one line and its line composition never changes
//   - totalAmount equals the sum of the lines' item totals at creation time
//   - Status changes only along the edges defined by Status.TransitionTo
//   - A delivery partner can be bound only while PLACED or PREPARING
type Order struct {
	id           kernel.UUID
	userID       kernel.UUID
	restaurantID kernel.UUID

	// partnerID is nil until a delivery partner is assigned
	partnerID *kernel.UUID

	status       Status
	lines        []Line
	totalAmount  decimal.Decimal
	paymentProof string
	createdAt    time.Time
	timestamps   Timestamps

	// idempotencyKey is the client supplied key the order was created with
	idempotencyKey string

	events []Event

	isConstructed bool
}

// NewOrder places a new order.
//
// Parameters:
//   - id: identifier of the new order
//   - userID, restaurantID: the customer placing it and the restaurant receiving it
//   - lines: at least one line with snapshotted prices
//   - paymentProof: opaque reference to a stored artifact, may be empty
//   - at: creation instant
//
// The order starts in PLACED with no partner and records an EventPlaced event.
//
// Example:
//
//	line, _ := order.NewLine(kernel.NewUUID(), idliID, 3, decimal.NewFromInt(30))
//	o, err := order.NewOrder(kernel.NewUUID(), userID, restaurantID, []order.Line{line}, "", now)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(o.TotalAmount()) // 90
func NewOrder(
	id, userID, restaurantID kernel.UUID,
	lines []Line,
	paymentProof string,
	at time.Time,
) (*Order, error) {
	o := &Order{
		status:        Placed,
		paymentProof:  paymentProof,
		createdAt:     at,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setIDs(id, userID, restaurantID),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.totalAmount = SumLines(lines)
	if o.totalAmount.GreaterThan(MaxTotalAmount) {
		return nil, errs.NewValueIsOutOfRangeError("total amount", o.totalAmount, decimal.Zero, MaxTotalAmount)
	}
	o.record(EventPlaced, Unknown, at)
	return o, nil
}

// RestoreParams carries the persisted state of an order.
type RestoreParams struct {
	ID           kernel.UUID
	UserID       kernel.UUID
	RestaurantID kernel.UUID
	PartnerID    *kernel.UUID
	Status       Status
	Lines        []Line
	TotalAmount  decimal.Decimal
	PaymentProof string
	CreatedAt    time.Time
	Timestamps   Timestamps

	IdempotencyKey string
}

// RestoreOrder rebuilds an order loaded from storage. The stored total is
// kept as is: it is the creation-time snapshot, not a live computation.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		partnerID:      p.PartnerID,
		status:         p.Status,
		totalAmount:    p.TotalAmount,
		paymentProof:   p.PaymentProof,
		createdAt:      p.CreatedAt,
		timestamps:     p.Timestamps,
		idempotencyKey: p.IdempotencyKey,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setIDs(p.ID, p.UserID, p.RestaurantID),
		o.setLines(p.Lines),
		p.Status.Validate(),
		validatePartner(p.PartnerID),
	); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID           { return o.id }
func (o *Order) UserID() kernel.UUID       { return o.userID }
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }
func (o *Order) Status() Status            { return o.status }
func (o *Order) PaymentProof() string      { return o.paymentProof }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) Timestamps() Timestamps    { return o.timestamps }

func (o *Order) IdempotencyKey() string { return o.idempotencyKey }

// AttachIdempotencyKey records the client key a new order was created with.
// It can be set once, before the order is first stored.
func (o *Order) AttachIdempotencyKey(key string) error {
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		return errs.NewValueIsRequiredError("idempotency key")
	case len(key) > MaxIdempotencyKeyLength:
		return errs.NewValueIsOutOfRangeError("idempotency key length", len(key), 1, MaxIdempotencyKeyLength)
	case o.idempotencyKey != "":
		return errs.NewValueIsInvalidErrorWithCause("idempotency key", errors.New("already attached"))
	}
	o.idempotencyKey = key
	return nil
}

// TotalAmount is the pre-tax total snapshotted at creation.
func (o *Order) TotalAmount() decimal.Decimal { return o.totalAmount }

// Partner returns the bound delivery partner, or nil.
func (o *Order) Partner() *kernel.UUID {
	if o.partnerID == nil {
		return nil
	}
	id := *o.partnerID
	return &id
}

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// SetStatus moves the order to target when the lifecycle graph allows it.
// On failure the order is left unchanged.
//
// Reaching DELIVERED does not touch the delivery partner aggregate; the
// caller releases the partner returned by Partner() in the same transaction.
func (o *Order) SetStatus(target Status, at time.Time) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	previous := o.status
	o.status = next
	o.stamp(next, at)
	o.record(EventStatusChanged, previous, at)
	return nil
}

// AssignPartner binds a delivery partner and moves the order to
// OUT_FOR_DELIVERY. Claiming the partner's availability is the caller's job.
func (o *Order) AssignPartner(partnerID kernel.UUID, at time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateAssign(); err != nil {
		return err
	}

	previous := o.status
	o.partnerID = &partnerID
	o.status = OutForDelivery
	o.stamp(OutForDelivery, at)
	o.record(EventPartnerAssigned, previous, at)
	return nil
}

// DomainEvents returns the events recorded since construction or the last
// ClearDomainEvents call.
func (o *Order) DomainEvents() []Event {
	out := make([]Event, len(o.events))
	copy(out, o.events)
	return out
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// SumLines adds up the item totals of lines.
func SumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.ItemTotal())
	}
	return total
}

func (o *Order) setIDs(id, userID, restaurantID kernel.UUID) error {
	if err := errors.Join(id.Validate(), userID.Validate(), restaurantID.Validate()); err != nil {
		return err
	}
	o.id, o.userID, o.restaurantID = id, userID, restaurantID
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func validatePartner(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	return id.Validate()
}

func (o *Order) stamp(s Status, at time.Time) {
	t := at
	switch s {
	case Preparing:
		o.timestamps.PreparingAt = &t
	case OutForDelivery:
		o.timestamps.OutForDeliveryAt = &t
	case Delivered:
		o.timestamps.DeliveredAt = &t
	case Cancelled:
		o.timestamps.CancelledAt = &t
	}
}

func (o *Order) record(t EventType, previous Status, at time.Time) {
	o.events = append(o.events, Event{
		Type:           t,
		OrderID:        o.id,
		UserID:         o.userID,
		RestaurantID:   o.restaurantID,
		PartnerID:      o.Partner(),
		PreviousStatus: previous,
		Status:         o.status,
		TotalAmount:    o.totalAmount,
		OccurredAt:     at,
	})
}
