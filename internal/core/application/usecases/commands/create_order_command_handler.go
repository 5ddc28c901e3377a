package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// CreateOrderCommandHandler builds and stores an order in one transaction.
//
// For every requested line it locks the menu item row, checks that the item
// is on the restaurant's menu and orderable now, and snapshots its price.
// Any failing line aborts the whole order.
//
// The payment proof is stored before the transaction starts. If the order
// cannot be committed the stored artifact is deleted again, so the reference
// only ever exists on a committed order.
//
// Idempotency keys belong to the customer who sent them. Replaying a key with
// a different restaurant or different lines is a conflict.
type CreateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	attachments ports.AttachmentStore
	idempotency ports.IdempotencyStore
	resolver    services.AvailabilityResolver
	clock       ports.Clock
	logger      *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	attachments ports.AttachmentStore,
	idempotency ports.IdempotencyStore,
	resolver services.AvailabilityResolver,
	clock ports.Clock,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		attachments: attachments,
		idempotency: idempotency,
		resolver:    resolver,
		clock:       clock,
		logger:      logger.With("component", "create_order"),
	}
}

// Handle returns the stored order. When the command carries an idempotency
// key that already produced an order for the same customer, that order is
// returned instead.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	key := command.IdempotencyKey()
	if key != "" {
		existing, err := h.findExisting(ctx, command)
		if err != nil || existing != nil {
			return existing, err
		}
	}

	reference, err := h.storePaymentProof(ctx, command.PaymentProof())
	if err != nil {
		return nil, err
	}

	o, err := h.place(ctx, command, reference)
	if err != nil {
		if reference != "" {
			if delErr := h.attachments.Delete(ctx, reference); delErr != nil {
				err = errors.Join(err, fmt.Errorf("discard payment proof %s: %w", reference, delErr))
			}
		}
		return nil, err
	}

	if key != "" && h.idempotency != nil {
		if err = h.idempotency.Remember(ctx, o.UserID(), key, o.ID()); err != nil {
			h.logger.WarnContext(ctx, "failed to remember idempotency key",
				"order_id", o.ID(), "error", err)
		}
	}
	return o, nil
}

func (h CreateOrderCommandHandler) place(
	ctx context.Context,
	command CreateOrderCommand,
	paymentProof string,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.UserRepository().Get(ctx, command.UserID()); err != nil {
		return nil, err
	}
	if _, err := uow.RestaurantRepository().Get(ctx, command.RestaurantID()); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	lines, err := h.priceLines(ctx, uow, command, now)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), command.UserID(), command.RestaurantID(), lines, paymentProof, now)
	if err != nil {
		return nil, err
	}
	if key := command.IdempotencyKey(); key != "" {
		if err = o.AttachIdempotencyKey(key); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// priceLines turns line requests into order lines carrying the current price.
func (h CreateOrderCommandHandler) priceLines(
	ctx context.Context,
	uow OrderUoW,
	command CreateOrderCommand,
	now time.Time,
) ([]order.Line, error) {
	menuItems := uow.MenuItemRepository()
	categories := uow.CategoryRepository()
	seen := make(map[kernel.UUID]*catalog.Category)

	requests := command.Lines()
	lines := make([]order.Line, 0, len(requests))
	for _, req := range requests {
		item, err := menuItems.GetForUpdate(ctx, req.MenuItemID)
		if err != nil {
			return nil, err
		}
		if !item.BelongsTo(command.RestaurantID()) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"menu item",
				fmt.Errorf("%s is not on the menu of restaurant %s", item.ID(), command.RestaurantID()),
			)
		}

		category, ok := seen[item.CategoryID()]
		if !ok {
			if category, err = categories.Get(ctx, item.CategoryID()); err != nil {
				return nil, err
			}
			seen[item.CategoryID()] = category
		}

		if err = h.resolver.Check(item, category, now); err != nil {
			return nil, err
		}

		line, err := order.NewLine(kernel.NewUUID(), item.ID(), req.Quantity, item.Price())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func (h CreateOrderCommandHandler) storePaymentProof(ctx context.Context, proof *PaymentProof) (string, error) {
	if proof == nil {
		return "", nil
	}
	if h.attachments == nil {
		return "", errors.New("payment proof storage is not configured")
	}
	return h.attachments.Store(ctx, proof.Filename, proof.Content)
}

// findExisting resolves a repeated idempotency key to the order it created
// for the same customer, or returns (nil, nil) when the key is new.
func (h CreateOrderCommandHandler) findExisting(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	userID, key := command.UserID(), command.IdempotencyKey()
	repo := h.uowFactory.Create().OrderRepository()

	var o *order.Order
	if h.idempotency != nil {
		id, ok, err := h.idempotency.Lookup(ctx, userID, key)
		switch {
		case err != nil:
			h.logger.WarnContext(ctx, "idempotency lookup failed, using the orders table", "error", err)
		case ok:
			found, getErr := repo.Get(ctx, id)
			if getErr != nil && !errors.Is(getErr, errs.ErrObjectNotFound) {
				return nil, getErr
			}
			if getErr == nil && found.UserID() == userID {
				o = found
			}
		}
	}

	if o == nil {
		found, err := repo.GetByIdempotencyKey(ctx, userID, key)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		o = found
	}

	if err := sameRequest(o, command); err != nil {
		return nil, errs.NewConflictErrorWithCause("order", "idempotency key", key, err)
	}
	return o, nil
}

// sameRequest reports how a replayed command differs from the order its key
// created. Lines are compared as menu item quantities, ignoring order.
func sameRequest(o *order.Order, command CreateOrderCommand) error {
	if o.UserID() != command.UserID() {
		return errors.New("key was used by another customer")
	}
	if o.RestaurantID() != command.RestaurantID() {
		return fmt.Errorf("key was used for restaurant %s", o.RestaurantID())
	}

	want := make(map[kernel.UUID]int)
	for _, l := range o.Lines() {
		want[l.MenuItemID()] += l.Quantity()
	}
	got := make(map[kernel.UUID]int)
	for _, l := range command.Lines() {
		got[l.MenuItemID] += l.Quantity
	}
	if len(want) != len(got) {
		return errors.New("key was used for different lines")
	}
	for id, qty := range want {
		if got[id] != qty {
			return errors.New("key was used for different lines")
		}
	}
	return nil
}
