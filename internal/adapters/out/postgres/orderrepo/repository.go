package orderrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/adapters/out/postgres/pgerrs"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order row and all of its lines in one statement batch.
// A repeated idempotency key is reported as *errs.ConflictError.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Conflict(err, "order",
			map[string]pgerrs.Field{idempotencyKeyIndex: {Name: "idempotency key", Value: aggregate.IdempotencyKey()}},
			pgerrs.Field{Name: "id", Value: aggregate.ID().String()},
		)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable part of an order.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":              dto.Status,
			"partner_id":          dto.PartnerID,
			"preparing_at":        dto.PreparingAt,
			"out_for_delivery_at": dto.OutForDeliveryAt,
			"delivered_at":        dto.DeliveredAt,
			"cancelled_at":        dto.CancelledAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, r.db.WithContext(ctx).Where("id = ?", id.Raw()), "order", id.String())
}

// GetForUpdate retrieves an order by ID and holds its row lock.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id.Raw())
	return r.first(ctx, query, "order", id.String())
}

// GetByIdempotencyKey retrieves the order userID created with key.
func (r *GormOrderRepository) GetByIdempotencyKey(
	ctx context.Context,
	userID kernel.UUID,
	key string,
) (*order.Order, error) {
	if key == "" {
		return nil, errs.NewValueIsRequiredError("idempotency key")
	}
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Where("user_id = ? AND idempotency_key = ?", userID.Raw(), key)
	return r.first(ctx, query, "idempotency key", key)
}

// GetFirstAwaitingDispatch locks the oldest PREPARING order that has no
// delivery partner yet. Orders locked by a concurrent dispatch are skipped.
func (r *GormOrderRepository) GetFirstAwaitingDispatch(ctx context.Context) (*order.Order, error) {
	query := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND partner_id IS NULL", order.Preparing.String()).
		Order("created_at, id")
	return r.first(ctx, query, "order", "awaiting dispatch")
}

// first loads the first matching order row and then its lines. The lines
// are read separately so that a row lock on orders never extends to them.
func (r *GormOrderRepository) first(ctx context.Context, query *gorm.DB, param string, id any) (*order.Order, error) {
	var dto OrderDTO
	if err := query.Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id)
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("position").
		Find(&dto.Lines).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}
