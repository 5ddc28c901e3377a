package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/identity"
	"fooddelivery/internal/core/domain/model/kernel"
)

type UserRepository interface {
	// Add returns *errs.ConflictError on a duplicate email.
	Add(ctx context.Context, aggregate *identity.User) error
	Get(ctx context.Context, id kernel.UUID) (*identity.User, error)
}

type RestaurantRepository interface {
	// Add returns *errs.ConflictError on a duplicate email.
	Add(ctx context.Context, aggregate *identity.Restaurant) error
	Get(ctx context.Context, id kernel.UUID) (*identity.Restaurant, error)
}
