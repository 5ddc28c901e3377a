package identityrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/adapters/out/postgres/pgerrs"
	"fooddelivery/internal/core/domain/model/identity"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Add(ctx context.Context, aggregate *identity.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := userFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Conflict(err, "user", nil, pgerrs.Field{Name: "email", Value: dto.Email})
	}
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*identity.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}

	return userToDomain(dto)
}

// GormRestaurantRepository implements RestaurantRepository using GORM.
type GormRestaurantRepository struct {
	db *gorm.DB
}

func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

func (r *GormRestaurantRepository) Add(ctx context.Context, aggregate *identity.Restaurant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := restaurantFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Conflict(err, "restaurant", nil, pgerrs.Field{Name: "email", Value: dto.Email})
	}
	return nil
}

func (r *GormRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*identity.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return nil, err
	}

	return restaurantToDomain(dto)
}
