// Package identityrepo persists customers and restaurants.
package identityrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/identity"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	Mobile    string    `gorm:"type:varchar(32);not null"`
	Address   string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

type RestaurantDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(50);not null"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_restaurants_email"`
	Mobile    string    `gorm:"type:varchar(32);not null"`
	Address   string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

func userFromDomain(u *identity.User) UserDTO {
	c := u.Contact()
	return UserDTO{
		ID:        u.ID().Raw(),
		Name:      c.Name(),
		Email:     c.Email(),
		Mobile:    c.Mobile(),
		Address:   c.Address(),
		CreatedAt: u.CreatedAt(),
	}
}

func userToDomain(dto UserDTO) (*identity.User, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	contact, err := kernel.NewContact(dto.Name, dto.Email, dto.Mobile, dto.Address)
	if err != nil {
		return nil, err
	}
	return identity.NewUser(id, contact, dto.CreatedAt)
}

func restaurantFromDomain(r *identity.Restaurant) RestaurantDTO {
	c := r.Contact()
	return RestaurantDTO{
		ID:        r.ID().Raw(),
		Name:      c.Name(),
		Email:     c.Email(),
		Mobile:    c.Mobile(),
		Address:   c.Address(),
		CreatedAt: r.CreatedAt(),
	}
}

func restaurantToDomain(dto RestaurantDTO) (*identity.Restaurant, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	contact, err := kernel.NewContact(dto.Name, dto.Email, dto.Mobile, dto.Address)
	if err != nil {
		return nil, err
	}
	return identity.NewRestaurant(id, contact, dto.CreatedAt)
}
