package queries

import (
	"context"
	"database/sql"
	"fmt"

	"fooddelivery/internal/core/domain/model/identity"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

type profileSource struct {
	entity string
	sql    string
}

// Every statement selects the same columns; partner-only ones are NULL
// for the other roles.
var profileSources = map[identity.Role]profileSource{
	identity.RoleCustomer: {
		entity: "user",
		sql: `SELECT name, email, mobile, address, NULL::varchar, NULL::boolean, created_at
			FROM users WHERE id = ?`,
	},
	identity.RoleRestaurant: {
		entity: "restaurant",
		sql: `SELECT name, email, mobile, address, NULL::varchar, NULL::boolean, created_at
			FROM restaurants WHERE id = ?`,
	},
	identity.RoleDeliveryPartner: {
		entity: "delivery partner",
		sql: `SELECT name, email, mobile, address, vehicle, is_available, created_at
			FROM delivery_partners WHERE id = ?`,
	},
}

type GetProfileQueryHandler struct {
	db *gorm.DB
}

func NewGetProfileQueryHandler(db *gorm.DB) GetProfileQueryHandler {
	return GetProfileQueryHandler{db: db}
}

func (h GetProfileQueryHandler) Handle(ctx context.Context, query GetProfileQuery) (Profile, error) {
	if err := query.Validate(); err != nil {
		return Profile{}, err
	}

	source, ok := profileSources[query.Role()]
	if !ok {
		return Profile{}, fmt.Errorf("no profile source for role %s", query.Role())
	}

	rows, err := h.db.WithContext(ctx).Raw(source.sql, query.ID().Raw()).Rows()
	if err != nil {
		return Profile{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return Profile{}, err
		}
		return Profile{}, errs.NewObjectNotFoundError(source.entity, query.ID().String())
	}

	profile := Profile{Role: query.Role(), ID: query.ID()}
	var vehicle sql.NullString
	var available sql.NullBool

	if err = rows.Scan(
		&profile.Name, &profile.Email, &profile.Mobile, &profile.Address,
		&vehicle, &available, &profile.CreatedAt,
	); err != nil {
		return Profile{}, err
	}

	profile.Vehicle = vehicle.String
	if available.Valid {
		profile.IsAvailable = &available.Bool
	}

	return profile, nil
}
