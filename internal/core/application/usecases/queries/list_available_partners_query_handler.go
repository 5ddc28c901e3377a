package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListAvailablePartnersQueryHandler struct {
	db *gorm.DB
}

func NewListAvailablePartnersQueryHandler(db *gorm.DB) ListAvailablePartnersQueryHandler {
	return ListAvailablePartnersQueryHandler{db: db}
}

func (h ListAvailablePartnersQueryHandler) Handle(
	ctx context.Context,
	query ListAvailablePartnersQuery,
) ([]AvailablePartner, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	partners := make([]AvailablePartner, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			mobile,
			vehicle,
			created_at
		FROM delivery_partners
		WHERE is_available
		ORDER BY created_at, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p AvailablePartner
		var id uuid.UUID

		if err = rows.Scan(&id, &p.Name, &p.Mobile, &p.Vehicle, &p.CreatedAt); err != nil {
			return nil, err
		}

		if p.ID, err = kernel.UUIDFromRaw(id); err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return partners, nil
}
