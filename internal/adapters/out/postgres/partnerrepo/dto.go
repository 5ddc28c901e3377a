// Package partnerrepo persists delivery partners and owns the atomic
// availability flag.
package partnerrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/partner"

	"github.com/google/uuid"
)

const (
	emailIndex  = "idx_delivery_partners_email"
	mobileIndex = "idx_delivery_partners_mobile"
)

// PartnerDTO is the delivery_partners row. IsAvailable carries no column
// default so that gorm writes false explicitly.
type PartnerDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_delivery_partners_email"`
	Mobile      string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_delivery_partners_mobile"`
	Address     string    `gorm:"type:varchar(255);not null"`
	Vehicle     string    `gorm:"type:varchar(50);not null"`
	IsAvailable bool      `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (PartnerDTO) TableName() string {
	return "delivery_partners"
}

func fromDomain(p *partner.Partner) PartnerDTO {
	c := p.Contact()
	return PartnerDTO{
		ID:          p.ID().Raw(),
		Name:        c.Name(),
		Email:       c.Email(),
		Mobile:      c.Mobile(),
		Address:     c.Address(),
		Vehicle:     p.Vehicle(),
		IsAvailable: p.IsAvailable(),
		CreatedAt:   p.CreatedAt(),
	}
}

func toDomain(dto PartnerDTO) (*partner.Partner, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	contact, err := kernel.NewContact(dto.Name, dto.Email, dto.Mobile, dto.Address)
	if err != nil {
		return nil, err
	}
	return partner.RestorePartner(id, contact, dto.Vehicle, dto.IsAvailable, dto.CreatedAt)
}
