package partnerrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/adapters/out/postgres/pgerrs"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/partner"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartnerRepository implements PartnerRepository using GORM.
type GormPartnerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPartnerRepository(db *gorm.DB, tracker aggregateTracker) *GormPartnerRepository {
	return &GormPartnerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a newly registered partner.
func (r *GormPartnerRepository) Add(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Conflict(err, "delivery partner",
			map[string]pgerrs.Field{
				emailIndex:  {Name: "email", Value: dto.Email},
				mobileIndex: {Name: "mobile", Value: dto.Mobile},
			},
			pgerrs.Field{Name: "email or mobile", Value: dto.Email + " / " + dto.Mobile},
		)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a partner by ID.
func (r *GormPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a partner by ID and holds its row lock.
func (r *GormPartnerRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormPartnerRepository) get(db *gorm.DB, id kernel.UUID) (*partner.Partner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartnerDTO
	if err := db.First(&dto, "id = ?", id.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery partner", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// SaveAvailability flips is_available only when the stored value is the
// opposite of the aggregate's. Zero affected rows on a claim means another
// transaction claimed the partner first.
func (r *GormPartnerRepository) SaveAvailability(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	available := aggregate.IsAvailable()
	result := r.db.WithContext(ctx).
		Model(&PartnerDTO{}).
		Where("id = ? AND is_available = ?", aggregate.ID().Raw(), !available).
		Update("is_available", available)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 && !available {
		return errs.NewPartnerUnavailableError(aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetAllAvailable lists available partners, longest registered first.
func (r *GormPartnerRepository) GetAllAvailable(ctx context.Context, limit int) ([]*partner.Partner, error) {
	var dtos []PartnerDTO
	query := r.db.WithContext(ctx).Where("is_available = ?", true).Order("created_at, id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	partners := make([]*partner.Partner, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}

	return partners, nil
}
