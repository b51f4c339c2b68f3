package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, rule *PricingRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*PricingRule, error)
	Update(ctx context.Context, rule *PricingRule) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]PricingRule, error)

	// FindActiveInWindow returns active rules whose [start, end] window
	// touches the given stay window. Day-of-week and target scoping are
	// applied by the engine, not here.
	FindActiveInWindow(ctx context.Context, from, to time.Time) ([]PricingRule, error)

	// PurgeEndedBefore drops rules whose end date passed before the cutoff
	PurgeEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rule *PricingRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*PricingRule, error) {
	var rule PricingRule
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repository) Update(ctx context.Context, rule *PricingRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PricingRule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]PricingRule, error) {
	var rules []PricingRule
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("priority DESC, start_date ASC").Find(&rules).Error
	return rules, err
}

func (r *repository) FindActiveInWindow(ctx context.Context, from, to time.Time) ([]PricingRule, error) {
	var rules []PricingRule
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("start_date <= ? AND end_date >= ?", to, from).
		Order("priority DESC").
		Find(&rules).Error
	return rules, err
}

func (r *repository) PurgeEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("end_date < ?", cutoff).
		Delete(&PricingRule{})
	return result.RowsAffected, result.Error
}
