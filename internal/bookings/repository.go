package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// villaLockKey serializes availability-check-and-write sections. There is a
// single villa, so one advisory lock covers every target: conflicts cross
// hierarchy levels and cannot be expressed as a unique index.
const villaLockKey int64 = 0x76696c6c61 // "villa"

// ConflictFilter keeps the hierarchy logic out of the storage layer: the
// repository hands over every stay-overlapping candidate and the caller
// decides which of them actually compete for rooms.
type ConflictFilter func(overlapping []Booking) []Booking

type Repository interface {
	// Core booking operations
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByGatewayOrderID(ctx context.Context, orderID string) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error

	// FindOverlapping returns bookings in the given statuses whose stay
	// window overlaps the range, excluding excludeID when non-nil.
	FindOverlapping(ctx context.Context, dateRange DateRange, statuses []Status, excludeID uuid.UUID) ([]Booking, error)

	// SaveIfAvailable atomically re-checks conflicts and persists the
	// booking inside one serialized transaction.
	SaveIfAvailable(ctx context.Context, booking *Booking, statuses []Status, filter ConflictFilter) error

	// ConfirmPayment transitions a pending booking to paid inside the same
	// serialized section, so occupancy registration is atomic with the
	// status change. Repeated confirmations for the same order are no-ops.
	ConfirmPayment(ctx context.Context, orderID, paymentID string, paidAmount float64) (*Booking, bool, error)

	// Admin operations
	List(ctx context.Context, query ListQuery) ([]Booking, int64, error)
	DeletePermanently(ctx context.Context, id uuid.UUID) error

	// Retention
	PurgeCheckedOutBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ListQuery filters admin booking listings
type ListQuery struct {
	Status     string
	TargetType string
	DateFrom   string
	DateTo     string
	Page       int
	Limit      int
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("AppliedRules").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByGatewayOrderID(ctx context.Context, orderID string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Where("gateway_order_id = ?", orderID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) Save(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *repository) FindOverlapping(ctx context.Context, dateRange DateRange, statuses []Status, excludeID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	query := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Where("check_in < ? AND check_out > ?", dateRange.CheckOut, dateRange.CheckIn)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Order("check_in ASC").Find(&bookings).Error
	return bookings, err
}

// SaveIfAvailable holds the villa advisory lock for the duration of the
// transaction so two racing creations cannot both pass the conflict check.
func (r *repository) SaveIfAvailable(ctx context.Context, booking *Booking, statuses []Status, filter ConflictFilter) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", villaLockKey).Error; err != nil {
			return err
		}

		var overlapping []Booking
		query := tx.
			Where("status IN ?", statuses).
			Where("check_in < ? AND check_out > ?", booking.CheckOut, booking.CheckIn)
		if booking.ID != uuid.Nil {
			query = query.Where("id <> ?", booking.ID)
		}
		if err := query.Find(&overlapping).Error; err != nil {
			return err
		}

		if conflicts := filter(overlapping); len(conflicts) > 0 {
			return ErrNotAvailable
		}

		return tx.Save(booking).Error
	})
}

func (r *repository) ConfirmPayment(ctx context.Context, orderID, paymentID string, paidAmount float64) (*Booking, bool, error) {
	var booking Booking
	var applied bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", villaLockKey).Error; err != nil {
			return err
		}

		if err := tx.Where("gateway_order_id = ?", orderID).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// At-least-once webhook delivery: the second delivery finds a
		// non-pending booking and leaves it untouched.
		if booking.Status != StatusPending {
			return nil
		}

		booking.MarkPaid(paymentID, paidAmount)
		applied = true
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &booking, applied, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	baseQuery := r.db.WithContext(ctx).Model(&Booking{})
	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("AppliedRules").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Booking{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeCheckedOutBefore drops bookings whose stay ended before the cutoff.
// Storage hygiene only; cancellation is a status change, never a delete.
func (r *repository) PurgeCheckedOutBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("check_out < ?", cutoff).
		Delete(&Booking{})
	return result.RowsAffected, result.Error
}

// applyFilters applies query filters to the GORM query
func (r *repository) applyFilters(query *gorm.DB, filters ListQuery) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.TargetType != "" {
		query = query.Where("target_type = ?", filters.TargetType)
	}

	if filters.DateFrom != "" {
		if dateFrom, err := time.ParseInLocation(DateLayout, filters.DateFrom, time.Local); err == nil {
			query = query.Where("check_out > ?", dateFrom)
		}
	}

	if filters.DateTo != "" {
		if dateTo, err := time.ParseInLocation(DateLayout, filters.DateTo, time.Local); err == nil {
			query = query.Where("check_in < ?", dateTo.AddDate(0, 0, 1))
		}
	}

	return query
}
