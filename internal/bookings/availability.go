package bookings

import (
	"context"
	"time"

	"villabook/internal/inventory"

	"github.com/google/uuid"
)

// Resolver answers availability questions for a target and stay window.
// A booking on any level blocks every overlapping target that shares at
// least one leaf room with it, so the check always reduces to leaf-room
// set intersection.
type Resolver interface {
	// CheckAvailability reports whether the target is free for the range,
	// ignoring the booking identified by excludeID (uuid.Nil to exclude
	// nothing). Only bookings in a blocking status count.
	CheckAvailability(ctx context.Context, target inventory.Target, dateRange DateRange, excludeID uuid.UUID) (bool, []Booking, error)

	// ConflictFilterFor returns a filter that keeps only bookings whose
	// leaf rooms intersect the target's, for use inside the serialized
	// write path.
	ConflictFilterFor(target inventory.Target) ConflictFilter

	// BookedRanges lists occupied stay windows for a target from the given
	// day forward, for calendar rendering.
	BookedRanges(ctx context.Context, target inventory.Target, from time.Time) ([]DateRange, error)

	BlockingStatuses() []Status
}

type resolver struct {
	repo     Repository
	inv      inventory.Service
	blocking []Status
}

func NewResolver(repo Repository, inv inventory.Service, blockingStatuses []Status) Resolver {
	statuses := make([]Status, len(blockingStatuses))
	copy(statuses, blockingStatuses)
	return &resolver{
		repo:     repo,
		inv:      inv,
		blocking: statuses,
	}
}

func (r *resolver) BlockingStatuses() []Status {
	return r.blocking
}

func (r *resolver) ConflictFilterFor(target inventory.Target) ConflictFilter {
	return func(overlapping []Booking) []Booking {
		var conflicts []Booking
		for _, b := range overlapping {
			if r.inv.Conflicts(target, b.Target()) {
				conflicts = append(conflicts, b)
			}
		}
		return conflicts
	}
}

func (r *resolver) CheckAvailability(ctx context.Context, target inventory.Target, dateRange DateRange, excludeID uuid.UUID) (bool, []Booking, error) {
	if _, err := r.inv.ResolveTarget(target); err != nil {
		return false, nil, err
	}

	overlapping, err := r.repo.FindOverlapping(ctx, dateRange, r.blocking, excludeID)
	if err != nil {
		return false, nil, err
	}

	conflicts := r.ConflictFilterFor(target)(overlapping)
	return len(conflicts) == 0, conflicts, nil
}

func (r *resolver) BookedRanges(ctx context.Context, target inventory.Target, from time.Time) ([]DateRange, error) {
	if _, err := r.inv.ResolveTarget(target); err != nil {
		return nil, err
	}

	// Far enough out that no real stay window is cut off.
	horizon := DateRange{CheckIn: Midnight(from), CheckOut: Midnight(from).AddDate(5, 0, 0)}
	overlapping, err := r.repo.FindOverlapping(ctx, horizon, r.blocking, uuid.Nil)
	if err != nil {
		return nil, err
	}

	ranges := make([]DateRange, 0)
	for _, b := range r.ConflictFilterFor(target)(overlapping) {
		ranges = append(ranges, b.Range())
	}
	return ranges, nil
}
