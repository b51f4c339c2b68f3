package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes the availability queries depend on.
//
// Overlap checks always filter on status plus the [check_in, check_out)
// window, so a composite index keeps the hot path off a sequential scan.
// The creation path itself is serialized with a per-villa advisory lock
// inside a transaction, not with a constraint: targets at different
// hierarchy levels can conflict, which a plain unique index cannot express.
func MigrateConstraints(db *gorm.DB) error {
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_status_dates
		ON bookings (status, check_in, check_out);
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_gateway_order
		ON bookings (gateway_order_id);
	`).Error
	if err != nil {
		return err
	}

	// Pricing rule lookups filter on active window per night.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_pricing_rules_window
		ON pricing_rules (is_active, start_date, end_date);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
