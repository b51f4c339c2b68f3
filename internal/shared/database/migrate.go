package database

import (
	"villabook/internal/bookings"
	"villabook/internal/pricing"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&bookings.Booking{},
		&bookings.AppliedRule{},
		&pricing.PricingRule{},
	)
}
