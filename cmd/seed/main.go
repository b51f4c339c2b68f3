package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"villabook/internal/pricing"
	"villabook/internal/shared/config"
	"villabook/internal/shared/database"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a development database: sample pricing rules plus a bcrypt hash for
// the admin password so it can be dropped into ADMIN_PASSWORD_HASH.
func main() {
	fmt.Println("🌱 Starting Villabook Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := pricing.NewRepository(db.GetPostgreSQL())

	fmt.Println("\n🧹 Cleaning pricing rules...")
	if err := db.GetPostgreSQL().Exec("TRUNCATE TABLE pricing_rules CASCADE").Error; err != nil {
		log.Fatalf("Failed to clean pricing rules: %v", err)
	}

	fmt.Println("🌱 Seeding pricing rules...")
	for _, rule := range sampleRules() {
		r := rule
		if err := repo.Create(ctx, &r); err != nil {
			log.Fatalf("Failed to seed rule %q: %v", rule.Name, err)
		}
		fmt.Printf("  ✅ %s (%s %+.0f, priority %d)\n", r.Name, r.ModifierType, r.ModifierValue, r.Priority)
	}

	if cfg.Admin.PasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash default admin password: %v", err)
		}
		fmt.Printf("\n🔑 No ADMIN_PASSWORD_HASH set. Development hash for password %q:\n%s\n", "admin123", hash)
	}

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

func sampleRules() []pricing.PricingRule {
	today := time.Now()
	yearEnd := time.Date(today.Year(), 12, 31, 0, 0, 0, 0, time.Local)

	return []pricing.PricingRule{
		{
			Name:          "Weekend Surge",
			Description:   "Friday and Saturday nights cost more",
			AppliesTo:     pricing.AppliesAll,
			StartDate:     today,
			EndDate:       yearEnd,
			DaysOfWeek:    []int{5, 6},
			ModifierType:  pricing.ModifierPercentage,
			ModifierValue: 20,
			Priority:      10,
			IsActive:      true,
		},
		{
			Name:          "Peak Season",
			Description:   "December holiday pricing",
			AppliesTo:     pricing.AppliesAll,
			StartDate:     time.Date(today.Year(), 12, 15, 0, 0, 0, 0, time.Local),
			EndDate:       yearEnd,
			ModifierType:  pricing.ModifierPercentage,
			ModifierValue: 35,
			Priority:      20,
			IsActive:      true,
		},
		{
			Name:          "Ground Floor Monsoon Discount",
			Description:   "Cheaper ground floor stays during the monsoon lull",
			AppliesTo:     "floor",
			TargetID:      "F1",
			StartDate:     time.Date(today.Year(), 6, 1, 0, 0, 0, 0, time.Local),
			EndDate:       time.Date(today.Year(), 9, 30, 0, 0, 0, 0, time.Local),
			ModifierType:  pricing.ModifierFixed,
			ModifierValue: -1000,
			Priority:      5,
			IsActive:      true,
		},
	}
}
