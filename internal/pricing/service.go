package pricing

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"villabook/internal/inventory"
	"villabook/internal/shared/constants"
	"villabook/pkg/cache"
	"villabook/pkg/logger"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type Service interface {
	// PriceStay computes the nightly breakdown for a target and stay
	// window [checkIn, checkOut). basePriceOverride, when non-nil,
	// replaces the target's configured base price.
	PriceStay(ctx context.Context, target inventory.Target, checkIn, checkOut time.Time, basePriceOverride *float64) (*Quote, error)

	CreateRule(ctx context.Context, rule *PricingRule) error
	GetRule(ctx context.Context, id uuid.UUID) (*PricingRule, error)
	UpdateRule(ctx context.Context, rule *PricingRule) error
	DeleteRule(ctx context.Context, id uuid.UUID) error
	ListRules(ctx context.Context, activeOnly bool) ([]PricingRule, error)
}

type service struct {
	repo   Repository
	inv    inventory.Service
	cache  cache.Service
	logger *logger.Logger
}

func NewService(repo Repository, inv inventory.Service, cacheService cache.Service, log *logger.Logger) Service {
	return &service{
		repo:   repo,
		inv:    inv,
		cache:  cacheService,
		logger: log,
	}
}

func (s *service) PriceStay(ctx context.Context, target inventory.Target, checkIn, checkOut time.Time, basePriceOverride *float64) (*Quote, error) {
	resolution, err := s.inv.ResolveTarget(target)
	if err != nil {
		return nil, ErrNoSuchTarget
	}

	basePrice := resolution.BasePrice
	if basePriceOverride != nil {
		basePrice = *basePriceOverride
	}

	rules, err := s.repo.FindActiveInWindow(ctx, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing rules: %w", err)
	}

	quote := &Quote{
		TargetType: target.Type.String(),
		TargetID:   target.ID(),
		CheckIn:    checkIn.Format(dateLayout),
		CheckOut:   checkOut.Format(dateLayout),
		BasePrice:  basePrice,
	}

	// Rules that fired on at least one night, keyed by rule id
	fired := make(map[uuid.UUID]*RuleSummary)

	for night := checkIn; night.Before(checkOut); night = night.AddDate(0, 0, 1) {
		nightPrice := basePrice
		var nightRules []string

		for i := range rules {
			rule := &rules[i]
			if !rule.Matches(target) || !rule.AppliesOn(night) {
				continue
			}
			// Additive stacking against the original base price
			nightPrice += rule.ModifierAmount(basePrice)
			nightRules = append(nightRules, rule.Name)

			if summary, ok := fired[rule.ID]; ok {
				summary.Nights++
			} else {
				fired[rule.ID] = &RuleSummary{
					RuleID:        rule.ID,
					Name:          rule.Name,
					ModifierType:  rule.ModifierType,
					ModifierValue: rule.ModifierValue,
					Priority:      rule.Priority,
					Nights:        1,
				}
			}
		}

		nightPrice = math.Round(nightPrice)
		quote.PerNight = append(quote.PerNight, NightPrice{
			Date:         night.Format(dateLayout),
			Price:        nightPrice,
			AppliedRules: nightRules,
		})
		quote.TotalPrice += nightPrice
		quote.Nights++
	}

	if quote.Nights > 0 {
		quote.FinalPricePerNight = math.Round(quote.TotalPrice / float64(quote.Nights))
	}

	quote.AppliedRules = make([]RuleSummary, 0, len(fired))
	for _, summary := range fired {
		quote.AppliedRules = append(quote.AppliedRules, *summary)
	}
	sort.Slice(quote.AppliedRules, func(i, j int) bool {
		if quote.AppliedRules[i].Priority != quote.AppliedRules[j].Priority {
			return quote.AppliedRules[i].Priority > quote.AppliedRules[j].Priority
		}
		return quote.AppliedRules[i].Name < quote.AppliedRules[j].Name
	})

	return quote, nil
}

func (s *service) CreateRule(ctx context.Context, rule *PricingRule) error {
	if err := s.validateRule(rule); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, rule); err != nil {
		return fmt.Errorf("failed to create pricing rule: %w", err)
	}
	s.invalidateQuotes(ctx)
	s.logger.Info("Pricing rule created", "rule_id", rule.ID, "name", rule.Name)
	return nil
}

func (s *service) GetRule(ctx context.Context, id uuid.UUID) (*PricingRule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateRule(ctx context.Context, rule *PricingRule) error {
	if err := s.validateRule(rule); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(ctx, rule.ID); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, rule); err != nil {
		return fmt.Errorf("failed to update pricing rule: %w", err)
	}
	s.invalidateQuotes(ctx)
	s.logger.Info("Pricing rule updated", "rule_id", rule.ID, "name", rule.Name)
	return nil
}

func (s *service) DeleteRule(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateQuotes(ctx)
	s.logger.Info("Pricing rule deleted", "rule_id", id)
	return nil
}

func (s *service) ListRules(ctx context.Context, activeOnly bool) ([]PricingRule, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) validateRule(rule *PricingRule) error {
	if rule.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if rule.ModifierType != ModifierPercentage && rule.ModifierType != ModifierFixed {
		return fmt.Errorf("%w: unknown modifier type %q", ErrValidation, rule.ModifierType)
	}
	if rule.EndDate.Before(rule.StartDate) {
		return fmt.Errorf("%w: end date before start date", ErrValidation)
	}
	switch rule.AppliesTo {
	case AppliesAll:
		if rule.TargetID != "" {
			return fmt.Errorf("%w: target id not allowed when rule applies to all", ErrValidation)
		}
	case inventory.TargetVilla.String(), inventory.TargetFloor.String(), inventory.TargetRoom.String():
	default:
		return fmt.Errorf("%w: unknown applies_to %q", ErrValidation, rule.AppliesTo)
	}
	for _, d := range rule.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: day of week %d out of range", ErrValidation, d)
		}
	}
	return nil
}

// invalidateQuotes drops every cached quote; rule changes must be visible on
// the next pricing request. Cache failure only costs freshness of a cache
// that is about to expire anyway, so it is logged and swallowed.
func (s *service) invalidateQuotes(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.QuoteCachePattern()); err != nil {
		s.logger.Warn("Failed to invalidate quote cache", "error", err)
	}
}
