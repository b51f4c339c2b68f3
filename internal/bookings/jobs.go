package bookings

import (
	"context"
	"time"

	"villabook/internal/pricing"
	"villabook/internal/shared/config"
	"villabook/pkg/logger"
)

// RetentionJob purges old records on a fixed interval: bookings some days
// after checkout and pricing rules some days after their window ends. Pure
// storage hygiene; cancellations and refunds never go through here.
type RetentionJob struct {
	bookings Repository
	rules    pricing.Repository
	cfg      config.BookingConfig
	logger   *logger.Logger
	done     chan struct{}
}

func NewRetentionJob(bookings Repository, rules pricing.Repository, cfg config.BookingConfig, log *logger.Logger) *RetentionJob {
	return &RetentionJob{
		bookings: bookings,
		rules:    rules,
		cfg:      cfg,
		logger:   log,
		done:     make(chan struct{}),
	}
}

// Start runs the purge loop until Stop is called or ctx is cancelled
func (j *RetentionJob) Start(ctx context.Context) {
	go j.run(ctx)
	j.logger.Info("Retention job started",
		"interval", j.cfg.PurgeInterval,
		"booking_retention_days", j.cfg.RetentionDays,
		"rule_retention_days", j.cfg.RuleRetentionDays,
	)
}

func (j *RetentionJob) Stop() {
	close(j.done)
	j.logger.Info("Retention job stopped")
}

func (j *RetentionJob) run(ctx context.Context) {
	ticker := time.NewTicker(j.cfg.PurgeInterval)
	defer ticker.Stop()

	// One pass at startup so a rarely-restarted process is not the only
	// thing keeping stale rows around.
	j.RunOnce(ctx)

	for {
		select {
		case <-ticker.C:
			j.RunOnce(ctx)
		case <-j.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// RunOnce executes a single purge pass
func (j *RetentionJob) RunOnce(ctx context.Context) {
	now := time.Now()

	bookingCutoff := now.AddDate(0, 0, -j.cfg.RetentionDays)
	if purged, err := j.bookings.PurgeCheckedOutBefore(ctx, bookingCutoff); err != nil {
		j.logger.Error("Booking purge failed", "error", err)
	} else if purged > 0 {
		j.logger.Info("Purged old bookings", "count", purged, "cutoff", bookingCutoff.Format(DateLayout))
	}

	ruleCutoff := now.AddDate(0, 0, -j.cfg.RuleRetentionDays)
	if purged, err := j.rules.PurgeEndedBefore(ctx, ruleCutoff); err != nil {
		j.logger.Error("Pricing rule purge failed", "error", err)
	} else if purged > 0 {
		j.logger.Info("Purged ended pricing rules", "count", purged, "cutoff", ruleCutoff.Format(DateLayout))
	}
}
