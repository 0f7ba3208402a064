package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MarkoPoloResearchLab/botdash/internal/model"
)

const (
	logEventLoadStats     = "dashboard_load_stats"
	logEventLoadAnalytics = "dashboard_load_analytics"

	failureSummaryStats     = "Failed to load statistics"
	failureSummaryAnalytics = "Failed to load analytics"
)

// LoadFailure wraps a failed fetch together with the notification recorded
// for it.
type LoadFailure struct {
	Notification Notification
	Err          error
}

func (failure *LoadFailure) Error() string {
	return failure.Notification.Message
}

func (failure *LoadFailure) Unwrap() error {
	return failure.Err
}

// StatsSource supplies the summary endpoints.
type StatsSource interface {
	FetchStats(ctx context.Context) (model.StatsSnapshot, error)
	FetchAnalytics(ctx context.Context) (model.Analytics, error)
}

// Loader refreshes State from a StatsSource.
type Loader struct {
	source StatsSource
	state  *State
	logger *zap.Logger
	clock  func() time.Time
}

func NewLoader(source StatsSource, state *State, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{source: source, state: state, logger: logger, clock: time.Now}
}

// Load fetches stats and analytics concurrently. Each failure produces its
// own notification and leaves the previously stored value in place; one
// failing fetch does not cancel the other. The first error is returned.
func (loader *Loader) Load(ctx context.Context) error {
	var group errgroup.Group
	group.Go(func() error {
		return loader.LoadStats(ctx)
	})
	group.Go(func() error {
		return loader.LoadAnalytics(ctx)
	})
	return group.Wait()
}

func (loader *Loader) LoadStats(ctx context.Context) error {
	snapshot, fetchErr := loader.source.FetchStats(ctx)
	if fetchErr != nil {
		loader.logger.Warn(logEventLoadStats, zap.Error(fetchErr))
		notification := loader.state.Notifier().Failure(failureSummaryStats, fetchErr)
		return &LoadFailure{Notification: notification, Err: fetchErr}
	}
	loader.state.StoreStats(snapshot, loader.clock())
	return nil
}

func (loader *Loader) LoadAnalytics(ctx context.Context) error {
	analytics, fetchErr := loader.source.FetchAnalytics(ctx)
	if fetchErr != nil {
		loader.logger.Warn(logEventLoadAnalytics, zap.Error(fetchErr))
		notification := loader.state.Notifier().Failure(failureSummaryAnalytics, fetchErr)
		return &LoadFailure{Notification: notification, Err: fetchErr}
	}
	loader.state.StoreAnalytics(analytics, loader.clock())
	return nil
}
