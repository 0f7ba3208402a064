package dashboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/botdash/internal/task"
)

const (
	DefaultRefreshInterval = 30 * time.Second
	leaseIntervals         = 3

	logEventRefresherStarted = "dashboard_refresher_started"
	logEventRefresherStopped = "dashboard_refresher_stopped"
	logEventRefreshFailed    = "dashboard_refresh_failed"
)

// ClientForgetter drops per-client tracking when a dashboard goes away.
type ClientForgetter interface {
	Forget(clientID string)
}

// Refresher reloads dashboard data periodically while at least one client
// reports a visible dashboard. Each visibility report grants a lease of
// three refresh intervals; clients that stop reporting are dropped.
type Refresher struct {
	loader    *Loader
	forgetter ClientForgetter
	scheduler *task.Scheduler
	lease     time.Duration
	logger    *zap.Logger
	clock     func() time.Time

	mutex   sync.Mutex
	baseCtx context.Context
	leases  map[string]time.Time
}

func NewRefresher(loader *Loader, forgetter ClientForgetter, interval time.Duration, logger *zap.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	refresher := &Refresher{
		loader:    loader,
		forgetter: forgetter,
		lease:     leaseIntervals * interval,
		logger:    logger,
		clock:     time.Now,
		baseCtx:   context.Background(),
		leases:    make(map[string]time.Time),
	}
	refresher.scheduler = task.NewScheduler(interval, refresher.run, task.WithRunOnStart())
	return refresher
}

// Bind sets the context the refresh loop runs under, normally the server's
// lifetime context.
func (refresher *Refresher) Bind(ctx context.Context) {
	refresher.mutex.Lock()
	defer refresher.mutex.Unlock()
	refresher.baseCtx = ctx
}

// ReportVisible renews the client's lease and starts the loop if needed.
func (refresher *Refresher) ReportVisible(clientID string) {
	if clientID == "" {
		return
	}
	refresher.mutex.Lock()
	defer refresher.mutex.Unlock()
	refresher.leases[clientID] = refresher.clock().Add(refresher.lease)
	if !refresher.scheduler.Running() {
		refresher.logger.Info(logEventRefresherStarted, zap.String("client_id", clientID))
		refresher.scheduler.Start(refresher.baseCtx)
	}
}

// ReportHidden ends the client's lease and stops the loop once no client
// remains visible. It does not wait for an in-flight refresh.
func (refresher *Refresher) ReportHidden(clientID string) {
	if clientID == "" {
		return
	}
	refresher.mutex.Lock()
	delete(refresher.leases, clientID)
	if len(refresher.leases) == 0 && refresher.scheduler.Running() {
		refresher.scheduler.Halt()
		refresher.logger.Info(logEventRefresherStopped, zap.String("reason", "hidden"))
	}
	refresher.mutex.Unlock()

	if refresher.forgetter != nil {
		refresher.forgetter.Forget(clientID)
	}
}

// RefreshNow runs one load immediately on the caller's context.
func (refresher *Refresher) RefreshNow(ctx context.Context) error {
	return refresher.loader.Load(ctx)
}

func (refresher *Refresher) Running() bool {
	return refresher.scheduler.Running()
}

func (refresher *Refresher) VisibleClients() int {
	refresher.mutex.Lock()
	defer refresher.mutex.Unlock()
	return len(refresher.leases)
}

// Stop halts the loop regardless of outstanding leases.
func (refresher *Refresher) Stop() {
	refresher.scheduler.Stop()
}

func (refresher *Refresher) run(ctx context.Context) {
	expired, remaining := refresher.pruneExpired()
	if refresher.forgetter != nil {
		for _, clientID := range expired {
			refresher.forgetter.Forget(clientID)
		}
	}
	if remaining == 0 {
		return
	}
	if loadErr := refresher.loader.Load(ctx); loadErr != nil {
		refresher.logger.Warn(logEventRefreshFailed, zap.Error(loadErr))
	}
}

// pruneExpired drops lapsed leases and halts the loop when none remain. The
// check and the halt happen under the same lock as ReportVisible's start.
func (refresher *Refresher) pruneExpired() ([]string, int) {
	now := refresher.clock()
	var expired []string

	refresher.mutex.Lock()
	defer refresher.mutex.Unlock()
	for clientID, expiresAt := range refresher.leases {
		if !now.Before(expiresAt) {
			expired = append(expired, clientID)
			delete(refresher.leases, clientID)
		}
	}
	if len(refresher.leases) == 0 {
		refresher.scheduler.Halt()
		refresher.logger.Info(logEventRefresherStopped, zap.String("reason", "lease_expired"))
	}
	return expired, len(refresher.leases)
}
