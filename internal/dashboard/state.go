package dashboard

import (
	"sync"
	"time"

	"github.com/MarkoPoloResearchLab/botdash/internal/model"
)

// State is the dashboard's shared, explicitly owned state: the most recent
// successful stats and analytics plus the notification feed. A failed fetch
// never clears what an earlier fetch stored.
type State struct {
	notifier *Notifier

	mutex              sync.RWMutex
	snapshot           model.StatsSnapshot
	statsFetchedAt     time.Time
	analytics          model.Analytics
	analyticsFetchedAt time.Time
}

func NewState(notifier *Notifier) *State {
	if notifier == nil {
		notifier = NewNotifier(nil, 0)
	}
	return &State{notifier: notifier}
}

func (state *State) Notifier() *Notifier {
	return state.notifier
}

func (state *State) StoreStats(snapshot model.StatsSnapshot, fetchedAt time.Time) {
	state.mutex.Lock()
	defer state.mutex.Unlock()
	state.snapshot = snapshot
	state.statsFetchedAt = fetchedAt
}

func (state *State) StoreAnalytics(analytics model.Analytics, fetchedAt time.Time) {
	state.mutex.Lock()
	defer state.mutex.Unlock()
	state.analytics = analytics
	state.analyticsFetchedAt = fetchedAt
}

// Stats returns the last snapshot. The boolean is false until one arrived.
func (state *State) Stats() (model.StatsSnapshot, time.Time, bool) {
	state.mutex.RLock()
	defer state.mutex.RUnlock()
	return state.snapshot, state.statsFetchedAt, !state.statsFetchedAt.IsZero()
}

func (state *State) Analytics() (model.Analytics, bool) {
	state.mutex.RLock()
	defer state.mutex.RUnlock()
	return state.analytics, !state.analyticsFetchedAt.IsZero()
}

// Charts rebuilds the chart registry from the stored analytics for a theme.
func (state *State) Charts(theme Theme) Charts {
	analytics, _ := state.Analytics()
	return BuildCharts(analytics, theme)
}
