package pagination

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/botdash/internal/model"
)

const (
	logEventNavigate      = "pagination_navigate"
	logEventNavigateStale = "pagination_navigate_stale"
)

// PageFetcher is the list data source the controller routes navigation to.
type PageFetcher interface {
	FetchUsers(ctx context.Context, pageNumber int, search string) (model.UserPage, error)
	FetchJobs(ctx context.Context, pageNumber int, status string) (model.JobPage, error)
}

// OutcomeKind describes what a navigation produced.
type OutcomeKind int

const (
	// OutcomeIdle means no list view was open and nothing was fetched.
	OutcomeIdle OutcomeKind = iota
	OutcomeUsers
	OutcomeJobs
	// OutcomeStale means a newer navigation for the same client and view
	// started while this one was in flight; its result must not be rendered.
	OutcomeStale
)

func (kind OutcomeKind) String() string {
	switch kind {
	case OutcomeUsers:
		return "users"
	case OutcomeJobs:
		return "jobs"
	case OutcomeStale:
		return "stale"
	default:
		return "idle"
	}
}

// Outcome carries the fetched page for the view that was navigated.
type Outcome struct {
	Kind       OutcomeKind
	View       ActiveView
	Users      model.UserPage
	Jobs       model.JobPage
	Window     Window
	Generation uint64
}

type generationKey struct {
	clientID string
	kind     ViewKind
}

// Controller routes "go to page N" requests to the data source for the view
// the caller names explicitly.
type Controller struct {
	fetcher PageFetcher
	logger  *zap.Logger

	mutex       sync.Mutex
	generations map[generationKey]uint64
}

func NewController(fetcher PageFetcher, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		fetcher:     fetcher,
		logger:      logger,
		generations: make(map[generationKey]uint64),
	}
}

// Navigate fetches the requested page of the view's collection with the
// view's filter. A None view returns OutcomeIdle without calling the data
// source. An empty clientID disables staleness tracking.
func (controller *Controller) Navigate(ctx context.Context, clientID string, view ActiveView, pageNumber int) (Outcome, error) {
	if view.IsNone() {
		return Outcome{Kind: OutcomeIdle, View: NoView()}, nil
	}
	if pageNumber < 1 {
		pageNumber = 1
	}

	generation := controller.advance(clientID, view.Kind)
	controller.logger.Debug(
		logEventNavigate,
		zap.String("client_id", clientID),
		zap.String("view", view.String()),
		zap.Int("page", pageNumber),
		zap.Uint64("generation", generation),
	)

	outcome := Outcome{View: view, Generation: generation}
	var fetchErr error
	switch view.Kind {
	case ViewKindUsers:
		outcome.Kind = OutcomeUsers
		outcome.Users, fetchErr = controller.fetcher.FetchUsers(ctx, pageNumber, view.Filter)
		outcome.Window = ComputeWindow(outcome.Users.CurrentPage, outcome.Users.TotalPages)
	case ViewKindJobs:
		outcome.Kind = OutcomeJobs
		outcome.Jobs, fetchErr = controller.fetcher.FetchJobs(ctx, pageNumber, view.Filter)
		outcome.Window = ComputeWindow(outcome.Jobs.CurrentPage, outcome.Jobs.TotalPages)
	}

	if !controller.isCurrent(clientID, view.Kind, generation) {
		controller.logger.Debug(
			logEventNavigateStale,
			zap.String("client_id", clientID),
			zap.String("view", view.String()),
			zap.Uint64("generation", generation),
		)
		return Outcome{Kind: OutcomeStale, View: view, Generation: generation}, nil
	}
	if fetchErr != nil {
		return Outcome{Kind: outcome.Kind, View: view, Generation: generation}, fetchErr
	}
	return outcome, nil
}

// Forget drops generation tracking for a client whose dashboard went away.
func (controller *Controller) Forget(clientID string) {
	if clientID == "" {
		return
	}
	controller.mutex.Lock()
	defer controller.mutex.Unlock()
	for key := range controller.generations {
		if key.clientID == clientID {
			delete(controller.generations, key)
		}
	}
}

func (controller *Controller) advance(clientID string, kind ViewKind) uint64 {
	if clientID == "" {
		return 0
	}
	controller.mutex.Lock()
	defer controller.mutex.Unlock()
	key := generationKey{clientID: clientID, kind: kind}
	controller.generations[key]++
	return controller.generations[key]
}

func (controller *Controller) isCurrent(clientID string, kind ViewKind, generation uint64) bool {
	if clientID == "" {
		return true
	}
	controller.mutex.Lock()
	defer controller.mutex.Unlock()
	current, tracked := controller.generations[generationKey{clientID: clientID, kind: kind}]
	if !tracked {
		// Forgotten mid-flight; nobody is waiting for the result.
		return false
	}
	return current == generation
}
