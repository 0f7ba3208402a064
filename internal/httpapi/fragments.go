package httpapi

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/botdash/internal/backend"
	"github.com/MarkoPoloResearchLab/botdash/internal/dashboard"
	"github.com/MarkoPoloResearchLab/botdash/internal/model"
	"github.com/MarkoPoloResearchLab/botdash/internal/pagination"
	"github.com/MarkoPoloResearchLab/botdash/internal/render"
)

const (
	DashboardPath            = "/dashboard"
	StatsFragmentPath        = "/dashboard/fragments/stats"
	ActivitiesFragmentPath   = "/dashboard/fragments/activities"
	UsersFragmentPath        = "/dashboard/fragments/users"
	JobsFragmentPath         = "/dashboard/fragments/jobs"
	ChartsPath               = "/dashboard/api/charts"
	NavigatePath             = render.NavigatePath
	RefreshPath              = "/dashboard/refresh"
	ThemePath                = "/dashboard/theme"
	VisibilityPath           = "/dashboard/visibility"
	DashboardScriptPath      = "/dashboard/assets/dashboard.js"
	HealthPath               = "/healthz"
	MetricsPath              = "/metrics"
	fragmentHTMLContentType  = "text/html; charset=utf-8"
	jsonKeyError             = "error"
	queryParameterPage       = "page"
	queryParameterSearch     = "search"
	queryParameterStatus     = "status"
	queryParameterView       = "view"
	queryParameterFilter     = "filter"
	queryParameterUsersOpen  = "users_open"
	queryParameterJobsOpen   = "jobs_open"
	formParameterVisible     = "visible"
	failureSummaryUsers      = "Failed to load users"
	failureSummaryJobs       = "Failed to load jobs"
	refreshSuccessMessage    = "All data refreshed"
	refreshFailureSummary    = "Refresh failed"
	logEventRenderFragment   = "render_fragment"
	logEventNavigateFailed   = "navigate_failed"
	logEventSaveTheme        = "save_theme"
	logEventVisibilityReport = "visibility_report"
)

// Navigator routes page requests for an explicit view.
type Navigator interface {
	Navigate(ctx context.Context, clientID string, view pagination.ActiveView, pageNumber int) (pagination.Outcome, error)
}

// VisibilityTracker starts and stops background refresh as dashboards come
// and go.
type VisibilityTracker interface {
	ReportVisible(clientID string)
	ReportHidden(clientID string)
	RefreshNow(ctx context.Context) error
}

// FragmentHandlers serves the HTML fragments and small JSON endpoints the
// dashboard script swaps into the page.
type FragmentHandlers struct {
	logger    *zap.Logger
	state     *dashboard.State
	loader    *dashboard.Loader
	navigator Navigator
	tracker   VisibilityTracker
	renderer  *render.Renderer
	sessions  *SessionManager
}

type FragmentDependencies struct {
	Logger    *zap.Logger
	State     *dashboard.State
	Loader    *dashboard.Loader
	Navigator Navigator
	Tracker   VisibilityTracker
	Renderer  *render.Renderer
	Sessions  *SessionManager
}

func NewFragmentHandlers(dependencies FragmentDependencies) *FragmentHandlers {
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer := dependencies.Renderer
	if renderer == nil {
		renderer = render.NewRenderer()
	}
	return &FragmentHandlers{
		logger:    logger,
		state:     dependencies.State,
		loader:    dependencies.Loader,
		navigator: dependencies.Navigator,
		tracker:   dependencies.Tracker,
		renderer:  renderer,
		sessions:  dependencies.Sessions,
	}
}

// Stats renders the stat cards from the last snapshot, fetching one first if
// none has arrived yet.
func (handlers *FragmentHandlers) Stats(context *gin.Context) {
	snapshot, ok := handlers.ensureStats(context)
	if !ok {
		return
	}
	handlers.writeFragment(context, func() (template.HTML, error) {
		return handlers.renderer.StatCards(snapshot)
	})
}

func (handlers *FragmentHandlers) Activities(context *gin.Context) {
	snapshot, ok := handlers.ensureStats(context)
	if !ok {
		return
	}
	handlers.writeFragment(context, func() (template.HTML, error) {
		return handlers.renderer.Activities(snapshot.RecentActivities)
	})
}

// Charts returns the chart registry colored for the session's theme.
func (handlers *FragmentHandlers) Charts(context *gin.Context) {
	if _, ok := handlers.state.Analytics(); !ok {
		if loadErr := handlers.loader.LoadAnalytics(context.Request.Context()); loadErr != nil {
			handlers.writeLoadFailure(context, loadErr)
			return
		}
	}
	context.JSON(http.StatusOK, handlers.state.Charts(ThemeFromContext(context)))
}

func (handlers *FragmentHandlers) Users(context *gin.Context) {
	handlers.navigate(context, pagination.UsersView(context.Query(queryParameterSearch)))
}

func (handlers *FragmentHandlers) Jobs(context *gin.Context) {
	handlers.navigate(context, pagination.JobsView(context.Query(queryParameterStatus)))
}

// Navigate serves pagination links, which name their view explicitly. Callers
// that only know which list panels are open may send users_open/jobs_open
// with search and status instead.
func (handlers *FragmentHandlers) Navigate(context *gin.Context) {
	rawView, hasView := context.GetQuery(queryParameterView)
	if !hasView {
		handlers.navigate(context, pagination.ResolveView(pagination.Visibility{
			UsersVisible: queryFlag(context, queryParameterUsersOpen),
			UsersFilter:  context.Query(queryParameterSearch),
			JobsVisible:  queryFlag(context, queryParameterJobsOpen),
			JobsFilter:   context.Query(queryParameterStatus),
		}))
		return
	}
	view, parseErr := pagination.ParseView(rawView, context.Query(queryParameterFilter))
	if parseErr != nil {
		context.AbortWithStatusJSON(http.StatusBadRequest, gin.H{jsonKeyError: parseErr.Error()})
		return
	}
	handlers.navigate(context, view)
}

// Refresh reloads stats and analytics now.
func (handlers *FragmentHandlers) Refresh(context *gin.Context) {
	if refreshErr := handlers.tracker.RefreshNow(context.Request.Context()); refreshErr != nil {
		handlers.writeLoadFailure(context, refreshErr)
		return
	}
	notification := handlers.state.Notifier().Notify(dashboard.NotificationSuccess, refreshSuccessMessage)
	handlers.writeFragment(context, func() (template.HTML, error) {
		return handlers.renderer.Notification(notification)
	})
}

// Theme flips the session theme and returns what the page needs to restyle.
func (handlers *FragmentHandlers) Theme(context *gin.Context) {
	theme := ThemeFromContext(context).Toggle()
	if saveErr := handlers.sessions.SaveTheme(context, theme); saveErr != nil {
		handlers.logger.Error(logEventSaveTheme, zap.Error(saveErr))
		context.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{jsonKeyError: "theme_not_saved"})
		return
	}
	context.JSON(http.StatusOK, gin.H{
		"theme":   theme,
		"icon":    theme.Icon(),
		"palette": theme.Palette(),
	})
}

// Visibility records whether this browser's dashboard is on screen.
func (handlers *FragmentHandlers) Visibility(context *gin.Context) {
	clientID := ClientIDFromContext(context)
	visible, parseErr := strconv.ParseBool(strings.TrimSpace(context.PostForm(formParameterVisible)))
	if parseErr != nil {
		context.AbortWithStatusJSON(http.StatusBadRequest, gin.H{jsonKeyError: "visible must be true or false"})
		return
	}
	handlers.logger.Debug(logEventVisibilityReport, zap.String("client_id", clientID), zap.Bool("visible", visible))
	if visible {
		handlers.tracker.ReportVisible(clientID)
	} else {
		handlers.tracker.ReportHidden(clientID)
	}
	context.Status(http.StatusNoContent)
}

func (handlers *FragmentHandlers) navigate(context *gin.Context, view pagination.ActiveView) {
	pageNumber := parsePageNumber(context.Query(queryParameterPage))
	outcome, navigateErr := handlers.navigator.Navigate(context.Request.Context(), ClientIDFromContext(context), view, pageNumber)
	if navigateErr != nil {
		logFailure := handlers.logger.Warn
		if !backend.IsFetchError(navigateErr) {
			logFailure = handlers.logger.Error
		}
		logFailure(logEventNavigateFailed, zap.String("view", view.String()), zap.Int("page", pageNumber), zap.Error(navigateErr))
		summary := failureSummaryUsers
		if view.Kind == pagination.ViewKindJobs {
			summary = failureSummaryJobs
		}
		handlers.writeFailure(context, handlers.state.Notifier().Failure(summary, navigateErr))
		return
	}
	switch outcome.Kind {
	case pagination.OutcomeIdle, pagination.OutcomeStale:
		context.Status(http.StatusNoContent)
		return
	}
	handlers.writeFragment(context, func() (template.HTML, error) {
		return handlers.renderer.Outcome(outcome)
	})
}

func (handlers *FragmentHandlers) ensureStats(context *gin.Context) (model.StatsSnapshot, bool) {
	if snapshot, _, ok := handlers.state.Stats(); ok {
		return snapshot, true
	}
	if loadErr := handlers.loader.LoadStats(context.Request.Context()); loadErr != nil {
		handlers.writeLoadFailure(context, loadErr)
		return model.StatsSnapshot{}, false
	}
	snapshot, _, _ := handlers.state.Stats()
	return snapshot, true
}

// writeLoadFailure answers with the notification the loader recorded for a
// failed fetch.
func (handlers *FragmentHandlers) writeLoadFailure(context *gin.Context, loadErr error) {
	var failure *dashboard.LoadFailure
	if errors.As(loadErr, &failure) {
		handlers.writeFailure(context, failure.Notification)
		return
	}
	handlers.writeFailure(context, handlers.state.Notifier().Failure(refreshFailureSummary, loadErr))
}

func (handlers *FragmentHandlers) writeFailure(context *gin.Context, notification dashboard.Notification) {
	rendered, renderErr := handlers.renderer.Notification(notification)
	if renderErr != nil {
		handlers.logger.Error(logEventRenderFragment, zap.Error(renderErr))
		context.AbortWithStatusJSON(http.StatusBadGateway, gin.H{jsonKeyError: notification.Message})
		return
	}
	context.Data(http.StatusBadGateway, fragmentHTMLContentType, []byte(rendered))
}

func (handlers *FragmentHandlers) writeFragment(context *gin.Context, build func() (template.HTML, error)) {
	rendered, renderErr := build()
	if renderErr != nil {
		handlers.logger.Error(logEventRenderFragment, zap.String("path", context.FullPath()), zap.Error(renderErr))
		context.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{jsonKeyError: "render_failed"})
		return
	}
	context.Data(http.StatusOK, fragmentHTMLContentType, []byte(rendered))
}

func queryFlag(context *gin.Context, name string) bool {
	enabled, parseErr := strconv.ParseBool(strings.TrimSpace(context.Query(name)))
	return parseErr == nil && enabled
}

func parsePageNumber(raw string) int {
	pageNumber, parseErr := strconv.Atoi(strings.TrimSpace(raw))
	if parseErr != nil || pageNumber < 1 {
		return 1
	}
	return pageNumber
}
