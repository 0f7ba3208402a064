package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/botdash/internal/dashboard"
	"github.com/MarkoPoloResearchLab/botdash/internal/httpapi"
	"github.com/MarkoPoloResearchLab/botdash/internal/model"
	"github.com/MarkoPoloResearchLab/botdash/internal/pagination"
)

const testSessionSecret = "0123456789abcdef0123456789abcdef"

type stubStatsSource struct {
	mutex        sync.Mutex
	snapshot     model.StatsSnapshot
	analytics    model.Analytics
	statsErr     error
	analyticsErr error
	statsCalls   int
}

func (source *stubStatsSource) FetchStats(context.Context) (model.StatsSnapshot, error) {
	source.mutex.Lock()
	defer source.mutex.Unlock()
	source.statsCalls++
	return source.snapshot, source.statsErr
}

func (source *stubStatsSource) FetchAnalytics(context.Context) (model.Analytics, error) {
	source.mutex.Lock()
	defer source.mutex.Unlock()
	return source.analytics, source.analyticsErr
}

type navigateCall struct {
	ClientID string
	View     pagination.ActiveView
	Page     int
}

type stubNavigator struct {
	mutex   sync.Mutex
	calls   []navigateCall
	outcome pagination.Outcome
	err     error
}

func (navigator *stubNavigator) Navigate(_ context.Context, clientID string, view pagination.ActiveView, pageNumber int) (pagination.Outcome, error) {
	navigator.mutex.Lock()
	defer navigator.mutex.Unlock()
	navigator.calls = append(navigator.calls, navigateCall{ClientID: clientID, View: view, Page: pageNumber})
	return navigator.outcome, navigator.err
}

func (navigator *stubNavigator) recorded() []navigateCall {
	navigator.mutex.Lock()
	defer navigator.mutex.Unlock()
	return append([]navigateCall(nil), navigator.calls...)
}

type recordingTracker struct {
	mutex      sync.Mutex
	visible    []string
	hidden     []string
	refreshErr error
	refreshes  int
}

func (tracker *recordingTracker) ReportVisible(clientID string) {
	tracker.mutex.Lock()
	defer tracker.mutex.Unlock()
	tracker.visible = append(tracker.visible, clientID)
}

func (tracker *recordingTracker) ReportHidden(clientID string) {
	tracker.mutex.Lock()
	defer tracker.mutex.Unlock()
	tracker.hidden = append(tracker.hidden, clientID)
}

func (tracker *recordingTracker) RefreshNow(context.Context) error {
	tracker.mutex.Lock()
	defer tracker.mutex.Unlock()
	tracker.refreshes++
	return tracker.refreshErr
}

type handlerHarness struct {
	router    *gin.Engine
	state     *dashboard.State
	source    *stubStatsSource
	navigator *stubNavigator
	tracker   *recordingTracker
}

func newHandlerHarness(testingT *testing.T) *handlerHarness {
	testingT.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	state := dashboard.NewState(dashboard.NewNotifier(logger, 0))
	source := &stubStatsSource{}
	navigator := &stubNavigator{}
	tracker := &recordingTracker{}
	sessions := httpapi.NewSessionManager(logger, []byte(testSessionSecret), false)

	fragments := httpapi.NewFragmentHandlers(httpapi.FragmentDependencies{
		Logger:    logger,
		State:     state,
		Loader:    dashboard.NewLoader(source, state, logger),
		Navigator: navigator,
		Tracker:   tracker,
		Sessions:  sessions,
	})
	page := httpapi.NewDashboardWebHandlers(logger, state, time.Minute)

	router := gin.New()
	router.GET(httpapi.DashboardScriptPath, page.Script)
	router.GET(httpapi.HealthPath, httpapi.Health)
	router.GET("/", httpapi.RedirectToDashboard)
	router.Use(sessions.Middleware())
	router.GET(httpapi.DashboardPath, page.RenderDashboard)
	router.GET(httpapi.StatsFragmentPath, fragments.Stats)
	router.GET(httpapi.ActivitiesFragmentPath, fragments.Activities)
	router.GET(httpapi.ChartsPath, fragments.Charts)
	router.GET(httpapi.UsersFragmentPath, fragments.Users)
	router.GET(httpapi.JobsFragmentPath, fragments.Jobs)
	router.GET(httpapi.NavigatePath, fragments.Navigate)
	router.POST(httpapi.RefreshPath, fragments.Refresh)
	router.POST(httpapi.ThemePath, fragments.Theme)
	router.POST(httpapi.VisibilityPath, fragments.Visibility)

	return &handlerHarness{router: router, state: state, source: source, navigator: navigator, tracker: tracker}
}

func (harness *handlerHarness) get(target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, target, nil)
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	harness.router.ServeHTTP(recorder, request)
	return recorder
}

func (harness *handlerHarness) postForm(target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	harness.router.ServeHTTP(recorder, request)
	return recorder
}

// sessionCookie returns the last session cookie written, which carries every
// value saved during the request.
func sessionCookie(recorder *httptest.ResponseRecorder) *http.Cookie {
	var latest *http.Cookie
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == httpapi.SessionCookieName {
			latest = cookie
		}
	}
	return latest
}
