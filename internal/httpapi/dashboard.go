package httpapi

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/botdash/internal/dashboard"
	"github.com/MarkoPoloResearchLab/botdash/internal/render"
)

const (
	dashboardTemplateName    = "dashboard"
	dashboardHTMLContentType = "text/html; charset=utf-8"
	scriptContentType        = "application/javascript; charset=utf-8"
	dashboardPageTitle       = "Bot Dashboard"
	lastRefreshLayout        = "15:04:05 MST"

	themeToggleElementID      = "theme-toggle"
	refreshButtonElementID    = "refresh-all"
	statsContainerElementID   = "stats-container"
	activitiesListElementID   = "activities-list"
	notificationsElementID    = "notifications"
	activityChartElementID    = "activityChart"
	jobStatusChartElementID   = "jobStatusChart"
	userModalElementID        = "userModal"
	jobModalElementID         = "jobModal"
	userSearchElementID       = "user-search"
	userSearchButtonElementID = "user-search-button"
	statusFilterInputName     = "status-filter"
	clientConfigElementID     = "dashboard-config"

	logEventRenderDashboard       = "render_dashboard"
	logEventRenderDashboardFooter = "render_dashboard_footer"
	logEventRenderDashboardConfig = "render_dashboard_config"
)

type statusFilterOption struct {
	Value string
	Label string
}

var statusFilterOptions = []statusFilterOption{
	{Value: "", Label: "All"},
	{Value: "aktif", Label: "Active"},
	{Value: "close", Label: "Closed"},
	{Value: "cair", Label: "Paid"},
}

type dashboardTemplateData struct {
	PageTitle             string
	Theme                 string
	ThemeIcon             string
	ScriptPath            string
	ThemeToggleID         string
	RefreshButtonID       string
	StatsContainerID      string
	ActivitiesListID      string
	NotificationsID       string
	ActivityChartID       string
	JobStatusChartID      string
	UserModalID           string
	JobModalID            string
	UserSearchID          string
	UserSearchButtonID    string
	UsersTableID          string
	JobsTableID           string
	StatusFilterInputName string
	StatusFilterOptions   []statusFilterOption
	FooterHTML            template.HTML
	ClientConfigElementID string
	ClientConfigJSON      template.JS
}

type dashboardClientConfig struct {
	Paths             map[string]string `json:"paths"`
	ElementIDs        map[string]string `json:"element_ids"`
	RefreshIntervalMS int64             `json:"refresh_interval_ms"`
	Theme             string            `json:"theme"`
}

// DashboardWebHandlers serves the dashboard page and its script.
type DashboardWebHandlers struct {
	logger          *zap.Logger
	template        *template.Template
	state           *dashboard.State
	refreshInterval time.Duration
}

func NewDashboardWebHandlers(logger *zap.Logger, state *dashboard.State, refreshInterval time.Duration) *DashboardWebHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	if refreshInterval <= 0 {
		refreshInterval = dashboard.DefaultRefreshInterval
	}
	return &DashboardWebHandlers{
		logger:          logger,
		template:        template.Must(template.New(dashboardTemplateName).Parse(dashboardTemplateHTML)),
		state:           state,
		refreshInterval: refreshInterval,
	}
}

func (handlers *DashboardWebHandlers) RenderDashboard(context *gin.Context) {
	theme := ThemeFromContext(context)

	lastRefresh := ""
	if _, fetchedAt, ok := handlers.state.Stats(); ok {
		lastRefresh = "Updated " + fetchedAt.Format(lastRefreshLayout)
	}
	footerHTML, footerErr := RenderFooterHTML(theme, lastRefresh)
	if footerErr != nil {
		handlers.logger.Warn(logEventRenderDashboardFooter, zap.Error(footerErr))
		footerHTML = template.HTML("")
	}

	data := dashboardTemplateData{
		PageTitle:             dashboardPageTitle,
		Theme:                 string(theme),
		ThemeIcon:             theme.Icon(),
		ScriptPath:            DashboardScriptPath,
		ThemeToggleID:         themeToggleElementID,
		RefreshButtonID:       refreshButtonElementID,
		StatsContainerID:      statsContainerElementID,
		ActivitiesListID:      activitiesListElementID,
		NotificationsID:       notificationsElementID,
		ActivityChartID:       activityChartElementID,
		JobStatusChartID:      jobStatusChartElementID,
		UserModalID:           userModalElementID,
		JobModalID:            jobModalElementID,
		UserSearchID:          userSearchElementID,
		UserSearchButtonID:    userSearchButtonElementID,
		UsersTableID:          render.TargetUsersTable,
		JobsTableID:           render.TargetJobsTable,
		StatusFilterInputName: statusFilterInputName,
		StatusFilterOptions:   statusFilterOptions,
		FooterHTML:            footerHTML,
		ClientConfigElementID: clientConfigElementID,
	}

	clientConfig := dashboardClientConfig{
		Paths: map[string]string{
			"stats":      StatsFragmentPath,
			"activities": ActivitiesFragmentPath,
			"charts":     ChartsPath,
			"users":      UsersFragmentPath,
			"jobs":       JobsFragmentPath,
			"navigate":   NavigatePath,
			"refresh":    RefreshPath,
			"theme":      ThemePath,
			"visibility": VisibilityPath,
		},
		ElementIDs: map[string]string{
			"theme_toggle":     themeToggleElementID,
			"refresh_button":   refreshButtonElementID,
			"stats":            statsContainerElementID,
			"activities":       activitiesListElementID,
			"notifications":    notificationsElementID,
			"activity_chart":   activityChartElementID,
			"job_status_chart": jobStatusChartElementID,
			"user_modal":       userModalElementID,
			"job_modal":        jobModalElementID,
			"user_search":      userSearchElementID,
			"user_search_btn":  userSearchButtonElementID,
			"users_table":      render.TargetUsersTable,
			"jobs_table":       render.TargetJobsTable,
			"status_filter":    statusFilterInputName,
			"last_refresh":     lastRefreshElementID,
			"footer":           footerElementID,
		},
		RefreshIntervalMS: handlers.refreshInterval.Milliseconds(),
		Theme:             string(theme),
	}

	configPayload, marshalErr := json.Marshal(clientConfig)
	if marshalErr != nil {
		handlers.logger.Warn(logEventRenderDashboardConfig, zap.Error(marshalErr))
		configPayload = []byte("{}")
	}
	data.ClientConfigJSON = template.JS(configPayload)

	var buffer bytes.Buffer
	if executeErr := handlers.template.Execute(&buffer, data); executeErr != nil {
		handlers.logger.Error(logEventRenderDashboard, zap.Error(executeErr))
		context.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{jsonKeyError: "render_failed"})
		return
	}

	context.Data(http.StatusOK, dashboardHTMLContentType, buffer.Bytes())
}

func (handlers *DashboardWebHandlers) Script(context *gin.Context) {
	context.Data(http.StatusOK, scriptContentType, dashboardScript)
}

func RedirectToDashboard(context *gin.Context) {
	context.Redirect(http.StatusFound, DashboardPath)
}

func Health(context *gin.Context) {
	context.JSON(http.StatusOK, gin.H{"status": "ok"})
}
