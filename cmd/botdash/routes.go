package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MarkoPoloResearchLab/botdash/internal/httpapi"
)

const (
	corsHeaderContentType = "Content-Type"
	corsHeaderAccept      = "Accept"
	httpMethodGet         = "GET"
	httpMethodOptions     = "OPTIONS"
	httpMethodPost        = "POST"
	corsMaxAge            = 12 * time.Hour
)

var (
	corsAllowedMethods = []string{httpMethodGet, httpMethodPost, httpMethodOptions}
	corsAllowedHeaders = []string{corsHeaderContentType, corsHeaderAccept}
	corsExposedHeaders = []string{corsHeaderContentType}
)

type routeDependencies struct {
	sessions          *httpapi.SessionManager
	dashboardHandlers *httpapi.DashboardWebHandlers
	fragmentHandlers  *httpapi.FragmentHandlers
	allowedOrigins    []string
}

func registerDashboardRoutes(router *gin.Engine, dependencies routeDependencies) {
	router.GET("/", httpapi.RedirectToDashboard)
	router.GET(httpapi.HealthPath, httpapi.Health)
	router.GET(httpapi.MetricsPath, gin.WrapH(promhttp.Handler()))
	router.GET(httpapi.DashboardScriptPath, dependencies.dashboardHandlers.Script)

	dashboardGroup := router.Group(httpapi.DashboardPath)
	if len(dependencies.allowedOrigins) > 0 {
		dashboardGroup.Use(cors.New(cors.Config{
			AllowOrigins:     dependencies.allowedOrigins,
			AllowMethods:     corsAllowedMethods,
			AllowHeaders:     corsAllowedHeaders,
			ExposeHeaders:    corsExposedHeaders,
			AllowCredentials: true,
			MaxAge:           corsMaxAge,
		}))
		dashboardGroup.OPTIONS("/*path", func(context *gin.Context) {
			context.Status(http.StatusNoContent)
		})
	}
	dashboardGroup.Use(dependencies.sessions.Middleware())

	fragments := dependencies.fragmentHandlers
	router.GET(httpapi.DashboardPath, dependencies.sessions.Middleware(), dependencies.dashboardHandlers.RenderDashboard)
	dashboardGroup.GET(relativeTo(httpapi.StatsFragmentPath), fragments.Stats)
	dashboardGroup.GET(relativeTo(httpapi.ActivitiesFragmentPath), fragments.Activities)
	dashboardGroup.GET(relativeTo(httpapi.ChartsPath), fragments.Charts)
	dashboardGroup.GET(relativeTo(httpapi.UsersFragmentPath), fragments.Users)
	dashboardGroup.GET(relativeTo(httpapi.JobsFragmentPath), fragments.Jobs)
	dashboardGroup.GET(relativeTo(httpapi.NavigatePath), fragments.Navigate)
	dashboardGroup.POST(relativeTo(httpapi.RefreshPath), fragments.Refresh)
	dashboardGroup.POST(relativeTo(httpapi.ThemePath), fragments.Theme)
	dashboardGroup.POST(relativeTo(httpapi.VisibilityPath), fragments.Visibility)
}

func relativeTo(path string) string {
	return strings.TrimPrefix(path, httpapi.DashboardPath)
}
