package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/botdash/internal/backend"
	"github.com/MarkoPoloResearchLab/botdash/internal/dashboard"
	"github.com/MarkoPoloResearchLab/botdash/internal/httpapi"
	"github.com/MarkoPoloResearchLab/botdash/internal/pagination"
	"github.com/MarkoPoloResearchLab/botdash/internal/render"
)

const (
	serveCommandUse              = "serve"
	serveCommandShort            = "Run the dashboard HTTP server"
	logEventListening            = "listening"
	logEventShuttingDown         = "shutting_down"
	logEventSessionSecretMissing = "session_secret_generated"
	logFieldAddress              = "addr"
	loggerContextBackendClient   = "backend_client"
	loggerContextServer          = "server"
	readHeaderTimeoutSeconds     = 5
	shutdownTimeout              = 10 * time.Second
	generatedSessionSecretLength = 32
	notificationCapacity         = 20
)

// dashboardServer is everything serve wires together around one backend.
type dashboardServer struct {
	router    *gin.Engine
	refresher *dashboard.Refresher
}

func (application *DashboardApplication) serveCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   serveCommandUse,
		Short: serveCommandShort,
		RunE:  application.runServe,
	}

	application.configurationLoader.SetDefault(environmentKeyApplicationAddress, defaultApplicationAddress)
	application.configurationLoader.SetDefault(environmentKeyRefreshInterval, dashboard.DefaultRefreshInterval)
	application.configurationLoader.SetDefault(environmentKeySessionSecret, "")
	application.configurationLoader.SetDefault(environmentKeyAllowedOrigins, "")
	application.configurationLoader.SetDefault(environmentKeySecureCookies, false)

	commandFlags := command.Flags()
	commandFlags.String(flagNameApplicationAddress, defaultApplicationAddress, flagUsageApplicationAddress)
	commandFlags.Duration(flagNameRefreshInterval, dashboard.DefaultRefreshInterval, flagUsageRefreshInterval)
	commandFlags.String(flagNameSessionSecret, "", flagUsageSessionSecret)
	commandFlags.String(flagNameAllowedOrigins, "", flagUsageAllowedOrigins)
	commandFlags.Bool(flagNameSecureCookies, false, flagUsageSecureCookies)

	if bindErr := application.bindFlags(commandFlags, serveFlagBindings); bindErr != nil {
		return nil, bindErr
	}
	return command, nil
}

func (application *DashboardApplication) runServe(command *cobra.Command, arguments []string) error {
	if argumentsErr := ensureNoArguments(arguments); argumentsErr != nil {
		return argumentsErr
	}

	serverConfig := application.loadConfiguration()
	if validationErr := application.ensureRequiredConfiguration(serverConfig); validationErr != nil {
		return validationErr
	}

	logger, loggerErr := application.buildLogger(serverConfig.LogLevel)
	if loggerErr != nil {
		return loggerErr
	}
	defer syncLogger(logger)

	server, buildErr := buildDashboardServer(serverConfig, logger)
	if buildErr != nil {
		logger.Error(loggerContextBackendClient, zap.Error(buildErr))
		return buildErr
	}

	ctx, stop := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.refresher.Bind(ctx)
	defer server.refresher.Stop()

	httpServer := &http.Server{
		Addr:              serverConfig.ApplicationAddress,
		Handler:           server.router,
		ReadHeaderTimeout: readHeaderTimeoutSeconds * time.Second,
	}
	return runHTTPServer(ctx, httpServer, logger)
}

func buildDashboardServer(serverConfig DashboardConfig, logger *zap.Logger) (*dashboardServer, error) {
	backendClient, clientErr := backend.NewClient(serverConfig.BackendBaseURL, &http.Client{Timeout: serverConfig.RequestTimeout}, logger)
	if clientErr != nil {
		return nil, clientErr
	}

	sessionSecret := []byte(serverConfig.SessionSecret)
	if len(sessionSecret) == 0 {
		sessionSecret = securecookie.GenerateRandomKey(generatedSessionSecretLength)
		if sessionSecret == nil {
			return nil, errors.New("generate session secret")
		}
		logger.Warn(logEventSessionSecretMissing)
	}

	refreshInterval := defaultRefreshInterval(serverConfig.RefreshInterval)
	state := dashboard.NewState(dashboard.NewNotifier(logger, notificationCapacity))
	loader := dashboard.NewLoader(backendClient, state, logger)
	controller := pagination.NewController(backendClient, logger)
	refresher := dashboard.NewRefresher(loader, controller, refreshInterval, logger)
	sessionManager := httpapi.NewSessionManager(logger, sessionSecret, serverConfig.SecureCookies)

	fragmentHandlers := httpapi.NewFragmentHandlers(httpapi.FragmentDependencies{
		Logger:    logger,
		State:     state,
		Loader:    loader,
		Navigator: controller,
		Tracker:   refresher,
		Renderer:  render.NewRenderer(),
		Sessions:  sessionManager,
	})
	dashboardHandlers := httpapi.NewDashboardWebHandlers(logger, state, refreshInterval)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpapi.RequestLogger(logger))
	registerDashboardRoutes(router, routeDependencies{
		sessions:          sessionManager,
		dashboardHandlers: dashboardHandlers,
		fragmentHandlers:  fragmentHandlers,
		allowedOrigins:    serverConfig.AllowedOrigins,
	})

	return &dashboardServer{router: router, refresher: refresher}, nil
}

func runHTTPServer(ctx context.Context, httpServer *http.Server, logger *zap.Logger) error {
	serveErrors := make(chan error, 1)
	go func() {
		logger.Info(logEventListening, zap.String(logFieldAddress, httpServer.Addr))
		serveErrors <- httpServer.ListenAndServe()
	}()

	select {
	case serveErr := <-serveErrors:
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error(loggerContextServer, zap.Error(serveErr))
			return serveErr
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(logEventShuttingDown)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}
	return nil
}
