package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MarkoPoloResearchLab/botdash/internal/dashboard"
)

const (
	commandUseName                   = "botdash"
	commandShortDescription          = "Dashboard console for the job-board bot"
	commandLongDescription           = "Serve the bot dashboard or query the bot backend's users, jobs and statistics from the terminal"
	missingConfigurationMessage      = "missing required configuration"
	loggerCreationErrorMessage       = "logger"
	unexpectedArgumentsMessage       = "unexpected command arguments"
	commandInitializationFailure     = "failed to configure command"
	flagNotDefinedMessage            = "flag %s not defined"
	environmentConfigurationError    = "failed to apply environment configuration"
	environmentFileError             = "failed to load environment file"
	flagNameBackendURL               = "backend-url"
	flagNameRequestTimeout           = "request-timeout"
	flagNameLogLevel                 = "log-level"
	flagNameEnvironmentFile          = "env-file"
	flagNameApplicationAddress       = "app-addr"
	flagNameRefreshInterval          = "refresh-interval"
	flagNameSessionSecret            = "session-secret"
	flagNameAllowedOrigins           = "allowed-origins"
	flagNameSecureCookies            = "secure-cookies"
	flagUsageBackendURL              = "base URL of the bot backend, e.g. http://localhost:5000"
	flagUsageRequestTimeout          = "timeout for each backend request"
	flagUsageLogLevel                = "log level (debug, info, warn, error)"
	flagUsageEnvironmentFile         = "optional .env file loaded before reading the environment"
	flagUsageApplicationAddress      = "address for the HTTP server to listen on"
	flagUsageRefreshInterval         = "how often visible dashboards reload statistics"
	flagUsageSessionSecret           = "secret used to sign session cookies"
	flagUsageAllowedOrigins          = "comma separated origins allowed to call dashboard endpoints"
	flagUsageSecureCookies           = "mark session cookies Secure"
	environmentKeyBackendURL         = "BACKEND_BASE_URL"
	environmentKeyRequestTimeout     = "REQUEST_TIMEOUT"
	environmentKeyLogLevel           = "LOG_LEVEL"
	environmentKeyApplicationAddress = "APP_ADDR"
	environmentKeyRefreshInterval    = "REFRESH_INTERVAL"
	environmentKeySessionSecret      = "SESSION_SECRET"
	environmentKeyAllowedOrigins     = "ALLOWED_ORIGINS"
	environmentKeySecureCookies      = "SECURE_COOKIES"
	defaultApplicationAddress        = ":8080"
	defaultRequestTimeout            = 10 * time.Second
	defaultLogLevel                  = "info"
	allowedOriginsSeparator          = ","
)

type flagBinding struct {
	environmentKey string
	flagName       string
}

var (
	rootFlagBindings = []flagBinding{
		{environmentKey: environmentKeyBackendURL, flagName: flagNameBackendURL},
		{environmentKey: environmentKeyRequestTimeout, flagName: flagNameRequestTimeout},
		{environmentKey: environmentKeyLogLevel, flagName: flagNameLogLevel},
	}
	serveFlagBindings = []flagBinding{
		{environmentKey: environmentKeyApplicationAddress, flagName: flagNameApplicationAddress},
		{environmentKey: environmentKeyRefreshInterval, flagName: flagNameRefreshInterval},
		{environmentKey: environmentKeySessionSecret, flagName: flagNameSessionSecret},
		{environmentKey: environmentKeyAllowedOrigins, flagName: flagNameAllowedOrigins},
		{environmentKey: environmentKeySecureCookies, flagName: flagNameSecureCookies},
	}
)

// DashboardConfig captures everything the commands read from flags and the
// environment.
type DashboardConfig struct {
	BackendBaseURL     string
	RequestTimeout     time.Duration
	LogLevel           string
	ApplicationAddress string
	RefreshInterval    time.Duration
	SessionSecret      string
	AllowedOrigins     []string
	SecureCookies      bool
}

// LoggerFactory builds the logger a command runs with.
type LoggerFactory func(level string) (*zap.Logger, error)

// DashboardApplication constructs and executes the botdash commands.
type DashboardApplication struct {
	configurationLoader *viper.Viper
	loggerFactory       LoggerFactory
}

// NewDashboardApplication creates a DashboardApplication with default dependencies.
func NewDashboardApplication() *DashboardApplication {
	return &DashboardApplication{
		configurationLoader: viper.New(),
		loggerFactory:       newProductionLogger,
	}
}

// WithLoggerFactory overrides how command loggers are built.
func (application *DashboardApplication) WithLoggerFactory(loggerFactory LoggerFactory) *DashboardApplication {
	application.loggerFactory = loggerFactory
	return application
}

// Command builds the Cobra command tree.
func (application *DashboardApplication) Command() (*cobra.Command, error) {
	rootCommand := &cobra.Command{
		Use:               commandUseName,
		Short:             commandShortDescription,
		Long:              commandLongDescription,
		PersistentPreRunE: application.prepareEnvironment,
	}

	if configurationErr := application.configureRootCommand(rootCommand); configurationErr != nil {
		return nil, configurationErr
	}

	serveCommand, serveErr := application.serveCommand()
	if serveErr != nil {
		return nil, serveErr
	}
	rootCommand.AddCommand(serveCommand, application.usersCommand(), application.jobsCommand(), application.statsCommand())

	return rootCommand, nil
}

func (application *DashboardApplication) configureRootCommand(command *cobra.Command) error {
	application.configurationLoader.SetDefault(environmentKeyBackendURL, "")
	application.configurationLoader.SetDefault(environmentKeyRequestTimeout, defaultRequestTimeout)
	application.configurationLoader.SetDefault(environmentKeyLogLevel, defaultLogLevel)
	application.configurationLoader.AutomaticEnv()

	persistentFlags := command.PersistentFlags()
	persistentFlags.String(flagNameBackendURL, "", flagUsageBackendURL)
	persistentFlags.Duration(flagNameRequestTimeout, defaultRequestTimeout, flagUsageRequestTimeout)
	persistentFlags.String(flagNameLogLevel, defaultLogLevel, flagUsageLogLevel)
	persistentFlags.String(flagNameEnvironmentFile, "", flagUsageEnvironmentFile)

	return application.bindFlags(persistentFlags, rootFlagBindings)
}

func (application *DashboardApplication) bindFlags(flagSet *pflag.FlagSet, bindings []flagBinding) error {
	for _, binding := range bindings {
		if bindErr := application.bindFlag(flagSet, binding.environmentKey, binding.flagName); bindErr != nil {
			return bindErr
		}
	}
	return nil
}

func (application *DashboardApplication) bindFlag(flagSet *pflag.FlagSet, environmentKey string, flagName string) error {
	flag := flagSet.Lookup(flagName)
	if flag == nil {
		return fmt.Errorf(flagNotDefinedMessage, flagName)
	}

	if bindErr := application.configurationLoader.BindPFlag(environmentKey, flag); bindErr != nil {
		return bindErr
	}

	return nil
}

// prepareEnvironment loads the optional env file and copies environment
// values into flags the user did not set, so malformed values fail before
// any work starts.
func (application *DashboardApplication) prepareEnvironment(command *cobra.Command, arguments []string) error {
	commandFlags := command.Flags()

	environmentFile, _ := commandFlags.GetString(flagNameEnvironmentFile)
	if strings.TrimSpace(environmentFile) != "" {
		if loadErr := godotenv.Load(environmentFile); loadErr != nil {
			return fmt.Errorf("%s: %w", environmentFileError, loadErr)
		}
	}

	for _, bindings := range [][]flagBinding{rootFlagBindings, serveFlagBindings} {
		for _, binding := range bindings {
			if environmentErr := application.applyEnvironmentConfiguration(commandFlags, binding.environmentKey, binding.flagName); environmentErr != nil {
				return environmentErr
			}
		}
	}
	return nil
}

func (application *DashboardApplication) applyEnvironmentConfiguration(flagSet *pflag.FlagSet, environmentKey string, flagName string) error {
	flag := flagSet.Lookup(flagName)
	if flag == nil || flag.Changed {
		return nil
	}

	environmentValue, environmentFound := os.LookupEnv(environmentKey)
	if !environmentFound {
		return nil
	}

	if setErr := flagSet.Set(flagName, environmentValue); setErr != nil {
		return fmt.Errorf("%s: %w", environmentConfigurationError, setErr)
	}

	return nil
}

func (application *DashboardApplication) loadConfiguration() DashboardConfig {
	loader := application.configurationLoader
	return DashboardConfig{
		BackendBaseURL:     strings.TrimSpace(loader.GetString(environmentKeyBackendURL)),
		RequestTimeout:     loader.GetDuration(environmentKeyRequestTimeout),
		LogLevel:           strings.TrimSpace(loader.GetString(environmentKeyLogLevel)),
		ApplicationAddress: strings.TrimSpace(loader.GetString(environmentKeyApplicationAddress)),
		RefreshInterval:    loader.GetDuration(environmentKeyRefreshInterval),
		SessionSecret:      loader.GetString(environmentKeySessionSecret),
		AllowedOrigins:     splitOrigins(loader.GetString(environmentKeyAllowedOrigins)),
		SecureCookies:      loader.GetBool(environmentKeySecureCookies),
	}
}

func (application *DashboardApplication) ensureRequiredConfiguration(configuration DashboardConfig) error {
	var missingParameters []string

	if configuration.BackendBaseURL == "" {
		missingParameters = append(missingParameters, flagNameBackendURL)
	}

	if len(missingParameters) == 0 {
		return nil
	}

	return fmt.Errorf("%s: %s", missingConfigurationMessage, strings.Join(missingParameters, ", "))
}

func ensureNoArguments(arguments []string) error {
	if len(arguments) > 0 {
		return fmt.Errorf("%s: %s", unexpectedArgumentsMessage, strings.Join(arguments, " "))
	}
	return nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, allowedOriginsSeparator) {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func newProductionLogger(level string) (*zap.Logger, error) {
	configuration := zap.NewProductionConfig()
	if strings.TrimSpace(level) != "" {
		parsedLevel, parseErr := zapcore.ParseLevel(level)
		if parseErr != nil {
			return nil, parseErr
		}
		configuration.Level = zap.NewAtomicLevelAt(parsedLevel)
	}
	return configuration.Build()
}

func (application *DashboardApplication) buildLogger(level string) (*zap.Logger, error) {
	logger, loggerErr := application.loggerFactory(level)
	if loggerErr != nil {
		return nil, fmt.Errorf("%s: %w", loggerCreationErrorMessage, loggerErr)
	}
	return logger, nil
}

func syncLogger(logger *zap.Logger) {
	_ = logger.Sync()
}

func defaultRefreshInterval(interval time.Duration) time.Duration {
	if interval <= 0 {
		return dashboard.DefaultRefreshInterval
	}
	return interval
}

func main() {
	application := NewDashboardApplication()
	rootCommand, commandErr := application.Command()
	if commandErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", commandInitializationFailure, commandErr)
		os.Exit(1)
	}

	if executeErr := rootCommand.Execute(); executeErr != nil {
		os.Exit(1)
	}
}
