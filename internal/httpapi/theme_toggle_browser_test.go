package httpapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/require"

	"github.com/MarkoPoloResearchLab/botdash/internal/httpapi"
)

const (
	integrationTestTimeout               = 35 * time.Second
	headlessBrowserSkipReason            = "chromedp headless browser not available"
	headlessBrowserLocateErrorMessage    = "locate headless browser executable"
	headlessBrowserEnvironmentChromedp   = "CHROMEDP_BROWSER"
	headlessBrowserEnvironmentChromePath = "CHROME_PATH"
	themeToggleSelector                  = "#theme-toggle"
	themeToggleIconSelector              = "#theme-toggle i"
	darkDocumentSelector                 = `html[data-theme="dark"]`
	lightDocumentSelector                = `html[data-theme="light"]`
)

var headlessBrowserExecutableNames = []string{
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"chrome",
	"headless-shell",
}

var errHeadlessBrowserNotFound = errors.New("headless browser executable not found")

func locateHeadlessBrowserExecutable() (string, error) {
	environmentVariableNames := []string{
		headlessBrowserEnvironmentChromedp,
		headlessBrowserEnvironmentChromePath,
	}

	for _, environmentVariableName := range environmentVariableNames {
		environmentValue := strings.TrimSpace(os.Getenv(environmentVariableName))
		if environmentValue == "" {
			continue
		}
		return environmentValue, nil
	}

	for _, executableName := range headlessBrowserExecutableNames {
		executablePath, lookupErr := exec.LookPath(executableName)
		if lookupErr == nil {
			return executablePath, nil
		}
	}

	return "", fmt.Errorf("%s: %w", headlessBrowserLocateErrorMessage, errHeadlessBrowserNotFound)
}

func buildHeadlessBrowserContext(testingT *testing.T) context.Context {
	testingT.Helper()

	browserExecutablePath, locateBrowserErr := locateHeadlessBrowserExecutable()
	if locateBrowserErr != nil {
		testingT.Skipf("%s: %v", headlessBrowserSkipReason, locateBrowserErr)
	}

	headlessAllocatorOptions := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(browserExecutablePath),
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocatorContext, allocatorCancel := chromedp.NewExecAllocator(context.Background(), headlessAllocatorOptions...)
	testingT.Cleanup(allocatorCancel)

	browserContext, browserCancel := chromedp.NewContext(allocatorContext)
	testingT.Cleanup(browserCancel)

	contextWithTimeout, timeoutCancel := context.WithTimeout(browserContext, integrationTestTimeout)
	testingT.Cleanup(timeoutCancel)

	return contextWithTimeout
}

func TestThemeToggleSwitchesAndSurvivesReload(testingT *testing.T) {
	harness := newHandlerHarness(testingT)
	server := httptest.NewServer(harness.router)
	defer server.Close()

	browserContext := buildHeadlessBrowserContext(testingT)
	dashboardURL := server.URL + httpapi.DashboardPath

	var darkIconClass string
	runErr := chromedp.Run(browserContext,
		chromedp.Navigate(dashboardURL),
		chromedp.WaitVisible(themeToggleSelector, chromedp.ByQuery),
		chromedp.WaitReady(lightDocumentSelector, chromedp.ByQuery),
		chromedp.Click(themeToggleSelector, chromedp.ByQuery),
		chromedp.WaitReady(darkDocumentSelector, chromedp.ByQuery),
		chromedp.AttributeValue(themeToggleIconSelector, "class", &darkIconClass, nil, chromedp.ByQuery),
	)
	if runErr != nil && errors.Is(runErr, exec.ErrNotFound) {
		testingT.Skipf("%s: %v", headlessBrowserSkipReason, runErr)
	}
	require.NoError(testingT, runErr)
	require.Equal(testingT, "fas fa-sun", darkIconClass)

	var reloadedTheme string
	var themeAttributePresent bool
	require.NoError(testingT, chromedp.Run(browserContext,
		chromedp.Navigate(dashboardURL),
		chromedp.WaitVisible(themeToggleSelector, chromedp.ByQuery),
		chromedp.AttributeValue("html", "data-theme", &reloadedTheme, &themeAttributePresent, chromedp.ByQuery),
	))
	require.True(testingT, themeAttributePresent)
	require.Equal(testingT, "dark", reloadedTheme)
}
