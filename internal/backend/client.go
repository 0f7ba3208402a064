package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/botdash/internal/model"
)

const (
	EndpointUsers     = "/api/users"
	EndpointJobs      = "/api/jobs"
	EndpointStats     = "/api/stats"
	EndpointAnalytics = "/api/analytics"

	queryParameterPage  = "page"
	queryParameterLimit = "limit"

	defaultRequestTimeout   = 10 * time.Second
	defaultMaxResponseBytes = 4 * 1024 * 1024
	acceptHeaderJSON        = "application/json"

	logEventFetch       = "backend_fetch"
	logEventFetchFailed = "backend_fetch_failed"
)

var (
	ErrMissingBaseURL = errors.New("backend base url is required")
	ErrInvalidBaseURL = errors.New("backend base url must be absolute http(s)")
)

type errorEnvelope struct {
	Error string `json:"error"`
}

type usersEnvelope struct {
	Users []model.User `json:"users"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Pages int          `json:"pages"`
}

type jobsEnvelope struct {
	Jobs  []model.Job `json:"jobs"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
}

// Client reads the bot backend's dashboard endpoints. It keeps no state
// between calls: every fetch issues exactly one request and nothing is cached.
type Client struct {
	baseURL          *url.URL
	httpClient       *http.Client
	logger           *zap.Logger
	maxResponseBytes int64
}

// NewClient builds a Client for the given backend origin. A nil httpClient
// gets a client with a ten second timeout.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, ErrMissingBaseURL
	}
	parsed, parseErr := url.Parse(trimmed)
	if parseErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, parseErr)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""

	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:          parsed,
		httpClient:       httpClient,
		logger:           logger,
		maxResponseBytes: defaultMaxResponseBytes,
	}, nil
}

// FetchUsers loads one page of users, optionally narrowed by a username search.
func (client *Client) FetchUsers(ctx context.Context, pageNumber int, search string) (model.UserPage, error) {
	request := model.NewPageRequest(model.EntityKindUser, pageNumber, search)
	var envelope usersEnvelope
	if fetchErr := client.getJSON(ctx, EndpointUsers, PageQuery(request), &envelope); fetchErr != nil {
		return model.UserPage{}, fetchErr
	}
	return model.NewPageResponse(envelope.Users, envelope.Total, envelope.Page, envelope.Pages), nil
}

// FetchJobs loads one page of jobs, optionally narrowed by status.
func (client *Client) FetchJobs(ctx context.Context, pageNumber int, status string) (model.JobPage, error) {
	request := model.NewPageRequest(model.EntityKindJob, pageNumber, status)
	var envelope jobsEnvelope
	if fetchErr := client.getJSON(ctx, EndpointJobs, PageQuery(request), &envelope); fetchErr != nil {
		return model.JobPage{}, fetchErr
	}
	return model.NewPageResponse(envelope.Jobs, envelope.Total, envelope.Page, envelope.Pages), nil
}

// FetchStats loads the current statistics snapshot.
func (client *Client) FetchStats(ctx context.Context) (model.StatsSnapshot, error) {
	var snapshot model.StatsSnapshot
	if fetchErr := client.getJSON(ctx, EndpointStats, nil, &snapshot); fetchErr != nil {
		return model.StatsSnapshot{}, fetchErr
	}
	return snapshot, nil
}

// FetchAnalytics loads chart series.
func (client *Client) FetchAnalytics(ctx context.Context) (model.Analytics, error) {
	var analytics model.Analytics
	if fetchErr := client.getJSON(ctx, EndpointAnalytics, nil, &analytics); fetchErr != nil {
		return model.Analytics{}, fetchErr
	}
	return analytics, nil
}

// PageQuery encodes a page request. An empty filter is omitted so that it is
// indistinguishable from no filter on the wire.
func PageQuery(request model.PageRequest) url.Values {
	query := url.Values{}
	query.Set(queryParameterPage, strconv.Itoa(request.PageNumber))
	query.Set(queryParameterLimit, strconv.Itoa(model.PageSize))
	if request.HasFilter() {
		if parameter := request.Kind.FilterParameter(); parameter != "" {
			query.Set(parameter, request.Filter)
		}
	}
	return query
}

func (client *Client) endpointURL(endpoint string, query url.Values) string {
	target := client.baseURL.JoinPath(endpoint)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	return target.String()
}

func (client *Client) getJSON(ctx context.Context, endpoint string, query url.Values, target any) error {
	startedAt := time.Now()
	requestURL := client.endpointURL(endpoint, query)

	request, requestErr := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if requestErr != nil {
		return client.fail(endpoint, startedAt, &NetworkError{Endpoint: endpoint, Err: requestErr})
	}
	request.Header.Set("Accept", acceptHeaderJSON)

	response, responseErr := client.httpClient.Do(request)
	if responseErr != nil {
		return client.fail(endpoint, startedAt, &NetworkError{Endpoint: endpoint, Err: responseErr})
	}
	defer func() {
		_ = response.Body.Close()
	}()

	body, readErr := io.ReadAll(io.LimitReader(response.Body, client.maxResponseBytes))
	if readErr != nil {
		return client.fail(endpoint, startedAt, &NetworkError{Endpoint: endpoint, Err: readErr})
	}

	var envelope errorEnvelope
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
		return client.fail(endpoint, startedAt, &BackendError{Endpoint: endpoint, Message: envelope.Error})
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		statusErr := fmt.Errorf("unexpected status %d", response.StatusCode)
		return client.fail(endpoint, startedAt, &NetworkError{Endpoint: endpoint, Err: statusErr})
	}

	if decodeErr := json.Unmarshal(body, target); decodeErr != nil {
		return client.fail(endpoint, startedAt, &NetworkError{Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", decodeErr)})
	}

	observeRequest(endpoint, outcomeSuccess, startedAt)
	client.logger.Debug(
		logEventFetch,
		zap.String("endpoint", endpoint),
		zap.String("query", query.Encode()),
		zap.Duration("dur", time.Since(startedAt)),
	)
	return nil
}

func (client *Client) fail(endpoint string, startedAt time.Time, fetchErr error) error {
	outcome := outcomeNetworkError
	var backendError *BackendError
	if errors.As(fetchErr, &backendError) {
		outcome = outcomeBackendError
	}
	observeRequest(endpoint, outcome, startedAt)
	client.logger.Warn(
		logEventFetchFailed,
		zap.String("endpoint", endpoint),
		zap.String("outcome", outcome),
		zap.Error(fetchErr),
	)
	return fetchErr
}
