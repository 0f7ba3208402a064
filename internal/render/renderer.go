package render

import (
	"bytes"
	"embed"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/text/language"

	"github.com/MarkoPoloResearchLab/botdash/internal/dashboard"
	"github.com/MarkoPoloResearchLab/botdash/internal/model"
	"github.com/MarkoPoloResearchLab/botdash/internal/pagination"
)

// NavigatePath is the endpoint every pagination link points to.
const NavigatePath = "/dashboard/navigate"

const (
	TargetUsersTable = "users-table"
	TargetJobsTable  = "jobs-table"

	templateStats        = "stats"
	templateActivities   = "activities"
	templateUsers        = "users"
	templateJobs         = "jobs"
	templatePagination   = "pagination"
	templateNotification = "notification"

	previousLabel = "Previous"
	nextLabel     = "Next"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var fragmentTemplates = template.Must(template.ParseFS(templateFiles, "templates/*.tmpl"))

type statCard struct {
	ID    string
	Label string
	Value string
	Icon  string
	Color string
}

type environmentEntry struct {
	ID    string
	Label string
	Value string
	Class string
}

type statsData struct {
	Cards        []statCard
	StatusText   string
	StatusClass  string
	Uptime       string
	Environment  []environmentEntry
	LastActivity string
	TopUser      string
}

type pageLink struct {
	Label    string
	URL      string
	Active   bool
	Disabled bool
}

type paginationData struct {
	View   string
	Target string
	Links  []pageLink
}

type tableFooter struct {
	Shown      string
	Total      string
	Noun       string
	Pagination paginationData
}

type userRow struct {
	Username  string
	Points    string
	Badges    string
	Referrals string
	Applies   string
	Joined    string
}

type usersData struct {
	Rows   []userRow
	Footer tableFooter
}

type jobRow struct {
	ID          string
	Title       string
	Fee         string
	StatusColor string
	StatusText  string
	Applicants  string
	Created     string
}

type jobsData struct {
	Rows   []jobRow
	Footer tableFooter
}

// Renderer builds the HTML fragments swapped into the dashboard page.
type Renderer struct {
	templates *template.Template
	numbers   NumberFormatter
	clock     func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{
		templates: fragmentTemplates,
		numbers:   NewNumberFormatter(language.English),
		clock:     time.Now,
	}
}

func (renderer *Renderer) StatCards(snapshot model.StatsSnapshot) (template.HTML, error) {
	data := statsData{
		Cards: []statCard{
			{ID: "total-users", Label: "Total Users", Value: renderer.numbers.Count(snapshot.TotalUsers), Icon: "fas fa-users", Color: "primary"},
			{ID: "active-jobs", Label: "Active Jobs", Value: renderer.numbers.Count(snapshot.ActiveJobs), Icon: "fas fa-briefcase", Color: "success"},
			{ID: "ai-requests", Label: "AI Requests", Value: renderer.numbers.Count(snapshot.AIRequests), Icon: "fas fa-robot", Color: "info"},
			{ID: "total-points", Label: "Total Points", Value: renderer.numbers.Count(snapshot.TotalPoints), Icon: "fas fa-star", Color: "warning"},
		},
		StatusText:  "Offline",
		StatusClass: "text-danger",
		Uptime:      orUnknown(snapshot.Uptime),
		Environment: []environmentEntry{
			{ID: "bot-token-status", Label: "Bot token", Value: orUnknown(snapshot.Environment.BotToken), Class: EnvironmentClass(snapshot.Environment.BotToken)},
			{ID: "gemini-api-status", Label: "Gemini API", Value: orUnknown(snapshot.Environment.GeminiAPI), Class: EnvironmentClass(snapshot.Environment.GeminiAPI)},
			{ID: "owner-id-status", Label: "Owner ID", Value: orUnknown(snapshot.Environment.OwnerID), Class: EnvironmentClass(snapshot.Environment.OwnerID)},
		},
		LastActivity: orUnknown(snapshot.LastActivity),
	}
	if snapshot.IsOnline() {
		data.StatusText = "Online"
		data.StatusClass = "text-success"
	}
	if snapshot.TopUser.Username != "" {
		data.TopUser = snapshot.TopUser.Username + " (" + renderer.numbers.Count(snapshot.TopUser.Points) + ")"
	}
	return renderer.execute(templateStats, data)
}

func (renderer *Renderer) Activities(activities []model.Activity) (template.HTML, error) {
	return renderer.execute(templateActivities, dashboard.FormatActivities(activities, renderer.clock()))
}

// UsersTable renders one users page plus its footer. search is carried into
// the pagination links.
func (renderer *Renderer) UsersTable(page model.UserPage, search string) (template.HTML, error) {
	rows := make([]userRow, 0, len(page.Items))
	for _, user := range page.Items {
		rows = append(rows, userRow{
			Username:  user.Username,
			Points:    renderer.numbers.Count(user.Points),
			Badges:    BadgeList(user.Badges),
			Referrals: renderer.numbers.Count(user.Referrals),
			Applies:   renderer.numbers.Count(user.TotalApplies),
			Joined:    FormatDate(user.CreatedAt),
		})
	}
	view := pagination.UsersView(search)
	return renderer.execute(templateUsers, usersData{
		Rows:   rows,
		Footer: renderer.footer(len(page.Items), page.TotalCount, "users", view, pagination.ComputeWindow(page.CurrentPage, page.TotalPages)),
	})
}

// JobsTable renders one jobs page plus its footer. status is carried into
// the pagination links.
func (renderer *Renderer) JobsTable(page model.JobPage, status string) (template.HTML, error) {
	rows := make([]jobRow, 0, len(page.Items))
	for _, job := range page.Items {
		rows = append(rows, jobRow{
			ID:          string(job.ID),
			Title:       TruncateTitle(job.Title),
			Fee:         string(job.Fee),
			StatusColor: StatusColor(job.Status),
			StatusText:  StatusText(job.Status),
			Applicants:  renderer.numbers.Count(job.ApplicantCount),
			Created:     FormatDate(job.CreatedAt),
		})
	}
	view := pagination.JobsView(status)
	return renderer.execute(templateJobs, jobsData{
		Rows:   rows,
		Footer: renderer.footer(len(page.Items), page.TotalCount, "jobs", view, pagination.ComputeWindow(page.CurrentPage, page.TotalPages)),
	})
}

// Outcome renders the table for a navigation result. Idle and stale outcomes
// render nothing.
func (renderer *Renderer) Outcome(outcome pagination.Outcome) (template.HTML, error) {
	switch outcome.Kind {
	case pagination.OutcomeUsers:
		return renderer.UsersTable(outcome.Users, outcome.View.Filter)
	case pagination.OutcomeJobs:
		return renderer.JobsTable(outcome.Jobs, outcome.View.Filter)
	default:
		return "", nil
	}
}

// Pagination renders only the page links for a view.
func (renderer *Renderer) Pagination(view pagination.ActiveView, window pagination.Window) (template.HTML, error) {
	return renderer.execute(templatePagination, paginationFor(view, window))
}

func (renderer *Renderer) Notification(notification dashboard.Notification) (template.HTML, error) {
	return renderer.execute(templateNotification, notification)
}

func (renderer *Renderer) footer(shown int, total int, noun string, view pagination.ActiveView, window pagination.Window) tableFooter {
	return tableFooter{
		Shown:      renderer.numbers.Count(int64(shown)),
		Total:      renderer.numbers.Count(int64(total)),
		Noun:       noun,
		Pagination: paginationFor(view, window),
	}
}

func (renderer *Renderer) execute(name string, data any) (template.HTML, error) {
	var buffer bytes.Buffer
	if err := renderer.templates.ExecuteTemplate(&buffer, name, data); err != nil {
		return "", err
	}
	return template.HTML(buffer.String()), nil
}

func paginationFor(view pagination.ActiveView, window pagination.Window) paginationData {
	data := paginationData{View: string(view.Kind), Target: targetFor(view)}
	if !window.Visible() {
		return data
	}
	links := make([]pageLink, 0, len(window.Pages)+2)
	links = append(links, pageLink{Label: previousLabel, URL: NavigateURL(view, window.Previous), Disabled: !window.HasPrevious})
	for _, page := range window.Pages {
		links = append(links, pageLink{Label: strconv.Itoa(page), URL: NavigateURL(view, page), Active: page == window.Current})
	}
	links = append(links, pageLink{Label: nextLabel, URL: NavigateURL(view, window.Next), Disabled: !window.HasNext})
	for index := range links {
		if links[index].Disabled {
			links[index].URL = ""
		}
	}
	data.Links = links
	return data
}

// NavigateURL encodes the explicit view, its filter and the page number.
func NavigateURL(view pagination.ActiveView, page int) string {
	query := url.Values{}
	query.Set("view", string(view.Kind))
	if view.Filter != "" {
		query.Set("filter", view.Filter)
	}
	query.Set("page", strconv.Itoa(page))
	return NavigatePath + "?" + query.Encode()
}

func targetFor(view pagination.ActiveView) string {
	switch view.Kind {
	case pagination.ViewKindUsers:
		return TargetUsersTable
	case pagination.ViewKindJobs:
		return TargetJobsTable
	default:
		return ""
	}
}
