package dashboard

import (
	"sort"

	"github.com/MarkoPoloResearchLab/botdash/internal/model"
)

const (
	ChartActivity  = "activity"
	ChartJobStatus = "jobStatus"

	chartTypeLine     = "line"
	chartTypeDoughnut = "doughnut"

	activityTypeJobApply  = "job_apply"
	activityTypeAIRequest = "ai_request"
)

// Dataset is one series in the Chart.js shape the page script consumes.
type Dataset struct {
	Label           string  `json:"label,omitempty"`
	Data            []int64 `json:"data"`
	BorderColor     string  `json:"borderColor,omitempty"`
	BackgroundColor any     `json:"backgroundColor,omitempty"`
	Fill            bool    `json:"fill,omitempty"`
}

// Chart is a chart definition ready for the browser.
type Chart struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Title    string    `json:"title"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	Palette  Palette   `json:"palette"`
}

// Charts is the chart registry keyed by chart id.
type Charts map[string]Chart

// BuildCharts derives both dashboard charts from analytics, colored for theme.
func BuildCharts(analytics model.Analytics, theme Theme) Charts {
	palette := theme.Palette()
	return Charts{
		ChartActivity:  buildActivityChart(analytics, palette),
		ChartJobStatus: buildJobStatusChart(analytics, palette),
	}
}

func buildActivityChart(analytics model.Analytics, palette Palette) Chart {
	dateSet := make(map[string]struct{})
	registrations := make(map[string]int64)
	applications := make(map[string]int64)
	aiRequests := make(map[string]int64)

	for _, point := range analytics.RegistrationTrend {
		dateSet[point.Date] = struct{}{}
		registrations[point.Date] += point.Count
	}
	for _, activity := range analytics.DailyActivities {
		switch activity.Type {
		case activityTypeJobApply:
			applications[activity.Date] += activity.Count
		case activityTypeAIRequest:
			aiRequests[activity.Date] += activity.Count
		default:
			continue
		}
		dateSet[activity.Date] = struct{}{}
	}

	labels := make([]string, 0, len(dateSet))
	for date := range dateSet {
		labels = append(labels, date)
	}
	sort.Strings(labels)

	series := func(values map[string]int64) []int64 {
		data := make([]int64, len(labels))
		for index, date := range labels {
			data[index] = values[date]
		}
		return data
	}

	return Chart{
		ID:     ChartActivity,
		Type:   chartTypeLine,
		Title:  "Daily Activity Trends",
		Labels: labels,
		Datasets: []Dataset{
			{Label: "Registrations", Data: series(registrations), BorderColor: "#007bff", BackgroundColor: "rgba(0, 123, 255, 0.1)", Fill: true},
			{Label: "Job Applications", Data: series(applications), BorderColor: "#28a745", BackgroundColor: "rgba(40, 167, 69, 0.1)", Fill: true},
			{Label: "AI Requests", Data: series(aiRequests), BorderColor: "#17a2b8", BackgroundColor: "rgba(23, 162, 184, 0.1)", Fill: true},
		},
		Palette: palette,
	}
}

func buildJobStatusChart(analytics model.Analytics, palette Palette) Chart {
	labels := make([]string, 0, len(model.JobStatuses))
	data := make([]int64, 0, len(model.JobStatuses))
	for _, status := range model.JobStatuses {
		labels = append(labels, status.Label())
		data = append(data, analytics.JobStatusDistribution[string(status)])
	}
	return Chart{
		ID:     ChartJobStatus,
		Type:   chartTypeDoughnut,
		Title:  "Job Status Distribution",
		Labels: labels,
		Datasets: []Dataset{
			{Data: data, BorderColor: "#ffffff", BackgroundColor: []string{"#28a745", "#dc3545", "#ffc107"}},
		},
		Palette: palette,
	}
}
