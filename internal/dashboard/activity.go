package dashboard

import (
	"fmt"
	"time"

	"github.com/MarkoPoloResearchLab/botdash/internal/model"
)

const (
	defaultActivityIcon        = "fas fa-info-circle"
	defaultActivityDescription = "No description"
	activityDateLayout         = "Jan 2, 2006"
	recentActivityHorizon      = 30 * 24 * time.Hour
)

var activityIcons = map[string]string{
	"registration": "fas fa-user-plus",
	"job_apply":    "fas fa-briefcase",
	"ai_request":   "fas fa-robot",
	"job_posted":   "fas fa-plus-circle",
	"edit_info":    "fas fa-edit",
	"bot_start":    "fas fa-play-circle",
	"error":        "fas fa-exclamation-triangle",
}

var activityLabels = map[string]string{
	"registration": "New Registration",
	"job_apply":    "Job Application",
	"ai_request":   "AI Request",
	"job_posted":   "Job Posted",
	"edit_info":    "Profile Edit",
	"bot_start":    "Bot Started",
	"error":        "Error",
}

// ActivityView is an activity feed entry prepared for display.
type ActivityView struct {
	Icon        string
	Label       string
	Description string
	TimeAgo     string
}

func ActivityIcon(activityType string) string {
	if icon, ok := activityIcons[activityType]; ok {
		return icon
	}
	return defaultActivityIcon
}

// ActivityLabel returns the human label, or the raw type when unknown.
func ActivityLabel(activityType string) string {
	if label, ok := activityLabels[activityType]; ok {
		return label
	}
	return activityType
}

// TimeAgo renders the age of timestamp relative to now using whole units.
func TimeAgo(timestamp time.Time, now time.Time) string {
	elapsed := now.Sub(timestamp)
	switch {
	case elapsed < time.Minute:
		return "Just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed/time.Minute))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed/time.Hour))
	case elapsed < recentActivityHorizon:
		return fmt.Sprintf("%dd ago", int(elapsed/(24*time.Hour)))
	default:
		return timestamp.Format(activityDateLayout)
	}
}

// FormatActivities prepares the feed in backend order.
func FormatActivities(activities []model.Activity, now time.Time) []ActivityView {
	views := make([]ActivityView, 0, len(activities))
	for _, activity := range activities {
		description := activity.Description
		if description == "" {
			description = defaultActivityDescription
		}
		timeAgo := ""
		if !activity.Timestamp.IsZero() {
			timeAgo = TimeAgo(activity.Timestamp.Time, now)
		}
		views = append(views, ActivityView{
			Icon:        ActivityIcon(activity.Type),
			Label:       ActivityLabel(activity.Type),
			Description: description,
			TimeAgo:     timeAgo,
		})
	}
	return views
}
