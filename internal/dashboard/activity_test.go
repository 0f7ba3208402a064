package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MarkoPoloResearchLab/botdash/internal/model"
)

func TestActivityIconsAndLabels(testingT *testing.T) {
	testCases := []struct {
		activityType  string
		expectedIcon  string
		expectedLabel string
	}{
		{activityType: "registration", expectedIcon: "fas fa-user-plus", expectedLabel: "New Registration"},
		{activityType: "job_apply", expectedIcon: "fas fa-briefcase", expectedLabel: "Job Application"},
		{activityType: "ai_request", expectedIcon: "fas fa-robot", expectedLabel: "AI Request"},
		{activityType: "job_posted", expectedIcon: "fas fa-plus-circle", expectedLabel: "Job Posted"},
		{activityType: "edit_info", expectedIcon: "fas fa-edit", expectedLabel: "Profile Edit"},
		{activityType: "bot_start", expectedIcon: "fas fa-play-circle", expectedLabel: "Bot Started"},
		{activityType: "error", expectedIcon: "fas fa-exclamation-triangle", expectedLabel: "Error"},
		{activityType: "promotion", expectedIcon: "fas fa-info-circle", expectedLabel: "promotion"},
	}
	for _, testCase := range testCases {
		require.Equal(testingT, testCase.expectedIcon, ActivityIcon(testCase.activityType))
		require.Equal(testingT, testCase.expectedLabel, ActivityLabel(testCase.activityType))
	}
}

func TestTimeAgo(testingT *testing.T) {
	now := time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)
	testCases := []struct {
		elapsed  time.Duration
		expected string
	}{
		{elapsed: 30 * time.Second, expected: "Just now"},
		{elapsed: -time.Minute, expected: "Just now"},
		{elapsed: 5 * time.Minute, expected: "5m ago"},
		{elapsed: 59*time.Minute + 59*time.Second, expected: "59m ago"},
		{elapsed: 3 * time.Hour, expected: "3h ago"},
		{elapsed: 2 * 24 * time.Hour, expected: "2d ago"},
		{elapsed: 29 * 24 * time.Hour, expected: "29d ago"},
		{elapsed: 30 * 24 * time.Hour, expected: "Mar 1, 2024"},
	}
	for _, testCase := range testCases {
		require.Equal(testingT, testCase.expected, TimeAgo(now.Add(-testCase.elapsed), now), testCase.elapsed.String())
	}
}

func TestFormatActivitiesFillsDefaults(testingT *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	activities := []model.Activity{
		{Timestamp: model.Timestamp{Time: now.Add(-2 * time.Hour)}, Type: "job_apply", Description: "bob applied"},
		{Type: "custom"},
	}

	views := FormatActivities(activities, now)
	require.Equal(testingT, []ActivityView{
		{Icon: "fas fa-briefcase", Label: "Job Application", Description: "bob applied", TimeAgo: "2h ago"},
		{Icon: "fas fa-info-circle", Label: "custom", Description: "No description", TimeAgo: ""},
	}, views)
	require.Empty(testingT, FormatActivities(nil, now))
}
