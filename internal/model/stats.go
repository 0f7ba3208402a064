package model

// Bot status values reported by the stats endpoint.
const (
	BotStatusOnline  = "online"
	BotStatusOffline = "offline"
)

// EnvironmentStatus mirrors the configuration checks reported by the backend.
// Values are display strings such as "✅ Configured".
type EnvironmentStatus struct {
	BotToken  string `json:"bot_token"`
	GeminiAPI string `json:"gemini_api"`
	OwnerID   string `json:"owner_id"`
}

// TopUser is the highest scoring user at snapshot time.
type TopUser struct {
	Username string `json:"username"`
	Points   int64  `json:"points"`
}

// Activity is one entry of the recent activity feed.
type Activity struct {
	Timestamp   Timestamp `json:"timestamp"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	UserID      Text      `json:"user_id"`
}

// StatsSnapshot is the payload of the backend's stats endpoint.
type StatsSnapshot struct {
	BotStatus        string            `json:"bot_status"`
	Uptime           string            `json:"uptime"`
	UptimeSeconds    float64           `json:"uptime_seconds"`
	TotalUsers       int64             `json:"total_users"`
	TotalJobs        int64             `json:"total_jobs"`
	ActiveJobs       int64             `json:"active_jobs"`
	ClosedJobs       int64             `json:"closed_jobs"`
	PaidJobs         int64             `json:"paid_jobs"`
	TotalPoints      int64             `json:"total_points"`
	TotalPromotions  int64             `json:"total_promotions"`
	WeeklyPromotions int64             `json:"weekly_promotions"`
	TotalMessages    int64             `json:"total_messages"`
	AIRequests       int64             `json:"ai_requests"`
	Registrations    int64             `json:"registrations"`
	JobApplications  int64             `json:"job_applications"`
	Errors           int64             `json:"errors"`
	AvgPointsPerUser float64           `json:"avg_points_per_user"`
	LastActivity     string            `json:"last_activity"`
	Environment      EnvironmentStatus `json:"environment_vars"`
	TopUser          TopUser           `json:"top_user"`
	RecentActivities []Activity        `json:"recent_activities"`
}

// IsOnline reports whether the bot declared itself online.
func (snapshot StatsSnapshot) IsOnline() bool {
	return snapshot.BotStatus == BotStatusOnline
}

// DailyActivity counts one activity type on one day.
type DailyActivity struct {
	Date  string `json:"date"`
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// RegistrationPoint counts registrations on one day.
type RegistrationPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Analytics is the payload of the backend's analytics endpoint.
type Analytics struct {
	DailyActivities       []DailyActivity     `json:"daily_activities"`
	RegistrationTrend     []RegistrationPoint `json:"registration_trend"`
	JobStatusDistribution map[string]int64    `json:"job_status_distribution"`
}
