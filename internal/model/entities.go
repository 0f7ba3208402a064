package model

import "strings"

// JobStatus is the backend's closed set of job states.
type JobStatus string

const (
	JobStatusActive JobStatus = "aktif"
	JobStatusClosed JobStatus = "close"
	JobStatusPaid   JobStatus = "cair"
)

// JobStatuses lists the known statuses in display order.
var JobStatuses = []JobStatus{JobStatusActive, JobStatusClosed, JobStatusPaid}

var jobStatusLabels = map[JobStatus]string{
	JobStatusActive: "Active",
	JobStatusClosed: "Closed",
	JobStatusPaid:   "Paid",
}

var jobStatusAliases = map[string]JobStatus{
	"aktif":  JobStatusActive,
	"active": JobStatusActive,
	"close":  JobStatusClosed,
	"closed": JobStatusClosed,
	"cair":   JobStatusPaid,
	"paid":   JobStatusPaid,
}

// ParseJobStatus maps both backend values and their English names onto a
// JobStatus. Unknown values report false.
func ParseJobStatus(raw string) (JobStatus, bool) {
	status, ok := jobStatusAliases[strings.ToLower(strings.TrimSpace(raw))]
	return status, ok
}

// Label returns the human readable name used by charts and filter controls.
func (status JobStatus) Label() string {
	if label, ok := jobStatusLabels[status]; ok {
		return label
	}
	return string(status)
}

// User is one row of the backend's user listing.
type User struct {
	UserID       Text      `json:"user_id,omitempty"`
	Username     string    `json:"username"`
	Points       int64     `json:"points"`
	Badges       []string  `json:"badges"`
	Referrals    int64     `json:"referrals"`
	TotalApplies int64     `json:"total_applies"`
	CreatedAt    Timestamp `json:"created_at"`
}

// Job is one row of the backend's job listing.
type Job struct {
	ID             Text      `json:"id"`
	Title          string    `json:"title"`
	Fee            Text      `json:"fee"`
	Status         JobStatus `json:"status"`
	ApplicantCount int64     `json:"applicant_count"`
	CreatedAt      Timestamp `json:"created_at"`
}
