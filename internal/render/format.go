package render

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MarkoPoloResearchLab/botdash/internal/model"
)

const (
	dateLayout          = "Jan 2, 2006"
	titleDisplayLimit   = 50
	truncationSuffix    = "..."
	noBadgesPlaceholder = "None"
)

var statusColors = map[model.JobStatus]string{
	model.JobStatusActive: "success",
	model.JobStatusClosed: "danger",
	model.JobStatusPaid:   "warning",
}

// NumberFormatter renders counts with locale-aware grouping.
type NumberFormatter struct {
	printer *message.Printer
}

func NewNumberFormatter(tag language.Tag) NumberFormatter {
	return NumberFormatter{printer: message.NewPrinter(tag)}
}

func (formatter NumberFormatter) Count(value int64) string {
	return formatter.printer.Sprintf("%d", value)
}

func (formatter NumberFormatter) Decimal(value float64) string {
	return formatter.printer.Sprintf("%.1f", value)
}

// TruncateTitle cuts titles longer than fifty characters and marks the cut.
func TruncateTitle(title string) string {
	if utf8.RuneCountInString(title) <= titleDisplayLimit {
		return title
	}
	runes := []rune(title)
	return string(runes[:titleDisplayLimit]) + truncationSuffix
}

// StatusColor maps a job status to its Bootstrap color.
func StatusColor(status model.JobStatus) string {
	if color, ok := statusColors[status]; ok {
		return color
	}
	return "secondary"
}

func StatusText(status model.JobStatus) string {
	return strings.ToUpper(string(status))
}

func BadgeList(badges []string) string {
	if len(badges) == 0 {
		return noBadgesPlaceholder
	}
	return strings.Join(badges, ", ")
}

func FormatDate(timestamp model.Timestamp) string {
	if timestamp.IsZero() {
		return ""
	}
	return timestamp.Format(dateLayout)
}

// EnvironmentClass marks configured checks, which the backend prefixes with a
// check mark.
func EnvironmentClass(status string) string {
	if strings.Contains(status, "✅") {
		return "fw-bold status-configured"
	}
	return "fw-bold status-missing"
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Unknown"
	}
	return value
}
