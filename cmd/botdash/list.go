package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/MarkoPoloResearchLab/botdash/internal/backend"
	"github.com/MarkoPoloResearchLab/botdash/internal/dashboard"
	"github.com/MarkoPoloResearchLab/botdash/internal/pagination"
	"github.com/MarkoPoloResearchLab/botdash/internal/render"
)

const (
	usersCommandUse    = "users"
	usersCommandShort  = "List one page of bot users"
	jobsCommandUse     = "jobs"
	jobsCommandShort   = "List one page of posted jobs"
	statsCommandUse    = "stats"
	statsCommandShort  = "Print the bot's current statistics"
	flagNamePage       = "page"
	flagNameSearch     = "search"
	flagNameStatus     = "status"
	flagUsagePage      = "page number to fetch"
	flagUsageSearch    = "only users whose username matches"
	flagUsageStatus    = "only jobs with this status (aktif, close, cair)"
	tableMinWidth      = 0
	tableTabWidth      = 4
	tablePadding       = 2
	tablePadCharacter  = ' '
	emptyUsersMessage  = "No users found"
	emptyJobsMessage   = "No jobs found"
	noActivityMessage  = "No recent activities"
	currentPageFormat  = "[%d]"
	statsSectionFormat = "%s\t%s\n"
)

func (application *DashboardApplication) usersCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   usersCommandUse,
		Short: usersCommandShort,
		RunE: func(command *cobra.Command, arguments []string) error {
			pageNumber, _ := command.Flags().GetInt(flagNamePage)
			search, _ := command.Flags().GetString(flagNameSearch)
			return application.runList(command, arguments, pagination.UsersView(search), pageNumber)
		},
	}
	command.Flags().Int(flagNamePage, 1, flagUsagePage)
	command.Flags().String(flagNameSearch, "", flagUsageSearch)
	return command
}

func (application *DashboardApplication) jobsCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   jobsCommandUse,
		Short: jobsCommandShort,
		RunE: func(command *cobra.Command, arguments []string) error {
			pageNumber, _ := command.Flags().GetInt(flagNamePage)
			status, _ := command.Flags().GetString(flagNameStatus)
			return application.runList(command, arguments, pagination.JobsView(status), pageNumber)
		},
	}
	command.Flags().Int(flagNamePage, 1, flagUsagePage)
	command.Flags().String(flagNameStatus, "", flagUsageStatus)
	return command
}

func (application *DashboardApplication) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   statsCommandUse,
		Short: statsCommandShort,
		RunE:  application.runStats,
	}
}

// backendClient validates configuration and builds the logger and client a
// terminal command needs.
func (application *DashboardApplication) backendClient(arguments []string) (*backend.Client, *zap.Logger, error) {
	if argumentsErr := ensureNoArguments(arguments); argumentsErr != nil {
		return nil, nil, argumentsErr
	}
	configuration := application.loadConfiguration()
	if validationErr := application.ensureRequiredConfiguration(configuration); validationErr != nil {
		return nil, nil, validationErr
	}
	logger, loggerErr := application.buildLogger(configuration.LogLevel)
	if loggerErr != nil {
		return nil, nil, loggerErr
	}
	client, clientErr := backend.NewClient(configuration.BackendBaseURL, &http.Client{Timeout: configuration.RequestTimeout}, logger)
	if clientErr != nil {
		syncLogger(logger)
		return nil, nil, clientErr
	}
	return client, logger, nil
}

func (application *DashboardApplication) runList(command *cobra.Command, arguments []string, view pagination.ActiveView, pageNumber int) error {
	client, logger, setupErr := application.backendClient(arguments)
	if setupErr != nil {
		return setupErr
	}
	defer syncLogger(logger)

	controller := pagination.NewController(client, logger)
	outcome, navigateErr := controller.Navigate(commandContext(command), "", view, pageNumber)
	if navigateErr != nil {
		command.SilenceUsage = true
		return fmt.Errorf("%s: %s", view.Kind, backend.UserMessage(navigateErr))
	}
	return writeOutcome(command.OutOrStdout(), outcome, render.NewNumberFormatter(language.English))
}

func (application *DashboardApplication) runStats(command *cobra.Command, arguments []string) error {
	client, logger, setupErr := application.backendClient(arguments)
	if setupErr != nil {
		return setupErr
	}
	defer syncLogger(logger)

	snapshot, fetchErr := client.FetchStats(commandContext(command))
	if fetchErr != nil {
		command.SilenceUsage = true
		return fmt.Errorf("stats: %s", backend.UserMessage(fetchErr))
	}

	numbers := render.NewNumberFormatter(language.English)
	output := command.OutOrStdout()
	writer := newTableWriter(output)
	status := "Offline"
	if snapshot.IsOnline() {
		status = "Online"
	}
	rows := [][2]string{
		{"Bot status", status},
		{"Uptime", snapshot.Uptime},
		{"Total users", numbers.Count(snapshot.TotalUsers)},
		{"Total jobs", numbers.Count(snapshot.TotalJobs)},
		{"Active jobs", numbers.Count(snapshot.ActiveJobs)},
		{"Closed jobs", numbers.Count(snapshot.ClosedJobs)},
		{"Paid jobs", numbers.Count(snapshot.PaidJobs)},
		{"Total points", numbers.Count(snapshot.TotalPoints)},
		{"Avg points per user", numbers.Decimal(snapshot.AvgPointsPerUser)},
		{"AI requests", numbers.Count(snapshot.AIRequests)},
		{"Errors", numbers.Count(snapshot.Errors)},
	}
	if snapshot.TopUser.Username != "" {
		rows = append(rows, [2]string{"Top user", snapshot.TopUser.Username + " (" + numbers.Count(snapshot.TopUser.Points) + ")"})
	}
	for _, row := range rows {
		fmt.Fprintf(writer, statsSectionFormat, row[0], row[1])
	}
	if flushErr := writer.Flush(); flushErr != nil {
		return flushErr
	}

	activities := dashboard.FormatActivities(snapshot.RecentActivities, time.Now())
	fmt.Fprintln(output)
	if len(activities) == 0 {
		fmt.Fprintln(output, noActivityMessage)
		return nil
	}
	for _, activity := range activities {
		fmt.Fprintf(output, "%s  %s  (%s)\n", activity.Label, activity.Description, activity.TimeAgo)
	}
	return nil
}

func writeOutcome(output io.Writer, outcome pagination.Outcome, numbers render.NumberFormatter) error {
	writer := newTableWriter(output)
	var shown, total int
	var noun string
	switch outcome.Kind {
	case pagination.OutcomeUsers:
		noun = "users"
		shown, total = len(outcome.Users.Items), outcome.Users.TotalCount
		if shown == 0 {
			fmt.Fprintln(output, emptyUsersMessage)
			return nil
		}
		fmt.Fprintln(writer, "USERNAME\tPOINTS\tBADGES\tREFERRALS\tAPPLIES\tJOINED")
		for _, user := range outcome.Users.Items {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
				user.Username,
				numbers.Count(user.Points),
				render.BadgeList(user.Badges),
				numbers.Count(user.Referrals),
				numbers.Count(user.TotalApplies),
				render.FormatDate(user.CreatedAt),
			)
		}
	case pagination.OutcomeJobs:
		noun = "jobs"
		shown, total = len(outcome.Jobs.Items), outcome.Jobs.TotalCount
		if shown == 0 {
			fmt.Fprintln(output, emptyJobsMessage)
			return nil
		}
		fmt.Fprintln(writer, "ID\tTITLE\tFEE\tSTATUS\tAPPLICANTS\tCREATED")
		for _, job := range outcome.Jobs.Items {
			fmt.Fprintf(writer, "#%s\t%s\t%s\t%s\t%s\t%s\n",
				job.ID,
				render.TruncateTitle(job.Title),
				job.Fee,
				render.StatusText(job.Status),
				numbers.Count(job.ApplicantCount),
				render.FormatDate(job.CreatedAt),
			)
		}
	default:
		return nil
	}
	if flushErr := writer.Flush(); flushErr != nil {
		return flushErr
	}

	fmt.Fprintf(output, "\nShowing %d of %s %s\n", shown, numbers.Count(int64(total)), noun)
	if outcome.Window.Visible() {
		fmt.Fprintf(output, "Pages: %s\n", pageLine(outcome.Window))
	}
	return nil
}

// pageLine renders the same five page window the dashboard shows, with the
// current page bracketed.
func pageLine(window pagination.Window) string {
	labels := make([]string, 0, len(window.Pages))
	for _, pageNumber := range window.Pages {
		if pageNumber == window.Current {
			labels = append(labels, fmt.Sprintf(currentPageFormat, pageNumber))
			continue
		}
		labels = append(labels, strconv.Itoa(pageNumber))
	}
	return strings.Join(labels, " ")
}

func newTableWriter(output io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(output, tableMinWidth, tableTabWidth, tablePadding, tablePadCharacter, 0)
}

func commandContext(command *cobra.Command) context.Context {
	if ctx := command.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
