package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MarkoPoloResearchLab/botdash/internal/model"
)

var ErrUnknownView = errors.New("unknown_view")

// ViewKind tags which list view, if any, owns the shared page navigation.
type ViewKind string

const (
	ViewKindNone  ViewKind = "none"
	ViewKindUsers ViewKind = "users"
	ViewKindJobs  ViewKind = "jobs"
)

// ActiveView is the explicit tag passed with every navigation request. The
// filter travels with the view so that paging never drops an active search.
type ActiveView struct {
	Kind   ViewKind
	Filter string
}

func NoView() ActiveView {
	return ActiveView{Kind: ViewKindNone}
}

func UsersView(search string) ActiveView {
	return ActiveView{Kind: ViewKindUsers, Filter: search}
}

func JobsView(status string) ActiveView {
	return ActiveView{Kind: ViewKindJobs, Filter: status}
}

// ParseView builds an ActiveView from its wire name. An empty name means no
// view is open.
func ParseView(name string, filter string) (ActiveView, error) {
	switch ViewKind(strings.ToLower(strings.TrimSpace(name))) {
	case "", ViewKindNone:
		return NoView(), nil
	case ViewKindUsers:
		return UsersView(filter), nil
	case ViewKindJobs:
		return JobsView(filter), nil
	default:
		return ActiveView{}, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
}

// EntityKind returns the backend collection behind the view. The boolean is
// false for the None view.
func (view ActiveView) EntityKind() (model.EntityKind, bool) {
	switch view.Kind {
	case ViewKindUsers:
		return model.EntityKindUser, true
	case ViewKindJobs:
		return model.EntityKindJob, true
	default:
		return "", false
	}
}

func (view ActiveView) IsNone() bool {
	return view.Kind != ViewKindUsers && view.Kind != ViewKindJobs
}

func (view ActiveView) String() string {
	if view.IsNone() {
		return string(ViewKindNone)
	}
	if view.Filter == "" {
		return string(view.Kind)
	}
	return fmt.Sprintf("%s(%s)", view.Kind, view.Filter)
}

// Visibility is the pair of open/closed list views as a browser reports them.
type Visibility struct {
	UsersVisible bool
	UsersFilter  string
	JobsVisible  bool
	JobsFilter   string
}

// ResolveView turns a visibility report into a single ActiveView. When both
// lists claim to be open the users list wins.
func ResolveView(visibility Visibility) ActiveView {
	switch {
	case visibility.UsersVisible:
		return UsersView(visibility.UsersFilter)
	case visibility.JobsVisible:
		return JobsView(visibility.JobsFilter)
	default:
		return NoView()
	}
}
