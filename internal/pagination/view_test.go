package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MarkoPoloResearchLab/botdash/internal/model"
)

func TestParseView(testingT *testing.T) {
	view, parseErr := ParseView("users", "ali")
	require.NoError(testingT, parseErr)
	require.Equal(testingT, UsersView("ali"), view)

	view, parseErr = ParseView(" JOBS ", "cair")
	require.NoError(testingT, parseErr)
	require.Equal(testingT, JobsView("cair"), view)

	view, parseErr = ParseView("", "ignored")
	require.NoError(testingT, parseErr)
	require.True(testingT, view.IsNone())

	_, parseErr = ParseView("charts", "")
	require.ErrorIs(testingT, parseErr, ErrUnknownView)
}

func TestActiveViewEntityKind(testingT *testing.T) {
	kind, ok := UsersView("").EntityKind()
	require.True(testingT, ok)
	require.Equal(testingT, model.EntityKindUser, kind)

	kind, ok = JobsView("").EntityKind()
	require.True(testingT, ok)
	require.Equal(testingT, model.EntityKindJob, kind)

	_, ok = NoView().EntityKind()
	require.False(testingT, ok)
	require.True(testingT, ActiveView{}.IsNone())
}

func TestResolveViewPrefersUsers(testingT *testing.T) {
	require.Equal(testingT, UsersView("bob"), ResolveView(Visibility{
		UsersVisible: true, UsersFilter: "bob",
		JobsVisible: true, JobsFilter: "aktif",
	}))
	require.Equal(testingT, JobsView("aktif"), ResolveView(Visibility{JobsVisible: true, JobsFilter: "aktif"}))
	require.Equal(testingT, NoView(), ResolveView(Visibility{UsersFilter: "stale"}))
}

func TestActiveViewString(testingT *testing.T) {
	require.Equal(testingT, "none", NoView().String())
	require.Equal(testingT, "users", UsersView("").String())
	require.Equal(testingT, "jobs(close)", JobsView("close").String())
}
