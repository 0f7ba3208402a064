package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeWindowExamples(testingT *testing.T) {
	testCases := []struct {
		name          string
		current       int
		total         int
		expectedPages []int
		expectPrev    bool
		expectNext    bool
	}{
		{name: "near end slides left", current: 10, total: 12, expectedPages: []int{8, 9, 10, 11, 12}, expectPrev: true, expectNext: true},
		{name: "first page", current: 1, total: 12, expectedPages: []int{1, 2, 3, 4, 5}, expectPrev: false, expectNext: true},
		{name: "last page", current: 12, total: 12, expectedPages: []int{8, 9, 10, 11, 12}, expectPrev: true, expectNext: false},
		{name: "middle", current: 6, total: 12, expectedPages: []int{4, 5, 6, 7, 8}, expectPrev: true, expectNext: true},
		{name: "fewer pages than width", current: 2, total: 3, expectedPages: []int{1, 2, 3}, expectPrev: true, expectNext: true},
		{name: "two pages on second", current: 2, total: 2, expectedPages: []int{1, 2}, expectPrev: true, expectNext: false},
	}

	for _, testCase := range testCases {
		testingT.Run(testCase.name, func(testingT *testing.T) {
			window := ComputeWindow(testCase.current, testCase.total)
			require.True(testingT, window.Visible())
			require.Equal(testingT, testCase.expectedPages, window.Pages)
			require.Equal(testingT, testCase.expectPrev, window.HasPrevious)
			require.Equal(testingT, testCase.expectNext, window.HasNext)
		})
	}
}

func TestComputeWindowHiddenForSinglePage(testingT *testing.T) {
	for _, total := range []int{-1, 0, 1} {
		window := ComputeWindow(1, total)
		require.False(testingT, window.Visible())
		require.Empty(testingT, window.Pages)
	}
}

func TestComputeWindowProperties(testingT *testing.T) {
	for total := 2; total <= 40; total++ {
		for current := 1; current <= total; current++ {
			window := ComputeWindow(current, total)
			require.Len(testingT, window.Pages, min(WindowWidth, total), "total=%d current=%d", total, current)
			require.Contains(testingT, window.Pages, current)
			require.Equal(testingT, current == 1, !window.HasPrevious)
			require.Equal(testingT, current == total, !window.HasNext)
			for index := 1; index < len(window.Pages); index++ {
				require.Equal(testingT, window.Pages[index-1]+1, window.Pages[index])
			}
			require.GreaterOrEqual(testingT, window.Pages[0], 1)
			require.LessOrEqual(testingT, window.Pages[len(window.Pages)-1], total)
		}
	}
}

func TestComputeWindowClampsCurrentPage(testingT *testing.T) {
	window := ComputeWindow(30, 12)
	require.Equal(testingT, 12, window.Current)
	require.False(testingT, window.HasNext)
	require.Equal(testingT, 11, window.Previous)

	window = ComputeWindow(0, 12)
	require.Equal(testingT, 1, window.Current)
	require.False(testingT, window.HasPrevious)
	require.Equal(testingT, 2, window.Next)
}
