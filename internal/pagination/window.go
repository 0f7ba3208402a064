package pagination

// WindowWidth is the maximum number of page links shown at once.
const WindowWidth = 5

// Window is the set of page links rendered under a list view.
type Window struct {
	Pages       []int
	Current     int
	Total       int
	HasPrevious bool
	HasNext     bool
	Previous    int
	Next        int
}

// Visible reports whether pagination controls should be rendered at all.
func (window Window) Visible() bool {
	return window.Total > 1
}

// ComputeWindow centers up to WindowWidth page links on the current page,
// sliding the range left when it runs into the last page. A current page
// outside [1, total] is clamped into range.
func ComputeWindow(current int, total int) Window {
	if total <= 1 {
		if total < 0 {
			total = 0
		}
		return Window{Current: 1, Total: total}
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := max(1, current-2)
	end := min(total, start+WindowWidth-1)
	if end-start+1 < WindowWidth {
		start = max(1, end-WindowWidth+1)
	}

	pages := make([]int, 0, end-start+1)
	for page := start; page <= end; page++ {
		pages = append(pages, page)
	}

	window := Window{
		Pages:       pages,
		Current:     current,
		Total:       total,
		HasPrevious: current > 1,
		HasNext:     current < total,
	}
	if window.HasPrevious {
		window.Previous = current - 1
	}
	if window.HasNext {
		window.Next = current + 1
	}
	return window
}
