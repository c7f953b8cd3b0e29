package session

import (
	"context"

	"github.com/SanteonNL/welfare/cmd/welfare/client"
	"github.com/SanteonNL/welfare/models/welfare"
)

// Fetcher runs one search against the list endpoint.
type Fetcher interface {
	Fetch(ctx context.Context, filter welfare.SearchFilter) (*client.Result, error)
}

// State is the page state of one interactive session. It is passed into every
// navigation action and a new State is returned; nothing is kept elsewhere.
type State struct {
	Filter    welfare.SearchFilter    // Filter of the page being shown; PageNumber is the current page
	Records   []welfare.ServiceRecord // Records of the current page
	LastCount int                     // Number of records the last successful fetch returned
	Variant   string                  // Transport variant that served the page
	Err       error                   // Failure of the last action, if any
}

// Page returns the current page number.
func (s State) Page() int {
	if s.Filter.PageNumber < 1 {
		return 1
	}
	return s.Filter.PageNumber
}

// CanPrev reports whether the previous page action is enabled.
func (s State) CanPrev() bool {
	return s.Page() > 1
}

// CanNext reports whether the next page action is enabled. A page shorter than
// the page size is taken as the end of the results.
func (s State) CanNext() bool {
	return s.LastCount > 0 && s.LastCount >= s.Filter.PageSize
}

// Submit starts a new search on page 1.
func Submit(ctx context.Context, f Fetcher, filter welfare.SearchFilter) State {
	return Open(ctx, f, filter.WithPage(1))
}

// Open loads the page the filter points at. Like Submit, a failure yields an
// empty result.
func Open(ctx context.Context, f Fetcher, filter welfare.SearchFilter) State {
	filter = filter.WithPage(filter.PageNumber)
	next := load(ctx, f, filter)
	if next.Err != nil {
		return State{Filter: filter, Records: []welfare.ServiceRecord{}, Err: next.Err}
	}
	return next
}

// Next fetches the following page. It is a no-op when CanNext is false.
func Next(ctx context.Context, f Fetcher, s State) State {
	if !s.CanNext() {
		return s
	}
	return navigate(ctx, f, s, s.Page()+1)
}

// Prev fetches the preceding page. It is a no-op on page 1.
func Prev(ctx context.Context, f Fetcher, s State) State {
	if !s.CanPrev() {
		return s
	}
	return navigate(ctx, f, s, s.Page()-1)
}

// First fetches page 1 again.
func First(ctx context.Context, f Fetcher, s State) State {
	return navigate(ctx, f, s, 1)
}

// navigate loads page; on failure the previous page stays in place with the error attached.
func navigate(ctx context.Context, f Fetcher, s State, page int) State {
	next := load(ctx, f, s.Filter.WithPage(page))
	if next.Err != nil {
		s.Err = next.Err
		return s
	}
	return next
}

func load(ctx context.Context, f Fetcher, filter welfare.SearchFilter) State {
	res, err := f.Fetch(ctx, filter)
	if err != nil {
		return State{Filter: filter, Err: err}
	}
	return State{
		Filter:    filter,
		Records:   res.Records,
		LastCount: len(res.Records),
		Variant:   res.Variant.String(),
	}
}
