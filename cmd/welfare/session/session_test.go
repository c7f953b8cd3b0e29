package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SanteonNL/welfare/cmd/welfare/client"
	"github.com/SanteonNL/welfare/models/welfare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves total records split into pages and records every requested filter.
type fakeFetcher struct {
	total    int
	err      error
	requests []welfare.SearchFilter
}

func (f *fakeFetcher) Fetch(_ context.Context, filter welfare.SearchFilter) (*client.Result, error) {
	f.requests = append(f.requests, filter)
	if f.err != nil {
		return nil, f.err
	}
	start := (filter.PageNumber - 1) * filter.PageSize
	var records []welfare.ServiceRecord
	for i := start; i < start+filter.PageSize && i < f.total; i++ {
		records = append(records, welfare.ServiceRecord{Name: fmt.Sprintf("service %d", i+1)})
	}
	if len(records) == 0 {
		return nil, &client.TransportExhaustedError{}
	}
	return &client.Result{Records: records, Variant: client.DefaultVariants[0]}, nil
}

func filter(pageSize int) welfare.SearchFilter {
	return welfare.SearchFilter{LifeStage: "002", PageNumber: 1, PageSize: pageSize}
}

func TestSubmitStartsOnFirstPage(t *testing.T) {
	f := &fakeFetcher{total: 25}
	in := filter(10)
	in.PageNumber = 4

	s := Submit(context.Background(), f, in)
	require.NoError(t, s.Err)
	assert.Equal(t, 1, s.Page())
	assert.Len(t, s.Records, 10)
	assert.Equal(t, "https-rest", s.Variant)
	require.Len(t, f.requests, 1)
	assert.Equal(t, 1, f.requests[0].PageNumber)
}

func TestNextAfterFullPage(t *testing.T) {
	f := &fakeFetcher{total: 25}
	s := Submit(context.Background(), f, filter(10))
	require.True(t, s.CanNext())
	require.False(t, s.CanPrev())

	s = Next(context.Background(), f, s)
	require.NoError(t, s.Err)
	assert.Equal(t, 2, s.Page())
	require.Len(t, f.requests, 2)
	assert.Equal(t, 2, f.requests[1].PageNumber)
	assert.Equal(t, "002", f.requests[1].LifeStage)
	assert.Equal(t, "service 11", s.Records[0].Name)
}

func TestNextDisabledOnShortPage(t *testing.T) {
	f := &fakeFetcher{total: 25}
	s := Submit(context.Background(), f, filter(10))
	s = Next(context.Background(), f, s)
	s = Next(context.Background(), f, s)
	require.Equal(t, 3, s.Page())
	require.Len(t, s.Records, 5)
	require.False(t, s.CanNext())

	s = Next(context.Background(), f, s)
	assert.Equal(t, 3, s.Page())
	assert.Len(t, f.requests, 3)
}

func TestPrevAtFirstPageIsNoop(t *testing.T) {
	f := &fakeFetcher{total: 25}
	s := Submit(context.Background(), f, filter(10))

	s = Prev(context.Background(), f, s)
	assert.Equal(t, 1, s.Page())
	assert.Len(t, f.requests, 1)
}

func TestPrevAndFirst(t *testing.T) {
	f := &fakeFetcher{total: 100}
	s := Submit(context.Background(), f, filter(20))
	s = Next(context.Background(), f, s)
	s = Next(context.Background(), f, s)
	require.Equal(t, 3, s.Page())

	s = Prev(context.Background(), f, s)
	assert.Equal(t, 2, s.Page())

	s = First(context.Background(), f, s)
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 1, f.requests[len(f.requests)-1].PageNumber)
}

func TestNavigationFailureKeepsPreviousPage(t *testing.T) {
	f := &fakeFetcher{total: 30}
	s := Submit(context.Background(), f, filter(10))
	require.NoError(t, s.Err)

	f.err = errors.New("network down")
	s = Next(context.Background(), f, s)
	require.Error(t, s.Err)
	assert.Equal(t, 1, s.Page())
	assert.Len(t, s.Records, 10)
}

func TestSubmitFailureYieldsEmptyResult(t *testing.T) {
	f := &fakeFetcher{err: errors.New("network down")}
	s := Submit(context.Background(), f, filter(10))
	require.Error(t, s.Err)
	assert.Equal(t, 1, s.Page())
	assert.NotNil(t, s.Records)
	assert.Empty(t, s.Records)
	assert.False(t, s.CanNext())
	assert.False(t, s.CanPrev())
}

func TestOpenKeepsRequestedPage(t *testing.T) {
	f := &fakeFetcher{total: 45}
	in := filter(10)
	in.PageNumber = 3

	s := Open(context.Background(), f, in)
	require.NoError(t, s.Err)
	assert.Equal(t, 3, s.Page())
	assert.Equal(t, "service 21", s.Records[0].Name)
	assert.True(t, s.CanPrev())

	in.PageNumber = 9
	s = Open(context.Background(), f, in)
	require.Error(t, s.Err)
	assert.Equal(t, 9, s.Page())
	assert.Empty(t, s.Records)
}

func TestStatePageNeverBelowOne(t *testing.T) {
	assert.Equal(t, 1, State{}.Page())
	assert.False(t, State{}.CanPrev())
}

func TestNoticeFor(t *testing.T) {
	ok := State{Filter: filter(10), Records: make([]welfare.ServiceRecord, 3), LastCount: 3}
	assert.Equal(t, NoticeSuccess, NoticeFor(ok).Kind)
	assert.Contains(t, NoticeFor(ok).Text, "3건")

	empty := State{Err: &client.TransportExhaustedError{Attempts: []client.AttemptFailure{
		{Variant: client.DefaultVariants[0], Err: client.ErrNoRecords},
	}}}
	assert.Equal(t, NoticeInfo, NoticeFor(empty).Kind)

	down := State{Err: &client.TransportExhaustedError{Attempts: []client.AttemptFailure{
		{Variant: client.DefaultVariants[0], Err: errors.New("connection refused")},
	}}}
	n := NoticeFor(down)
	assert.Equal(t, NoticeError, n.Kind)
	assert.Contains(t, n.Detail, "connection refused")

	cancelled := State{Err: fmt.Errorf("fetch: %w", context.Canceled)}
	assert.Equal(t, NoticeWarning, NoticeFor(cancelled).Kind)

	other := State{Err: errors.New("invalid search filter")}
	assert.Equal(t, NoticeError, NoticeFor(other).Kind)
}
