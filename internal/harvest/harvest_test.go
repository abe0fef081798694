package harvest

import (
	"context"
	"errors"
	"fmt"
	"lpnu-schedule/internal/components/telemetry"
	"lpnu-schedule/internal/scrapers/lpnu"
	"lpnu-schedule/internal/store"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	groups    map[string][]string
	failGroup string
	inflight  atomic.Int64
	maxSeen   atomic.Int64
}

func (f *fakeSource) InstitutesUrl() string { return "institutes" }

func (f *fakeSource) GroupsUrl(institute string) string { return institute }

func (f *fakeSource) ScheduleUrl(institute, group string) string {
	return fmt.Sprintf("%s/%s", institute, group)
}

func (f *fakeSource) ParseInstitutes(ctx context.Context, link string) ([]string, error) {
	return []string{"ІКНІ", "ІАРД"}, nil
}

func (f *fakeSource) ParseGroups(ctx context.Context, link string) ([]string, error) {
	return f.groups[link], nil
}

func (f *fakeSource) ParseGroupSchedule(ctx context.Context, link string) ([]lpnu.ParsedScheduleEntry, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	if link == f.failGroup {
		return nil, &lpnu.PatternMismatchError{Fragment: "broken", Pattern: "pattern"}
	}
	return []lpnu.ParsedScheduleEntry{
		{Day: "Пн", ClassNumber: "1", Description: link, ClassType: lpnu.CLASS_LECTURE},
		{Day: "Вт", ClassNumber: "2", Description: link, ClassType: lpnu.CLASS_LAB},
	}, nil
}

type recordingSink struct {
	schedules []GroupSchedule
}

func (r *recordingSink) Put(ctx context.Context, schedule GroupSchedule) error {
	r.schedules = append(r.schedules, schedule)
	return nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		groups: map[string][]string{
			"ІКНІ": {"КН-101", "КН-102", "ПЗ-11"},
			"ІАРД": {"АР-11"},
		},
	}
}

func TestHarvestOrder(t *testing.T) {
	source := newFakeSource()
	sink := &recordingSink{}

	total, err := NewHarvester(source, sink, telemetry.NoopAPI{}).Run(context.Background(), Options{Concurrency: 2})
	require.NoError(t, err)
	require.Equal(t, 8, total)

	var keys []string
	for _, s := range sink.schedules {
		keys = append(keys, fmt.Sprintf("%s/%s", s.Institute, s.Group))
		require.Len(t, s.Entries, 2)
		require.Equal(t, fmt.Sprintf("%s/%s", s.Institute, s.Group), s.Entries[0].Description)
	}
	require.Equal(t, []string{"ІКНІ/КН-101", "ІКНІ/КН-102", "ІКНІ/ПЗ-11", "ІАРД/АР-11"}, keys)
	require.LessOrEqual(t, source.maxSeen.Load(), int64(2))
}

func TestHarvestInstituteFilter(t *testing.T) {
	sink := &recordingSink{}

	_, err := NewHarvester(newFakeSource(), sink, telemetry.NoopAPI{}).Run(context.Background(), Options{
		Institutes: []string{"ІАРД"},
	})
	require.NoError(t, err)
	require.Len(t, sink.schedules, 1)
	require.Equal(t, "АР-11", sink.schedules[0].Group)

	_, err = NewHarvester(newFakeSource(), sink, telemetry.NoopAPI{}).Run(context.Background(), Options{
		Institutes: []string{"ІХХТ"},
	})
	require.Error(t, err)
}

func TestHarvestFailureIsFatal(t *testing.T) {
	source := newFakeSource()
	source.failGroup = "ІКНІ/КН-102"
	sink := &recordingSink{}

	_, err := NewHarvester(source, sink, telemetry.NoopAPI{}).Run(context.Background(), Options{Concurrency: 4})

	var mismatch *lpnu.PatternMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Empty(t, sink.schedules)
}

func TestHarvestIntoStore(t *testing.T) {
	s, err := store.Open(":memory:", telemetry.NoopAPI{})
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	runId, err := s.BeginRun(ctx, time.Now())
	require.NoError(t, err)

	_, err = NewHarvester(newFakeSource(), StoreSink{Store: s, RunId: runId}, telemetry.NoopAPI{}).Run(ctx, Options{Concurrency: 3})
	require.NoError(t, err)

	entries, err := s.GroupSchedule(ctx, "ІКНІ", "ПЗ-11")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, lpnu.CLASS_LAB, entries[1].ClassType)
}
