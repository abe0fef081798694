package harvest

import (
	"context"
	"fmt"
	"lpnu-schedule/internal/components/assert"
	"lpnu-schedule/internal/components/telemetry"
	"lpnu-schedule/internal/scrapers/lpnu"
	"slices"

	"golang.org/x/sync/errgroup"
)

const (
	report_harvester_institutes = "harvester.institutes"
	report_harvester_groups     = "harvester.groups"
	report_harvester_entries    = "harvester.entries"
)

// Source is the part of lpnu.Client the harvester depends on.
type Source interface {
	InstitutesUrl() string
	GroupsUrl(institute string) string
	ScheduleUrl(institute, group string) string
	ParseInstitutes(ctx context.Context, link string) ([]string, error)
	ParseGroups(ctx context.Context, link string) ([]string, error)
	ParseGroupSchedule(ctx context.Context, link string) ([]lpnu.ParsedScheduleEntry, error)
}

// GroupSchedule is every entry of one group.
type GroupSchedule struct {
	Institute string
	Group     string
	Entries   []lpnu.ParsedScheduleEntry
}

// Sink receives the schedules of a harvest in (institute, group) order.
type Sink interface {
	Put(ctx context.Context, schedule GroupSchedule) error
}

type Options struct {
	// Institutes restricts the harvest, every institute is harvested when empty.
	Institutes  []string
	Concurrency int
}

type Harvester struct {
	source Source
	sink   Sink
	tel    telemetry.API
}

func NewHarvester(source Source, sink Sink, tel telemetry.API) Harvester {
	assert.NotNil(source)
	assert.NotNil(sink)
	assert.NotNil(tel)

	return Harvester{
		source: source,
		sink:   sink,
		tel:    telemetry.NewScopedAPI("harvester", tel),
	}
}

type groupKey struct {
	institute string
	group     string
}

// Run fetches every selected group's schedule, the first failure cancels the harvest.
func (h Harvester) Run(ctx context.Context, opts Options) (int, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	institutes, err := h.source.ParseInstitutes(ctx, h.source.InstitutesUrl())
	if err != nil {
		return 0, fmt.Errorf("list institutes: %w", err)
	}
	if len(opts.Institutes) > 0 {
		for _, wanted := range opts.Institutes {
			if !slices.Contains(institutes, wanted) {
				return 0, fmt.Errorf("unknown institute %q", wanted)
			}
		}
		institutes = opts.Institutes
	}
	h.tel.ReportCount(report_harvester_institutes, int64(len(institutes)))

	groupLists := make([][]string, len(institutes))
	listGroup, listCtx := errgroup.WithContext(ctx)
	listGroup.SetLimit(opts.Concurrency)
	for i, institute := range institutes {
		listGroup.Go(func() error {
			groups, err := h.source.ParseGroups(listCtx, h.source.GroupsUrl(institute))
			if err != nil {
				return fmt.Errorf("list groups of %s: %w", institute, err)
			}
			groupLists[i] = groups
			return nil
		})
	}
	err = listGroup.Wait()
	if err != nil {
		return 0, err
	}

	var keys []groupKey
	for i, institute := range institutes {
		for _, group := range groupLists[i] {
			keys = append(keys, groupKey{institute: institute, group: group})
		}
	}
	h.tel.ReportCount(report_harvester_groups, int64(len(keys)))

	schedules := make([][]lpnu.ParsedScheduleEntry, len(keys))
	walkGroup, walkCtx := errgroup.WithContext(ctx)
	walkGroup.SetLimit(opts.Concurrency)
	for i, key := range keys {
		walkGroup.Go(func() error {
			entries, err := h.source.ParseGroupSchedule(walkCtx, h.source.ScheduleUrl(key.institute, key.group))
			if err != nil {
				return fmt.Errorf("schedule of %s/%s: %w", key.institute, key.group, err)
			}
			schedules[i] = entries
			return nil
		})
	}
	err = walkGroup.Wait()
	if err != nil {
		return 0, err
	}

	total := 0
	for i, key := range keys {
		err := h.sink.Put(ctx, GroupSchedule{
			Institute: key.institute,
			Group:     key.group,
			Entries:   schedules[i],
		})
		if err != nil {
			return total, fmt.Errorf("store schedule of %s/%s: %w", key.institute, key.group, err)
		}
		total += len(schedules[i])
	}
	h.tel.ReportCount(report_harvester_entries, int64(total))

	return total, nil
}
