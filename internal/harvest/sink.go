package harvest

import (
	"context"
	"lpnu-schedule/internal/store"
)

// StoreSink writes every harvested schedule under one scrape run.
type StoreSink struct {
	Store store.Store
	RunId string
}

func (s StoreSink) Put(ctx context.Context, schedule GroupSchedule) error {
	return s.Store.SaveGroupSchedule(ctx, s.RunId, schedule.Institute, schedule.Group, schedule.Entries)
}
