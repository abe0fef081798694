package store

import (
	"context"
	"database/sql"
	"fmt"
	"lpnu-schedule/internal/components/assert"
	"lpnu-schedule/internal/components/telemetry"
	"lpnu-schedule/internal/db"
	"lpnu-schedule/internal/scrapers/lpnu"
	"lpnu-schedule/pkg/migrations"
	"time"

	"github.com/mazen160/go-random"
)

const (
	report_db_query         = "db.query"
	report_store_save_group = "store.save-group-schedule"
)

// Store persists parsed schedules, a group's entries are always replaced as a whole.
type Store struct {
	database *sql.DB
	qry      *db.Queries
	makeTx   db.MakeTx
	tel      telemetry.API
}

func NewStore(database *sql.DB, tel telemetry.API) Store {
	assert.NotNil(database)
	assert.NotNil(tel)

	return Store{
		database: database,
		qry:      db.New(database),
		makeTx:   db.NewMakeTx(database),
		tel:      telemetry.NewScopedAPI("schedule_store", tel),
	}
}

// Open opens (and migrates) the database at `path`, see migrations.OpenDB.
func Open(path string, tel telemetry.API) (Store, error) {
	database, err := migrations.OpenAndMigrateDB(db.Schema, path)
	if err != nil {
		return Store{}, err
	}
	return NewStore(database, tel), nil
}

func (s Store) Close() error {
	return s.database.Close()
}

// BeginRun records the start of a scrape and returns its id.
func (s Store) BeginRun(ctx context.Context, now time.Time) (string, error) {
	id, err := random.String(16)
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	err = s.qry.CreateScrapeRun(ctx, db.CreateScrapeRunParams{
		ID:        id,
		StartedAt: now.Unix(),
	})
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "CreateScrapeRun")
		return "", err
	}
	return id, nil
}

func (s Store) FinishRun(ctx context.Context, runId string, now time.Time) error {
	err := s.qry.FinishScrapeRun(ctx, db.FinishScrapeRunParams{
		ID:         runId,
		FinishedAt: now.Unix(),
	})
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "FinishScrapeRun")
	}
	return err
}

func (s Store) Run(ctx context.Context, runId string) (db.ScrapeRun, error) {
	run, err := s.qry.GetScrapeRun(ctx, runId)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "GetScrapeRun")
	}
	return run, err
}

// SaveGroupSchedule replaces the stored entries of a group, preserving their order.
func (s Store) SaveGroupSchedule(
	ctx context.Context,
	runId, institute, group string,
	entries []lpnu.ParsedScheduleEntry,
) error {
	rows := make([]db.ScheduleEntry, len(entries))
	for i, e := range entries {
		weekday, err := e.Weekday()
		if err != nil {
			s.tel.ReportBroken(report_store_save_group, err, institute, group)
			return err
		}
		rows[i] = db.ScheduleEntry{
			Institute:      institute,
			GroupName:      group,
			Idx:            int64(i),
			RunID:          runId,
			Day:            e.Day,
			Weekday:        int64(weekday),
			ClassNumber:    e.ClassNumber,
			Subdivision:    e.Subdivision,
			GroupPart:      int64(e.GroupPart),
			Occurrence:     int64(e.Occurrence),
			Location:       e.Location,
			Auditory:       e.Auditory,
			Campus:         e.Campus,
			ClassType:      int64(e.ClassType),
			ClassTypeLabel: e.ClassTypeLabel,
			Description:    e.Description,
			Teacher:        e.Teacher,
		}
	}

	tx, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		s.tel.ReportBroken(report_db_query, fmt.Errorf("make tx: %w", err))
		return err
	}
	defer discard()

	err = tx.DeleteGroupEntries(ctx, db.DeleteGroupEntriesParams{
		Institute: institute,
		GroupName: group,
	})
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "DeleteGroupEntries")
		return err
	}
	for _, row := range rows {
		err = tx.CreateScheduleEntry(ctx, row)
		if err != nil {
			s.tel.ReportBroken(report_db_query, err, "CreateScheduleEntry")
			return err
		}
	}

	err = commit()
	if err != nil {
		s.tel.ReportBroken(report_db_query, fmt.Errorf("commit: %w", err))
		return err
	}
	return nil
}

// GroupSchedule reads back the entries of a group in document order.
func (s Store) GroupSchedule(ctx context.Context, institute, group string) ([]lpnu.ParsedScheduleEntry, error) {
	rows, err := s.qry.GetGroupEntries(ctx, db.GetGroupEntriesParams{
		Institute: institute,
		GroupName: group,
	})
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "GetGroupEntries")
		return nil, err
	}

	entries := make([]lpnu.ParsedScheduleEntry, len(rows))
	for i, row := range rows {
		entries[i] = lpnu.ParsedScheduleEntry{
			Day:            row.Day,
			ClassNumber:    row.ClassNumber,
			Subdivision:    row.Subdivision,
			GroupPart:      lpnu.GroupPart(row.GroupPart),
			Occurrence:     lpnu.Occurrence(row.Occurrence),
			Location:       row.Location,
			Auditory:       row.Auditory,
			Campus:         row.Campus,
			ClassType:      lpnu.ClassType(row.ClassType),
			ClassTypeLabel: row.ClassTypeLabel,
			Description:    row.Description,
			Teacher:        row.Teacher,
		}
	}
	return entries, nil
}
