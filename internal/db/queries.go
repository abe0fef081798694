package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type ScrapeRun struct {
	ID         string
	StartedAt  int64
	FinishedAt sql.NullInt64
}

const createScrapeRun = `insert into scrape_run(id, started_at) values (?, ?)`

type CreateScrapeRunParams struct {
	ID        string
	StartedAt int64
}

func (q *Queries) CreateScrapeRun(ctx context.Context, arg CreateScrapeRunParams) error {
	_, err := q.db.ExecContext(ctx, createScrapeRun, arg.ID, arg.StartedAt)
	return err
}

const finishScrapeRun = `update scrape_run set finished_at = ? where id = ?`

type FinishScrapeRunParams struct {
	ID         string
	FinishedAt int64
}

func (q *Queries) FinishScrapeRun(ctx context.Context, arg FinishScrapeRunParams) error {
	_, err := q.db.ExecContext(ctx, finishScrapeRun, arg.FinishedAt, arg.ID)
	return err
}

const getScrapeRun = `select id, started_at, finished_at from scrape_run where id = ?`

func (q *Queries) GetScrapeRun(ctx context.Context, id string) (ScrapeRun, error) {
	row := q.db.QueryRowContext(ctx, getScrapeRun, id)
	var i ScrapeRun
	err := row.Scan(&i.ID, &i.StartedAt, &i.FinishedAt)
	return i, err
}

const deleteGroupEntries = `delete from schedule_entry where institute = ? and group_name = ?`

type DeleteGroupEntriesParams struct {
	Institute string
	GroupName string
}

func (q *Queries) DeleteGroupEntries(ctx context.Context, arg DeleteGroupEntriesParams) error {
	_, err := q.db.ExecContext(ctx, deleteGroupEntries, arg.Institute, arg.GroupName)
	return err
}

type ScheduleEntry struct {
	Institute      string
	GroupName      string
	Idx            int64
	RunID          string
	Day            string
	Weekday        int64
	ClassNumber    string
	Subdivision    string
	GroupPart      int64
	Occurrence     int64
	Location       string
	Auditory       string
	Campus         string
	ClassType      int64
	ClassTypeLabel string
	Description    string
	Teacher        string
}

const createScheduleEntry = `insert into schedule_entry(
    institute, group_name, idx, run_id, day, weekday, class_number, subdivision, group_part,
    occurrence, location, auditory, campus, class_type, class_type_label, description, teacher
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateScheduleEntry(ctx context.Context, arg ScheduleEntry) error {
	_, err := q.db.ExecContext(
		ctx, createScheduleEntry,
		arg.Institute,
		arg.GroupName,
		arg.Idx,
		arg.RunID,
		arg.Day,
		arg.Weekday,
		arg.ClassNumber,
		arg.Subdivision,
		arg.GroupPart,
		arg.Occurrence,
		arg.Location,
		arg.Auditory,
		arg.Campus,
		arg.ClassType,
		arg.ClassTypeLabel,
		arg.Description,
		arg.Teacher,
	)
	return err
}

const getGroupEntries = `select
    institute, group_name, idx, run_id, day, weekday, class_number, subdivision, group_part,
    occurrence, location, auditory, campus, class_type, class_type_label, description, teacher
from schedule_entry
where institute = ? and group_name = ?
order by idx`

type GetGroupEntriesParams struct {
	Institute string
	GroupName string
}

func (q *Queries) GetGroupEntries(ctx context.Context, arg GetGroupEntriesParams) ([]ScheduleEntry, error) {
	rows, err := q.db.QueryContext(ctx, getGroupEntries, arg.Institute, arg.GroupName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ScheduleEntry
	for rows.Next() {
		var i ScheduleEntry
		err := rows.Scan(
			&i.Institute,
			&i.GroupName,
			&i.Idx,
			&i.RunID,
			&i.Day,
			&i.Weekday,
			&i.ClassNumber,
			&i.Subdivision,
			&i.GroupPart,
			&i.Occurrence,
			&i.Location,
			&i.Auditory,
			&i.Campus,
			&i.ClassType,
			&i.ClassTypeLabel,
			&i.Description,
			&i.Teacher,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
