package commands

import (
	"context"
	"log/slog"
	"lpnu-schedule/internal/components/chrono"
	"lpnu-schedule/internal/components/telemetry"
	"lpnu-schedule/internal/harvest"
	"lpnu-schedule/internal/store"
	"time"

	"github.com/spf13/cobra"
)

var (
	scrapeDb          string
	scrapeInstitutes  []string
	scrapeConcurrency int
	scrapeEvery       string
)

func init() {
	scrapeCmd.Flags().StringVar(&scrapeDb, "db", "", "The database to write scrape results to, overrides the config.")
	scrapeCmd.Flags().StringSliceVar(&scrapeInstitutes, "institute", nil, "Only scrape the given institutes.")
	scrapeCmd.Flags().IntVar(&scrapeConcurrency, "concurrency", 0, "How many pages to fetch at once, overrides the config.")
	scrapeCmd.Flags().StringVar(&scrapeEvery, "every", "", "A cron spec (Kyiv time), when set the scrape repeats until interrupted.")
	rootCmd.AddCommand(scrapeCmd)
}

type scrapeJob struct {
	out    store.Store
	clock  chrono.API
	source harvest.Source
	opts   harvest.Options
}

func (j scrapeJob) run(ctx context.Context) error {
	t1 := j.clock.Now()
	runId, err := j.out.BeginRun(ctx, t1)
	if err != nil {
		return err
	}
	slog.Info("scrape started", "run", runId, "concurrency", j.opts.Concurrency)

	harvester := harvest.NewHarvester(j.source, harvest.StoreSink{Store: j.out, RunId: runId}, tel)
	total, err := harvester.Run(ctx, j.opts)
	if err != nil {
		return err
	}

	t2 := j.clock.Now()
	err = j.out.FinishRun(ctx, runId, t2)
	if err != nil {
		return err
	}
	slog.Info("scrape finished", "run", runId, "entries", total, "seconds", t2.Sub(t1).Seconds())
	return nil
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--db <path/to/output.db>] [--institute <code>] [--concurrency <n>] [--every <cron spec>]",
	Short: "Scrapes the schedule of every group and writes it to a database.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath := cfg.Database.File
		if scrapeDb != "" {
			dbPath = scrapeDb
		}
		concurrency := cfg.Concurrency
		if scrapeConcurrency > 0 {
			concurrency = scrapeConcurrency
		}

		clock, err := chrono.NewStandardImpl()
		if err != nil {
			return err
		}

		out, err := store.Open(dbPath, tel)
		if err != nil {
			return err
		}
		defer out.Close()

		telemetry.InstrumentPerfStats(ctx, time.Second*30)

		job := scrapeJob{
			out:    out,
			clock:  clock,
			source: client,
			opts: harvest.Options{
				Institutes:  scrapeInstitutes,
				Concurrency: concurrency,
			},
		}
		slog.Info("writing scrape results", "db", dbPath)

		if scrapeEvery == "" {
			return job.run(ctx)
		}

		cronner := chrono.NewStandardCron(clock.Location(), tel)
		err = cronner.Cron(scrapeEvery, func() {
			err := job.run(ctx)
			if err != nil {
				tel.ReportBroken("scrape", err)
			}
		})
		if err != nil {
			return err
		}
		cronner.Start()
		slog.Info("scrape scheduled", "every", scrapeEvery)

		<-ctx.Done()
		cronner.Stop()
		return nil
	},
}
