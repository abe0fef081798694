package chrono

import (
	"fmt"
	"lpnu-schedule/internal/components/telemetry"
	"time"

	"github.com/robfig/cron/v3"
)

// CronAPI runs callbacks on a cron schedule.
type CronAPI interface {
	Cron(spec string, callback func()) error
}

// StandardCron is the CronAPI backed by `github.com/robfig/cron/v3`, jobs never overlap.
type StandardCron struct {
	cron *cron.Cron
}

func NewStandardCron(location *time.Location, tel telemetry.API) StandardCron {
	logger := cronLogger{tel: telemetry.NewScopedAPI("cron", tel)}
	cronner := cron.New(
		cron.WithLogger(logger),
		cron.WithLocation(location),
		cron.WithChain(cron.SkipIfStillRunning(logger)),
	)
	return StandardCron{cron: cronner}
}

func (s StandardCron) Cron(spec string, callback func()) error {
	_, err := s.cron.AddFunc(spec, callback)
	return err
}

func (s StandardCron) Start() {
	s.cron.Start()
}

// Stop stops scheduling new jobs and waits for running ones to finish.
func (s StandardCron) Stop() {
	<-s.cron.Stop().Done()
}

type cronLogger struct {
	tel telemetry.API
}

func (l cronLogger) formatParams(keysAndValues []any) []any {
	params := []any{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		params = append(params, fmt.Sprintf("%v: %v", keysAndValues[i], keysAndValues[i+1]))
	}
	return params
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.tel.ReportDebug(msg, l.formatParams(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.tel.ReportBroken(
		"scheduler",
		append([]any{fmt.Errorf("%s: %w", msg, err)}, l.formatParams(keysAndValues)...)...,
	)
}
