package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// InitSlog installs the default text logger on stderr.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

var instrumentName = strings.NewReplacer(": ", ".", " ", "_", ":", ".")

// SlogAPI implements API using the log/slog package, counts are also recorded as otel gauges.
type SlogAPI struct {
	meter metric.Meter
}

func NewSlogAPI() SlogAPI {
	return SlogAPI{meter: otel.Meter("lpnu-schedule")}
}

func (SlogAPI) formatParams(out *[]any, params []any) {
	for i, p := range params {
		*out = append(
			*out,
			fmt.Sprintf("params.%d", i),
			p,
		)
	}
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	remainingPairs := []any{"id", id}
	s.formatParams(&remainingPairs, params)
	slog.Error("broken component", remainingPairs...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	remainingPairs := []any{"id", id}
	s.formatParams(&remainingPairs, params)
	slog.Warn("warning", remainingPairs...)
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	remainingPairs := []any{}
	s.formatParams(&remainingPairs, params)
	slog.Debug(message, remainingPairs...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	slog.Info("count", "id", id, "n", count)
	if s.meter == nil {
		return
	}
	gauge, err := s.meter.Int64Gauge(instrumentName.Replace(id))
	if err != nil {
		slog.Warn("create gauge", "id", id, "err", err)
		return
	}
	gauge.Record(context.Background(), count)
}
