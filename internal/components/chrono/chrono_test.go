package chrono

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingAPI struct {
	broken []string
	debug  []string
}

func (r *recordingAPI) ReportBroken(id string, params ...any) { r.broken = append(r.broken, id) }
func (r *recordingAPI) ReportWarning(id string, params ...any) {}
func (r *recordingAPI) ReportDebug(msg string, params ...any) { r.debug = append(r.debug, msg) }
func (r *recordingAPI) ReportCount(id string, count int64) {}

func TestStandardImpl(t *testing.T) {
	clock, err := NewStandardImpl()
	require.NoError(t, err)
	require.Equal(t, Kyiv, clock.Location().String())
	require.Equal(t, Kyiv, clock.Now().Location().String())
}

func TestStandardCronRejectsBadSpec(t *testing.T) {
	tel := &recordingAPI{}
	cronner := NewStandardCron(time.UTC, tel)
	require.Error(t, cronner.Cron("not a spec", func() {}))
	require.NoError(t, cronner.Cron("0 6 * * *", func() {}))
}

func TestCronLogger(t *testing.T) {
	tel := &recordingAPI{}
	logger := cronLogger{tel: tel}

	logger.Info("tick", "entry", 1, "dangling")
	logger.Error(errors.New("boom"), "job failed")

	require.Equal(t, []string{"tick"}, tel.debug)
	require.Equal(t, []string{"scheduler"}, tel.broken)
	require.Equal(t, []any{"entry: 1"}, logger.formatParams([]any{"entry", 1, "dangling"}))
}
