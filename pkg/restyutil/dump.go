package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// DumpResponses writes every response the client receives to `<dir>/<n>.txt`, it is meant
// for inspecting pages that fail to parse.
func DumpResponses(client *resty.Client, dir string) error {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return err
	}

	var counter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := atomic.AddUint64(&counter, 1)
		path := filepath.Join(dir, fmt.Sprintf("%d.txt", id))
		err := os.WriteFile(path, []byte(FormatMessage(res)), 0600)
		if err != nil {
			slog.Warn("failed to dump response", "path", path, "err", err)
		}
		return nil
	})
	return nil
}
