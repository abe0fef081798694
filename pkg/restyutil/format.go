package restyutil

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

func formatHeaders(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		for _, v := range headers[k] {
			out = append(out, fmt.Sprintf("%s: %s", k, v))
		}
	}
	return strings.Join(out, "\n")
}

// 1: request method
// 2: request url
// 3: request headers
// 4: response status
// 5: response headers
// 6: response body
const messageTemplate = `---- REQUEST ----

%s %s

%s

---- RESPONSE ----

%s

%s

%s`

// FormatMessage renders a GET exchange, request bodies are never sent to the schedule site.
func FormatMessage(res *resty.Response) string {
	var requestHeaders string
	if res.Request.RawRequest != nil {
		requestHeaders = formatHeaders(res.Request.RawRequest.Header)
	}
	return fmt.Sprintf(
		messageTemplate,
		res.Request.Method, res.Request.URL,
		requestHeaders,
		strconv.Itoa(res.StatusCode()),
		formatHeaders(res.Header()),
		res.String(),
	)
}
