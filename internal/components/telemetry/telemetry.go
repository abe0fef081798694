package telemetry

import (
	"fmt"
)

// API is the reporting surface used by every component, it hides whether reports end up in
// logs, metrics or both.
//
// Ids name the component that reported, not the line of code, ex. `client.parse-groups`.
// Wrap errors with fmt.Errorf or pass extra params when more detail is needed.
//
// Formatting rules for ids:
// 1) all lowercase
// 2) use underscores for large components
// 3) use dashes for methods part of a larger component
type API interface {
	// ReportBroken reports a component that has broken in a way that should be addressed,
	// ex. the schedule site changed its markup.
	ReportBroken(id string, params ...any)

	// ReportWarning reports a scenario that does not necessarily indicate brokenness, but may be
	// subject to investigation.
	ReportWarning(id string, params ...any)

	// ReportDebug reports some debug information that will be ignored in production.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the current count of a specific event, counts are points of data over
	// time and should not be summed.
	ReportCount(id string, count int64)
}

// ScopedAPI attaches a namespace to every id reported through it.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}

// NoopAPI drops every report.
type NoopAPI struct{}

func (NoopAPI) ReportBroken(string, ...any)  {}
func (NoopAPI) ReportWarning(string, ...any) {}
func (NoopAPI) ReportDebug(string, ...any)   {}
func (NoopAPI) ReportCount(string, int64)    {}
