package metrics

import (
	"strconv"
	"strings"
	"time"
)

// health and scrape paths, at the root or under the base path
var unmeasuredSuffixes = []string{"/metrics", "/health", "/ready"}

// RecordHTTPRequest records one served request by route pattern and status class
func (m *Metrics) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	m.safeExecute("RecordHTTPRequest", func() {
		m.HTTPRequestsTotal.WithLabelValues(method, route, categorizeStatus(statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	})
}

// RecordHTTPError counts a request answered with an application error code
// such as CONFIGURATION_LOCKED or VERSION_CONFLICT
func (m *Metrics) RecordHTTPError(route, code string) {
	m.safeExecute("RecordHTTPError", func() {
		m.HTTPErrorsTotal.WithLabelValues(route, code).Inc()
	})
}

// categorizeStatus maps a status code to its class ("2xx" ... "5xx")
func categorizeStatus(code int) string {
	if code < 200 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}

// ShouldSkipEndpoint reports whether a path is excluded from request metrics
func ShouldSkipEndpoint(path string) bool {
	for _, suffix := range unmeasuredSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}
