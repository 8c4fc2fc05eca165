package metrics

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

var statusErrorTypes = map[int]string{
	400: "bad_request",
	401: "unauthorized",
	403: "forbidden",
	404: "not_found",
	408: "request_timeout",
	413: "payload_too_large",
	429: "too_many_requests",
	500: "internal_server_error",
	502: "bad_gateway",
	503: "service_unavailable",
	504: "gateway_timeout",
}

// checked in order; S3 API codes come first since their messages also mention HTTP details
var errorPatterns = []struct {
	needle string
	kind   string
}{
	{"AccessDenied", "access_denied"},
	{"NoSuchBucket", "no_such_bucket"},
	{"connection refused", "connection_refused"},
	{"no such host", "dns_error"},
	{"deadline exceeded", "timeout"},
	{"timeout", "timeout"},
	{"connection reset", "connection_reset"},
	{"EOF", "connection_reset"},
	{"certificate", "tls_error"},
	{"TLS", "tls_error"},
}

// RecordExternalAPICall records a call to the notification service or the export bucket.
// target is a URL or an "s3:Operation" name.
func (m *Metrics) RecordExternalAPICall(target, method string, statusCode int, duration time.Duration, err error) {
	m.safeExecute("RecordExternalAPICall", func() {
		target = normalizeEndpoint(target)
		status := strconv.Itoa(statusCode)

		m.ExternalAPIRequestsTotal.WithLabelValues(target, method, status).Inc()
		m.ExternalAPIRequestDuration.WithLabelValues(target, status).Observe(duration.Seconds())

		if err != nil || statusCode >= 400 {
			m.ExternalAPIErrors.WithLabelValues(target, getErrorType(statusCode, err)).Inc()
		}
	})
}

// normalizeEndpoint drops the query string and replaces ids with {id}
func normalizeEndpoint(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	return uuidPattern.ReplaceAllString(endpoint, "{id}")
}

func getErrorType(statusCode int, err error) string {
	if kind, ok := statusErrorTypes[statusCode]; ok {
		return kind
	}
	switch {
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode >= 500 && statusCode < 600:
		return "server_error"
	}

	if err == nil {
		return "unknown"
	}
	msg := err.Error()
	for _, p := range errorPatterns {
		if strings.Contains(msg, p.needle) {
			return p.kind
		}
	}
	return "network_error"
}
