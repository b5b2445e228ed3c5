package metrics

import (
	"time"

	obserrors "github.com/tarpehcare/portal/internal/observability/errors"
	"github.com/tarpehcare/portal/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultDenied  = "denied"
	ResultNoop    = "noop"
)

// LoginMetric captures details about a sign-in attempt for metric emission.
type LoginMetric struct {
	Mode     string // password, oidc, mock
	Role     string // resolved role, empty on failure
	Result   string
	Duration time.Duration
	Err      error
}

// EmitLogin emits standardised sign-in metrics.
func EmitLogin(sink statsd.Sink, in LoginMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"mode":   in.Mode,
		"result": in.Result,
	}
	if in.Role != "" {
		tags["role"] = in.Role
	}
	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("auth.login", 1, tags)

	if in.Duration > 0 {
		sink.Timing("auth.login_duration", in.Duration, CloneTags(tags))
	}
}

// EmitRoleDenial records a request rejected by the role guard.
func EmitRoleDenial(sink statsd.Sink, area, role string) {
	if sink == nil {
		return
	}
	sink.Count("auth.role_denied", 1, map[string]string{
		"area": area,
		"role": role,
	})
}

// CloneTags creates a shallow copy of a tag map, filtering out nothing.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
