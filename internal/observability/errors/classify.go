package errors

import (
	goerrors "errors"
	"reflect"
	"strings"
)

// Classify reduces an error to a stable, lowercase type name usable as a
// metric tag value. The innermost wrapped error carries the best signal, so
// the chain is unwrapped fully before reflecting on the type.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	for {
		inner := goerrors.Unwrap(err)
		if inner == nil {
			break
		}
		err = inner
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
