package validation

import (
	"testing"
	"time"
)

func SetNow(t *testing.T, fixed time.Time) {
	t.Helper()

	prev := now
	now = func() time.Time { return fixed }

	t.Cleanup(func() { now = prev })
}
