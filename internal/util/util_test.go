package util

import (
	"testing"
	"time"
)

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5 seconds"},
		{1 * time.Second, "1 second"},
		{61 * time.Second, "1 minute, 1 second"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "2 hours, 3 minutes, 4 seconds"},
	}
	for _, c := range cases {
		if got := FormatUptime(c.d); got != c.want {
			t.Errorf("FormatUptime(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	if got := GetEnvDuration("TEST_DURATION", time.Minute); got != 90*time.Second {
		t.Errorf("Expected 90s, got %v", got)
	}
	if got := GetEnvDuration("TEST_DURATION_MISSING", time.Minute); got != time.Minute {
		t.Errorf("Expected fallback, got %v", got)
	}

	t.Setenv("TEST_INT", "42")
	if got := GetEnvInt("TEST_INT", 7); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	t.Setenv("TEST_INT", "nope")
	if got := GetEnvInt("TEST_INT", 7); got != 7 {
		t.Errorf("Expected fallback on invalid int, got %d", got)
	}

	t.Setenv("TEST_FLOAT", "0.25")
	if got := GetEnvFloat("TEST_FLOAT", 0.5); got != 0.25 {
		t.Errorf("Expected 0.25, got %v", got)
	}
	if got := GetEnvFloat("TEST_FLOAT_MISSING", 0.5); got != 0.5 {
		t.Errorf("Expected fallback, got %v", got)
	}

	t.Setenv("TEST_STRING", "value")
	if got := GetEnvString("TEST_STRING", "fallback"); got != "value" {
		t.Errorf("Expected value, got %q", got)
	}
	if got := GetEnvString("TEST_STRING_MISSING", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %q", got)
	}
}
