package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	cases := []struct {
		level  string
		format string
		want   zapcore.Level
	}{
		{level: "debug", format: "console", want: zapcore.DebugLevel},
		{level: "warn", format: "json", want: zapcore.WarnLevel},
		{level: "", format: "", want: zapcore.InfoLevel},
	}
	for _, tc := range cases {
		logger, err := New(tc.level, tc.format)
		if err != nil {
			t.Fatalf("New(%q, %q): %v", tc.level, tc.format, err)
		}
		if !logger.Core().Enabled(tc.want) {
			t.Fatalf("New(%q): expected %s to be enabled", tc.level, tc.want)
		}
		if tc.want > zapcore.DebugLevel && logger.Core().Enabled(tc.want-1) {
			t.Fatalf("New(%q): expected %s to be disabled", tc.level, tc.want-1)
		}
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", "json"); err == nil {
		t.Fatalf("expected unknown level to fail")
	}
}
